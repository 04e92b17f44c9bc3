package admin

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	adminRepo "velour/database/repository/admin"
	"velour/models"
	"velour/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const tokenLifetime = 3 * time.Hour

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Register creates a back-office account after checking the admin secret key.
func (s *DefaultAdminService) Register(ctx context.Context, req RegisterRequest) (*models.Admin, error) {
	if s.SecretKey == "" || subtle.ConstantTimeCompare([]byte(req.SecretKey), []byte(s.SecretKey)) != 1 {
		return nil, ErrInvalidSecretKey
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, ValidationError{Field: "name", Reason: "is required"}
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !emailPattern.MatchString(email) {
		return nil, ValidationError{Field: "email", Reason: "invalid email format"}
	}
	if len(req.Password) < 8 {
		return nil, ValidationError{Field: "password", Reason: "must be at least 8 characters"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	a := &models.Admin{
		ID:       uuid.New().String(),
		Name:     strings.TrimSpace(req.Name),
		Email:    email,
		Password: string(hash),
	}
	if err := s.Repo.Create(ctx, a); err != nil {
		if errors.Is(err, adminRepo.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create admin: %w", err)
	}

	utils.GetLogger().Info("admin registered", zap.String("email", a.Email))
	return a, nil
}

// Authenticate verifies credentials and returns the admin plus a signed JWT.
func (s *DefaultAdminService) Authenticate(ctx context.Context, req LoginRequest) (*models.Admin, string, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	a, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, adminRepo.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.Password), []byte(req.Password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(a.ID, a.Email, tokenLifetime)
	if err != nil {
		return nil, "", fmt.Errorf("failed to sign token: %w", err)
	}
	return a, token, nil
}

func (s *DefaultAdminService) GetProfile(ctx context.Context, id string) (*models.Admin, error) {
	a, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, adminRepo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

// UpdateProfile applies a partial profile update. Only name, email and
// profile picture are patchable.
func (s *DefaultAdminService) UpdateProfile(ctx context.Context, id string, patch models.AdminPatch) (*models.Admin, error) {
	if patch.Email != "" {
		patch.Email = strings.ToLower(strings.TrimSpace(patch.Email))
		if !emailPattern.MatchString(patch.Email) {
			return nil, ValidationError{Field: "email", Reason: "invalid email format"}
		}
	}
	a, err := s.Repo.UpdateProfile(ctx, id, patch)
	if err != nil {
		switch {
		case errors.Is(err, adminRepo.ErrNotFound):
			return nil, ErrNotFound
		case errors.Is(err, adminRepo.ErrDuplicateEmail):
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return a, nil
}

// Revenue sums service price plus employee fee across all bookings.
func (s *DefaultAdminService) Revenue(ctx context.Context) (float64, error) {
	return s.Bookings.TotalRevenue(ctx)
}

// Analytics returns headline counters for the dashboard.
func (s *DefaultAdminService) Analytics(ctx context.Context) ([]models.AnalyticsEntry, error) {
	bookings, err := s.Bookings.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count bookings: %w", err)
	}
	services, err := s.Services.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count services: %w", err)
	}
	employees, err := s.Employees.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count employees: %w", err)
	}
	return []models.AnalyticsEntry{
		{Label: "Total Bookings", Value: bookings},
		{Label: "Total Services", Value: services},
		{Label: "Total Employees", Value: employees},
	}, nil
}
