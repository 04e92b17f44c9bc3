package admin

import (
	"context"

	adminRepo "velour/database/repository/admin"
	bookingRepo "velour/database/repository/booking"
	employeeRepo "velour/database/repository/employee"
	serviceRepo "velour/database/repository/service"
	"velour/models"
)

// RegisterRequest is the input for creating a back-office account. SecretKey
// must match the deployment's admin secret.
type RegisterRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	SecretKey string `json:"secretKey"`
}

// LoginRequest is the input for authenticating an admin.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AdminService covers back-office account management and reporting.
type AdminService interface {
	Register(ctx context.Context, req RegisterRequest) (*models.Admin, error)
	Authenticate(ctx context.Context, req LoginRequest) (*models.Admin, string, error)
	GetProfile(ctx context.Context, id string) (*models.Admin, error)
	UpdateProfile(ctx context.Context, id string, patch models.AdminPatch) (*models.Admin, error)
	Revenue(ctx context.Context) (float64, error)
	Analytics(ctx context.Context) ([]models.AnalyticsEntry, error)
}

// DefaultAdminService is the production implementation.
type DefaultAdminService struct {
	Repo      adminRepo.AdminRepository
	Bookings  bookingRepo.BookingRepository
	Services  serviceRepo.ServiceRepository
	Employees employeeRepo.EmployeeRepository
	// SecretKey gates registration; empty disables it entirely.
	SecretKey string
}
