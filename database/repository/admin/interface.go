package adminRepo

import (
	"context"
	"errors"
	"log"

	"velour/database"
	"velour/models"

	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrNotFound       = errors.New("admin not found")
	ErrDuplicateEmail = errors.New("admin email already registered")
)

type AdminRepository interface {
	Create(ctx context.Context, a *models.Admin) error
	GetByID(ctx context.Context, id string) (*models.Admin, error)
	GetByEmail(ctx context.Context, email string) (*models.Admin, error)
	UpdateProfile(ctx context.Context, id string, patch models.AdminPatch) (*models.Admin, error)
}

type mongoAdminRepo struct {
	coll *mongo.Collection
}

// NewMongoAdminRepo constructs a MongoDB-backed AdminRepository.
func NewMongoAdminRepo() AdminRepository {
	repo := &mongoAdminRepo{coll: database.DB().Collection("admins")}
	if err := repo.ensureIndexes(); err != nil {
		log.Printf("failed to create admin indexes: %v", err)
	}
	return repo
}
