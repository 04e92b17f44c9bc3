package serviceRepo

import (
	"context"
	"errors"

	"velour/database"
	"velour/models"

	"go.mongodb.org/mongo-driver/mongo"
)

var ErrNotFound = errors.New("service not found")

type ServiceRepository interface {
	Create(ctx context.Context, s *models.Service) error
	GetAll(ctx context.Context) ([]models.Service, error)
	GetByID(ctx context.Context, id string) (*models.Service, error)
	Update(ctx context.Context, s *models.Service) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

type mongoServiceRepo struct {
	coll *mongo.Collection
}

// NewMongoServiceRepo constructs a MongoDB-backed ServiceRepository.
func NewMongoServiceRepo() ServiceRepository {
	return &mongoServiceRepo{coll: database.DB().Collection("services")}
}
