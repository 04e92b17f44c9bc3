package employeeRepo

import (
	"context"
	"errors"

	"velour/database"
	"velour/models"

	"go.mongodb.org/mongo-driver/mongo"
)

var ErrNotFound = errors.New("employee not found")

type EmployeeRepository interface {
	Create(ctx context.Context, e *models.Employee) error
	GetAll(ctx context.Context) ([]models.Employee, error)
	GetByID(ctx context.Context, id string) (*models.Employee, error)
	Update(ctx context.Context, e *models.Employee) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

type mongoEmployeeRepo struct {
	coll *mongo.Collection
}

// NewMongoEmployeeRepo constructs a MongoDB-backed EmployeeRepository.
func NewMongoEmployeeRepo() EmployeeRepository {
	return &mongoEmployeeRepo{coll: database.DB().Collection("employees")}
}
