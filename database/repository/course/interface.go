package courseRepo

import (
	"context"
	"errors"

	"velour/database"
	"velour/models"

	"go.mongodb.org/mongo-driver/mongo"
)

var ErrNotFound = errors.New("course not found")

type CourseRepository interface {
	Create(ctx context.Context, course *models.Course) error
	GetAll(ctx context.Context) ([]models.Course, error)
	GetByID(ctx context.Context, id string) (*models.Course, error)
	Update(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, id string) error
}

type mongoCourseRepo struct {
	coll *mongo.Collection
}

// NewMongoCourseRepo constructs a MongoDB-backed CourseRepository.
func NewMongoCourseRepo() CourseRepository {
	return &mongoCourseRepo{coll: database.DB().Collection("courses")}
}
