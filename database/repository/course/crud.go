package courseRepo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"velour/models"
)

func (r *mongoCourseRepo) Create(ctx context.Context, course *models.Course) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if course.ID == "" {
		course.ID = uuid.New().String()
	}
	now := time.Now()
	course.CreatedAt = now
	course.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, course); err != nil {
		return fmt.Errorf("insert course failed: %w", err)
	}
	return nil
}

func (r *mongoCourseRepo) GetAll(ctx context.Context) ([]models.Course, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("fetch courses failed: %w", err)
	}
	defer cursor.Close(ctx)

	courses := []models.Course{}
	if err := cursor.All(ctx, &courses); err != nil {
		return nil, fmt.Errorf("decode courses failed: %w", err)
	}
	return courses, nil
}

func (r *mongoCourseRepo) GetByID(ctx context.Context, id string) (*models.Course, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var course models.Course
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&course)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find course failed: %w", err)
	}
	return &course, nil
}

func (r *mongoCourseRepo) Update(ctx context.Context, course *models.Course) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	course.UpdatedAt = time.Now()
	update := bson.M{"$set": bson.M{
		"name":        course.Name,
		"description": course.Description,
		"price":       course.Price,
		"image":       course.Image,
		"updatedAt":   course.UpdatedAt,
	}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": course.ID}, update)
	if err != nil {
		return fmt.Errorf("update course failed: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoCourseRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("delete course failed: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
