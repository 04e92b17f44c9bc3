package employeeRepo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"velour/models"
)

func (r *mongoEmployeeRepo) Create(ctx context.Context, e *models.Employee) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.AssignedServices == nil {
		e.AssignedServices = []string{}
	}

	if _, err := r.coll.InsertOne(ctx, e); err != nil {
		return fmt.Errorf("insert employee failed: %w", err)
	}
	return nil
}

func (r *mongoEmployeeRepo) GetAll(ctx context.Context) ([]models.Employee, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("fetch employees failed: %w", err)
	}
	defer cursor.Close(ctx)

	employees := []models.Employee{}
	if err := cursor.All(ctx, &employees); err != nil {
		return nil, fmt.Errorf("decode employees failed: %w", err)
	}
	return employees, nil
}

func (r *mongoEmployeeRepo) GetByID(ctx context.Context, id string) (*models.Employee, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var e models.Employee
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&e)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find employee failed: %w", err)
	}
	return &e, nil
}

func (r *mongoEmployeeRepo) Update(ctx context.Context, e *models.Employee) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"name":             e.Name,
		"email":            e.Email,
		"phone":            e.Phone,
		"assignedServices": e.AssignedServices,
		"profilePicture":   e.ProfilePicture,
	}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": e.ID}, update)
	if err != nil {
		return fmt.Errorf("update employee failed: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoEmployeeRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("delete employee failed: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoEmployeeRepo) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	count, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count employees failed: %w", err)
	}
	return count, nil
}
