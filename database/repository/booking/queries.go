package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"velour/models"
)

func (r *mongoBookingRepo) ListByCustomer(ctx context.Context, identifier string) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"$or": bson.A{
		bson.M{"customerEmail": identifier},
		bson.M{"customerPhone": identifier},
	}}
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("fetch customer bookings failed: %w", err)
	}
	defer cursor.Close(ctx)

	bookings := []models.Booking{}
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("decode customer bookings failed: %w", err)
	}
	return bookings, nil
}

// BookedSlots returns the time slots occupied by non-cancelled bookings on the
// given date, in chronological order.
func (r *mongoBookingRepo) BookedSlots(ctx context.Context, date string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"date": date, "active": true}
	opts := options.Find().
		SetSort(bson.D{{Key: "timeSlot", Value: 1}}).
		SetProjection(bson.M{"timeSlot": 1})

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("fetch booked slots failed: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []struct {
		TimeSlot string `bson:"timeSlot"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode booked slots failed: %w", err)
	}

	slots := make([]string, 0, len(docs))
	for _, doc := range docs {
		slots = append(slots, doc.TimeSlot)
	}
	return slots, nil
}

// DeleteExpired removes every booking whose slot has fully elapsed: any date
// before today, or today's slots earlier than nowSlot. Both arguments are in
// the normalized "2006-01-02" / "15:04" forms, so string comparison is safe.
func (r *mongoBookingRepo) DeleteExpired(ctx context.Context, today, nowSlot string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	filter := bson.M{"$or": bson.A{
		bson.M{"date": bson.M{"$lt": today}},
		bson.M{"date": today, "timeSlot": bson.M{"$lt": nowSlot}},
	}}
	res, err := r.coll.DeleteMany(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("delete expired bookings failed: %w", err)
	}
	return res.DeletedCount, nil
}

func (r *mongoBookingRepo) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	count, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count bookings failed: %w", err)
	}
	return count, nil
}

// TotalRevenue sums service price plus employee fee across all bookings.
func (r *mongoBookingRepo) TotalRevenue(ctx context.Context) (float64, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pipeline := []bson.M{
		{"$group": bson.M{
			"_id": nil,
			"total": bson.M{"$sum": bson.M{"$add": bson.A{
				bson.M{"$ifNull": bson.A{"$service.price", 0}},
				bson.M{"$ifNull": bson.A{"$employee.fee", 0}},
			}}},
		}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("revenue aggregation failed: %w", err)
	}
	defer cursor.Close(ctx)

	var result []struct {
		Total float64 `bson:"total"`
	}
	if err := cursor.All(ctx, &result); err != nil {
		return 0, fmt.Errorf("decode revenue failed: %w", err)
	}
	if len(result) == 0 {
		return 0, nil
	}
	return result[0].Total, nil
}
