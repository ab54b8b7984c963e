package availability

import (
	"context"
	"medibook-service/internal/app/contracts"
	"medibook-service/internal/app/models"
	"medibook-service/internal/pkg/constvars"
	"medibook-service/internal/pkg/exceptions"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type AvailabilityMongoRepository struct {
	Collection *mongo.Collection
}

func NewAvailabilityMongoRepository(db *mongo.Client, dbName string) contracts.AvailabilityRepository {
	return &AvailabilityMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionAvailability),
	}
}

func (r *AvailabilityMongoRepository) FindByDoctorID(ctx context.Context, doctorID string) (*models.WeeklyAvailability, error) {
	var availability models.WeeklyAvailability
	err := r.Collection.FindOne(ctx, bson.M{"doctorId": doctorID}).Decode(&availability)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &availability, nil
}

func (r *AvailabilityMongoRepository) Upsert(ctx context.Context, availability *models.WeeklyAvailability) (created bool, err error) {
	now := time.Now()
	update := bson.M{
		"$set": bson.M{
			"availability": availability.Availability,
			"updatedAt":    now,
		},
		"$setOnInsert": bson.M{
			"doctorId":  availability.DoctorID,
			"createdAt": now,
		},
	}
	result, err := r.Collection.UpdateOne(
		ctx,
		bson.M{"doctorId": availability.DoctorID},
		update,
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return false, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return result.UpsertedCount > 0, nil
}
