package appointments

import (
	"context"
	"medibook-service/internal/app/contracts"
	"medibook-service/internal/app/models"
	"medibook-service/internal/pkg/constvars"
	"medibook-service/internal/pkg/dto/requests"
	"medibook-service/internal/pkg/exceptions"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type AppointmentMongoRepository struct {
	Collection *mongo.Collection
}

func NewAppointmentMongoRepository(db *mongo.Client, dbName string) contracts.AppointmentRepository {
	return &AppointmentMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionAppointments),
	}
}

// EnsureIndexes creates the partial unique index that closes the concurrent
// double-booking window. Two inserts for the same doctor and start time race
// past the application-level conflict check at most once: the second insert
// fails with a duplicate key error. Only upcoming appointments participate so
// a cancelled or no-show slot can be rebooked.
func (r *AppointmentMongoRepository) EnsureIndexes(ctx context.Context) error {
	indexModel := mongo.IndexModel{
		Keys: bson.D{
			{Key: "doctorId", Value: 1},
			{Key: "startDateTime", Value: 1},
		},
		Options: options.Index().
			SetUnique(true).
			SetPartialFilterExpression(bson.M{
				"status": constvars.AppointmentStatusUpcoming,
			}),
	}
	_, err := r.Collection.Indexes().CreateOne(ctx, indexModel)
	return err
}

func (r *AppointmentMongoRepository) Insert(ctx context.Context, appointment *models.Appointment) (*models.Appointment, error) {
	result, err := r.Collection.InsertOne(ctx, appointment)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, exceptions.ErrSlotAlreadyBooked(err)
		}
		return nil, exceptions.ErrMongoDBInsertDocument(err)
	}
	appointment.ID = result.InsertedID.(primitive.ObjectID)
	return appointment, nil
}

func (r *AppointmentMongoRepository) FindByID(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	objectID, err := primitive.ObjectIDFromHex(appointmentID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}
	var appointment models.Appointment
	err = r.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&appointment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &appointment, nil
}

func (r *AppointmentMongoRepository) Update(ctx context.Context, appointment *models.Appointment) error {
	update := bson.M{
		"$set": bson.M{
			"startDateTime":  appointment.StartDateTime,
			"endDateTime":    appointment.EndDateTime,
			"reason":         appointment.Reason,
			"status":         appointment.Status,
			"noShowMarkedAt": appointment.NoShowMarkedAt,
			"updatedAt":      time.Now(),
		},
	}
	_, err := r.Collection.UpdateOne(ctx, bson.M{"_id": appointment.ID}, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return exceptions.ErrSlotAlreadyBooked(err)
		}
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}

func (r *AppointmentMongoRepository) FindActiveInWindow(ctx context.Context, doctorID, patientID string, start, end time.Time, excludeID string) ([]models.Appointment, error) {
	filter := bson.M{
		"status":        bson.M{"$ne": constvars.AppointmentStatusCancelled},
		"startDateTime": bson.M{"$lt": end},
		"endDateTime":   bson.M{"$gt": start},
	}
	if doctorID != "" {
		filter["doctorId"] = doctorID
	}
	if patientID != "" {
		filter["patientId"] = patientID
	}
	if excludeID != "" {
		objectID, err := primitive.ObjectIDFromHex(excludeID)
		if err != nil {
			return nil, exceptions.ErrMongoDBNotObjectID(err)
		}
		filter["_id"] = bson.M{"$ne": objectID}
	}

	return r.findAll(ctx, filter, options.Find().SetSort(bson.D{{Key: "startDateTime", Value: 1}}))
}

func (r *AppointmentMongoRepository) FindByPatient(ctx context.Context, patientID string, listFilter *requests.AppointmentListFilter, pagination *requests.Pagination) ([]models.Appointment, int, error) {
	filter := bson.M{"patientId": patientID}
	if listFilter != nil {
		if listFilter.Status != "" {
			filter["status"] = listFilter.Status
		}
		timeRange := bson.M{}
		if listFilter.From != nil {
			timeRange["$gte"] = *listFilter.From
		}
		if listFilter.To != nil {
			timeRange["$lt"] = *listFilter.To
		}
		if len(timeRange) > 0 {
			filter["startDateTime"] = timeRange
		}
	}

	total, err := r.Collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, exceptions.ErrMongoDBCountDocuments(err)
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: "startDateTime", Value: -1}}).
		SetSkip(int64(pagination.Skip())).
		SetLimit(int64(pagination.PageSize))

	appointments, err := r.findAll(ctx, filter, findOptions)
	if err != nil {
		return nil, 0, err
	}
	return appointments, int(total), nil
}

// FindCurrentForDoctor returns the upcoming appointment in progress right now,
// or nil when the doctor is between appointments.
func (r *AppointmentMongoRepository) FindCurrentForDoctor(ctx context.Context, doctorID string, now time.Time) (*models.Appointment, error) {
	filter := bson.M{
		"doctorId":      doctorID,
		"status":        constvars.AppointmentStatusUpcoming,
		"startDateTime": bson.M{"$lte": now},
		"endDateTime":   bson.M{"$gt": now},
	}
	var appointment models.Appointment
	err := r.Collection.FindOne(ctx, filter, options.FindOne().SetSort(bson.D{{Key: "startDateTime", Value: 1}})).Decode(&appointment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &appointment, nil
}

func (r *AppointmentMongoRepository) FindUpcomingForDoctor(ctx context.Context, doctorID string, now time.Time) ([]models.Appointment, error) {
	filter := bson.M{
		"doctorId":      doctorID,
		"status":        constvars.AppointmentStatusUpcoming,
		"startDateTime": bson.M{"$gt": now},
	}
	return r.findAll(ctx, filter, options.Find().SetSort(bson.D{{Key: "startDateTime", Value: 1}}))
}

func (r *AppointmentMongoRepository) FindPastForDoctor(ctx context.Context, doctorID string, now time.Time) ([]models.Appointment, error) {
	filter := bson.M{
		"doctorId": doctorID,
		"status":   bson.M{"$ne": constvars.AppointmentStatusCancelled},
		"$or": bson.A{
			bson.M{"endDateTime": bson.M{"$lte": now}},
			bson.M{"status": bson.M{"$in": bson.A{
				constvars.AppointmentStatusCompleted,
				constvars.AppointmentStatusNoShow,
			}}},
		},
	}
	return r.findAll(ctx, filter, options.Find().SetSort(bson.D{{Key: "startDateTime", Value: -1}}))
}

func (r *AppointmentMongoRepository) findAll(ctx context.Context, filter bson.M, findOptions *options.FindOptions) ([]models.Appointment, error) {
	cursor, err := r.Collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	appointments := []models.Appointment{}
	if err := cursor.All(ctx, &appointments); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return appointments, nil
}
