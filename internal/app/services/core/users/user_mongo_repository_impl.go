package users

import (
	"context"
	"medibook-service/internal/app/contracts"
	"medibook-service/internal/app/models"
	"medibook-service/internal/pkg/constvars"
	"medibook-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type UserMongoRepository struct {
	Collection *mongo.Collection
}

func NewUserMongoRepository(db *mongo.Client, dbName string) contracts.UserRepository {
	return &UserMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionUsers),
	}
}

func (r *UserMongoRepository) CreateUser(ctx context.Context, userModel *models.User) (userID string, err error) {
	result, err := r.Collection.InsertOne(ctx, userModel)
	if err != nil {
		return "", exceptions.ErrMongoDBInsertDocument(err)
	}
	return result.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (r *UserMongoRepository) FindByID(ctx context.Context, userID string) (*models.User, error) {
	objectID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}
	var user models.User
	err = r.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &user, nil
}

func (r *UserMongoRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.Collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &user, nil
}

func (r *UserMongoRepository) FindByEmailExcludingID(ctx context.Context, email, excludeUserID string) (*models.User, error) {
	objectID, err := primitive.ObjectIDFromHex(excludeUserID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}
	var user models.User
	err = r.Collection.FindOne(ctx, bson.M{"email": email, "_id": bson.M{"$ne": objectID}}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &user, nil
}

func (r *UserMongoRepository) FindDoctorByID(ctx context.Context, doctorID string) (*models.User, error) {
	objectID, err := primitive.ObjectIDFromHex(doctorID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}
	var user models.User
	err = r.Collection.FindOne(ctx, bson.M{"_id": objectID, "role": constvars.RoleTypeDoctor}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &user, nil
}

func (r *UserMongoRepository) FindDoctors(ctx context.Context, specialty string) ([]models.User, error) {
	filter := bson.M{"role": constvars.RoleTypeDoctor}
	if specialty != "" {
		filter["specialty"] = bson.M{"$regex": specialty, "$options": "i"}
	}

	opts := options.Find().
		SetProjection(bson.M{"hashedPassword": 0}).
		SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.Collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	var doctors []models.User
	if err := cursor.All(ctx, &doctors); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return doctors, nil
}

func (r *UserMongoRepository) FindDoctorSpecialties(ctx context.Context) ([]string, error) {
	filter := bson.M{"role": constvars.RoleTypeDoctor, "specialty": bson.M{"$nin": bson.A{nil, ""}}}
	values, err := r.Collection.Distinct(ctx, "specialty", filter)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}

	specialties := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			specialties = append(specialties, s)
		}
	}
	return specialties, nil
}

func (r *UserMongoRepository) UpdateUser(ctx context.Context, user *models.User) error {
	update := bson.M{"$set": bson.M{
		"email":          user.Email,
		"name":           user.Name,
		"phone":          user.Phone,
		"dob":            user.DOB,
		"specialty":      user.Specialty,
		"about":          user.About,
		"contact":        user.Contact,
		"additionalInfo": user.AdditionalInfo,
		"updatedAt":      user.UpdatedAt,
	}}

	_, err := r.Collection.UpdateOne(ctx, bson.M{"_id": user.ID}, update, options.Update().SetUpsert(false))
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}
