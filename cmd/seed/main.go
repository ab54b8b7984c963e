package main

import (
	"context"
	"flag"
	"log"
	"medibook-service/internal/app/config"
	"medibook-service/internal/app/drivers/database"
	"medibook-service/internal/app/models"
	"medibook-service/internal/pkg/constvars"
	"medibook-service/internal/pkg/utils"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var specialties = []string{
	"Cardiology",
	"Dermatology",
	"Family Medicine",
	"Neurology",
	"Pediatrics",
}

// Seeds the database with doctors, weekly availability templates, and
// patients for local development. Every account gets the same password.
func main() {
	doctorCount := flag.Int("doctors", 5, "number of doctors to create")
	patientCount := flag.Int("patients", 10, "number of patients to create")
	password := flag.String("password", "password123", "password for every seeded account")
	flag.Parse()

	driverConfig := config.NewDriverConfig()
	client := database.NewMongoDB(driverConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := client.Database(driverConfig.MongoDB.DbName)
	usersCollection := db.Collection(constvars.MongoCollectionUsers)
	availabilityCollection := db.Collection(constvars.MongoCollectionAvailability)

	hashed, err := utils.HashPassword(*password)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	now := time.Now()

	for i := 0; i < *doctorCount; i++ {
		doctor := models.User{
			Email:          gofakeit.Email(),
			HashedPassword: hashed,
			Role:           constvars.RoleTypeDoctor,
			Name:           "Dr. " + gofakeit.Name(),
			Phone:          gofakeit.Phone(),
			Specialty:      specialties[i%len(specialties)],
			TimeModel:      models.TimeModel{CreatedAt: now, UpdatedAt: now},
		}
		result, err := usersCollection.InsertOne(ctx, doctor)
		if err != nil {
			log.Fatalf("Failed to insert doctor: %v", err)
		}

		doctorID := result.InsertedID.(primitive.ObjectID).Hex()
		template := weekdayTemplate()
		_, err = availabilityCollection.InsertOne(ctx, models.WeeklyAvailability{
			DoctorID:     doctorID,
			Availability: template,
			TimeModel:    models.TimeModel{CreatedAt: now, UpdatedAt: now},
		})
		if err != nil {
			log.Fatalf("Failed to insert availability: %v", err)
		}
		log.Printf("Seeded doctor %s (%s)", doctor.Name, doctor.Specialty)
	}

	for i := 0; i < *patientCount; i++ {
		patient := models.User{
			Email:          gofakeit.Email(),
			HashedPassword: hashed,
			Role:           constvars.RoleTypePatient,
			Name:           gofakeit.Name(),
			Phone:          gofakeit.Phone(),
			DOB:            gofakeit.DateRange(time.Date(1950, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2005, 12, 31, 0, 0, 0, 0, time.UTC)).Format(constvars.DateFormatYYYYMMDD),
			TimeModel:      models.TimeModel{CreatedAt: now, UpdatedAt: now},
		}
		if _, err := usersCollection.InsertOne(ctx, patient); err != nil {
			log.Fatalf("Failed to insert patient: %v", err)
		}
	}

	log.Printf("Seeded %d doctors and %d patients", *doctorCount, *patientCount)
}

// weekdayTemplate builds a plausible working week: weekday mornings and
// afternoons, nothing on weekends.
func weekdayTemplate() map[string][]string {
	template := map[string][]string{}
	for _, weekday := range constvars.WeekdayKeys {
		template[weekday] = []string{}
	}

	workingHours := []string{}
	for _, hour := range []string{"09", "10", "11", "14", "15", "16"} {
		workingHours = append(workingHours, hour+":00", hour+":30")
	}
	for _, weekday := range []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"} {
		if gofakeit.Bool() {
			template[weekday] = workingHours
		} else {
			template[weekday] = workingHours[:len(workingHours)/2]
		}
	}
	return template
}
