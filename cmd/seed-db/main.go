package main

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/kidnest/kidnest-backend/internal/config"
	"github.com/kidnest/kidnest-backend/internal/database"
	"github.com/kidnest/kidnest-backend/internal/logger"
	"github.com/kidnest/kidnest-backend/internal/model"
)

// Seeds the database with demo data: three classrooms (Groups A-C),
// parents with children, teachers, and upcoming events. Drops the
// existing collections first.
func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db, err := database.NewMongoDatabase(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer func() {
		_ = database.Disconnect(context.Background(), db)
	}()

	for _, name := range []string{"users", "parents", "teachers", "children", "classrooms", "events"} {
		if err := db.Collection(name).Drop(ctx); err != nil {
			log.Fatal().Err(err).Str("collection", name).Msg("Failed to drop collection")
		}
	}

	fmt.Println("=== Seeding Demo Data ===")

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), cfg.BcryptCost)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to hash demo password")
	}

	classrooms := []string{"Group A", "Group B", "Group C"}

	// Teachers: one account + profile per classroom.
	for i, classroom := range classrooms {
		teacherUser := model.User{
			ID:           primitive.NewObjectID(),
			Email:        fmt.Sprintf("teacher%d@kidnest.example", i+1),
			PasswordHash: string(hash),
			FirstName:    "Teacher",
			LastName:     fmt.Sprintf("%d", i+1),
			Role:         model.RoleTeacher,
			Verified:     true,
		}
		if _, err := db.Collection("users").InsertOne(ctx, teacherUser); err != nil {
			log.Fatal().Err(err).Msg("Failed to insert teacher user")
		}

		teacher := model.Teacher{
			ID:                 primitive.NewObjectID(),
			UserID:             teacherUser.ID,
			AssignedClassrooms: []string{classroom},
			Qualifications:     []string{"Bachelor's in Early Childhood Education", "First Aid Certification"},
			EmploymentDate:     "2021-08-16",
		}
		if _, err := db.Collection("teachers").InsertOne(ctx, teacher); err != nil {
			log.Fatal().Err(err).Msg("Failed to insert teacher profile")
		}

		classroomDoc := model.Classroom{
			ID:       primitive.NewObjectID(),
			Name:     classroom,
			Teacher:  teacher.ID,
			Students: []primitive.ObjectID{},
		}
		if _, err := db.Collection("classrooms").InsertOne(ctx, classroomDoc); err != nil {
			log.Fatal().Err(err).Msg("Failed to insert classroom")
		}
	}

	// Parents with two children each, spread over the classrooms.
	relations := []string{"Mother", "Father"}
	for i := 0; i < 4; i++ {
		parentUser := model.User{
			ID:           primitive.NewObjectID(),
			Email:        fmt.Sprintf("parent%d@kidnest.example", i+1),
			PasswordHash: string(hash),
			FirstName:    "Parent",
			LastName:     fmt.Sprintf("%d", i+1),
			Role:         model.RoleParent,
			Verified:     true,
		}
		if _, err := db.Collection("users").InsertOne(ctx, parentUser); err != nil {
			log.Fatal().Err(err).Msg("Failed to insert parent user")
		}

		parent := model.Parent{
			ID:              primitive.NewObjectID(),
			UserID:          parentUser.ID,
			RelationToChild: relations[i%len(relations)],
			Children:        []primitive.ObjectID{},
		}

		for j := 0; j < 2; j++ {
			child := model.Child{
				ID:             primitive.NewObjectID(),
				FirstName:      fmt.Sprintf("Child%d", i*2+j+1),
				LastName:       fmt.Sprintf("%d", i+1),
				DateOfBirth:    "2021-03-11",
				Gender:         []string{"Male", "Female"}[rand.Intn(2)],
				EnrollmentDate: "2024-09-02",
				Classroom:      classrooms[rand.Intn(len(classrooms))],
				MedicalInfo:    model.MedicalInfo{SpecialNeeds: "None"},
				Parents:        []primitive.ObjectID{parent.ID},
				EventFeedback:  []primitive.ObjectID{},
			}
			if _, err := db.Collection("children").InsertOne(ctx, child); err != nil {
				log.Fatal().Err(err).Msg("Failed to insert child")
			}
			if _, err := db.Collection("classrooms").UpdateOne(ctx,
				bson.M{"name": child.Classroom},
				bson.M{"$push": bson.M{"students": child.ID}},
			); err != nil {
				log.Fatal().Err(err).Msg("Failed to enroll child in classroom")
			}
			parent.Children = append(parent.Children, child.ID)
		}

		if _, err := db.Collection("parents").InsertOne(ctx, parent); err != nil {
			log.Fatal().Err(err).Msg("Failed to insert parent profile")
		}
	}

	// Upcoming events, a mix of closures and limited-attendance days.
	for i := 0; i < 6; i++ {
		eventType := model.EventTypeClosed
		maxChildren := 0
		if i%2 == 0 {
			eventType = model.EventTypeLimited
			maxChildren = 5 + rand.Intn(15)
		}

		event := model.Event{
			ID:                  primitive.NewObjectID(),
			Classroom:           classrooms[rand.Intn(len(classrooms))],
			Date:                time.Now().AddDate(0, 0, 1+rand.Intn(30)).Truncate(24 * time.Hour),
			EventType:           eventType,
			MaxChildrenAllowed:  maxChildren,
			ChildrenStayingHome: []primitive.ObjectID{},
		}
		if _, err := db.Collection("events").InsertOne(ctx, event); err != nil {
			log.Fatal().Err(err).Msg("Failed to insert event")
		}
	}

	fmt.Println("Database seeding completed successfully.")
	fmt.Println("Demo accounts use password: password123")
}
