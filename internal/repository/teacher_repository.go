package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/kidnest/kidnest-backend/internal/model"
)

// TeacherRepository handles teacher profile data access.
type TeacherRepository struct {
	collection *mongo.Collection
}

// NewTeacherRepository creates a new TeacherRepository.
func NewTeacherRepository(db *mongo.Database) *TeacherRepository {
	return &TeacherRepository{collection: db.Collection("teachers")}
}

// GetByUserID retrieves the teacher profile owned by an account.
func (r *TeacherRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID) (*model.Teacher, error) {
	var teacher model.Teacher
	err := r.collection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&teacher)
	if err != nil {
		return nil, translate(err)
	}
	return &teacher, nil
}
