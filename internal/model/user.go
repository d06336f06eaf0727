package model

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role represents an account's role in the daycare.
type Role string

const (
	RoleParent  Role = "parent"
	RoleTeacher Role = "teacher"
	RoleAdmin   Role = "admin"
)

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleParent, RoleTeacher, RoleAdmin:
		return true
	}
	return false
}

// Address is a user's postal address.
type Address struct {
	Street     string `json:"street" bson:"street"`
	City       string `json:"city" bson:"city"`
	State      string `json:"state" bson:"state"`
	PostalCode string `json:"postal_code" bson:"postal_code"`
}

// User represents an account document in the users collection.
type User struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Email        string             `json:"email" bson:"email"`
	PasswordHash string             `json:"-" bson:"password"`
	FirstName    string             `json:"first_name" bson:"first_name"`
	LastName     string             `json:"last_name" bson:"last_name"`
	PhoneNumber  string             `json:"phone_number,omitempty" bson:"phone_number,omitempty"`
	Address      *Address           `json:"address,omitempty" bson:"address,omitempty"`
	Role         Role               `json:"role" bson:"role"`
	FCMToken     string             `json:"-" bson:"fcm_token,omitempty"`
	Verified     bool               `json:"verified" bson:"verified"`
}

// RegisterRequest is the payload for account registration.
// Admin accounts are never self-registered; see cmd/create-admin.
type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6,max=128"`
	FirstName string `json:"first_name" binding:"required,min=1,max=50"`
	LastName  string `json:"last_name" binding:"required,min=1,max=50"`
	Role      Role   `json:"role" binding:"required,oneof=parent teacher"`
}

// LoginRequest is the payload for authentication.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=1,max=128"`
}

// SetRoleRequest is the admin payload for changing another account's role.
type SetRoleRequest struct {
	TargetEmail string `json:"target_email" binding:"required,email"`
	NewRole     Role   `json:"new_role" binding:"required,oneof=parent teacher admin"`
}

// FCMTokenRequest is the payload for registering a push notification token.
// The length bounds cover the typical FCM token range.
type FCMTokenRequest struct {
	FCMToken string `json:"fcm_token" binding:"required,min=140,max=200"`
}

// SendNotificationRequest is the admin payload for a direct push dispatch.
type SendNotificationRequest struct {
	Token string `json:"token" binding:"required,min=140,max=200"`
	Title string `json:"title" binding:"required,min=1,max=100"`
	Body  string `json:"body" binding:"required"`
}
