package domain

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// User is the local record of an identity-provider subject. ClerkID holds
// the provider's subject id and is unique.
type User struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	ClerkID   string             `json:"clerkId" bson:"clerkId"`
	FullName  string             `json:"fullName" bson:"fullName"`
	ImageURL  string             `json:"imageUrl" bson:"imageUrl"`
	Role      Role               `json:"role" bson:"role"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"-" bson:"updatedAt"`
}

// Identity is what a verified identity assertion tells us about a subject.
type Identity struct {
	Subject   string
	Email     string
	FirstName string
	LastName  string
	Name      string
	Picture   string
}

// FullName joins first and last name, falling back to the display name.
func (i Identity) FullName() string {
	if full := strings.TrimSpace(i.FirstName + " " + i.LastName); full != "" {
		return full
	}
	return strings.TrimSpace(i.Name)
}

// Authorize is the role guard applied by admin-only routes. A nil user
// never passes.
func Authorize(user *User, required Role) error {
	if user == nil {
		return ErrAdminRequired
	}
	if required == RoleAdmin && user.Role != RoleAdmin {
		return ErrAdminRequired
	}
	return nil
}

// RoleFor picks the role of a new user from the admin allow-list.
func RoleFor(email string, adminEmails []string) Role {
	email = strings.TrimSpace(email)
	if email == "" {
		return RoleUser
	}
	for _, admin := range adminEmails {
		if strings.EqualFold(strings.TrimSpace(admin), email) {
			return RoleAdmin
		}
	}
	return RoleUser
}

// UserRepository defines the contract for user data access.
type UserRepository interface {
	// Create returns ErrUserExists when the subject is already stored.
	Create(ctx context.Context, user *User) error
	FindByClerkID(ctx context.Context, clerkID string) (*User, error)
	ListExcept(ctx context.Context, clerkID string) ([]User, error)
}
