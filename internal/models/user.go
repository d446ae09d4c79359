package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username    string             `bson:"username" json:"username" validate:"required,min=3,max=30"`
	DisplayName string             `bson:"display_name" json:"display_name" validate:"max=50"`
	Email       string             `bson:"email" json:"email" validate:"required,email"`
	Avatar      string             `bson:"avatar" json:"avatar"`
	Bio         string             `bson:"bio" json:"bio" validate:"max=500"`
	IsActive    bool               `bson:"is_active" json:"is_active"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

// DisplayInfo is the subset of user fields snapshotted onto comments and
// used to build notification text.
type DisplayInfo struct {
	Name   string `bson:"name" json:"name"`
	Avatar string `bson:"avatar" json:"avatar"`
}

// Display returns the user's display info, falling back to the username
// when no display name is set.
func (u *User) Display() DisplayInfo {
	name := u.DisplayName
	if name == "" {
		name = u.Username
	}
	return DisplayInfo{Name: name, Avatar: u.Avatar}
}
