package models

import (
	"go.mongodb.org/mongo-driver/v2/bson"
)

// User is the account document stored in the users collection. The password
// hash and the current refresh token never leave the process in JSON form.
type User struct {
	ID        UserID `json:"id" bson:"_id"`
	CreatedAt int64  `json:"createdAt" bson:"created_at"`
	UpdatedAt int64  `json:"updatedAt" bson:"updated_at"`

	Name     string `json:"name" bson:"name"`
	Username string `json:"username" bson:"username"`
	Email    string `json:"email" bson:"email"`

	Password     string `json:"-" bson:"password"`
	RefreshToken string `json:"-" bson:"refresh_token"`
}

// UserID aliases the ObjectID so the driver codecs and JSON marshaling apply
// unchanged.
type UserID = bson.ObjectID

func ParseUserID(id string) (UserID, error) {
	uid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return UserID{}, err
	}

	return uid, nil
}

func NewUserID() UserID {
	return bson.NewObjectID()
}
