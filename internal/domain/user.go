package domain

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a person exercises are logged against.
type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username string             `bson:"username" json:"username"`
}
