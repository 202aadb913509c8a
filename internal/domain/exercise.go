// internal/domain/exercise.go
package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Exercise is a single logged exercise session.
type Exercise struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID `bson:"user" json:"user"` // References User.ID
	Description string             `bson:"description" json:"description"`
	Duration    float64            `bson:"duration" json:"duration"` // Unitless, always > 0
	Date        time.Time          `bson:"date" json:"date"`
}

// ExerciseLogEntry is an Exercise with its user resolved, as returned by the log query.
// User is nil when the referenced user no longer exists.
type ExerciseLogEntry struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	User        *User              `bson:"user" json:"user"`
	Description string             `bson:"description" json:"description"`
	Duration    float64            `bson:"duration" json:"duration"`
	Date        time.Time          `bson:"date" json:"date"`
}
