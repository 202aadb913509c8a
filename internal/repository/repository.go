package repository

import (
	"context"
	"time"

	"stargazer/exercise-tracker/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for repository layer
var (
	ErrNotFound  = RepositoryError("not found")
	ErrInvalidID = RepositoryError("invalid id")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// ExerciseFilter selects exercises for the log query.
// Nil bounds are open; a zero Limit means no cap.
type ExerciseFilter struct {
	UserID primitive.ObjectID
	From   *time.Time // inclusive lower bound on Date
	To     *time.Time // inclusive upper bound on Date
	Limit  int64
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
}

// ExerciseRepository defines the interface for interacting with exercise data.
type ExerciseRepository interface {
	Create(ctx context.Context, exercise *domain.Exercise) (primitive.ObjectID, error)
	// Find returns the matching exercises ordered by date, each with its user populated.
	Find(ctx context.Context, filter ExerciseFilter) ([]domain.ExerciseLogEntry, error)
}

// Store bundles the repositories of one backend with its lifecycle.
type Store interface {
	Users() UserRepository
	Exercises() ExerciseRepository
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// ParseID converts a hex identifier into an ObjectID, mapping failures to ErrInvalidID.
func ParseID(hex string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidID
	}
	return id, nil
}
