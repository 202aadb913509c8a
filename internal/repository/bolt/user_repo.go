package bolt

import (
	"context"
	"errors"
	"fmt"

	"stargazer/exercise-tracker/internal/domain"
	"stargazer/exercise-tracker/internal/repository"

	"go.etcd.io/bbolt"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type userRepository struct {
	db *bbolt.DB
}

// Create stores the user under a freshly generated ObjectID.
func (r *userRepository) Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error) {
	if user.Username == "" {
		return primitive.NilObjectID, errors.New("username is required")
	}

	user.ID = primitive.NewObjectID()
	data, err := bson.Marshal(user)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("failed to marshal user: %w", err)
	}

	err = r.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketUsers).Put(user.ID[:], data)
	})
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("failed to save user: %w", err)
	}
	return user.ID, nil
}

func (r *userRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	var user *domain.User
	err := r.db.View(func(tx *bbolt.Tx) error {
		var err error
		user, err = getUser(tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// List returns users in creation order; ObjectID keys sort by their timestamp prefix.
func (r *userRepository) List(ctx context.Context) ([]domain.User, error) {
	users := []domain.User{}
	err := r.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketUsers).ForEach(func(k, v []byte) error {
			var user domain.User
			if err := bson.Unmarshal(v, &user); err != nil {
				return fmt.Errorf("failed to unmarshal user %x: %w", k, err)
			}
			users = append(users, user)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return users, nil
}

func getUser(tx *bbolt.Tx, id primitive.ObjectID) (*domain.User, error) {
	data := tx.Bucket(bucketUsers).Get(id[:])
	if data == nil {
		return nil, repository.ErrNotFound
	}
	user := &domain.User{}
	if err := bson.Unmarshal(data, user); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user: %w", err)
	}
	return user, nil
}
