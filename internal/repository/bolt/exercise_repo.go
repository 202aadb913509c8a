package bolt

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"stargazer/exercise-tracker/internal/domain"
	"stargazer/exercise-tracker/internal/repository"

	"go.etcd.io/bbolt"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type exerciseRepository struct {
	db *bbolt.DB
}

func (r *exerciseRepository) Create(ctx context.Context, exercise *domain.Exercise) (primitive.ObjectID, error) {
	if exercise.Description == "" || exercise.UserID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("exercise description and user ID are required")
	}
	if exercise.Duration <= 0 {
		return primitive.NilObjectID, errors.New("exercise duration must be positive")
	}

	exercise.ID = primitive.NewObjectID()
	data, err := bson.Marshal(exercise)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("failed to marshal exercise: %w", err)
	}

	err = r.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketExercises).Put(exercise.ID[:], data)
	})
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("failed to save exercise: %w", err)
	}
	return exercise.ID, nil
}

// Find scans the exercises bucket; it mirrors the Mongo pipeline's ordering,
// limit and user population.
func (r *exerciseRepository) Find(ctx context.Context, filter repository.ExerciseFilter) ([]domain.ExerciseLogEntry, error) {
	entries := []domain.ExerciseLogEntry{}

	err := r.db.View(func(tx *bbolt.Tx) error {
		var matched []domain.Exercise
		err := tx.Bucket(bucketExercises).ForEach(func(k, v []byte) error {
			var ex domain.Exercise
			if err := bson.Unmarshal(v, &ex); err != nil {
				return fmt.Errorf("failed to unmarshal exercise %x: %w", k, err)
			}
			if matches(ex, filter) {
				matched = append(matched, ex)
			}
			return nil
		})
		if err != nil {
			return err
		}

		sort.SliceStable(matched, func(i, j int) bool {
			if matched[i].Date.Equal(matched[j].Date) {
				return matched[i].ID.Hex() < matched[j].ID.Hex()
			}
			return matched[i].Date.Before(matched[j].Date)
		})
		if filter.Limit > 0 && int64(len(matched)) > filter.Limit {
			matched = matched[:filter.Limit]
		}

		for _, ex := range matched {
			user, err := getUser(tx, ex.UserID)
			if err != nil && !errors.Is(err, repository.ErrNotFound) {
				return err
			}
			entries = append(entries, domain.ExerciseLogEntry{
				ID:          ex.ID,
				User:        user,
				Description: ex.Description,
				Duration:    ex.Duration,
				Date:        ex.Date,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func matches(ex domain.Exercise, filter repository.ExerciseFilter) bool {
	if ex.UserID != filter.UserID {
		return false
	}
	if filter.From != nil && ex.Date.Before(*filter.From) {
		return false
	}
	if filter.To != nil && ex.Date.After(*filter.To) {
		return false
	}
	return true
}
