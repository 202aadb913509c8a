package service

import (
	"context"

	"stargazer/exercise-tracker/internal/domain"
	"stargazer/exercise-tracker/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type mockUserRepo struct {
	users     map[primitive.ObjectID]domain.User
	createErr error
	listErr   error
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: map[primitive.ObjectID]domain.User{}}
}

func (m *mockUserRepo) Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error) {
	if m.createErr != nil {
		return primitive.NilObjectID, m.createErr
	}
	user.ID = primitive.NewObjectID()
	m.users[user.ID] = *user
	return user.ID, nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &user, nil
}

func (m *mockUserRepo) List(ctx context.Context) ([]domain.User, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []domain.User
	for _, u := range m.users {
		out = append(out, u)
	}
	return out, nil
}

type mockExerciseRepo struct {
	created   []domain.Exercise
	findCalls []repository.ExerciseFilter
	entries   []domain.ExerciseLogEntry
	findErr   error
}

func (m *mockExerciseRepo) Create(ctx context.Context, exercise *domain.Exercise) (primitive.ObjectID, error) {
	exercise.ID = primitive.NewObjectID()
	m.created = append(m.created, *exercise)
	return exercise.ID, nil
}

func (m *mockExerciseRepo) Find(ctx context.Context, filter repository.ExerciseFilter) ([]domain.ExerciseLogEntry, error) {
	m.findCalls = append(m.findCalls, filter)
	return m.entries, m.findErr
}
