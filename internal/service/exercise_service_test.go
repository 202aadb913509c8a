package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"stargazer/exercise-tracker/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func setupExerciseService(t *testing.T) (ExerciseService, *mockUserRepo, *mockExerciseRepo, primitive.ObjectID) {
	t.Helper()
	users := newMockUserRepo()
	exercises := &mockExerciseRepo{}
	userID, err := users.Create(context.Background(), &domain.User{Username: "runner"})
	require.NoError(t, err)
	svc := NewExerciseService(exercises, users, func() time.Time { return fixedNow })
	return svc, users, exercises, userID
}

func TestExerciseService_AddExerciseWithDate(t *testing.T) {
	svc, _, repo, userID := setupExerciseService(t)

	ex, err := svc.AddExercise(context.Background(), AddExerciseInput{
		UserID:      strPtr(userID.Hex()),
		Description: "push-ups",
		Duration:    "12.5",
		Date:        "2024-03-01",
	})

	require.NoError(t, err)
	assert.False(t, ex.ID.IsZero())
	assert.Equal(t, userID, ex.UserID)
	assert.Equal(t, "push-ups", ex.Description)
	assert.Equal(t, 12.5, ex.Duration)
	assert.True(t, ex.Date.Equal(time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)))
	assert.Len(t, repo.created, 1)
}

func TestExerciseService_AddExerciseDefaultsDateToNow(t *testing.T) {
	svc, _, _, userID := setupExerciseService(t)

	for _, date := range []string{"", "not a date"} {
		ex, err := svc.AddExercise(context.Background(), AddExerciseInput{
			UserID: strPtr(userID.Hex()), Description: "walk", Duration: "30", Date: date,
		})
		require.NoError(t, err)
		assert.True(t, ex.Date.Equal(fixedNow), date)
	}
}

func TestExerciseService_AddExerciseValidation(t *testing.T) {
	svc, _, repo, userID := setupExerciseService(t)
	id := userID.Hex()

	tests := []struct {
		name    string
		in      AddExerciseInput
		field   string
		message string
	}{
		{"missing userId", AddExerciseInput{Description: "x", Duration: "1"}, "userId", "userId can't be empty"},
		{"empty description", AddExerciseInput{UserID: &id, Duration: "1"}, "description", "description can't be empty"},
		{"empty duration", AddExerciseInput{UserID: &id, Description: "x"}, "duration", "duration can't be empty or 0"},
		{"zero duration", AddExerciseInput{UserID: &id, Description: "x", Duration: "0"}, "duration", "duration can't be empty or 0"},
		{"negative duration", AddExerciseInput{UserID: &id, Description: "x", Duration: "-5"}, "duration", "duration can't be empty or 0"},
		{"non-numeric duration", AddExerciseInput{UserID: &id, Description: "x", Duration: "ten"}, "duration", "duration can't be empty or 0"},
		{"NaN duration", AddExerciseInput{UserID: &id, Description: "x", Duration: "NaN"}, "duration", "duration can't be empty or 0"},
		{"malformed userId", AddExerciseInput{UserID: strPtr("123"), Description: "x", Duration: "1"}, "userId", "userId is not a valid id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AddExercise(context.Background(), tt.in)
			requireValidation(t, err, tt.field)
			assert.Equal(t, tt.message, err.Error())
		})
	}
	assert.Empty(t, repo.created)
}

func TestExerciseService_AddExerciseUnknownUser(t *testing.T) {
	svc, _, repo, _ := setupExerciseService(t)

	_, err := svc.AddExercise(context.Background(), AddExerciseInput{
		UserID: strPtr(primitive.NewObjectID().Hex()), Description: "x", Duration: "1",
	})

	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.Empty(t, repo.created)
}

func TestExerciseService_GetLogDoesNotQueryOnInvalidInput(t *testing.T) {
	svc, _, repo, userID := setupExerciseService(t)

	_, err := svc.GetLog(context.Background(), LogQuery{UserID: strPtr(userID.Hex()), Limit: strPtr("0")})

	requireValidation(t, err, "limit")
	assert.Empty(t, repo.findCalls)
}

func TestExerciseService_GetLogPassesFilter(t *testing.T) {
	svc, _, repo, userID := setupExerciseService(t)

	entries, err := svc.GetLog(context.Background(), LogQuery{UserID: strPtr(userID.Hex()), Limit: strPtr("2")})

	require.NoError(t, err)
	assert.NotNil(t, entries)
	require.Len(t, repo.findCalls, 1)
	assert.Equal(t, userID, repo.findCalls[0].UserID)
	assert.Equal(t, int64(2), repo.findCalls[0].Limit)
	assert.True(t, repo.findCalls[0].To.Equal(fixedNow))
}

func TestExerciseService_GetLogPropagatesStoreError(t *testing.T) {
	svc, _, repo, userID := setupExerciseService(t)
	repo.findErr = errors.New("cursor died")

	_, err := svc.GetLog(context.Background(), LogQuery{UserID: strPtr(userID.Hex())})

	assert.EqualError(t, err, "cursor died")
}

func TestExerciseService_DatesKeepMillisecondPrecision(t *testing.T) {
	users := newMockUserRepo()
	userID, err := users.Create(context.Background(), &domain.User{Username: "runner"})
	require.NoError(t, err)
	clock := time.Date(2024, time.June, 15, 10, 30, 0, 987654321, time.UTC)
	svc := NewExerciseService(&mockExerciseRepo{}, users, func() time.Time { return clock })

	defaulted, err := svc.AddExercise(context.Background(), AddExerciseInput{
		UserID: strPtr(userID.Hex()), Description: "walk", Duration: "30",
	})
	require.NoError(t, err)
	assert.Equal(t, 987000000, defaulted.Date.Nanosecond())

	given, err := svc.AddExercise(context.Background(), AddExerciseInput{
		UserID: strPtr(userID.Hex()), Description: "walk", Duration: "30", Date: "2024-01-01T10:00:00.123456789Z",
	})
	require.NoError(t, err)
	assert.Equal(t, 123000000, given.Date.Nanosecond())

	filter, err := BuildLogFilter(LogQuery{UserID: strPtr(userID.Hex())}, clock)
	require.NoError(t, err)
	assert.Equal(t, 987000000, filter.To.Nanosecond())
}
