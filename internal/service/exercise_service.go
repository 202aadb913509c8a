package service

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"stargazer/exercise-tracker/internal/domain"
	"stargazer/exercise-tracker/internal/metrics"
	"stargazer/exercise-tracker/internal/repository"
)

// AddExerciseInput carries the add-exercise fields as the client sent them.
type AddExerciseInput struct {
	UserID      *string // nil when the field was absent
	Description string
	Duration    string
	Date        string // optional
}

// --- Service Interface ---
type ExerciseService interface {
	AddExercise(ctx context.Context, in AddExerciseInput) (*domain.Exercise, error)
	GetLog(ctx context.Context, q LogQuery) ([]domain.ExerciseLogEntry, error)
}

// exerciseService implements the ExerciseService interface.
type exerciseService struct {
	exerciseRepo repository.ExerciseRepository
	userRepo     repository.UserRepository
	now          func() time.Time
}

// NewExerciseService creates a new instance of exerciseService.
// A nil clock defaults to time.Now.
func NewExerciseService(exerciseRepo repository.ExerciseRepository, userRepo repository.UserRepository, clock func() time.Time) ExerciseService {
	if clock == nil {
		clock = time.Now
	}
	return &exerciseService{
		exerciseRepo: exerciseRepo,
		userRepo:     userRepo,
		now:          clock,
	}
}

// AddExercise validates the input, checks the user exists and stores the exercise.
// A missing or unparseable date falls back to the current time.
func (s *exerciseService) AddExercise(ctx context.Context, in AddExerciseInput) (*domain.Exercise, error) {
	if in.UserID == nil || *in.UserID == "" {
		return nil, invalid("userId", "userId can't be empty")
	}
	if in.Description == "" {
		return nil, invalid("description", "description can't be empty")
	}
	duration, ok := parseDuration(in.Duration)
	if !ok {
		return nil, invalid("duration", "duration can't be empty or 0")
	}

	userID, err := repository.ParseID(*in.UserID)
	if err != nil {
		return nil, invalid("userId", "userId is not a valid id")
	}
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	date, ok := ParseDate(in.Date)
	if !ok {
		date = storedTime(s.now())
	}

	exercise := &domain.Exercise{
		UserID:      userID,
		Description: in.Description,
		Duration:    duration,
		Date:        date,
	}
	exerciseID, err := s.exerciseRepo.Create(ctx, exercise)
	if err != nil {
		return nil, err
	}
	exercise.ID = exerciseID

	metrics.ObserveRecordCreated("exercise")
	return exercise, nil
}

// GetLog builds the filter and, only if every parameter is valid, queries the store.
func (s *exerciseService) GetLog(ctx context.Context, q LogQuery) ([]domain.ExerciseLogEntry, error) {
	filter, err := BuildLogFilter(q, s.now())
	if err != nil {
		return nil, err
	}
	entries, err := s.exerciseRepo.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []domain.ExerciseLogEntry{}
	}
	return entries, nil
}

func parseDuration(raw string) (float64, bool) {
	d, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(d) || math.IsInf(d, 0) || d <= 0 {
		return 0, false
	}
	return d, true
}
