package service

import (
	"strconv"
	"time"

	"stargazer/exercise-tracker/internal/repository"
)

// LogQuery holds the raw log query parameters; a nil field was not supplied.
type LogQuery struct {
	UserID *string
	From   *string
	To     *string
	Limit  *string
}

// BuildLogFilter turns a LogQuery into a store filter.
// It stops at the first invalid parameter. Without "to" the upper bound is now.
// Dates are kept to millisecond precision, like the stored ones.
func BuildLogFilter(q LogQuery, now time.Time) (repository.ExerciseFilter, error) {
	var filter repository.ExerciseFilter

	if q.UserID == nil || *q.UserID == "" {
		return filter, invalid("userId", "userId can't be empty")
	}
	userID, err := repository.ParseID(*q.UserID)
	if err != nil {
		return filter, invalid("userId", "userId is not a valid id")
	}
	filter.UserID = userID

	if q.From != nil {
		from, ok := ParseDate(*q.From)
		if !ok {
			return filter, invalid("from", "should be from a valid date")
		}
		filter.From = &from
	}

	if q.To != nil {
		to, ok := ParseDate(*q.To)
		if !ok {
			return filter, invalid("to", "should be until a valid date")
		}
		filter.To = &to
	} else {
		to := storedTime(now)
		filter.To = &to
	}

	if q.Limit != nil {
		limit, err := strconv.ParseInt(*q.Limit, 10, 64)
		if err != nil || limit <= 0 {
			return filter, invalid("limit", "limit should be a valid and positive integer")
		}
		filter.Limit = limit
	}

	return filter, nil
}
