package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"stargazer/exercise-tracker/internal/domain"
	"stargazer/exercise-tracker/internal/service"

	"github.com/gin-gonic/gin"
)

// ExerciseHandler holds the exercise service dependency.
type ExerciseHandler struct {
	exerciseService service.ExerciseService
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(exerciseService service.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService}
}

// --- DTOs for API (Data Transfer Objects) ---

// scalar takes a JSON string or number verbatim, so JSON and form bodies validate alike.
type scalar string

func (s *scalar) UnmarshalJSON(b []byte) error {
	var str string
	if err := json.Unmarshal(b, &str); err == nil {
		*s = scalar(str)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(b, &num); err != nil {
		return err
	}
	*s = scalar(num.String())
	return nil
}

// AddExerciseRequest is accepted as JSON or as a url-encoded form.
type AddExerciseRequest struct {
	UserID      *scalar `form:"userId" json:"userId"`
	Description string  `form:"description" json:"description"`
	Duration    scalar  `form:"duration" json:"duration"`
	Date        scalar  `form:"date" json:"date"`
}

// ExerciseResponse is the DTO for a created exercise.
type ExerciseResponse struct {
	ID          string    `json:"id"`
	User        string    `json:"user"`
	Description string    `json:"description"`
	Duration    float64   `json:"duration"`
	Date        time.Time `json:"date"`
}

// LogEntryResponse is an exercise with its user embedded; User is null for a dangling reference.
type LogEntryResponse struct {
	ID          string        `json:"id"`
	User        *UserResponse `json:"user"`
	Description string        `json:"description"`
	Duration    float64       `json:"duration"`
	Date        time.Time     `json:"date"`
}

// MapExerciseToResponse converts a domain.Exercise to ExerciseResponse DTO.
func MapExerciseToResponse(ex *domain.Exercise) ExerciseResponse {
	if ex == nil {
		return ExerciseResponse{}
	}
	return ExerciseResponse{
		ID:          ex.ID.Hex(),
		User:        ex.UserID.Hex(),
		Description: ex.Description,
		Duration:    ex.Duration,
		Date:        ex.Date,
	}
}

// MapLogEntriesToResponse converts log entries to their DTOs.
func MapLogEntriesToResponse(entries []domain.ExerciseLogEntry) []LogEntryResponse {
	responses := make([]LogEntryResponse, len(entries))
	for i, entry := range entries {
		responses[i] = LogEntryResponse{
			ID:          entry.ID.Hex(),
			Description: entry.Description,
			Duration:    entry.Duration,
			Date:        entry.Date,
		}
		if entry.User != nil {
			user := MapUserToResponse(entry.User)
			responses[i].User = &user
		}
	}
	return responses
}

// --- Handler Methods ---

// AddExercise godoc
// @Summary Log an exercise for a user
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Success 201 {object} ExerciseResponse
// @Failure 400 {string} string "Validation error"
// @Failure 404 {string} string "unknown userId"
// @Router /exercise/add [post]
func (h *ExerciseHandler) AddExercise(c *gin.Context) {
	var req AddExerciseRequest
	// An empty body binds as no fields so validation can name the missing one.
	if err := c.ShouldBind(&req); err != nil && !errors.Is(err, io.EOF) {
		c.String(http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	in := service.AddExerciseInput{
		Description: req.Description,
		Duration:    string(req.Duration),
		Date:        string(req.Date),
	}
	if req.UserID != nil {
		userID := string(*req.UserID)
		in.UserID = &userID
	}

	exercise, err := h.exerciseService.AddExercise(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, MapExerciseToResponse(exercise))
}

// GetLog godoc
// @Summary Query a user's exercise log
// @Produce json
// @Param userId query string true "User ID"
// @Param from query string false "Earliest date (inclusive)"
// @Param to query string false "Latest date (inclusive), defaults to now"
// @Param limit query int false "Maximum number of entries"
// @Success 200 {array} LogEntryResponse
// @Failure 400 {string} string "Validation error"
// @Router /exercise/log [get]
func (h *ExerciseHandler) GetLog(c *gin.Context) {
	q := service.LogQuery{
		UserID: optionalQuery(c, "userId"),
		From:   optionalQuery(c, "from"),
		To:     optionalQuery(c, "to"),
		Limit:  optionalQuery(c, "limit"),
	}

	entries, err := h.exerciseService.GetLog(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, MapLogEntriesToResponse(entries))
}

// optionalQuery distinguishes an absent parameter (nil) from an empty one.
func optionalQuery(c *gin.Context, key string) *string {
	value, ok := c.GetQuery(key)
	if !ok {
		return nil
	}
	return &value
}
