package api

import (
	"errors"
	"io"
	"net/http"

	"stargazer/exercise-tracker/internal/domain"
	"stargazer/exercise-tracker/internal/service"

	"github.com/gin-gonic/gin"
)

// noUsersMessage is sent instead of an empty array when the store has no users.
const noUsersMessage = "no users stored"

// UserHandler holds the user service dependency.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// CreateUserRequest is accepted as JSON or as a url-encoded form.
type CreateUserRequest struct {
	Username string `form:"username" json:"username"`
}

// UserResponse is the DTO for returning user details.
type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// MapUserToResponse converts a domain User to a UserResponse DTO.
func MapUserToResponse(user *domain.User) UserResponse {
	if user == nil {
		return UserResponse{}
	}
	return UserResponse{
		ID:       user.ID.Hex(),
		Username: user.Username,
	}
}

// CreateUser godoc
// @Summary Create a user
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Success 201 {object} UserResponse
// @Failure 400 {string} string "username can't be empty"
// @Router /exercise/new-user [post]
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	// An empty body binds as no fields so validation can name the missing one.
	if err := c.ShouldBind(&req); err != nil && !errors.Is(err, io.EOF) {
		c.String(http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), req.Username)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, MapUserToResponse(user))
}

// ListUsers godoc
// @Summary List all users
// @Produce json,plain
// @Success 200 {array} UserResponse
// @Router /exercise/users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	if len(users) == 0 {
		c.String(http.StatusOK, noUsersMessage)
		return
	}

	responses := make([]UserResponse, len(users))
	for i := range users {
		responses[i] = MapUserToResponse(&users[i])
	}
	c.JSON(http.StatusOK, responses)
}
