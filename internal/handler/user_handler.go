package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/eaglebank/user-directory/internal/apperrors"
	"github.com/eaglebank/user-directory/internal/cqrs"
	"github.com/eaglebank/user-directory/internal/middleware"
	"github.com/eaglebank/user-directory/internal/models"
	"github.com/gin-gonic/gin"
)

// UserCommander defines the write-side operations used by UserHandler.
type UserCommander interface {
	CreateUser(context.Context, cqrs.CreateUserCommand) (*models.User, error)
	UpdateUser(context.Context, cqrs.UpdateUserCommand) (*models.User, error)
	DeleteUser(context.Context, cqrs.DeleteUserCommand) error
}

// UserQuerier defines the read-side operations used by UserHandler.
type UserQuerier interface {
	ListUsers(context.Context, cqrs.ListUsersQuery) ([]models.User, error)
	GetUser(context.Context, cqrs.GetUserQuery) (*models.User, error)
}

// UserHandler routes requests to the command or query service as appropriate.
type UserHandler struct {
	commands UserCommander
	queries  UserQuerier
}

type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateUserRequest leaves a field nil when the client omitted it.
type UpdateUserRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

func NewUserHandler(commands UserCommander, queries UserQuerier) *UserHandler {
	return &UserHandler{commands: commands, queries: queries}
}

func (h *UserHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.commands.CreateUser(c.Request.Context(), cqrs.CreateUserCommand{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondWithAppError(c, err, "Failed to create user")
		return
	}

	c.JSON(http.StatusCreated, user)
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.queries.ListUsers(c.Request.Context(), cqrs.ListUsersQuery{})
	if err != nil {
		respondWithAppError(c, err, "Failed to list users")
		return
	}

	c.JSON(http.StatusOK, users)
}

func (h *UserHandler) GetUser(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	user, err := h.queries.GetUser(c.Request.Context(), cqrs.GetUserQuery{UserID: userID})
	if err != nil {
		respondWithAppError(c, err, "Failed to get user")
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) UpdateUser(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.commands.UpdateUser(c.Request.Context(), cqrs.UpdateUserCommand{
		UserID: userID,
		Name:   req.Name,
		Email:  req.Email,
	})
	if err != nil {
		respondWithAppError(c, err, "Failed to update user")
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	if err := h.commands.DeleteUser(c.Request.Context(), cqrs.DeleteUserCommand{UserID: userID}); err != nil {
		respondWithAppError(c, err, "Failed to delete user")
		return
	}

	c.Status(http.StatusOK)
}

func parseUserID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid user id")
		return 0, false
	}
	return id, true
}

// respondWithAppError answers with the status carried by an apperrors.Error.
// Anything else is attached to the context for the request logger and
// reported as a 500 with fallback as the message.
func respondWithAppError(c *gin.Context, err error, fallback string) {
	if appErr, ok := apperrors.As(err); ok {
		middleware.RespondWithError(c, appErr.Status, appErr.Message)
		return
	}
	_ = c.Error(err)
	middleware.RespondWithError(c, http.StatusInternalServerError, fallback)
}
