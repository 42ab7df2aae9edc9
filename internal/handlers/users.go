package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"userhub/internal/repository"
	"userhub/internal/service"
)

// UserHandler translates between the HTTP surface and the user service.
// It owns request parsing, payload validation and the mapping of domain
// errors onto status codes, nothing else.
type UserHandler struct {
	svc *service.UserService
}

// NewUserHandler creates a UserHandler over the given service.
func NewUserHandler(svc *service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// Register mounts all user routes on the given group.
func (h *UserHandler) Register(api *gin.RouterGroup) {
	users := api.Group("/users")
	users.GET("", h.GetUsers)
	users.POST("", h.CreateUser)
	users.GET("/search", h.SearchUsers)
	users.GET("/upcoming-birthdays", h.UpcomingBirthdays)
	users.GET("/:id", h.GetUser)
	users.PATCH("/:id", h.UpdateUser)
	users.DELETE("/:id", h.DeleteUser)
}

// GetUsers handles GET /api/users.
func (h *UserHandler) GetUsers(c *gin.Context) {
	users, err := h.svc.GetUsers(c.Request.Context())
	if err != nil {
		serverError(c, "Error retrieving users", err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// CreateUser handles POST /api/users.
func (h *UserHandler) CreateUser(c *gin.Context) {
	input, ok := h.bindUserInput(c)
	if !ok {
		return
	}

	user, err := h.svc.CreateUser(c.Request.Context(), input)
	if err != nil {
		if errors.Is(err, service.ErrDuplicateEmail) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email already exists"})
			return
		}
		serverError(c, "Error creating user", err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

// GetUser handles GET /api/users/:id.
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := parseUserID(c)
	if !ok {
		return
	}

	user, err := h.svc.GetUser(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		serverError(c, "Error retrieving user", err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateUser handles PATCH /api/users/:id. The payload replaces all
// mutable fields of the record.
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := parseUserID(c)
	if !ok {
		return
	}
	input, ok := h.bindUserInput(c)
	if !ok {
		return
	}

	user, err := h.svc.UpdateUser(c.Request.Context(), id, input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		case errors.Is(err, service.ErrDuplicateEmail):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email already exists"})
		default:
			serverError(c, "Error updating user", err)
		}
		return
	}
	c.JSON(http.StatusOK, user)
}

// DeleteUser handles DELETE /api/users/:id.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := parseUserID(c)
	if !ok {
		return
	}

	if err := h.svc.DeleteUser(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		serverError(c, "Error deleting user", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SearchUsers handles GET /api/users/search. Each provided query
// parameter is a case-insensitive substring filter; omitted parameters
// are ignored.
func (h *UserHandler) SearchUsers(c *gin.Context) {
	params := repository.SearchParams{
		Name:    strings.TrimSpace(c.Query("name")),
		Surname: strings.TrimSpace(c.Query("surname")),
		Email:   strings.TrimSpace(c.Query("email")),
	}

	users, err := h.svc.SearchUsers(c.Request.Context(), params)
	if err != nil {
		serverError(c, "Error searching users", err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// UpcomingBirthdays handles GET /api/users/upcoming-birthdays.
func (h *UserHandler) UpcomingBirthdays(c *gin.Context) {
	users, err := h.svc.UpcomingBirthdays(c.Request.Context())
	if err != nil {
		serverError(c, "Error retrieving upcoming birthdays", err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func parseUserID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(c.Param("id")), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return 0, false
	}
	return id, true
}

func serverError(c *gin.Context, message string, err error) {
	log.Printf("%s %s: %v", c.Request.Method, c.FullPath(), err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": message})
}
