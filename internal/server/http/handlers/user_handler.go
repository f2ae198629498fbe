package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/electrohub/internal/domain/model"
	"github.com/polkiloo/electrohub/internal/server/http/dto"
)

// UserHandler serves profile endpoints.
type UserHandler struct {
	facade UserFacade
}

// NewUserHandler constructs UserHandler.
func NewUserHandler(facade UserFacade) *UserHandler {
	return &UserHandler{facade: facade}
}

// Add handles POST /addUser.
func (h *UserHandler) Add(c *gin.Context) {
	var req dto.UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.facade.AddUser(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		respondError(c, err, "Error adding user")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "User added successfully", "data": toUserResponse(*user)})
}

// Get handles GET /getUser/:id.
func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.facade.User(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Error fetching user")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User fetched successfully", "data": toUserResponse(*user)})
}

func toUserResponse(u model.User) dto.UserResponse {
	return dto.UserResponse{ID: u.ID, Name: u.Name, Email: u.Email, CreatedAt: u.CreatedAt}
}
