package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/loyalty-admin/internal/application/service"
	"github.com/sangkips/loyalty-admin/internal/domain/entity"
)

// UserHandler handles loyalty member HTTP requests
type UserHandler struct {
	*CatalogHandler[entity.User]
	userService *service.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{
		CatalogHandler: NewCatalogHandler(userService.Catalog, "User"),
		userService:    userService,
	}
}

// Create handles creating a member
func (h *UserHandler) Create(c *gin.Context) {
	create(c, "User", h.userService.CreateUser)
}

// Update handles updating a member
func (h *UserHandler) Update(c *gin.Context) {
	update(c, "User", h.userService.UpdateUser)
}
