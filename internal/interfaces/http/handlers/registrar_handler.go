package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"signals-hub.backend/internal/domain/entities"
	domainerrors "signals-hub.backend/internal/domain/errors"
	"signals-hub.backend/internal/interfaces/http/middleware"
	"signals-hub.backend/internal/interfaces/http/response"
	"signals-hub.backend/internal/usecases"
)

// RegistrarHandler handles role administration endpoints
type RegistrarHandler struct {
	registrarUsecase *usecases.RegistrarUsecase
}

// NewRegistrarHandler creates a new registrar handler
func NewRegistrarHandler(registrarUsecase *usecases.RegistrarUsecase) *RegistrarHandler {
	return &RegistrarHandler{registrarUsecase: registrarUsecase}
}

type setRoleInput struct {
	Email string `json:"email" binding:"required,email"`
}

// GrantProvider promotes a user to provider
// POST /api/v1/registrar/providers
func (h *RegistrarHandler) GrantProvider(c *gin.Context) {
	h.setRole(c, entities.UserRoleProvider)
}

// GrantRegistrar promotes a user to registrar
// POST /api/v1/registrar/registrars
func (h *RegistrarHandler) GrantRegistrar(c *gin.Context) {
	h.setRole(c, entities.UserRoleRegistrar)
}

// DropRole demotes a user back to plain user
// POST /api/v1/registrar/drop
func (h *RegistrarHandler) DropRole(c *gin.Context) {
	h.setRole(c, entities.UserRoleUser)
}

func (h *RegistrarHandler) setRole(c *gin.Context, role entities.UserRole) {
	var input setRoleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	user, err := h.registrarUsecase.SetRole(c.Request.Context(), middleware.GetPrincipal(c), input.Email, role)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "Role updated",
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
			"role":     user.Role,
		},
	})
}

// ListUsers lists users, optionally filtered by role
// GET /api/v1/registrar/users?role=PROVIDER
func (h *RegistrarHandler) ListUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	principal := middleware.GetPrincipal(c)

	if roleQuery := c.Query("role"); roleQuery != "" {
		users, meta, err := h.registrarUsecase.ListByRole(c.Request.Context(), principal, entities.UserRole(roleQuery), page, limit)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Success(c, http.StatusOK, gin.H{"users": users, "meta": meta})
		return
	}

	users, meta, err := h.registrarUsecase.ListUsers(c.Request.Context(), principal, page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"users": users, "meta": meta})
}
