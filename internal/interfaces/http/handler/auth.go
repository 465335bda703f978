package handler

import (
	"github.com/gin-gonic/gin"
	identityapp "github.com/pedezap/backend/internal/application/identity"
	"github.com/pedezap/backend/internal/interfaces/http/middleware"
)

// AuthHandler handles back-office authentication and user management
type AuthHandler struct {
	BaseHandler
	auth *identityapp.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(auth *identityapp.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Login verifies credentials and issues an access token. The tenant is
// resolved by the TenantResolver middleware, so staff of one restaurant
// cannot log into another.
func (h *AuthHandler) Login(c *gin.Context) {
	tenant, ok := middleware.GetTenant(c)
	if !ok {
		h.BadRequest(c, "Tenant not resolved")
		return
	}

	var req identityapp.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	resp, err := h.auth.Login(c.Request.Context(), tenant.ID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// CreateUser adds a back-office user to the caller's tenant
func (h *AuthHandler) CreateUser(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Missing tenant context")
		return
	}

	var req identityapp.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	user, err := h.auth.CreateUser(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, user)
}

// ListUsers returns the tenant's back-office users
func (h *AuthHandler) ListUsers(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Missing tenant context")
		return
	}

	filter, err := listFilter(c)
	if err != nil {
		h.ValidationError(c, err)
		return
	}

	users, err := h.auth.ListUsers(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, users)
}

// ToggleUser flips a user between active and inactive
func (h *AuthHandler) ToggleUser(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Missing tenant context")
		return
	}

	userID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	user, err := h.auth.ToggleUser(c.Request.Context(), tenantID, userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, user)
}
