package middleware

import (
	"errors"
	"net"
	"strings"

	"github.com/gin-gonic/gin"
	identityapp "github.com/pedezap/backend/internal/application/identity"
	"github.com/pedezap/backend/internal/domain/identity"
	"github.com/pedezap/backend/internal/domain/shared"
	"github.com/pedezap/backend/internal/interfaces/http/dto"
)

// TenantKey is the gin context key the resolved tenant is stored under
const TenantKey = "tenant"

// TenantSlugHeader lets clients name the tenant explicitly when neither
// the URL nor the Host header identifies it
const TenantSlugHeader = "X-Tenant-Slug"

// TenantResolver resolves the storefront tenant for the request.
// Resolution order: the :slug route parameter, the X-Tenant-Slug
// header, then the Host header matched against custom domains.
// Inactive tenants are rejected here, before any handler runs.
func TenantResolver(tenants *identityapp.TenantService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tenant, err := resolveTenant(c, tenants)
		if err != nil {
			status := dto.GetHTTPStatus(errorCode(err))
			c.AbortWithStatusJSON(status, dto.NewErrorResponseWithRequestID(
				errorCode(err),
				errorMessage(err),
				GetRequestID(c),
			))
			return
		}

		c.Set(TenantKey, tenant)
		c.Next()
	}
}

func resolveTenant(c *gin.Context, tenants *identityapp.TenantService) (*identity.Tenant, error) {
	if slug := c.Param("slug"); slug != "" {
		return tenants.ResolveBySlug(c.Request.Context(), slug)
	}
	if slug := c.GetHeader(TenantSlugHeader); slug != "" {
		return tenants.ResolveBySlug(c.Request.Context(), slug)
	}

	host := c.Request.Host
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	if host != "" {
		return tenants.ResolveByDomain(c.Request.Context(), strings.ToLower(host))
	}

	return nil, shared.ErrNotFound
}

// GetTenant returns the tenant resolved by TenantResolver. The boolean
// is false when no resolver ran for the route.
func GetTenant(c *gin.Context) (*identity.Tenant, bool) {
	value, ok := c.Get(TenantKey)
	if !ok {
		return nil, false
	}
	tenant, ok := value.(*identity.Tenant)
	return tenant, ok
}

func errorCode(err error) string {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}
	return dto.ErrCodeInternal
}

func errorMessage(err error) string {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Message
	}
	return "An unexpected error occurred"
}
