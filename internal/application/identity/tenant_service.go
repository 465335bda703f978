package identity

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pedezap/backend/internal/domain/identity"
	"github.com/pedezap/backend/internal/domain/shared"
)

// TenantCache caches resolved tenants keyed by slug or domain. A miss
// returns shared.ErrNotFound; any other error is treated as a cache
// outage and the caller falls through to the repository.
type TenantCache interface {
	Get(ctx context.Context, key string) (*identity.Tenant, error)
	Set(ctx context.Context, key string, tenant *identity.Tenant, ttl time.Duration) error
	Invalidate(ctx context.Context, keys ...string) error
}

// tenantCacheTTL bounds staleness after out-of-band tenant edits
const tenantCacheTTL = 5 * time.Minute

// TenantService handles tenant provisioning and resolution
type TenantService struct {
	tenantRepo identity.TenantRepository
	userRepo   identity.UserRepository
	cache      TenantCache
}

// NewTenantService creates a new TenantService
func NewTenantService(tenantRepo identity.TenantRepository, userRepo identity.UserRepository, cache TenantCache) *TenantService {
	return &TenantService{
		tenantRepo: tenantRepo,
		userRepo:   userRepo,
		cache:      cache,
	}
}

// Create provisions a tenant together with its owner user
func (s *TenantService) Create(ctx context.Context, req CreateTenantRequest) (*TenantResponse, error) {
	exists, err := s.tenantRepo.ExistsBySlug(ctx, strings.ToLower(req.Slug))
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Tenant with this slug already exists")
	}

	tenant, err := identity.NewTenant(req.Slug, req.Name)
	if err != nil {
		return nil, err
	}

	if req.ContactName != "" || req.ContactPhone != "" || req.ContactEmail != "" {
		if err := tenant.Update(req.Name, req.ContactName, req.ContactPhone, req.ContactEmail, ""); err != nil {
			return nil, err
		}
	}

	if err := s.tenantRepo.Save(ctx, tenant); err != nil {
		return nil, err
	}

	owner, err := identity.NewUser(tenant.ID, req.OwnerEmail, req.OwnerName, req.OwnerPass, identity.UserRoleOwner)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, owner); err != nil {
		return nil, err
	}

	resp := ToTenantResponse(tenant)
	return &resp, nil
}

// ResolveBySlug finds an active tenant by its storefront slug, serving
// from cache when possible
func (s *TenantService) ResolveBySlug(ctx context.Context, slug string) (*identity.Tenant, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	if slug == "" {
		return nil, shared.ErrNotFound
	}

	return s.resolve(ctx, "slug:"+slug, func() (*identity.Tenant, error) {
		return s.tenantRepo.FindBySlug(ctx, slug)
	})
}

// ResolveByDomain finds an active tenant by its custom domain
func (s *TenantService) ResolveByDomain(ctx context.Context, domain string) (*identity.Tenant, error) {
	domain = strings.ToLower(strings.TrimSpace(domain))
	if domain == "" {
		return nil, shared.ErrNotFound
	}

	return s.resolve(ctx, "domain:"+domain, func() (*identity.Tenant, error) {
		return s.tenantRepo.FindByDomain(ctx, domain)
	})
}

func (s *TenantService) resolve(ctx context.Context, cacheKey string, lookup func() (*identity.Tenant, error)) (*identity.Tenant, error) {
	if s.cache != nil {
		if tenant, err := s.cache.Get(ctx, cacheKey); err == nil {
			return s.checkActive(tenant)
		}
	}

	tenant, err := lookup()
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.Set(ctx, cacheKey, tenant, tenantCacheTTL)
	}

	return s.checkActive(tenant)
}

func (s *TenantService) checkActive(tenant *identity.Tenant) (*identity.Tenant, error) {
	if !tenant.IsActive() {
		return nil, shared.ErrTenantInactive
	}
	return tenant, nil
}

// Get returns a tenant by ID
func (s *TenantService) Get(ctx context.Context, id uuid.UUID) (*TenantResponse, error) {
	tenant, err := s.tenantRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := ToTenantResponse(tenant)
	return &resp, nil
}

// List returns tenants with pagination
func (s *TenantService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[TenantResponse], error) {
	tenants, err := s.tenantRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.tenantRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]TenantResponse, 0, len(tenants))
	for i := range tenants {
		items = append(items, ToTenantResponse(&tenants[i]))
	}

	result := shared.NewPaginated(items, total, filter.Page, filter.Limit())
	return &result, nil
}

// Update changes a tenant's profile and invalidates its cache entries
func (s *TenantService) Update(ctx context.Context, id uuid.UUID, req UpdateTenantRequest) (*TenantResponse, error) {
	tenant, err := s.tenantRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := tenant.Update(req.Name, req.ContactName, req.ContactPhone, req.ContactEmail, req.Address); err != nil {
		return nil, err
	}

	if err := s.tenantRepo.Save(ctx, tenant); err != nil {
		return nil, err
	}
	s.invalidate(ctx, tenant)

	resp := ToTenantResponse(tenant)
	return &resp, nil
}

// SetDeliveryDefaults updates the tenant-level fee fallback
func (s *TenantService) SetDeliveryDefaults(ctx context.Context, id uuid.UUID, req UpdateDeliveryDefaultsRequest) (*TenantResponse, error) {
	tenant, err := s.tenantRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := tenant.SetDeliveryDefaults(req.DefaultFee, req.DefaultTime); err != nil {
		return nil, err
	}

	if err := s.tenantRepo.Save(ctx, tenant); err != nil {
		return nil, err
	}
	s.invalidate(ctx, tenant)

	resp := ToTenantResponse(tenant)
	return &resp, nil
}

// SetDomain binds a custom domain to the tenant
func (s *TenantService) SetDomain(ctx context.Context, id uuid.UUID, req SetDomainRequest) (*TenantResponse, error) {
	domain := strings.ToLower(strings.TrimSpace(req.Domain))

	existing, err := s.tenantRepo.FindByDomain(ctx, domain)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil && existing.ID != id {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Domain is already bound to another tenant")
	}

	tenant, err := s.tenantRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	oldDomain := tenant.Domain
	if err := tenant.SetDomain(domain); err != nil {
		return nil, err
	}

	if err := s.tenantRepo.Save(ctx, tenant); err != nil {
		return nil, err
	}
	s.invalidate(ctx, tenant)
	if oldDomain != "" && s.cache != nil {
		_ = s.cache.Invalidate(ctx, "domain:"+oldDomain)
	}

	resp := ToTenantResponse(tenant)
	return &resp, nil
}

// ChangeStatus activates, deactivates or suspends a tenant
func (s *TenantService) ChangeStatus(ctx context.Context, id uuid.UUID, status identity.TenantStatus) (*TenantResponse, error) {
	tenant, err := s.tenantRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	switch status {
	case identity.TenantStatusActive:
		tenant.Activate()
	case identity.TenantStatusInactive:
		tenant.Deactivate()
	case identity.TenantStatusSuspended:
		tenant.Suspend()
	default:
		return nil, shared.NewDomainError("INVALID_STATUS", "Unknown tenant status")
	}

	if err := s.tenantRepo.Save(ctx, tenant); err != nil {
		return nil, err
	}
	s.invalidate(ctx, tenant)

	resp := ToTenantResponse(tenant)
	return &resp, nil
}

func (s *TenantService) invalidate(ctx context.Context, tenant *identity.Tenant) {
	if s.cache == nil {
		return
	}
	keys := []string{"slug:" + tenant.Slug}
	if tenant.Domain != "" {
		keys = append(keys, "domain:"+tenant.Domain)
	}
	_ = s.cache.Invalidate(ctx, keys...)
}
