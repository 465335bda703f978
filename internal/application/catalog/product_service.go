package catalog

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/pedezap/backend/internal/domain/catalog"
	"github.com/pedezap/backend/internal/domain/shared"
)

// ImageStorage stores product images in object storage and serves
// presigned or public URLs for them
type ImageStorage interface {
	Put(ctx context.Context, key string, contentType string, body io.Reader, size int64) error
	URL(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}

// ProductService handles product-related business operations
type ProductService struct {
	productRepo  catalog.ProductRepository
	categoryRepo catalog.CategoryRepository
	unitRepo     catalog.UnitOfMeasureRepository
	images       ImageStorage
}

// NewProductService creates a new ProductService
func NewProductService(
	productRepo catalog.ProductRepository,
	categoryRepo catalog.CategoryRepository,
	unitRepo catalog.UnitOfMeasureRepository,
	images ImageStorage,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		unitRepo:     unitRepo,
		images:       images,
	}
}

// Create creates a new product
func (s *ProductService) Create(ctx context.Context, tenantID uuid.UUID, req CreateProductRequest) (*ProductResponse, error) {
	exists, err := s.productRepo.ExistsByCode(ctx, tenantID, strings.ToUpper(req.Code))
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Product with this code already exists")
	}

	if req.CategoryID != nil {
		if _, err := s.categoryRepo.FindByIDForTenant(ctx, tenantID, *req.CategoryID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INVALID_CATEGORY", "Category not found")
			}
			return nil, err
		}
	}
	if req.UnitID != nil {
		if _, err := s.unitRepo.FindByIDForTenant(ctx, tenantID, *req.UnitID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INVALID_UNIT", "Unit of measure not found")
			}
			return nil, err
		}
	}

	product, err := catalog.NewProduct(tenantID, req.Code, req.Name, req.Price)
	if err != nil {
		return nil, err
	}

	if req.Description != "" {
		if err := product.Update(req.Name, req.Description); err != nil {
			return nil, err
		}
	}
	product.SetCategory(req.CategoryID)
	product.SetUnit(req.UnitID)
	if req.SortOrder != nil {
		product.SetSortOrder(*req.SortOrder)
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	return s.respond(ctx, product)
}

// Get returns a single product
func (s *ProductService) Get(ctx context.Context, tenantID, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	return s.respond(ctx, product)
}

// List returns products with pagination
func (s *ProductService) List(ctx context.Context, tenantID uuid.UUID, filter ProductListFilter) (*shared.Paginated[ProductResponse], error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
		domainFilter.OrderDir = filter.OrderDir
	}
	domainFilter.Search = filter.Search
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}

	var (
		products []catalog.Product
		err      error
	)
	if filter.CategoryID != nil {
		products, err = s.productRepo.FindByCategory(ctx, tenantID, *filter.CategoryID, domainFilter)
	} else {
		products, err = s.productRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	}
	if err != nil {
		return nil, err
	}

	total, err := s.productRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, err
	}

	items := make([]ProductResponse, 0, len(products))
	for i := range products {
		resp, err := s.respond(ctx, &products[i])
		if err != nil {
			return nil, err
		}
		items = append(items, *resp)
	}

	result := shared.NewPaginated(items, total, domainFilter.Page, domainFilter.Limit())
	return &result, nil
}

// Update changes a product's attributes
func (s *ProductService) Update(ctx context.Context, tenantID, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	name := product.Name
	if req.Name != nil {
		name = *req.Name
	}
	description := product.Description
	if req.Description != nil {
		description = *req.Description
	}
	if err := product.Update(name, description); err != nil {
		return nil, err
	}

	if req.Price != nil {
		if err := product.SetPrice(*req.Price); err != nil {
			return nil, err
		}
	}
	if req.CategoryID != nil {
		if _, err := s.categoryRepo.FindByIDForTenant(ctx, tenantID, *req.CategoryID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INVALID_CATEGORY", "Category not found")
			}
			return nil, err
		}
		product.SetCategory(req.CategoryID)
	}
	if req.UnitID != nil {
		product.SetUnit(req.UnitID)
	}
	if req.SortOrder != nil {
		product.SetSortOrder(*req.SortOrder)
	}

	if err := s.productRepo.SaveWithLock(ctx, product); err != nil {
		return nil, err
	}

	return s.respond(ctx, product)
}

// Toggle flips a product between active and inactive
func (s *ProductService) Toggle(ctx context.Context, tenantID, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if product.IsActive() {
		product.Deactivate()
	} else {
		product.Activate()
	}

	if err := s.productRepo.SaveWithLock(ctx, product); err != nil {
		return nil, err
	}

	return s.respond(ctx, product)
}

// Delete removes a product
func (s *ProductService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	product, err := s.productRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return err
	}

	if product.ImagePath != "" && s.images != nil {
		_ = s.images.Delete(ctx, product.ImagePath)
	}

	return s.productRepo.Delete(ctx, tenantID, id)
}

// LinkIngredient ties the product to an ingredient for stock cascade
func (s *ProductService) LinkIngredient(ctx context.Context, tenantID, id uuid.UUID, req LinkIngredientRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if err := product.LinkIngredient(req.IngredientID, req.Ratio, req.AutoDeduct); err != nil {
		return nil, err
	}

	if err := s.productRepo.SaveWithLock(ctx, product); err != nil {
		return nil, err
	}

	return s.respond(ctx, product)
}

// UnlinkIngredient removes the ingredient link
func (s *ProductService) UnlinkIngredient(ctx context.Context, tenantID, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	product.UnlinkIngredient()

	if err := s.productRepo.SaveWithLock(ctx, product); err != nil {
		return nil, err
	}

	return s.respond(ctx, product)
}

// UploadImage stores the product image and records its storage key
func (s *ProductService) UploadImage(ctx context.Context, tenantID, id uuid.UUID, filename, contentType string, body io.Reader, size int64) (*ProductResponse, error) {
	if s.images == nil {
		return nil, shared.NewDomainError("STORAGE_UNAVAILABLE", "Image storage is not configured")
	}

	product, err := s.productRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	ext := strings.ToLower(path.Ext(filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp":
	default:
		return nil, shared.NewDomainError("INVALID_IMAGE", "Image must be jpg, png or webp")
	}

	key := "tenants/" + tenantID.String() + "/products/" + id.String() + ext
	if err := s.images.Put(ctx, key, contentType, body, size); err != nil {
		return nil, err
	}

	old := product.ImagePath
	product.SetImagePath(key)
	if err := s.productRepo.SaveWithLock(ctx, product); err != nil {
		return nil, err
	}
	if old != "" && old != key {
		_ = s.images.Delete(ctx, old)
	}

	return s.respond(ctx, product)
}

func (s *ProductService) respond(ctx context.Context, product *catalog.Product) (*ProductResponse, error) {
	imageURL := ""
	if product.ImagePath != "" && s.images != nil {
		url, err := s.images.URL(ctx, product.ImagePath)
		if err == nil {
			imageURL = url
		}
	}
	resp := ToProductResponse(product, imageURL)
	return &resp, nil
}
