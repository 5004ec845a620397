// internal/services/product_service.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/safariverse/safarimart-backend/internal/ledger"
	"github.com/safariverse/safarimart-backend/internal/models"
	"github.com/safariverse/safarimart-backend/internal/utils"
)

// ProductService is the product registry: it owns listing identity, pricing,
// and the active flag. Products are never deleted, only deactivated.
type ProductService struct {
	db             *gorm.DB
	journalService *JournalService
}

type ListProductRequest struct {
	FileURL     string   `json:"file_url" validate:"omitempty,url"`
	Title       string   `json:"title" validate:"required,min=1,max=255"`
	Description string   `json:"description,omitempty"`
	Category    string   `json:"category,omitempty" validate:"omitempty,max=100"`
	Tags        []string `json:"tags,omitempty"`
	Price       int64    `json:"price"`
}

// UpdateProductRequest uses pointers so an omitted field keeps its stored
// value while a present zero value is still applied (read-modify-write).
type UpdateProductRequest struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description,omitempty"`
	Price       *int64  `json:"price,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

type ProductSearchParams struct {
	utils.PaginationParams
	CreatorID     *uuid.UUID
	IncludeHidden bool
}

func NewProductService(db *gorm.DB, journalService *JournalService) *ProductService {
	return &ProductService{
		db:             db,
		journalService: journalService,
	}
}

func (s *ProductService) ListProduct(creatorID uuid.UUID, req *ListProductRequest) (*models.Product, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if req.Price <= 0 {
		return nil, ledger.ErrInvalidPrice
	}

	// Verify creator exists and is active
	var creator models.User
	if err := s.db.First(&creator, "id = ?", creatorID).Error; err != nil {
		return nil, fmt.Errorf("creator not found: %w", err)
	}
	if creator.Status != models.UserStatusActive {
		return nil, errors.New("creator account is not active")
	}

	product := &models.Product{
		CreatorID:   creatorID,
		FileURL:     req.FileURL,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Tags:        req.Tags,
		Price:       req.Price,
		IsActive:    true,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(product).Error; err != nil {
			return fmt.Errorf("failed to create product: %w", err)
		}

		_, err := s.journalService.Record(tx, models.JournalEventProductListed, creatorID, &product.ID, nil, models.JSONB{
			"product_id": product.ID,
			"title":      product.Title,
			"category":   product.Category,
			"price":      product.Price,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	return product, nil
}

func (s *ProductService) GetProduct(id int64) (*models.Product, error) {
	var product models.Product
	if err := s.db.Preload("Creator").First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ledger.ErrNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &product, nil
}

func (s *ProductService) UpdateProduct(id int64, callerID uuid.UUID, req *UpdateProductRequest) (*models.Product, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if req.Price != nil && *req.Price <= 0 {
		return nil, ledger.ErrInvalidPrice
	}

	var product models.Product
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&product, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ledger.ErrNotFound
			}
			return fmt.Errorf("database error: %w", err)
		}

		if product.CreatorID != callerID {
			return ledger.ErrUnauthorized
		}

		// Read-modify-write against stored state
		updates := make(map[string]interface{})
		changed := models.JSONB{}
		if req.Title != nil {
			updates["title"] = *req.Title
			changed["title"] = *req.Title
		}
		if req.Description != nil {
			updates["description"] = *req.Description
			changed["description"] = *req.Description
		}
		if req.Price != nil {
			updates["price"] = *req.Price
			changed["price"] = *req.Price
		}
		if req.IsActive != nil {
			updates["is_active"] = *req.IsActive
			changed["is_active"] = *req.IsActive
		}

		if len(updates) == 0 {
			return nil
		}

		if err := tx.Model(&product).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update product: %w", err)
		}

		changed["product_id"] = product.ID
		_, err := s.journalService.Record(tx, models.JournalEventProductUpdated, callerID, &product.ID, nil, changed)
		return err
	})
	if err != nil {
		return nil, err
	}

	// Reload the stored state
	if err := s.db.First(&product, id).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	return &product, nil
}

// GetAllActiveProducts returns every active product in listing order
// (ascending id). Full scan semantics, acceptable at marketplace scale.
func (s *ProductService) GetAllActiveProducts() ([]models.Product, error) {
	var products []models.Product
	if err := s.db.Where("is_active = ?", true).
		Order("id ASC").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	return products, nil
}

func (s *ProductService) GetProductsByCategory(category string) ([]models.Product, error) {
	var products []models.Product
	if err := s.db.Where("is_active = ? AND category = ?", true, category).
		Order("id ASC").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	return products, nil
}

// GetProductsByCreator includes inactive listings so creators see their
// whole catalog.
func (s *ProductService) GetProductsByCreator(creatorID uuid.UUID) ([]models.Product, error) {
	var products []models.Product
	if err := s.db.Where("creator_id = ?", creatorID).
		Order("id ASC").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	return products, nil
}

// SearchProducts backs the paginated HTTP listing. Active products only
// unless IncludeHidden is set.
func (s *ProductService) SearchProducts(params ProductSearchParams) ([]models.Product, int64, error) {
	query := s.db.Model(&models.Product{}).Preload("Creator")

	if !params.IncludeHidden {
		query = query.Where("is_active = ?", true)
	}

	if params.CreatorID != nil {
		query = query.Where("creator_id = ?", *params.CreatorID)
	}

	if params.Category != "" {
		query = query.Where("category = ?", params.Category)
	}

	if params.Search != "" {
		searchTerm := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", searchTerm, searchTerm)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	allowedSortFields := []string{"id", "created_at", "title", "price", "total_sales"}
	query = utils.ApplySort(query, params.PaginationParams, allowedSortFields)
	query = utils.ApplyPagination(query, params.PaginationParams)

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch products: %w", err)
	}

	return products, total, nil
}
