package category

import (
	"errors"
	"fmt"

	"github.com/inkwell-blog/core/internal/models"
	"gorm.io/gorm"
)

var errSlugTaken = fmt.Errorf("a category with this slug already exists")

// CreateCategoryDTO is the request body for creating a category.
type CreateCategoryDTO struct {
	Name        string `json:"name"        binding:"required,max=100"`
	Slug        string `json:"slug"        binding:"max=100"`
	Description string `json:"description"`
}

// UpdateCategoryDTO is the request body for updating a category
// (all fields optional).
type UpdateCategoryDTO struct {
	Name        *string `json:"name"`
	Slug        *string `json:"slug"`
	Description *string `json:"description"`
}

// Service handles category business logic.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

// List returns the full category set, no pagination.
func (s *Service) List() ([]models.CategoryModel, error) {
	var cats []models.CategoryModel
	return cats, s.db.Find(&cats).Error
}

// GetBySlug fetches a single category by slug. Returns nil when absent.
func (s *Service) GetBySlug(slug string) (*models.CategoryModel, error) {
	var cat models.CategoryModel
	if err := s.db.Where("slug = ?", slug).First(&cat).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cat, nil
}

// GetByID fetches a single category by ID. Returns nil when absent.
func (s *Service) GetByID(id string) (*models.CategoryModel, error) {
	var cat models.CategoryModel
	if err := s.db.First(&cat, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cat, nil
}

// Create inserts a new category. The slug pre-check yields a friendly
// conflict; the unique indexes on slug and name are the real guarantee.
func (s *Service) Create(dto *CreateCategoryDTO) (*models.CategoryModel, error) {
	var count int64
	if err := s.db.Model(&models.CategoryModel{}).
		Where("slug = ?", dto.Slug).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errSlugTaken
	}

	cat := models.CategoryModel{Name: dto.Name, Slug: dto.Slug, Description: dto.Description}
	return &cat, s.db.Create(&cat).Error
}

// Update patches a category by ID with only the supplied fields.
func (s *Service) Update(id string, dto *UpdateCategoryDTO) (*models.CategoryModel, error) {
	cat, err := s.GetByID(id)
	if err != nil || cat == nil {
		return cat, err
	}

	updates := map[string]interface{}{}
	if dto.Name != nil {
		updates["name"] = *dto.Name
	}
	if dto.Slug != nil {
		updates["slug"] = *dto.Slug
	}
	if dto.Description != nil {
		updates["description"] = *dto.Description
	}
	if len(updates) == 0 {
		return cat, nil
	}
	return cat, s.db.Model(cat).Updates(updates).Error
}

// Delete removes a category and its junction rows in one transaction.
// Posts referencing the category are left intact.
func (s *Service) Delete(id string) (bool, error) {
	deleted := false
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("category_id = ?", id).Delete(&models.PostCategory{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.CategoryModel{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected > 0
		return nil
	})
	return deleted, err
}
