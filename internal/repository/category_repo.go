package repository

import (
	"context"
	"errors"

	"backoffice-service/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CategoryRepo interface {
	Create(ctx context.Context, c *models.Category) error
	GetByID(ctx context.Context, id int64) (*models.Category, error)
	List(ctx context.Context, limit int) ([]models.Category, error)
	// Assign is idempotent: assigning an existing pair is a no-op.
	Assign(ctx context.Context, productID, categoryID int64) error
	ListAssignments(ctx context.Context, limit int) ([]models.ProductCategory, error)
}

type categoryRepo struct{ db *gorm.DB }

func NewCategoryRepo(db *gorm.DB) CategoryRepo { return &categoryRepo{db: db} }

func (r *categoryRepo) Create(ctx context.Context, c *models.Category) error {
	return classify(r.db.WithContext(ctx).Create(c).Error)
}

func (r *categoryRepo) GetByID(ctx context.Context, id int64) (*models.Category, error) {
	var c models.Category
	err := r.db.WithContext(ctx).First(&c, "category_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, classify(err)
	}
	return &c, nil
}

func (r *categoryRepo) List(ctx context.Context, limit int) ([]models.Category, error) {
	list := []models.Category{}
	err := withLimit(r.db.WithContext(ctx).Order("category_id ASC"), limit).Find(&list).Error
	return list, classify(err)
}

func (r *categoryRepo) Assign(ctx context.Context, productID, categoryID int64) error {
	return classify(r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.ProductCategory{ProductID: productID, CategoryID: categoryID}).Error)
}

func (r *categoryRepo) ListAssignments(ctx context.Context, limit int) ([]models.ProductCategory, error) {
	list := []models.ProductCategory{}
	err := withLimit(r.db.WithContext(ctx).Order("product_id ASC, category_id ASC"), limit).Find(&list).Error
	return list, classify(err)
}
