package repository

import (
	"context"
	"errors"

	"backoffice-service/internal/models"

	"gorm.io/gorm"
)

type CustomerRepo interface {
	Create(ctx context.Context, c *models.Customer) error
	GetByID(ctx context.Context, id int64) (*models.Customer, error)
	Exists(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context, limit int) ([]models.Customer, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type customerRepo struct{ db *gorm.DB }

func NewCustomerRepo(db *gorm.DB) CustomerRepo { return &customerRepo{db: db} }

func (r *customerRepo) Create(ctx context.Context, c *models.Customer) error {
	return classify(r.db.WithContext(ctx).Create(c).Error)
}

func (r *customerRepo) GetByID(ctx context.Context, id int64) (*models.Customer, error) {
	var c models.Customer
	err := r.db.WithContext(ctx).First(&c, "customer_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, classify(err)
	}
	return &c, nil
}

func (r *customerRepo) Exists(ctx context.Context, id int64) (bool, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&models.Customer{}).Where("customer_id = ?", id).Count(&cnt).Error
	return cnt > 0, classify(err)
}

func (r *customerRepo) List(ctx context.Context, limit int) ([]models.Customer, error) {
	list := []models.Customer{}
	err := withLimit(r.db.WithContext(ctx).Order("customer_id ASC"), limit).Find(&list).Error
	return list, classify(err)
}

// Delete is blocked by fk_orders_customer while orders exist.
func (r *customerRepo) Delete(ctx context.Context, id int64) (bool, error) {
	tx := r.db.WithContext(ctx).Delete(&models.Customer{}, "customer_id = ?", id)
	return tx.RowsAffected > 0, classify(tx.Error)
}
