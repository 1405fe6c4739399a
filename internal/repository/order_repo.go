package repository

import (
	"context"
	"errors"

	"backoffice-service/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderRepo interface {
	Create(ctx context.Context, o *models.Order) error
	GetByID(ctx context.Context, id int64) (*models.Order, error)
	GetForUpdate(ctx context.Context, id int64) (*models.Order, error)
	UpdateTotal(ctx context.Context, id int64, total decimal.Decimal) error
	UpdateStatus(ctx context.Context, id int64, status models.OrderStatus) error
	List(ctx context.Context, limit int) ([]models.Order, error)
	// Delete cascades to order_items via fk_order_items_order.
	Delete(ctx context.Context, id int64) (bool, error)
}

type orderRepo struct{ db *gorm.DB }

func NewOrderRepo(db *gorm.DB) OrderRepo { return &orderRepo{db: db} }

func (r *orderRepo) Create(ctx context.Context, o *models.Order) error {
	return classify(r.db.WithContext(ctx).Create(o).Error)
}

func (r *orderRepo) GetByID(ctx context.Context, id int64) (*models.Order, error) {
	return r.first(r.db.WithContext(ctx), id)
}

func (r *orderRepo) GetForUpdate(ctx context.Context, id int64) (*models.Order, error) {
	return r.first(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *orderRepo) first(q *gorm.DB, id int64) (*models.Order, error) {
	var o models.Order
	err := q.First(&o, "order_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, classify(err)
	}
	return &o, nil
}

func (r *orderRepo) UpdateTotal(ctx context.Context, id int64, total decimal.Decimal) error {
	return classify(r.db.WithContext(ctx).Model(&models.Order{}).
		Where("order_id = ?", id).
		Update("total_amount", total).Error)
}

func (r *orderRepo) UpdateStatus(ctx context.Context, id int64, status models.OrderStatus) error {
	return classify(r.db.WithContext(ctx).Model(&models.Order{}).
		Where("order_id = ?", id).
		Update("status", status).Error)
}

func (r *orderRepo) List(ctx context.Context, limit int) ([]models.Order, error) {
	list := []models.Order{}
	err := withLimit(r.db.WithContext(ctx).Order("order_id ASC"), limit).Find(&list).Error
	return list, classify(err)
}

func (r *orderRepo) Delete(ctx context.Context, id int64) (bool, error) {
	tx := r.db.WithContext(ctx).Delete(&models.Order{}, "order_id = ?", id)
	return tx.RowsAffected > 0, classify(tx.Error)
}
