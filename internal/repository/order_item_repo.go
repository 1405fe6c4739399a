package repository

import (
	"context"

	"backoffice-service/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderItemRepo interface {
	Create(ctx context.Context, it *models.OrderItem) error
	BulkCreate(ctx context.Context, items []models.OrderItem) error
	GetByOrderID(ctx context.Context, orderID int64) ([]models.OrderItem, error)
	SumByOrder(ctx context.Context, orderID int64) (decimal.Decimal, error)
	List(ctx context.Context, limit int) ([]models.OrderItem, error)
}

type orderItemRepo struct{ db *gorm.DB }

func NewOrderItemRepo(db *gorm.DB) OrderItemRepo { return &orderItemRepo{db: db} }

func (r *orderItemRepo) Create(ctx context.Context, it *models.OrderItem) error {
	return classify(r.db.WithContext(ctx).Create(it).Error)
}

func (r *orderItemRepo) BulkCreate(ctx context.Context, items []models.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	return classify(r.db.WithContext(ctx).Create(&items).Error)
}

func (r *orderItemRepo) GetByOrderID(ctx context.Context, orderID int64) ([]models.OrderItem, error) {
	rows := []models.OrderItem{}
	err := r.db.WithContext(ctx).Where("order_id = ?", orderID).Order("order_item_id ASC").Find(&rows).Error
	return rows, classify(err)
}

func (r *orderItemRepo) SumByOrder(ctx context.Context, orderID int64) (decimal.Decimal, error) {
	var res struct {
		Total decimal.Decimal
	}
	err := r.db.WithContext(ctx).Model(&models.OrderItem{}).
		Select("COALESCE(SUM(quantity * unit_price), 0) AS total").
		Where("order_id = ?", orderID).
		Scan(&res).Error
	return res.Total, classify(err)
}

func (r *orderItemRepo) List(ctx context.Context, limit int) ([]models.OrderItem, error) {
	list := []models.OrderItem{}
	err := withLimit(r.db.WithContext(ctx).Order("order_item_id ASC"), limit).Find(&list).Error
	return list, classify(err)
}
