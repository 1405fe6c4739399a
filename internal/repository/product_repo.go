package repository

import (
	"context"
	"errors"

	"backoffice-service/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductRepo interface {
	Create(ctx context.Context, p *models.Product) error
	GetByID(ctx context.Context, id int64) (*models.Product, error)
	// GetForUpdate reads the row under SELECT ... FOR UPDATE; only
	// meaningful inside WithTx.
	GetForUpdate(ctx context.Context, id int64) (*models.Product, error)
	// DecrementStock: stock_qty -= qty, only if stock_qty >= qty.
	DecrementStock(ctx context.Context, id int64, qty int32) (bool, error)
	IncrementStock(ctx context.Context, id int64, qty int32) (bool, error)
	List(ctx context.Context, limit int) ([]models.Product, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type productRepo struct{ db *gorm.DB }

func NewProductRepo(db *gorm.DB) ProductRepo { return &productRepo{db: db} }

func (r *productRepo) Create(ctx context.Context, p *models.Product) error {
	return classify(r.db.WithContext(ctx).Create(p).Error)
}

func (r *productRepo) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	return r.first(r.db.WithContext(ctx), id)
}

func (r *productRepo) GetForUpdate(ctx context.Context, id int64) (*models.Product, error) {
	return r.first(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *productRepo) first(q *gorm.DB, id int64) (*models.Product, error) {
	var p models.Product
	err := q.First(&p, "product_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, classify(err)
	}
	return &p, nil
}

func (r *productRepo) DecrementStock(ctx context.Context, id int64, qty int32) (bool, error) {
	tx := r.db.WithContext(ctx).Exec(`
UPDATE products
SET stock_qty = stock_qty - @q
WHERE product_id = @pid
  AND stock_qty >= @q
`, map[string]any{
		"pid": id,
		"q":   qty,
	})
	return tx.RowsAffected > 0, classify(tx.Error)
}

func (r *productRepo) IncrementStock(ctx context.Context, id int64, qty int32) (bool, error) {
	tx := r.db.WithContext(ctx).Exec(`
UPDATE products
SET stock_qty = stock_qty + @q
WHERE product_id = @pid
`, map[string]any{
		"pid": id,
		"q":   qty,
	})
	return tx.RowsAffected > 0, classify(tx.Error)
}

func (r *productRepo) List(ctx context.Context, limit int) ([]models.Product, error) {
	list := []models.Product{}
	err := withLimit(r.db.WithContext(ctx).Order("product_id ASC"), limit).Find(&list).Error
	return list, classify(err)
}

// Delete is blocked by fk_order_items_product while order items exist.
func (r *productRepo) Delete(ctx context.Context, id int64) (bool, error) {
	tx := r.db.WithContext(ctx).Delete(&models.Product{}, "product_id = ?", id)
	return tx.RowsAffected > 0, classify(tx.Error)
}
