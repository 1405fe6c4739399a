package repository

import (
	"context"

	"gorm.io/gorm"
)

type Repository struct {
	DB         *gorm.DB
	Customers  CustomerRepo
	Products   ProductRepo
	Categories CategoryRepo
	Orders     OrderRepo
	OrderItems OrderItemRepo
}

func buildRepository(db *gorm.DB) *Repository {
	return &Repository{
		DB:         db,
		Customers:  NewCustomerRepo(db),
		Products:   NewProductRepo(db),
		Categories: NewCategoryRepo(db),
		Orders:     NewOrderRepo(db),
		OrderItems: NewOrderItemRepo(db),
	}
}

func New(db *gorm.DB) *Repository { return buildRepository(db) }

// Одна транзакция на весь набор репозиториев. Любая ошибка fn откатывает
// все записи, сделанные через tx.
func (r *Repository) WithTx(ctx context.Context, fn func(tx *Repository) error) error {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(buildRepository(tx))
	})
	return classify(err)
}

// Ping reports whether the underlying connection pool is usable.
func (r *Repository) Ping(ctx context.Context) error {
	sqlDB, err := r.DB.DB()
	if err != nil {
		return classify(err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return &DBError{Kind: ErrStorage, Err: err}
	}
	return nil
}

func withLimit(q *gorm.DB, limit int) *gorm.DB {
	if limit > 0 {
		return q.Limit(limit)
	}
	return q
}
