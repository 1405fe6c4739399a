package service

import (
	"context"

	"backoffice-service/internal/models"
)

// Read views: unfiltered projections ordered by primary key. limit <= 0
// returns every row.

func (s *backofficeService) ListCustomers(ctx context.Context, limit int) ([]models.Customer, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	list, err := s.repo.Customers.List(ctx, limit)
	return list, mapStorageErr(err)
}

func (s *backofficeService) ListProducts(ctx context.Context, limit int) ([]models.Product, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	list, err := s.repo.Products.List(ctx, limit)
	return list, mapStorageErr(err)
}

func (s *backofficeService) ListCategories(ctx context.Context, limit int) ([]models.Category, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	list, err := s.repo.Categories.List(ctx, limit)
	return list, mapStorageErr(err)
}

func (s *backofficeService) ListProductCategories(ctx context.Context, limit int) ([]models.ProductCategory, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	list, err := s.repo.Categories.ListAssignments(ctx, limit)
	return list, mapStorageErr(err)
}

func (s *backofficeService) ListOrders(ctx context.Context, limit int) ([]models.Order, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	list, err := s.repo.Orders.List(ctx, limit)
	return list, mapStorageErr(err)
}

func (s *backofficeService) ListOrderItems(ctx context.Context, limit int) ([]models.OrderItem, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	list, err := s.repo.OrderItems.List(ctx, limit)
	return list, mapStorageErr(err)
}

func (s *backofficeService) ListTable(ctx context.Context, table Table, limit int) (any, error) {
	switch table {
	case TableCustomers:
		return s.ListCustomers(ctx, limit)
	case TableProducts:
		return s.ListProducts(ctx, limit)
	case TableCategories:
		return s.ListCategories(ctx, limit)
	case TableProductCategories:
		return s.ListProductCategories(ctx, limit)
	case TableOrders:
		return s.ListOrders(ctx, limit)
	case TableOrderItems:
		return s.ListOrderItems(ctx, limit)
	}
	return nil, ErrUnknownTable
}
