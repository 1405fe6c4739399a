package service

import (
	"context"
	"fmt"
	"strings"

	"backoffice-service/internal/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var maxPrice = decimal.New(1, 8) // numeric(10,2)

func validPrice(p decimal.Decimal) bool {
	return !p.IsNegative() && p.LessThan(maxPrice) && p.Equal(p.Round(2))
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func (s *backofficeService) CreateCustomer(ctx context.Context, in CreateCustomerInput) (*models.Customer, error) {
	in.FullName = strings.TrimSpace(in.FullName)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	if err := validate.Struct(in); err != nil {
		return nil, validationErr(err)
	}
	name, email := in.FullName, in.Email

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	c := &models.Customer{
		FullName:  name,
		Email:     email,
		Phone:     optional(in.Phone),
		CreatedAt: s.now(),
	}
	if err := s.repo.Customers.Create(ctx, c); err != nil {
		s.log.Warn("create customer failed", zap.String("email", email), zap.Error(err))
		return nil, mapInsertErr(err)
	}
	s.log.Info("customer created", zap.Int64("customer_id", c.CustomerID))
	return c, nil
}

func (s *backofficeService) CreateProduct(ctx context.Context, in CreateProductInput) (*models.Product, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.SKU = strings.TrimSpace(in.SKU)
	if err := validate.Struct(in); err != nil {
		return nil, validationErr(err)
	}
	if !validPrice(in.Price) {
		return nil, fmt.Errorf("%w: price must be >= 0 with at most 2 decimal places", ErrValidation)
	}
	name, sku := in.Name, in.SKU

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	p := &models.Product{
		Name:        name,
		Description: optional(in.Description),
		Price:       in.Price,
		SKU:         sku,
		StockQty:    in.StockQty,
		CreatedAt:   s.now(),
	}
	if err := s.repo.Products.Create(ctx, p); err != nil {
		s.log.Warn("create product failed", zap.String("sku", sku), zap.Error(err))
		return nil, mapInsertErr(err)
	}
	s.invalidateDashboard(ctx)
	s.log.Info("product created", zap.Int64("product_id", p.ProductID))
	return p, nil
}

func (s *backofficeService) CreateCategory(ctx context.Context, name string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if err := validate.Var(name, "required,max=100"); err != nil {
		return nil, fmt.Errorf("%w: category name: %w", ErrValidation, err)
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	c := &models.Category{Name: name}
	if err := s.repo.Categories.Create(ctx, c); err != nil {
		return nil, mapInsertErr(err)
	}
	return c, nil
}

func (s *backofficeService) AssignCategory(ctx context.Context, productID, categoryID int64) error {
	if productID <= 0 || categoryID <= 0 {
		return fmt.Errorf("%w: product and category ids are required", ErrValidation)
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	p, err := s.repo.Products.GetByID(ctx, productID)
	if err != nil {
		return mapStorageErr(err)
	}
	if p == nil {
		return fmt.Errorf("%w: %d", ErrProductNotFound, productID)
	}
	c, err := s.repo.Categories.GetByID(ctx, categoryID)
	if err != nil {
		return mapStorageErr(err)
	}
	if c == nil {
		return fmt.Errorf("%w: %d", ErrCategoryNotFound, categoryID)
	}

	return mapInsertErr(s.repo.Categories.Assign(ctx, productID, categoryID))
}

// DeleteCustomer fails with ErrStillReferenced while the customer has orders.
func (s *backofficeService) DeleteCustomer(ctx context.Context, id int64) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	ok, err := s.repo.Customers.Delete(ctx, id)
	if err != nil {
		return mapStorageErr(err)
	}
	if !ok {
		return fmt.Errorf("%w: customer %d", ErrNotFound, id)
	}
	return nil
}

// DeleteProduct fails with ErrStillReferenced while order items point at it.
func (s *backofficeService) DeleteProduct(ctx context.Context, id int64) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	ok, err := s.repo.Products.Delete(ctx, id)
	if err != nil {
		return mapStorageErr(err)
	}
	if !ok {
		return fmt.Errorf("%w: product %d", ErrNotFound, id)
	}
	s.invalidateDashboard(ctx)
	return nil
}
