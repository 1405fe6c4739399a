package service_test

import (
	"context"
	"errors"
	"testing"

	"backoffice-service/internal/models"
	"backoffice-service/internal/service"
)

func TestCreateCustomer_DuplicateEmail(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	c, err := f.svc.CreateCustomer(ctx, service.CreateCustomerInput{FullName: "  Ada  ", Email: "ada@example.com", Phone: "+44 20"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if c.FullName != "Ada" || c.Phone == nil || *c.Phone != "+44 20" {
		t.Fatalf("unexpected customer: %+v", c)
	}

	_, err = f.svc.CreateCustomer(ctx, service.CreateCustomerInput{FullName: "Other", Email: "ada@example.com"})
	if !errors.Is(err, service.ErrConstraint) || !errors.Is(err, service.ErrAlreadyExists) {
		t.Fatalf("expected constraint error, got %v", err)
	}
}

func TestCreateProduct_DuplicateSKU(t *testing.T) {
	f := setup(t)
	f.product(t, "DUP", "1.00", 1)

	_, err := f.svc.CreateProduct(context.Background(), service.CreateProductInput{Name: "Again", SKU: "DUP", Price: dec("2.00")})
	if !errors.Is(err, service.ErrConstraint) {
		t.Fatalf("expected constraint error, got %v", err)
	}
	if f.cache.invalidated == 0 {
		t.Fatal("product creation must invalidate the dashboard snapshot")
	}
}

func TestAssignCategory(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	p := f.product(t, "CAT", "1.00", 1)

	cat, err := f.svc.CreateCategory(ctx, "Garden")
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	if _, err := f.svc.CreateCategory(ctx, "Garden"); !errors.Is(err, service.ErrAlreadyExists) {
		t.Fatalf("expected duplicate category error, got %v", err)
	}

	if err := f.svc.AssignCategory(ctx, p.ProductID, cat.CategoryID); err != nil {
		t.Fatalf("assign: %v", err)
	}
	if err := f.svc.AssignCategory(ctx, p.ProductID, 777); !errors.Is(err, service.ErrCategoryNotFound) {
		t.Fatalf("expected category reference error, got %v", err)
	}
	if err := f.svc.AssignCategory(ctx, 777, cat.CategoryID); !errors.Is(err, service.ErrProductNotFound) {
		t.Fatalf("expected product reference error, got %v", err)
	}

	rows, err := f.svc.ListTable(ctx, service.TableProductCategories, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	links, ok := rows.([]models.ProductCategory)
	if !ok || len(links) != 1 {
		t.Fatalf("unexpected links: %#v", rows)
	}
}

func TestListTable_Limit(t *testing.T) {
	f := setup(t)
	for _, sku := range []string{"L1", "L2", "L3"} {
		f.product(t, sku, "1.00", 1)
	}

	rows, err := f.svc.ListTable(context.Background(), service.TableProducts, 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	products := rows.([]models.Product)
	if len(products) != 2 || products[0].SKU != "L1" || products[1].SKU != "L2" {
		t.Fatalf("unexpected page: %+v", products)
	}
}
