package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"backoffice-service/internal/models"
	"backoffice-service/internal/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func price(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestValidatePlacement(t *testing.T) {
	good := PlaceOrderItem{ProductID: 1, Quantity: 1, UnitPrice: price("1.00")}
	cases := []struct {
		name string
		in   PlaceOrderInput
		want error
	}{
		{"ok", PlaceOrderInput{CustomerID: 1, Items: []PlaceOrderItem{good}}, nil},
		{"free item ok", PlaceOrderInput{CustomerID: 1, Items: []PlaceOrderItem{{ProductID: 1, Quantity: 2, UnitPrice: decimal.Zero}}}, nil},
		{"no customer", PlaceOrderInput{Items: []PlaceOrderItem{good}}, ErrValidation},
		{"empty", PlaceOrderInput{CustomerID: 1}, ErrEmptyItems},
		{"zero qty", PlaceOrderInput{CustomerID: 1, Items: []PlaceOrderItem{good, {ProductID: 2, Quantity: 0, UnitPrice: price("1")}}}, ErrQuantityInvalid},
		{"negative qty", PlaceOrderInput{CustomerID: 1, Items: []PlaceOrderItem{{ProductID: 2, Quantity: -3, UnitPrice: price("1")}}}, ErrQuantityInvalid},
		{"negative price", PlaceOrderInput{CustomerID: 1, Items: []PlaceOrderItem{{ProductID: 2, Quantity: 1, UnitPrice: price("-0.01")}}}, ErrUnitPriceInvalid},
		{"sub-cent price", PlaceOrderInput{CustomerID: 1, Items: []PlaceOrderItem{{ProductID: 2, Quantity: 1, UnitPrice: price("1.005")}}}, ErrUnitPriceInvalid},
		{"price overflow", PlaceOrderInput{CustomerID: 1, Items: []PlaceOrderItem{{ProductID: 2, Quantity: 1, UnitPrice: price("100000000")}}}, ErrUnitPriceInvalid},
		{"no product", PlaceOrderInput{CustomerID: 1, Items: []PlaceOrderItem{{Quantity: 1, UnitPrice: price("1")}}}, ErrValidation},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validatePlacement(tc.in)
			if tc.want == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tc.want) {
				t.Fatalf("got %v, want %v", err, tc.want)
			}
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("placement validation must be ErrValidation: %v", err)
			}
		})
	}
}

// A service whose repository has no database: any storage access panics,
// so these tests prove validation happens before the first write.
func newOfflineService() Backoffice {
	return NewBackofficeService(repository.New(nil), nil, nil, zap.NewNop(), 0)
}

func TestPlaceOrder_ValidationBeforeAnyWrite(t *testing.T) {
	svc := newOfflineService()

	_, err := svc.PlaceOrder(context.Background(), PlaceOrderInput{CustomerID: 1})
	if !errors.Is(err, ErrEmptyItems) {
		t.Fatalf("expected ErrEmptyItems, got %v", err)
	}

	_, err = svc.PlaceOrder(context.Background(), PlaceOrderInput{
		CustomerID: 1,
		Items:      []PlaceOrderItem{{ProductID: 1, Quantity: 0, UnitPrice: price("1")}},
	})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestCreateCustomer_Validation(t *testing.T) {
	svc := newOfflineService()
	cases := []CreateCustomerInput{
		{FullName: "", Email: "a@b.c"},
		{FullName: "Ada", Email: "   "},
		{FullName: "Ada", Email: "not-an-email"},
		{FullName: "Ada", Email: "Ada <ada@example.com>"},
	}
	for _, in := range cases {
		if _, err := svc.CreateCustomer(context.Background(), in); !errors.Is(err, ErrValidation) {
			t.Fatalf("%+v: expected ErrValidation, got %v", in, err)
		}
	}
}

func TestCreateCustomer_ColumnLimits(t *testing.T) {
	svc := newOfflineService()
	long := func(n int) string { return strings.Repeat("a", n) }
	cases := map[string]CreateCustomerInput{
		"name 201":  {FullName: long(201), Email: "a@b.io"},
		"email 256": {FullName: "Ada", Email: long(251) + "@b.io"},
		"phone 31":  {FullName: "Ada", Email: "a@b.io", Phone: long(31)},
	}
	for name, in := range cases {
		_, err := svc.CreateCustomer(context.Background(), in)
		if !errors.Is(err, ErrValidation) {
			t.Fatalf("%s: expected ErrValidation, got %v", name, err)
		}
	}
}

func TestCreateProduct_ColumnLimits(t *testing.T) {
	svc := newOfflineService()
	cases := map[string]CreateProductInput{
		"name 201": {Name: strings.Repeat("n", 201), SKU: "X", Price: price("1")},
		"sku 101":  {Name: "Mug", SKU: strings.Repeat("s", 101), Price: price("1")},
	}
	for name, in := range cases {
		_, err := svc.CreateProduct(context.Background(), in)
		if !errors.Is(err, ErrValidation) {
			t.Fatalf("%s: expected ErrValidation, got %v", name, err)
		}
	}

	if _, err := svc.CreateCategory(context.Background(), strings.Repeat("c", 101)); !errors.Is(err, ErrValidation) {
		t.Fatalf("category 101: expected ErrValidation, got %v", err)
	}
}

func TestCreateProduct_Validation(t *testing.T) {
	svc := newOfflineService()
	cases := []CreateProductInput{
		{Name: "", SKU: "X", Price: price("1")},
		{Name: "Mug", SKU: " ", Price: price("1")},
		{Name: "Mug", SKU: "X", Price: price("-1")},
		{Name: "Mug", SKU: "X", Price: price("1.999")},
		{Name: "Mug", SKU: "X", Price: price("1"), StockQty: -1},
	}
	for _, in := range cases {
		if _, err := svc.CreateProduct(context.Background(), in); !errors.Is(err, ErrValidation) {
			t.Fatalf("%+v: expected ErrValidation, got %v", in, err)
		}
	}
}

func TestUpdateOrderStatus_UnknownStatus(t *testing.T) {
	svc := newOfflineService()
	_, err := svc.UpdateOrderStatus(context.Background(), 1, models.OrderStatus("lost"))
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestParseTableAndListTable(t *testing.T) {
	for _, tbl := range Tables {
		got, err := ParseTable(string(tbl))
		if err != nil || got != tbl {
			t.Fatalf("ParseTable(%s) = %v, %v", tbl, got, err)
		}
	}
	if _, err := ParseTable("users"); !errors.Is(err, ErrUnknownTable) {
		t.Fatalf("expected ErrUnknownTable, got %v", err)
	}

	svc := newOfflineService()
	if _, err := svc.ListTable(context.Background(), Table("users"), 0); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
