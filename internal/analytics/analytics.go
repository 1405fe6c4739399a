// Package analytics derives the dashboard aggregates in memory from the
// read views. Nothing here touches storage.
package analytics

import (
	"sort"

	"backoffice-service/internal/models"
)

type StatusCount struct {
	Status models.OrderStatus `json:"status"`
	Count  int                `json:"count"`
}

type ProductQuantity struct {
	Name     string `json:"name"`
	Quantity int64  `json:"quantity"`
}

type Dashboard struct {
	OrdersByStatus []StatusCount     `json:"orders_by_status"`
	TopProducts    []ProductQuantity `json:"top_products"`
}

// OrdersByStatus counts orders per status, largest group first.
func OrdersByStatus(orders []models.Order) []StatusCount {
	counts := make(map[models.OrderStatus]int)
	for _, o := range orders {
		counts[o.Status]++
	}

	out := make([]StatusCount, 0, len(counts))
	for st, n := range counts {
		out = append(out, StatusCount{Status: st, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Status < out[j].Status
	})
	return out
}

// TopProducts sums ordered quantity per product name. Items whose product
// is not in products are skipped, same as an inner join.
func TopProducts(items []models.OrderItem, products []models.Product) []ProductQuantity {
	names := make(map[int64]string, len(products))
	for _, p := range products {
		names[p.ProductID] = p.Name
	}

	totals := make(map[string]int64)
	for _, it := range items {
		name, ok := names[it.ProductID]
		if !ok {
			continue
		}
		totals[name] += int64(it.Quantity)
	}

	out := make([]ProductQuantity, 0, len(totals))
	for name, q := range totals {
		out = append(out, ProductQuantity{Name: name, Quantity: q})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Quantity != out[j].Quantity {
			return out[i].Quantity > out[j].Quantity
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func Build(orders []models.Order, items []models.OrderItem, products []models.Product) Dashboard {
	return Dashboard{
		OrdersByStatus: OrdersByStatus(orders),
		TopProducts:    TopProducts(items, products),
	}
}
