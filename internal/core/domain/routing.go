package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// ServiceCategory selects a split-routing policy for a payment.
type ServiceCategory string

const (
	CategoryShipping  ServiceCategory = "shipping"
	CategoryFilling   ServiceCategory = "filling"
	CategoryPackaging ServiceCategory = "packaging"
	CategoryTransfer  ServiceCategory = "transfer"
)

// RouteLeg names one destination of a split payment and the position in the
// request's amount vector that funds it. Index 0 of the vector is the payer
// charge, so legs always start at index 1.
type RouteLeg struct {
	WalletID    uuid.UUID
	VectorIndex int
}

// RoutingTable maps service categories to their ordered destination legs.
// It is built once at startup and never mutated, which makes it safe for
// unsynchronized concurrent reads.
type RoutingTable struct {
	routes map[ServiceCategory][]RouteLeg
}

// NewRoutingTable builds a table from category → ordered destination wallets.
// Vector indexes are assigned positionally starting at 1.
func NewRoutingTable(routes map[ServiceCategory][]uuid.UUID) (*RoutingTable, error) {
	t := &RoutingTable{routes: make(map[ServiceCategory][]RouteLeg, len(routes))}
	for cat, dests := range routes {
		if len(dests) == 0 {
			return nil, fmt.Errorf("routing: category %q has no destinations", cat)
		}
		legs := make([]RouteLeg, 0, len(dests))
		for i, id := range dests {
			if id == uuid.Nil {
				return nil, fmt.Errorf("routing: category %q destination %d is empty", cat, i)
			}
			legs = append(legs, RouteLeg{WalletID: id, VectorIndex: i + 1})
		}
		t.routes[cat] = legs
	}
	return t, nil
}

// Resolve returns the ordered destination legs for a category.
func (t *RoutingTable) Resolve(category ServiceCategory) ([]RouteLeg, error) {
	legs, ok := t.routes[category]
	if !ok {
		return nil, ErrUnknownCategory
	}
	return legs, nil
}

// Categories lists the configured categories, for diagnostics.
func (t *RoutingTable) Categories() []ServiceCategory {
	cats := make([]ServiceCategory, 0, len(t.routes))
	for c := range t.routes {
		cats = append(cats, c)
	}
	return cats
}
