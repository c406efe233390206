package planner

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"supermarkt/models"
)

// ProductFinder resolves a free-text name to the cheapest matching product in
// the given stores, or in any store when stores is empty. It returns nil, nil
// when nothing matches.
type ProductFinder interface {
	CheapestProduct(ctx context.Context, name string, stores []string) (*models.Product, error)
}

// Aggregator builds a shopping list keyed by product name. Regular-price items
// are only added when their name is new; promotion items replace regular ones.
type Aggregator struct {
	finder   ProductFinder
	stores   []string
	anyStore bool

	items    []models.ShoppingListItem
	index    map[string]int
	notFound []string
	missing  map[string]bool
}

// NewAggregator builds an empty list resolving products in stores.
func NewAggregator(finder ProductFinder, stores []string) *Aggregator {
	return &Aggregator{
		finder:  finder,
		stores:  stores,
		index:   make(map[string]int),
		missing: make(map[string]bool),
	}
}

// AddCheapest resolves name to its cheapest product and adds it at regular
// price unless an item with the same product name is already on the list.
// It returns the list's entry for that product, which may be a promotion
// overlay; nil means no product matched and name was recorded as not found.
func (a *Aggregator) AddCheapest(ctx context.Context, name string) (*models.ShoppingListItem, error) {
	if len(a.stores) == 0 && !a.anyStore {
		a.markMissing(name)
		return nil, nil
	}
	p, err := a.finder.CheapestProduct(ctx, name, a.stores)
	if err != nil {
		return nil, fmt.Errorf("resolve %q: %w", name, err)
	}
	if p == nil {
		a.markMissing(name)
		return nil, nil
	}
	item := models.ShoppingListItem{
		ProductName: p.Name,
		Price:       p.Price,
		StoreCode:   p.StoreCode,
	}
	if i, ok := a.index[item.ProductName]; ok {
		existing := a.items[i]
		return &existing, nil
	}
	a.index[item.ProductName] = len(a.items)
	a.items = append(a.items, item)
	return &item, nil
}

// Overlay puts a promotion on the list at its discount price. It replaces a
// regular-price item of the same name; an existing promotion item wins.
func (a *Aggregator) Overlay(p models.Promotion) {
	promoType := p.PromoType
	item := models.ShoppingListItem{
		ProductName:  p.ProductName,
		Price:        p.DiscountPrice,
		StoreCode:    p.StoreCode,
		PromoType:    &promoType,
		IsDiscounted: true,
	}
	i, ok := a.index[item.ProductName]
	if !ok {
		a.index[item.ProductName] = len(a.items)
		a.items = append(a.items, item)
		return
	}
	if a.items[i].IsDiscounted {
		return
	}
	a.items[i] = item
}

func (a *Aggregator) markMissing(name string) {
	if a.missing[name] {
		return
	}
	a.missing[name] = true
	a.notFound = append(a.notFound, name)
}

// Build groups the items per store.
func (a *Aggregator) Build() models.ShoppingList {
	list := GroupByStore(a.items)
	list.NotFound = append([]string{}, a.notFound...)
	return list
}

// GroupByStore partitions items by store code. Stores are sorted by code and
// items within a store by product name. Total is the sum of the subtotals.
func GroupByStore(items []models.ShoppingListItem) models.ShoppingList {
	byStore := make(map[string][]models.ShoppingListItem)
	for _, it := range items {
		byStore[it.StoreCode] = append(byStore[it.StoreCode], it)
	}
	codes := make([]string, 0, len(byStore))
	for code := range byStore {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	list := models.ShoppingList{
		PerStore: make([]models.StoreGroup, 0, len(codes)),
		Total:    decimal.Zero,
		NotFound: []string{},
	}
	for _, code := range codes {
		group := byStore[code]
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].ProductName < group[j].ProductName
		})
		subtotal := decimal.Zero
		for _, it := range group {
			subtotal = subtotal.Add(it.Price)
		}
		list.PerStore = append(list.PerStore, models.StoreGroup{StoreCode: code, Items: group, Subtotal: subtotal})
		list.Total = list.Total.Add(subtotal)
	}
	return list
}

// CheckBudget compares total against budget. Spending exactly the budget is within it.
func CheckBudget(total, budget decimal.Decimal) models.BudgetCheck {
	return models.BudgetCheck{
		Budget:       budget,
		Difference:   budget.Sub(total),
		WithinBudget: total.LessThanOrEqual(budget),
	}
}
