package planner

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"supermarkt/catalog"
	"supermarkt/models"
)

const (
	DefaultDays    = 4
	DefaultPersons = 2

	// MaxDealsPerRecipe caps the promotions overlaid on the list for one recipe.
	MaxDealsPerRecipe = 3
)

// Staples are added to every plan that asks for basics.
var Staples = []string{"halfvolle melk", "wit brood", "eieren", "roomboter", "goudse kaas"}

// Storage is everything the planner reads.
type Storage interface {
	catalog.Source
	ProductFinder
	Recipes(ctx context.Context, categories []string, dietTag string) ([]models.Recipe, error)
}

// Narrator writes a short human note about a finished plan.
type Narrator interface {
	Narrate(ctx context.Context, plan *models.Plan) (string, error)
}

// Request is one planning request. Use NewRequest for the defaults.
type Request struct {
	Days        int              `json:"days"`
	Persons     int              `json:"persons"`
	Stores      []string         `json:"stores"`
	Preferences []string         `json:"preferences"`
	Diet        string           `json:"diet,omitempty"`
	Budget      *decimal.Decimal `json:"budget,omitempty"`
	Basics      bool             `json:"basics"`
}

// NewRequest returns a request with the default days, persons and basics.
func NewRequest() Request {
	return Request{Days: DefaultDays, Persons: DefaultPersons, Basics: true}
}

// Validate rejects requests the planner cannot honour.
func (r Request) Validate() error {
	if r.Days < 1 {
		return fmt.Errorf("%w: days must be at least 1, got %d", models.ErrInvalidRequest, r.Days)
	}
	if r.Persons < 1 {
		return fmt.Errorf("%w: persons must be at least 1, got %d", models.ErrInvalidRequest, r.Persons)
	}
	if r.Budget != nil && r.Budget.IsNegative() {
		return fmt.Errorf("%w: budget must not be negative, got %s", models.ErrInvalidRequest, r.Budget)
	}
	return nil
}

// Planner turns a request into a week plan with a store-grouped shopping list.
type Planner struct {
	store   Storage
	catalog *catalog.Catalog
	now     func() time.Time
}

// New builds a planner. cache may be nil.
func New(store Storage, cache catalog.Cache) *Planner {
	return &Planner{
		store:   store,
		catalog: catalog.New(store, cache),
		now:     time.Now,
	}
}

// Plan builds the week plan. Storage errors abort the request.
func (p *Planner) Plan(ctx context.Context, req Request) (*models.Plan, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var promos []models.Promotion
	if len(req.Stores) > 0 {
		var err error
		promos, err = p.catalog.Active(ctx, req.Stores, "")
		if err != nil {
			return nil, err
		}
	}

	recipes, err := p.store.Recipes(ctx, req.Preferences, strings.ToLower(strings.TrimSpace(req.Diet)))
	if err != nil {
		return nil, fmt.Errorf("load recipes: %w", err)
	}
	chosen := Rank(recipes, promos, req.Days)

	agg := NewAggregator(p.store, req.Stores)
	for _, s := range chosen {
		for _, ing := range s.Recipe.Ingredients {
			if _, err := agg.AddCheapest(ctx, ing.Name); err != nil {
				return nil, err
			}
		}
	}

	plan := &models.Plan{
		ID:          uuid.NewString(),
		GeneratedAt: p.now().UTC(),
		Days:        req.Days,
		Persons:     req.Persons,
		Stores:      req.Stores,
		WeekPlan:    make([]models.DayPlan, 0, len(chosen)),
	}
	for i, s := range chosen {
		deals := TopDistinctMatches(s.Matches, MaxDealsPerRecipe)
		for _, m := range deals {
			agg.Overlay(m.Promotion)
		}
		plan.WeekPlan = append(plan.WeekPlan, models.DayPlan{
			Day:     i + 1,
			Recipe:  s.Recipe,
			Score:   s.Score,
			Matches: deals,
		})
	}

	if req.Basics {
		for _, staple := range Staples {
			item, err := agg.AddCheapest(ctx, staple)
			if err != nil {
				return nil, err
			}
			plan.Basics = append(plan.Basics, models.BasicItem{Staple: staple, Product: item})
		}
	}

	plan.ShoppingList = agg.Build()
	if req.Budget != nil {
		check := CheckBudget(plan.ShoppingList.Total, *req.Budget)
		plan.Budget = &check
	}
	return plan, nil
}

// AddNotes asks n for a note on plan. It does not touch storage, so callers
// run it after releasing their connection. A failing narrator only loses the notes.
func AddNotes(ctx context.Context, n Narrator, plan *models.Plan) {
	notes, err := n.Narrate(ctx, plan)
	if err != nil {
		log.Printf("planner: plan %s: notes unavailable: %v", plan.ID, err)
		return
	}
	plan.Notes = notes
}

// OptimizeShoppingList resolves each requested name to its cheapest product in
// stores, or in every store when none are given, and groups the result per store.
func OptimizeShoppingList(ctx context.Context, finder ProductFinder, names, stores []string) (models.ShoppingList, error) {
	agg := NewAggregator(finder, stores)
	agg.anyStore = len(stores) == 0
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, err := agg.AddCheapest(ctx, name); err != nil {
			return models.ShoppingList{}, err
		}
	}
	return agg.Build(), nil
}
