// Package assistant adds a short, generated shopping note to a plan.
package assistant

import (
	"context"
	"fmt"
	"strings"

	"supermarkt/models"
	"supermarkt/utils"
)

// Generator turns a prompt into text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Narrator writes plan notes with a Generator.
type Narrator struct {
	gen Generator
}

func NewNarrator(gen Generator) *Narrator {
	return &Narrator{gen: gen}
}

// Narrate asks the model for a few practical tips about plan.
func (n *Narrator) Narrate(ctx context.Context, plan *models.Plan) (string, error) {
	text, err := n.gen.Generate(ctx, BuildPrompt(plan))
	if err != nil {
		return "", fmt.Errorf("narrate plan %s: %w", plan.ID, err)
	}
	return text, nil
}

// BuildPrompt summarises the plan for the model. Only data already in the plan
// goes into the prompt.
func BuildPrompt(plan *models.Plan) string {
	var b strings.Builder
	b.WriteString("You help a Dutch household shop cheaply. In at most five short bullet points, ")
	b.WriteString("give practical tips for this week plan: which deals to grab first, what to combine, what to store. ")
	b.WriteString("Do not invent prices or products.\n\n")
	fmt.Fprintf(&b, "Days: %d, persons: %d, stores: %s\n", plan.Days, plan.Persons, strings.Join(plan.Stores, ", "))

	for _, d := range plan.WeekPlan {
		fmt.Fprintf(&b, "Day %d: %s\n", d.Day, d.Recipe.Name)
		for _, m := range d.Matches {
			fmt.Fprintf(&b, "  deal: %s at %s for %s\n", m.Promotion.ProductName, strings.ToUpper(m.Promotion.StoreCode), utils.FormatEUR(m.Promotion.DiscountPrice))
		}
	}
	for _, g := range plan.ShoppingList.PerStore {
		fmt.Fprintf(&b, "%s: %d items, %s\n", strings.ToUpper(g.StoreCode), len(g.Items), utils.FormatEUR(g.Subtotal))
	}
	fmt.Fprintf(&b, "Total: %s\n", utils.FormatEUR(plan.ShoppingList.Total))
	if plan.Budget != nil {
		fmt.Fprintf(&b, "Budget: %s (within budget: %t)\n", utils.FormatEUR(plan.Budget.Budget), plan.Budget.WithinBudget)
	}
	if len(plan.ShoppingList.NotFound) > 0 {
		fmt.Fprintf(&b, "Not found in the selected stores: %s\n", strings.Join(plan.ShoppingList.NotFound, ", "))
	}
	return b.String()
}
