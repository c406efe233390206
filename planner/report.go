package planner

import (
	"fmt"
	"strings"

	"supermarkt/models"
	"supermarkt/utils"
)

// MaxSteps is how many preparation steps the text report prints per recipe.
const MaxSteps = 5

var rule = strings.Repeat("=", 60)

// RenderText formats a plan as the plain-text report handed to shoppers.
func RenderText(plan *models.Plan) string {
	var b strings.Builder
	header := func(title string) {
		fmt.Fprintf(&b, "\n%s\n%s\n%s\n", rule, title, rule)
	}

	fmt.Fprintf(&b, "%s\nWEEK PLAN: %d days, %d persons\n%s\n", rule, plan.Days, plan.Persons, rule)

	for _, d := range plan.WeekPlan {
		fmt.Fprintf(&b, "\n--- DAY %d: %s (%d min) ---\n", d.Day, d.Recipe.Name, d.Recipe.PrepMinutes)
		b.WriteString("\nINGREDIENTS:\n")
		for _, ing := range d.Recipe.Ingredients {
			fmt.Fprintf(&b, "  - %s\n", strings.TrimSpace(ing.Quantity+" "+ing.Name))
		}
		b.WriteString("\nPREPARATION:\n")
		for i, step := range d.Recipe.Steps {
			if i == MaxSteps {
				break
			}
			fmt.Fprintf(&b, "  %d. %s\n", i+1, step)
		}
		if len(d.Matches) > 0 {
			b.WriteString("\nDEALS FOR THIS RECIPE:\n")
			for _, m := range d.Matches {
				fmt.Fprintf(&b, "  * %s\n", dealLine(m.Promotion))
			}
		}
	}

	if len(plan.Basics) > 0 {
		header("BASICS")
		for _, basic := range plan.Basics {
			if basic.Product == nil {
				fmt.Fprintf(&b, "  - %s: not found\n", basic.Staple)
				continue
			}
			fmt.Fprintf(&b, "  - %s %s (%s)\n", utils.Truncate(basic.Product.ProductName, 40), utils.FormatEUR(basic.Product.Price), strings.ToUpper(basic.Product.StoreCode))
		}
	}

	header("SHOPPING LIST PER SUPERMARKET")
	for _, g := range plan.ShoppingList.PerStore {
		fmt.Fprintf(&b, "\n### %s - Subtotal: %s ###\n", strings.ToUpper(g.StoreCode), utils.FormatEUR(g.Subtotal))
		for _, it := range g.Items {
			fmt.Fprintf(&b, "  [ ] %s\n", utils.Truncate(it.ProductName, 45))
			line := "      " + utils.FormatEUR(it.Price)
			if it.PromoType != nil && *it.PromoType != "" {
				line += " (" + *it.PromoType + ")"
			}
			if it.IsDiscounted {
				line += " [DEAL]"
			}
			b.WriteString(line + "\n")
		}
	}
	if len(plan.ShoppingList.NotFound) > 0 {
		fmt.Fprintf(&b, "\nNot found: %s\n", strings.Join(plan.ShoppingList.NotFound, ", "))
	}

	header("ESTIMATED TOTAL: " + utils.FormatEUR(plan.ShoppingList.Total))
	if bc := plan.Budget; bc != nil {
		if bc.WithinBudget {
			fmt.Fprintf(&b, "Budget %s: %s left\n", utils.FormatEUR(bc.Budget), utils.FormatEUR(bc.Surplus()))
		} else {
			fmt.Fprintf(&b, "Budget %s: %s over budget\n", utils.FormatEUR(bc.Budget), utils.FormatEUR(bc.Deficit()))
		}
	}

	b.WriteString("\nNOTE:\n")
	b.WriteString("- \"1+1 gratis\" means you have to buy 2\n")
	b.WriteString("- \"2e halve prijs\" means buy 2, pay 1.5x the price\n")

	if plan.Notes != "" {
		b.WriteString("\n" + plan.Notes + "\n")
	}
	return b.String()
}

func dealLine(p models.Promotion) string {
	line := fmt.Sprintf("%s: %s %s", strings.ToUpper(p.StoreCode), utils.Truncate(p.ProductName, 35), utils.FormatEUR(p.DiscountPrice))
	if p.DiscountPercent != nil {
		line += fmt.Sprintf(" -%d%%", *p.DiscountPercent)
	}
	if p.PromoType != "" {
		line += " [" + p.PromoType + "]"
	}
	return line
}
