package handlers

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"supermarkt/models"
	"supermarkt/planner"
	"supermarkt/utils"
)

// PlanRequest is the JSON body of POST /plan. Omitted fields take the
// planner defaults.
type PlanRequest struct {
	Days        *int             `json:"days"`
	Persons     *int             `json:"persons"`
	Stores      []string         `json:"stores"`
	Preferences []string         `json:"preferences"`
	Diet        string           `json:"diet"`
	Budget      *decimal.Decimal `json:"budget"`
	Basics      *bool            `json:"basics"`
	Notes       bool             `json:"notes"`
}

func (r PlanRequest) toPlanner() planner.Request {
	req := planner.NewRequest()
	if r.Days != nil {
		req.Days = *r.Days
	}
	if r.Persons != nil {
		req.Persons = *r.Persons
	}
	if r.Basics != nil {
		req.Basics = *r.Basics
	}
	req.Stores = utils.NormalizeList(r.Stores)
	req.Preferences = utils.NormalizeList(r.Preferences)
	req.Diet = strings.TrimSpace(r.Diet)
	req.Budget = r.Budget
	return req
}

// HandleCreatePlan builds a week menu with a store-grouped shopping list.
// POST /api/v1/plan (add ?format=text for the printable report)
func (h *Handler) HandleCreatePlan(c *fiber.Ctx) error {
	var body PlanRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&body); err != nil {
			return badRequest(c, "Invalid request body")
		}
	}
	req := body.toPlanner()
	if err := req.Validate(); err != nil {
		return fail(c, err, "Invalid plan request")
	}

	var plan *models.Plan
	err := h.withRepo(c, func(ctx context.Context, repo Repository) error {
		var err error
		plan, err = planner.New(repo, h.cache()).Plan(ctx, req)
		if err != nil {
			return fail(c, err, "Failed to create plan")
		}
		return nil
	})
	if err != nil || plan == nil {
		return err
	}

	// the connection is back in the pool before the model is called
	if body.Notes && h.opts.Narrator != nil {
		planner.AddNotes(c.UserContext(), h.opts.Narrator, plan)
	}

	if c.Query("format") == "text" {
		c.Type("txt", "utf-8")
		return c.SendString(planner.RenderText(plan))
	}
	return c.JSON(fiber.Map{"success": true, "data": plan})
}
