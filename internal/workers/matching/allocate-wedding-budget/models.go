// internal/workers/matching/allocate-wedding-budget/models.go
package allocateweddingbudget

import "wedding-matching-workers/internal/matching"

const inputSchema = `{
  "type": "object",
  "required": ["totalBudget", "guestCount"],
  "properties": {
    "totalBudget": {"type": "number"},
    "guestCount": {"type": "integer"}
  }
}`

type Input struct {
	TotalBudget float64 `json:"totalBudget"`
	GuestCount  int     `json:"guestCount"`
}

type Output struct {
	TotalBudget   float64                    `json:"totalBudget"`
	GuestCount    int                        `json:"guestCount"`
	VenueBudget   float64                    `json:"venueBudget"`
	MaxPlatePrice float64                    `json:"maxPlatePrice"`
	Breakdown     []matching.BudgetBreakdown `json:"breakdown"`
	Suggestions   []string                   `json:"suggestions"`
}
