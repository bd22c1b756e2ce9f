// internal/workers/matching/find-vendor-matches/models.go
package findvendormatches

import "wedding-matching-workers/internal/matching"

const inputSchema = `{
  "type": "object",
  "required": ["weddingPlanId", "category"],
  "properties": {
    "weddingPlanId": {"type": "string", "minLength": 1},
    "category": {"type": "string", "minLength": 1},
    "filters": {
      "type": "object",
      "properties": {
        "categoryBudget": {"type": "number", "minimum": 0}
      }
    },
    "options": {
      "type": "object",
      "properties": {
        "includeExcluded": {"type": "boolean"},
        "minScore": {"type": "integer", "minimum": 0, "maximum": 100},
        "limit": {"type": "integer", "minimum": 1},
        "useCache": {"type": "boolean"}
      }
    }
  }
}`

type Input struct {
	WeddingPlanID string        `json:"weddingPlanId"`
	Category      string        `json:"category"`
	Filters       *InputFilters `json:"filters,omitempty"`
	Options       *InputOptions `json:"options,omitempty"`
}

type InputFilters struct {
	CategoryBudget float64 `json:"categoryBudget,omitempty"`
}

type InputOptions struct {
	IncludeExcluded bool  `json:"includeExcluded"`
	MinScore        *int  `json:"minScore,omitempty"`
	Limit           int   `json:"limit,omitempty"`
	UseCache        *bool `json:"useCache,omitempty"`
}

type Output struct {
	Category           matching.Category            `json:"category"`
	Matches            []matching.VendorMatchResult `json:"matches"`
	TopRecommendations []matching.VendorMatchResult `json:"topRecommendations"`
	ExcludedCount      int                          `json:"excludedCount"`
	CategoryBudget     float64                      `json:"categoryBudget"`
	FromCache          bool                         `json:"fromCache"`
}
