// internal/workers/matching/get-cached-recommendations/models.go
package getcachedrecommendations

import "wedding-matching-workers/internal/matching"

const inputSchema = `{
  "type": "object",
  "required": ["weddingPlanId"],
  "properties": {
    "weddingPlanId": {"type": "string", "minLength": 1},
    "category": {"type": "string"}
  }
}`

type Input struct {
	WeddingPlanID string `json:"weddingPlanId"`
	Category      string `json:"category,omitempty"`
}

type Output struct {
	Recommendations []matching.VendorMatchResult `json:"recommendations"`
	Count           int                          `json:"count"`
}
