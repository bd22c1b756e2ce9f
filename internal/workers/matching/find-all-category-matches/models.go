// internal/workers/matching/find-all-category-matches/models.go
package findallcategorymatches

import (
	"time"

	"wedding-matching-workers/internal/matching"
)

const EventRecommendationsReady = "wedding.recommendations.ready"

const inputSchema = `{
  "type": "object",
  "required": ["weddingPlanId"],
  "properties": {
    "weddingPlanId": {"type": "string", "minLength": 1}
  }
}`

type Input struct {
	WeddingPlanID string `json:"weddingPlanId"`
}

type Output struct {
	MatchesByCategory map[matching.Category][]matching.VendorMatchResult `json:"matchesByCategory"`
	TotalMatches      int                                                `json:"totalMatches"`
	FailedCategories  []matching.Category                                `json:"failedCategories"`
	EventID           string                                             `json:"eventId,omitempty"`
}

// RecommendationsReadyEvent tells downstream services that fresh recommendations are cached.
type RecommendationsReadyEvent struct {
	EventID          string                    `json:"eventId"`
	WeddingPlanID    string                    `json:"weddingPlanId"`
	TotalMatches     int                       `json:"totalMatches"`
	CountByCategory  map[matching.Category]int `json:"countByCategory"`
	FailedCategories []matching.Category       `json:"failedCategories"`
	OccurredAt       time.Time                 `json:"occurredAt"`
}
