// internal/workers/matching/send-vendor-enquiries/models.go
package sendvendorenquiries

import "wedding-matching-workers/internal/matching"

const dateLayout = "2006-01-02"

const inputSchema = `{
  "type": "object",
  "required": ["weddingPlanId", "weddingDate", "budgetBreakdown"],
  "properties": {
    "weddingPlanId": {"type": "string", "minLength": 1},
    "weddingDate": {"type": "string", "minLength": 10},
    "replyTo": {"type": "string"},
    "perCategory": {"type": "integer", "minimum": 1, "maximum": 10},
    "budgetBreakdown": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["category", "amount"],
        "properties": {
          "category": {"type": "string", "minLength": 1},
          "amount": {"type": "number", "minimum": 1}
        }
      }
    }
  }
}`

type BudgetLine struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

type Input struct {
	WeddingPlanID   string       `json:"weddingPlanId"`
	WeddingDate     string       `json:"weddingDate"`
	ReplyTo         string       `json:"replyTo,omitempty"`
	PerCategory     int          `json:"perCategory,omitempty"`
	BudgetBreakdown []BudgetLine `json:"budgetBreakdown"`
}

type EnquiryStatus string

const (
	StatusSent      EnquiryStatus = "sent"
	StatusFailed    EnquiryStatus = "failed"
	StatusNoContact EnquiryStatus = "no_contact"
)

type Enquiry struct {
	ID        string            `json:"id"`
	VendorID  string            `json:"vendorId"`
	Category  matching.Category `json:"category"`
	Status    EnquiryStatus     `json:"status"`
	MessageID string            `json:"messageId,omitempty"`
}

// Output lists every enquiry attempted. FailedCategories names the budget lines whose
// vendors could not be looked up; they received no enquiries.
type Output struct {
	Enquiries        []Enquiry           `json:"enquiries"`
	SentCount        int                 `json:"sentCount"`
	FailedCategories []matching.Category `json:"failedCategories"`
}
