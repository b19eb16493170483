package types

// EventRequest is the wire shape of a tracked event or a conversion.
type EventRequest struct {
	Email      string         `json:"email"`
	Action     string         `json:"action"`
	Properties map[string]any `json:"properties"`
	OccurredAt string         `json:"occurred_at"`
}

// PurchaseRequest carries Amount in minor currency units (cents).
type PurchaseRequest struct {
	Email      string         `json:"email"`
	Amount     int64          `json:"amount"`
	Items      []any          `json:"items,omitempty"`
	Properties map[string]any `json:"properties,omitempty"`
	OccurredAt string         `json:"occurred_at"`
}
