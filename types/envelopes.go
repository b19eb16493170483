package types

import "encoding/json"

// Object is an opaque upstream record (subscriber, campaign, workflow, ...).
// Drip owns the schema of these objects, so they are kept as decoded JSON
// and every attribute survives a round trip.
type Object = map[string]any

// SubscribersEnvelope wraps one or more subscribers the way Drip expects
// them on the wire: {"subscribers":[...]}.
type SubscribersEnvelope struct {
	Subscribers []Object `json:"subscribers"`
}

// Batch is one chunk of a batch request.
type Batch struct {
	Subscribers []Object `json:"subscribers"`
}

// BatchesEnvelope is the wire shape of the batch endpoints:
// {"batches":[{"subscribers":[...]}]}.
type BatchesEnvelope struct {
	Batches []Batch `json:"batches"`
}

type TagRequest struct {
	Email string `json:"email"`
	Tag   string `json:"tag"`
}

type TagsEnvelope struct {
	Tags []TagRequest `json:"tags"`
}

type EventsEnvelope struct {
	Events []EventRequest `json:"events"`
}

type ConversionsEnvelope struct {
	Conversions []EventRequest `json:"conversions"`
}

type PurchasesEnvelope struct {
	Purchases []PurchaseRequest `json:"purchases"`
}

// SuccessResponse is returned when Drip answers with 204 No Content.
type SuccessResponse struct {
	Success bool `json:"success"`
}

// ErrorResponse covers the error bodies Drip returns.
// Errors is either a list of ErrorEntry or a map of attribute to messages.
type ErrorResponse struct {
	Errors  json.RawMessage `json:"errors"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
}

type ErrorEntry struct {
	Code      string `json:"code"`
	Attribute string `json:"attribute"`
	Message   string `json:"message"`
}
