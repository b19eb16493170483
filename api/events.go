package api

import (
	"context"

	"github.com/GravityKit/drip-mcp-server/types"
)

const (
	pathEvents      = "events"
	pathConversions = "conversions"
	pathPurchases   = "purchases"
)

// Events implements the /v2/:account_id/events API methods,
// See: https://developer.drip.com/#events
//
// Track, RecordConversion and RecordPurchase usually get 204 No Content
// back; the returned object is then nil.
type Events struct {
	api *apiClient
}

func NewEventsApi(cfg Config) *Events {
	return &Events{
		api: newApiClient(cfg),
	}
}

func (e *Events) Track(ctx context.Context, event types.EventRequest) (types.Object, error) {
	req := types.EventsEnvelope{Events: []types.EventRequest{event}}
	var res types.Object
	_, err := e.api.postJson(ctx, e.api.endpoint(pathEvents, nil), req, &res)
	return toNilErr(res, err)
}

func (e *Events) RecordConversion(ctx context.Context, conversion types.EventRequest) (types.Object, error) {
	req := types.ConversionsEnvelope{Conversions: []types.EventRequest{conversion}}
	var res types.Object
	_, err := e.api.postJson(ctx, e.api.endpoint(pathConversions, nil), req, &res)
	return toNilErr(res, err)
}

func (e *Events) RecordPurchase(ctx context.Context, purchase types.PurchaseRequest) (types.Object, error) {
	req := types.PurchasesEnvelope{Purchases: []types.PurchaseRequest{purchase}}
	var res types.Object
	_, err := e.api.postJson(ctx, e.api.endpoint(pathPurchases, nil), req, &res)
	return toNilErr(res, err)
}
