package api

import (
	"context"
	"strings"

	"github.com/GravityKit/drip-mcp-server/types"
)

const (
	pathBroadcasts = "broadcasts"
	pathBroadcast  = "broadcasts/{id}"
)

// Broadcasts implements the read-only /v2/:account_id/broadcasts API methods,
// See: https://developer.drip.com/#broadcasts
type Broadcasts struct {
	api *apiClient
}

func NewBroadcastsApi(cfg Config) *Broadcasts {
	return &Broadcasts{
		api: newApiClient(cfg),
	}
}

func (b *Broadcasts) List(ctx context.Context, query types.ListQuery) (types.Object, error) {
	var res types.Object
	_, err := b.api.getJson(ctx, b.api.endpoint(pathBroadcasts, listQuery(query)), &res)
	return toNilErr(res, err)
}

func (b *Broadcasts) Get(ctx context.Context, broadcastId string) (types.Object, error) {
	var res types.Object
	_, err := b.api.getJson(ctx, b.api.endpoint(strings.Replace(pathBroadcast, "{id}", pathParam(broadcastId), 1), nil), &res)
	return toNilErr(res, err)
}
