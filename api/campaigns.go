package api

import (
	"context"
	"strings"

	"github.com/GravityKit/drip-mcp-server/types"
)

const (
	pathCampaigns        = "campaigns"
	pathCampaign         = "campaigns/{id}"
	pathCampaignActivate = "campaigns/{id}/activate"
	pathCampaignPause    = "campaigns/{id}/pause"
)

// Campaigns implements the /v2/:account_id/campaigns API methods (email series),
// See: https://developer.drip.com/#campaigns
type Campaigns struct {
	api *apiClient
}

func NewCampaignsApi(cfg Config) *Campaigns {
	return &Campaigns{
		api: newApiClient(cfg),
	}
}

func (c *Campaigns) List(ctx context.Context, query types.ListQuery) (types.Object, error) {
	var res types.Object
	_, err := c.api.getJson(ctx, c.api.endpoint(pathCampaigns, listQuery(query)), &res)
	return toNilErr(res, err)
}

func (c *Campaigns) Get(ctx context.Context, campaignId string) (types.Object, error) {
	var res types.Object
	_, err := c.api.getJson(ctx, c.api.endpoint(campaignPath(pathCampaign, campaignId), nil), &res)
	return toNilErr(res, err)
}

func (c *Campaigns) Activate(ctx context.Context, campaignId string) (bool, error) {
	return succeeded(c.api.postJson(ctx, c.api.endpoint(campaignPath(pathCampaignActivate, campaignId), nil), nil, nil))
}

func (c *Campaigns) Pause(ctx context.Context, campaignId string) (bool, error) {
	return succeeded(c.api.postJson(ctx, c.api.endpoint(campaignPath(pathCampaignPause, campaignId), nil), nil, nil))
}

func campaignPath(template string, campaignId string) string {
	return strings.Replace(template, "{id}", pathParam(campaignId), 1)
}
