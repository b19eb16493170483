package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const campaignsKey = "campaigns"

func (d *Dispatcher) campaignTools() []*Tool {
	idSchema := func() map[string]any {
		return schema(map[string]any{"campaign_id": idProp("Campaign (email series) id.")}, "campaign_id")
	}
	return []*Tool{
		{
			Tool: mcp.Tool{
				Name:        "list_campaigns",
				Description: "List email series campaigns.",
				Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
				InputSchema: schema(withPaging(map[string]any{
					"status": strProp("all, draft, active or paused."),
				})),
			},
			Group:   GroupCampaigns,
			Execute: d.listCampaigns,
		},
		{
			Tool: mcp.Tool{
				Name:        "get_campaign",
				Description: "Fetch one email series campaign.",
				Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
				InputSchema: idSchema(),
			},
			Group:   GroupCampaigns,
			Execute: d.getCampaign,
		},
		{
			Tool: mcp.Tool{
				Name:        "activate_campaign",
				Description: "Activate an email series campaign.",
				InputSchema: idSchema(),
			},
			Group:   GroupCampaigns,
			Execute: d.activateCampaign,
		},
		{
			Tool: mcp.Tool{
				Name:        "pause_campaign",
				Description: "Pause an email series campaign.",
				InputSchema: idSchema(),
			},
			Group:   GroupCampaigns,
			Execute: d.pauseCampaign,
		},
	}
}

func (d *Dispatcher) listCampaigns(ctx context.Context, args map[string]any) (any, error) {
	query, err := readListQuery(args, "page", "per_page", "sort", "direction", "status")
	if err != nil {
		return nil, err
	}
	return d.client.Campaigns().List(ctx, query)
}

func (d *Dispatcher) getCampaign(ctx context.Context, args map[string]any) (any, error) {
	id, err := readString(args, "campaign_id", true)
	if err != nil {
		return nil, err
	}
	res, err := d.client.Campaigns().Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return first(res, campaignsKey), nil
}

func (d *Dispatcher) activateCampaign(ctx context.Context, args map[string]any) (any, error) {
	id, err := readString(args, "campaign_id", true)
	if err != nil {
		return nil, err
	}
	return success(d.client.Campaigns().Activate(ctx, id))
}

func (d *Dispatcher) pauseCampaign(ctx context.Context, args map[string]any) (any, error) {
	id, err := readString(args, "campaign_id", true)
	if err != nil {
		return nil, err
	}
	return success(d.client.Campaigns().Pause(ctx, id))
}
