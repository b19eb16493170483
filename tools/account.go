package tools

import (
	"context"
	"fmt"
	"strconv"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/GravityKit/drip-mcp-server/types"
)

const (
	formsKey      = "forms"
	broadcastsKey = "broadcasts"
	accountsKey   = "accounts"
)

func (d *Dispatcher) formTools() []*Tool {
	return []*Tool{
		{
			Tool: mcp.Tool{
				Name:        "list_forms",
				Description: "List the account's opt-in forms.",
				Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
				InputSchema: schema(map[string]any{}),
			},
			Group:   GroupForms,
			Execute: d.listForms,
		},
		{
			Tool: mcp.Tool{
				Name:        "get_form",
				Description: "Fetch one opt-in form.",
				Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
				InputSchema: schema(map[string]any{"form_id": idProp("Form id.")}, "form_id"),
			},
			Group:   GroupForms,
			Execute: d.getForm,
		},
	}
}

func (d *Dispatcher) broadcastTools() []*Tool {
	return []*Tool{
		{
			Tool: mcp.Tool{
				Name:        "list_broadcasts",
				Description: "List single-email broadcasts. Broadcasts are read-only.",
				Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
				InputSchema: schema(withPaging(map[string]any{
					"status": strProp("all, draft, scheduled or sent."),
				})),
			},
			Group:   GroupBroadcasts,
			Execute: d.listBroadcasts,
		},
		{
			Tool: mcp.Tool{
				Name:        "get_broadcast",
				Description: "Fetch one broadcast.",
				Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
				InputSchema: schema(map[string]any{"broadcast_id": idProp("Broadcast id.")}, "broadcast_id"),
			},
			Group:   GroupBroadcasts,
			Execute: d.getBroadcast,
		},
	}
}

func (d *Dispatcher) accountTools() []*Tool {
	return []*Tool{
		{
			Tool: mcp.Tool{
				Name:        "get_account",
				Description: "Fetch the configured Drip account.",
				Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
				InputSchema: schema(map[string]any{}),
			},
			Group:   GroupAccount,
			Execute: d.getAccount,
		},
		{
			Tool: mcp.Tool{
				Name:        "list_custom_fields",
				Description: "List the custom field identifiers used in the account.",
				Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
				InputSchema: schema(map[string]any{}),
			},
			Group:   GroupAccount,
			Execute: d.listCustomFields,
		},
	}
}

func (d *Dispatcher) listForms(ctx context.Context, _ map[string]any) (any, error) {
	return d.client.Forms().List(ctx)
}

func (d *Dispatcher) getForm(ctx context.Context, args map[string]any) (any, error) {
	id, err := readString(args, "form_id", true)
	if err != nil {
		return nil, err
	}
	res, err := d.client.Forms().Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return first(res, formsKey), nil
}

func (d *Dispatcher) listBroadcasts(ctx context.Context, args map[string]any) (any, error) {
	query, err := readListQuery(args, "page", "per_page", "sort", "direction", "status")
	if err != nil {
		return nil, err
	}
	return d.client.Broadcasts().List(ctx, query)
}

func (d *Dispatcher) getBroadcast(ctx context.Context, args map[string]any) (any, error) {
	id, err := readString(args, "broadcast_id", true)
	if err != nil {
		return nil, err
	}
	res, err := d.client.Broadcasts().Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return first(res, broadcastsKey), nil
}

// getAccount narrows the unscoped account listing to the configured
// account. The raw listing is returned when no entry matches.
func (d *Dispatcher) getAccount(ctx context.Context, _ map[string]any) (any, error) {
	accounts := d.client.Accounts()
	res, err := accounts.List(ctx)
	if err != nil {
		return nil, err
	}

	for _, account := range objects(res, accountsKey) {
		if idString(account["id"]) == accounts.AccountId() {
			return types.Object{accountsKey: []any{account}}, nil
		}
	}
	return res, nil
}

func (d *Dispatcher) listCustomFields(ctx context.Context, _ map[string]any) (any, error) {
	return d.client.Accounts().CustomFields(ctx)
}

// idString formats JSON ids so that "123" and 123 compare equal.
func idString(v any) string {
	switch t := v.(type) {
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case nil:
		return ""
	}
	return fmt.Sprint(v)
}
