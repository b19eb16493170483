package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/GravityKit/drip-mcp-server/errors"
	"github.com/GravityKit/drip-mcp-server/types"
	"github.com/GravityKit/drip-mcp-server/validate"
)

func (d *Dispatcher) eventTools() []*Tool {
	return []*Tool{
		{
			Tool: mcp.Tool{
				Name:        "track_event",
				Description: "Record a custom event for a subscriber. occurred_at must be within the last 365 days.",
				InputSchema: schema(map[string]any{
					"email":       strProp("Subscriber email address."),
					"action":      strProp("Event name, e.g. Logged in."),
					"properties":  objProp("Event properties; a 'value' property must be an integer."),
					"occurred_at": dateProp("When the event happened; defaults to now."),
				}, "email", "action"),
			},
			Group:   GroupEvents,
			Execute: d.trackEvent,
		},
		{
			Tool: mcp.Tool{
				Name:        "record_conversion",
				Description: "Record a conversion for a subscriber. occurred_at must be within the last 30 days.",
				InputSchema: schema(map[string]any{
					"email":       strProp("Subscriber email address."),
					"action":      strProp("Conversion name."),
					"properties":  objProp("Conversion properties; a 'value' property must be an integer."),
					"occurred_at": dateProp("When the conversion happened; defaults to now."),
				}, "email", "action"),
			},
			Group:   GroupEvents,
			Execute: d.recordConversion,
		},
		{
			Tool: mcp.Tool{
				Name:        "record_purchase",
				Description: "Record a purchase for a subscriber. amount is in currency units (19.99), sent to Drip in cents.",
				InputSchema: schema(map[string]any{
					"email":       strProp("Subscriber email address."),
					"amount":      map[string]any{"type": "number", "minimum": 0, "description": "Purchase total, e.g. 19.99."},
					"items":       arrayProp("Line items.", map[string]any{"type": "object"}),
					"properties":  objProp("Purchase properties."),
					"occurred_at": dateProp("When the purchase happened; defaults to now."),
				}, "email", "amount"),
			},
			Group:   GroupEvents,
			Execute: d.recordPurchase,
		},
	}
}

func (d *Dispatcher) trackEvent(ctx context.Context, args map[string]any) (any, error) {
	event, err := readEvent(args, validate.EventDateOptions())
	if err != nil {
		return nil, err
	}
	res, err := d.client.Events().Track(ctx, event)
	if err != nil {
		return nil, err
	}
	return orSuccess(res), nil
}

func (d *Dispatcher) recordConversion(ctx context.Context, args map[string]any) (any, error) {
	conversion, err := readEvent(args, validate.ConversionDateOptions())
	if err != nil {
		return nil, err
	}
	res, err := d.client.Events().RecordConversion(ctx, conversion)
	if err != nil {
		return nil, err
	}
	return orSuccess(res), nil
}

func (d *Dispatcher) recordPurchase(ctx context.Context, args map[string]any) (any, error) {
	email, err := validate.Email(args["email"])
	if err != nil {
		return nil, err
	}
	if args["amount"] == nil {
		return nil, errors.Invalid("amount", "Amount is required")
	}
	amount, err := validate.Amount(args["amount"])
	if err != nil {
		return nil, err
	}
	items, err := readList(args, "items", false)
	if err != nil {
		return nil, err
	}
	props, err := validate.EventProperties(args["properties"])
	if err != nil {
		return nil, err
	}
	occurredAt, err := validate.Date(args["occurred_at"], validate.PurchaseDateOptions())
	if err != nil {
		return nil, err
	}

	res, err := d.client.Events().RecordPurchase(ctx, types.PurchaseRequest{
		Email:      email,
		Amount:     amount,
		Items:      items,
		Properties: props,
		OccurredAt: occurredAt,
	})
	if err != nil {
		return nil, err
	}
	return orSuccess(res), nil
}

func readEvent(args map[string]any, window validate.DateOptions) (types.EventRequest, error) {
	email, err := validate.Email(args["email"])
	if err != nil {
		return types.EventRequest{}, err
	}
	action, err := readString(args, "action", true)
	if err != nil {
		return types.EventRequest{}, err
	}
	props, err := validate.EventProperties(args["properties"])
	if err != nil {
		return types.EventRequest{}, err
	}
	occurredAt, err := validate.Date(args["occurred_at"], window)
	if err != nil {
		return types.EventRequest{}, err
	}
	return types.EventRequest{
		Email:      email,
		Action:     action,
		Properties: props,
		OccurredAt: occurredAt,
	}, nil
}
