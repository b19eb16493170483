package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/GravityKit/drip-mcp-server/errors"
	"github.com/GravityKit/drip-mcp-server/mapper"
	"github.com/GravityKit/drip-mcp-server/types"
	"github.com/GravityKit/drip-mcp-server/validate"
)

const subscribersKey = "subscribers"

func (d *Dispatcher) subscriberTools() []*Tool {
	createProps := subscriberProps()
	createProps["id"] = idProp("Drip subscriber id; identifies the subscriber when email is omitted.")
	createProps["new_email"] = strProp("Change the subscriber's email to this address.")

	return []*Tool{
		{
			Tool: mcp.Tool{
				Name: "create_or_update_subscriber",
				Description: "Create a subscriber or update an existing one, matched by email or id. " +
					"Properties that are not standard subscriber fields are stored as custom fields.",
				InputSchema: schema(createProps),
			},
			Group:   GroupSubscribers,
			Execute: d.createOrUpdateSubscriber,
		},
		{
			Tool: mcp.Tool{
				Name:        "list_subscribers",
				Description: "List subscribers, optionally filtered by status and tags.",
				Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
				InputSchema: schema(withPaging(map[string]any{
					"status": strProp("active, all, unsubscribed, active_or_unsubscribed or undeliverable."),
					"tags":   tagsProp("Only subscribers with these tags."),
				})),
			},
			Group:   GroupSubscribers,
			Execute: d.listSubscribers,
		},
		{
			Tool: mcp.Tool{
				Name: "search_subscribers",
				Description: "Search one page of subscribers by partial email (case-insensitive) and tags. " +
					"Only the fetched page is searched; use page to look further.",
				Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
				InputSchema: schema(withPaging(map[string]any{
					"email":  strProp("Part of the email address to match."),
					"tags":   tagsProp("Subscribers must carry all of these tags."),
					"status": strProp("Subscriber status filter."),
				})),
			},
			Group:   GroupSubscribers,
			Execute: d.searchSubscribers,
		},
		{
			Tool: mcp.Tool{
				Name:        "get_subscriber",
				Description: "Fetch one subscriber by id or email.",
				Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
				InputSchema: schema(map[string]any{
					"id_or_email": idProp("Subscriber id or email address."),
				}, "id_or_email"),
			},
			Group:   GroupSubscribers,
			Execute: d.getSubscriber,
		},
		{
			Tool: mcp.Tool{
				Name:        "delete_subscriber",
				Description: "Permanently delete a subscriber and all of their data.",
				InputSchema: schema(map[string]any{
					"id_or_email": idProp("Subscriber id or email address."),
				}, "id_or_email"),
			},
			Group:   GroupSubscribers,
			Execute: d.deleteSubscriber,
		},
		{
			Tool: mcp.Tool{
				Name: "unsubscribe_subscriber",
				Description: "Unsubscribe a subscriber. With campaign_id, only removes them from that campaign; " +
					"otherwise unsubscribes them from all mailings.",
				InputSchema: schema(map[string]any{
					"id_or_email": idProp("Subscriber id or email address."),
					"campaign_id": idProp("Only remove the subscriber from this campaign."),
				}, "id_or_email"),
			},
			Group:   GroupSubscribers,
			Execute: d.unsubscribeSubscriber,
		},
		{
			Tool: mcp.Tool{
				Name:        "tag_subscriber",
				Description: "Apply one or more tags to a subscriber.",
				InputSchema: schema(map[string]any{
					"email": strProp("Subscriber email address."),
					"tags":  tagsProp("Tag or tags to apply."),
				}, "email", "tags"),
			},
			Group:   GroupSubscribers,
			Execute: d.tagSubscriber,
		},
		{
			Tool: mcp.Tool{
				Name:        "remove_subscriber_tag",
				Description: "Remove one tag from a subscriber.",
				InputSchema: schema(map[string]any{
					"id_or_email": idProp("Subscriber id or email address."),
					"tag":         strProp("Tag to remove."),
				}, "id_or_email", "tag"),
			},
			Group:   GroupSubscribers,
			Execute: d.removeSubscriberTag,
		},
		{
			Tool: mcp.Tool{
				Name: "batch_create_subscribers",
				Description: "Create or update many subscribers. Every email is validated first; " +
					"requests are sent in chunks of 1000.",
				InputSchema: schema(map[string]any{
					"subscribers": arrayProp("Subscribers, each with at least an email.", map[string]any{"type": "object"}),
				}, "subscribers"),
			},
			Group:   GroupSubscribers,
			Execute: d.batchCreateSubscribers,
		},
		{
			Tool: mcp.Tool{
				Name:        "batch_unsubscribe_subscribers",
				Description: "Unsubscribe many subscribers from all mailings in one request.",
				InputSchema: schema(map[string]any{
					"subscribers": arrayProp(
						"Email addresses, or objects with an email property.",
						map[string]any{"type": []string{"string", "object"}},
					),
				}, "subscribers"),
			},
			Group:   GroupSubscribers,
			Execute: d.batchUnsubscribeSubscribers,
		},
	}
}

func (d *Dispatcher) createOrUpdateSubscriber(ctx context.Context, args map[string]any) (any, error) {
	id, err := readString(args, "id", false)
	if err != nil {
		return nil, err
	}

	input := without(args, "id", "new_email")
	if v, ok := args["email"]; ok && v != nil {
		email, err := validate.Email(v)
		if err != nil {
			return nil, err
		}
		input["email"] = email
	} else if id == "" {
		return nil, errors.Invalid("email", "Either email or id is required")
	}

	subscriber, err := mapper.FormatSubscriber(input)
	if err != nil {
		return nil, err
	}
	if id != "" {
		subscriber["id"] = id
	}
	if v, ok := args["new_email"]; ok && v != nil {
		newEmail, err := validate.Email(v)
		if err != nil {
			return nil, errors.Invalid("new_email", "new_email: %v", err)
		}
		subscriber["new_email"] = newEmail
	}

	res, err := d.client.Subscribers().CreateOrUpdate(ctx, subscriber)
	if err != nil {
		return nil, err
	}
	return firstOrSuccess(res, subscribersKey), nil
}

func (d *Dispatcher) listSubscribers(ctx context.Context, args map[string]any) (any, error) {
	query, err := readListQuery(args, "page", "per_page", "sort", "direction", "status", "tags")
	if err != nil {
		return nil, err
	}
	return d.client.Subscribers().List(ctx, query)
}

func (d *Dispatcher) searchSubscribers(ctx context.Context, args map[string]any) (any, error) {
	query, err := readListQuery(args, "page", "per_page", "sort", "direction", "status")
	if err != nil {
		return nil, err
	}
	email, err := readString(args, "email", false)
	if err != nil {
		return nil, err
	}
	tags, err := readStringSlice(args, "tags")
	if err != nil {
		return nil, err
	}

	res, err := d.client.Subscribers().List(ctx, query)
	if err != nil {
		return nil, err
	}

	matches := make([]types.Object, 0)
	for _, s := range objects(res, subscribersKey) {
		if matchesEmail(s, email) && hasAllTags(s, tags) {
			matches = append(matches, s)
		}
	}

	out := types.Object{
		subscribersKey: matches,
		"total":        len(matches),
	}
	if meta, ok := res["meta"]; ok {
		out["meta"] = meta
	}
	return out, nil
}

func matchesEmail(subscriber types.Object, fragment string) bool {
	if fragment == "" {
		return true
	}
	email, _ := subscriber["email"].(string)
	return strings.Contains(strings.ToLower(email), strings.ToLower(fragment))
}

func hasAllTags(subscriber types.Object, wanted []string) bool {
	if len(wanted) == 0 {
		return true
	}
	have, _ := subscriber["tags"].([]any)
	for _, w := range wanted {
		found := false
		for _, h := range have {
			if s, ok := h.(string); ok && strings.EqualFold(s, w) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func (d *Dispatcher) getSubscriber(ctx context.Context, args map[string]any) (any, error) {
	id, err := readString(args, "id_or_email", true)
	if err != nil {
		return nil, err
	}
	res, err := d.client.Subscribers().Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return first(res, subscribersKey), nil
}

func (d *Dispatcher) deleteSubscriber(ctx context.Context, args map[string]any) (any, error) {
	id, err := readString(args, "id_or_email", true)
	if err != nil {
		return nil, err
	}
	return success(d.client.Subscribers().Delete(ctx, id))
}

func (d *Dispatcher) unsubscribeSubscriber(ctx context.Context, args map[string]any) (any, error) {
	id, err := readString(args, "id_or_email", true)
	if err != nil {
		return nil, err
	}
	campaignId, err := readString(args, "campaign_id", false)
	if err != nil {
		return nil, err
	}

	var res types.Object
	if campaignId != "" {
		res, err = d.client.Subscribers().RemoveFromCampaign(ctx, id, campaignId)
	} else {
		res, err = d.client.Subscribers().UnsubscribeAll(ctx, id)
	}
	if err != nil {
		return nil, err
	}
	return firstOrSuccess(res, subscribersKey), nil
}

func (d *Dispatcher) tagSubscriber(ctx context.Context, args map[string]any) (any, error) {
	email, err := validate.Email(args["email"])
	if err != nil {
		return nil, err
	}
	tags, err := validate.Tags(args["tags"])
	if err != nil {
		return nil, err
	}
	if len(tags) == 0 {
		return nil, errors.Invalid("tags", "At least one valid tag is required")
	}

	res, err := d.client.Subscribers().AddTags(ctx, email, tags)
	if err != nil {
		return nil, err
	}
	return orSuccess(res), nil
}

func (d *Dispatcher) removeSubscriberTag(ctx context.Context, args map[string]any) (any, error) {
	id, err := readString(args, "id_or_email", true)
	if err != nil {
		return nil, err
	}
	tags, err := validate.Tags(args["tag"])
	if err != nil {
		return nil, err
	}
	if len(tags) != 1 {
		return nil, errors.Invalid("tag", "Exactly one tag is required")
	}
	return success(d.client.Subscribers().RemoveTag(ctx, id, tags[0]))
}

func (d *Dispatcher) batchCreateSubscribers(ctx context.Context, args map[string]any) (any, error) {
	list, err := readList(args, subscribersKey, true)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, errors.Invalid(subscribersKey, "At least one subscriber is required")
	}

	subscribers := make([]types.Object, 0, len(list))
	for i, item := range list {
		in, ok := item.(map[string]any)
		if !ok {
			return nil, errors.Invalid(subscribersKey, "Subscriber at index %d must be an object", i)
		}
		email, err := validate.Email(in["email"])
		if err != nil {
			return nil, errors.Invalid(
				fmt.Sprintf("%s[%d].email", subscribersKey, i),
				"Subscriber at index %d: %v", i, err,
			)
		}

		input := without(in)
		input["email"] = email
		subscriber, err := mapper.FormatSubscriber(input)
		if err != nil {
			return nil, errors.Invalid(
				fmt.Sprintf("%s[%d]", subscribersKey, i),
				"Subscriber at index %d: %v", i, err,
			)
		}
		subscribers = append(subscribers, subscriber)
	}

	results, err := d.client.Batch().CreateSubscribers(ctx, subscribers)
	if err != nil {
		return nil, err
	}
	return single(results), nil
}

func (d *Dispatcher) batchUnsubscribeSubscribers(ctx context.Context, args map[string]any) (any, error) {
	list, err := readList(args, subscribersKey, true)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, errors.Invalid(subscribersKey, "At least one subscriber is required")
	}

	targets := make([]types.Object, 0, len(list))
	for i, item := range list {
		switch t := item.(type) {
		case string:
			targets = append(targets, types.Object{"email": strings.TrimSpace(t)})
		case map[string]any:
			targets = append(targets, types.Object{"email": t["email"]})
		default:
			return nil, errors.Invalid(
				subscribersKey,
				"Subscriber at index %d must be an email or an object with an email", i,
			)
		}
	}

	results, err := d.client.Batch().Unsubscribe(ctx, targets)
	if err != nil {
		return nil, err
	}
	return single(results), nil
}
