package tools

import (
	"context"
	"maps"
	"math"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/GravityKit/drip-mcp-server/errors"
	"github.com/GravityKit/drip-mcp-server/types"
	"github.com/GravityKit/drip-mcp-server/validate"
)

const (
	statusUnsubscribed = "unsubscribed"
	dayLayout          = "2006-01-02"
)

// timestampFields are tried in order for a record's unsubscribe time.
var timestampFields = []string{"unsubscribed_at", "updated_at", "created_at"}

func (d *Dispatcher) unsubscribeTools() []*Tool {
	props := func() map[string]any {
		return withPaging(map[string]any{
			"since":  dateProp("Only unsubscribes at or after this time."),
			"before": dateProp("Only unsubscribes before this time."),
		})
	}
	return []*Tool{
		{
			Tool: mcp.Tool{
				Name: "get_recent_unsubscribes",
				Description: "List unsubscribed subscribers, most recent first, optionally limited to a time range. " +
					"The range is applied to the fetched page only.",
				Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
				InputSchema: schema(props()),
			},
			Group:   GroupSubscribers,
			Execute: d.recentUnsubscribes,
		},
		{
			Tool: mcp.Tool{
				Name:        "get_unsubscribe_stats",
				Description: "Count recent unsubscribes per day (UTC), with the date range covered and the daily average.",
				Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
				InputSchema: schema(props()),
			},
			Group:   GroupSubscribers,
			Execute: d.unsubscribeStats,
		},
	}
}

func (d *Dispatcher) recentUnsubscribes(ctx context.Context, args map[string]any) (any, error) {
	recent, err := d.fetchRecentUnsubscribes(ctx, args)
	if err != nil {
		return nil, err
	}
	return recent, nil
}

func (d *Dispatcher) fetchRecentUnsubscribes(ctx context.Context, args map[string]any) (types.RecentUnsubscribes, error) {
	query, err := readListQuery(args, "page", "per_page", "sort", "direction")
	if err != nil {
		return types.RecentUnsubscribes{}, err
	}
	query.Status = statusUnsubscribed
	if query.Sort == "" {
		query.Sort = "updated_at"
	}
	if query.Direction == "" {
		query.Direction = "desc"
	}

	since, sinceText, err := readBound(args, "since")
	if err != nil {
		return types.RecentUnsubscribes{}, err
	}
	before, beforeText, err := readBound(args, "before")
	if err != nil {
		return types.RecentUnsubscribes{}, err
	}

	res, err := d.client.Subscribers().List(ctx, query)
	if err != nil {
		return types.RecentUnsubscribes{}, err
	}

	out := types.RecentUnsubscribes{
		Subscribers: make([]types.Object, 0),
		Filters:     types.UnsubscribeFilters{Since: sinceText, Before: beforeText},
		Meta:        res["meta"],
	}
	for _, s := range objects(res, subscribersKey) {
		at, source, ok := unsubscribeTime(s)
		if !since.IsZero() && (!ok || at.Before(since)) {
			continue
		}
		if !before.IsZero() && (!ok || !at.Before(before)) {
			continue
		}

		annotated := maps.Clone(s)
		info := types.UnsubscribeInfo{Source: source}
		if ok {
			info.UnsubscribedAt = at.UTC().Format(validate.TimestampLayout)
		}
		info.Status, _ = s["status"].(string)
		annotated["unsubscribe_info"] = info
		out.Subscribers = append(out.Subscribers, annotated)
	}
	out.Total = len(out.Subscribers)
	return out, nil
}

func (d *Dispatcher) unsubscribeStats(ctx context.Context, args map[string]any) (any, error) {
	recent, err := d.fetchRecentUnsubscribes(ctx, args)
	if err != nil {
		return nil, err
	}
	return unsubscribeStats(recent.Subscribers), nil
}

// unsubscribeStats groups records by the UTC day of their unsubscribe
// time. Records without any usable timestamp are not counted.
func unsubscribeStats(subscribers []types.Object) types.UnsubscribeStats {
	stats := types.UnsubscribeStats{
		ByDate: make(map[string]types.UnsubscribeDay),
	}

	for _, s := range subscribers {
		at, _, ok := unsubscribeTime(s)
		if !ok {
			continue
		}
		day := at.UTC().Format(dayLayout)

		email, _ := s["email"].(string)
		entry := stats.ByDate[day]
		entry.Count++
		entry.Subscribers = append(entry.Subscribers, types.UnsubscribeMember{
			Email:          email,
			Id:             s["id"],
			UnsubscribedAt: at.UTC().Format(validate.TimestampLayout),
		})
		stats.ByDate[day] = entry
		stats.Total++

		if stats.DateRange == nil {
			stats.DateRange = &types.DateRange{Start: day, End: day}
		} else {
			if day < stats.DateRange.Start {
				stats.DateRange.Start = day
			}
			if day > stats.DateRange.End {
				stats.DateRange.End = day
			}
		}
	}

	if days := len(stats.ByDate); days > 0 {
		stats.DailyAverage = math.Round(float64(stats.Total)/float64(days)*100) / 100
	}
	return stats
}

// unsubscribeTime returns the best available unsubscribe time and the
// field it came from.
func unsubscribeTime(subscriber types.Object) (time.Time, string, bool) {
	for _, field := range timestampFields {
		v, ok := subscriber[field]
		if !ok || v == nil {
			continue
		}
		if t, ok := validate.ParseTime(v); ok {
			return t, field, true
		}
	}
	return time.Time{}, "", false
}

func readBound(args map[string]any, key string) (time.Time, string, error) {
	v, ok := args[key]
	if !ok || v == nil {
		return time.Time{}, "", nil
	}
	if s, isStr := v.(string); isStr && s == "" {
		return time.Time{}, "", nil
	}
	t, ok := validate.ParseTime(v)
	if !ok {
		return time.Time{}, "", errors.Invalid(key, "Invalid %s date: %v", key, v)
	}
	return t, t.UTC().Format(validate.TimestampLayout), nil
}
