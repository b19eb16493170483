package tools

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/GravityKit/drip-mcp-server/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_createOrUpdateSubscriber(t *testing.T) {
	d, f := newTestDispatcher(t, map[string]route{
		"POST " + accountPath + "subscribers": {code: 200, body: `{"subscribers":[{"id":"z1","email":"ada@b.com"}]}`},
	})

	res, err := d.Invoke(context.Background(), "create_or_update_subscriber", map[string]any{
		"email":         " Ada@B.com ",
		"first_name":    "Ada",
		"company":       "Acme",
		"custom_fields": map[string]any{"company": "Old"},
		"tags":          "vip",
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"id": "z1", "email": "ada@b.com"}, res)

	_, body := f.request(0)
	sent := decode(t, body)["subscribers"].([]any)[0].(map[string]any)
	assert.Equal(t, "ada@b.com", sent["email"])
	assert.Equal(t, "Ada", sent["first_name"])
	assert.Equal(t, map[string]any{"company": "Acme"}, sent["custom_fields"])
	assert.Equal(t, []any{"vip"}, sent["tags"])
	assert.NotContains(t, sent, "company")
}

func Test_createOrUpdateSubscriber_by_id(t *testing.T) {
	d, f := newTestDispatcher(t, map[string]route{
		"POST " + accountPath + "subscribers": {code: 200, body: `{"meta":{}}`},
	})

	res, err := d.Invoke(context.Background(), "create_or_update_subscriber", map[string]any{
		"id":        "z1",
		"new_email": "New@B.com",
	})
	require.NoError(t, err)
	assert.Equal(t, types.Object{"meta": map[string]any{}}, res)

	_, body := f.request(0)
	sent := decode(t, body)["subscribers"].([]any)[0].(map[string]any)
	assert.Equal(t, map[string]any{"id": "z1", "new_email": "new@b.com"}, sent)
}

func Test_searchSubscribers(t *testing.T) {
	d, f := newTestDispatcher(t, map[string]route{
		"GET " + accountPath + "subscribers": {code: 200, body: `{
			"subscribers":[
				{"email":"alice@acme.com","tags":["Lead","vip"]},
				{"email":"bob@acme.com","tags":["lead"]},
				{"email":"carol@other.com","tags":["lead","vip"]}
			],
			"meta":{"page":1,"total_pages":3}
		}`},
	})

	res, err := d.Invoke(context.Background(), "search_subscribers", map[string]any{
		"email":    "ACME",
		"tags":     []any{"lead", "VIP"},
		"per_page": 100.0,
	})
	require.NoError(t, err)

	out := res.(types.Object)
	matches := out["subscribers"].([]types.Object)
	require.Len(t, matches, 1)
	assert.Equal(t, "alice@acme.com", matches[0]["email"])
	assert.Equal(t, 1, out["total"])
	assert.Equal(t, map[string]any{"page": 1.0, "total_pages": 3.0}, out["meta"])

	req, _ := f.request(0)
	assert.Equal(t, "per_page=100", req.URL.RawQuery)
	assert.Equal(t, 1, f.calls())
}

func Test_getSubscriber_encodes_identifier(t *testing.T) {
	d, f := newTestDispatcher(t, map[string]route{
		"GET " + accountPath + "subscribers/a b@c.com": {code: 200, body: `{"subscribers":[{"id":"1"}]}`},
	})

	res, err := d.Invoke(context.Background(), "get_subscriber", map[string]any{"id_or_email": "a b@c.com"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"id": "1"}, res)

	req, _ := f.request(0)
	assert.Equal(t, accountPath+"subscribers/a%20b@c.com", req.URL.EscapedPath())
}

func Test_deleteSubscriber(t *testing.T) {
	d, f := newTestDispatcher(t, map[string]route{
		"DELETE " + accountPath + "subscribers/a@b.com": {code: 204},
	})

	res, err := d.Invoke(context.Background(), "delete_subscriber", map[string]any{"id_or_email": "a@b.com"})
	require.NoError(t, err)
	assert.Equal(t, types.SuccessResponse{Success: true}, res)

	req, _ := f.request(0)
	assert.Equal(t, http.MethodDelete, req.Method)
}

func Test_unsubscribeSubscriber_paths(t *testing.T) {
	testCases := []struct {
		name        string
		args        map[string]any
		expectPath  string
		expectQuery string
	}{
		{
			name:       "everything",
			args:       map[string]any{"id_or_email": "a@b.com"},
			expectPath: accountPath + "subscribers/a@b.com/unsubscribe_all",
		},
		{
			name:        "one campaign",
			args:        map[string]any{"id_or_email": "a@b.com", "campaign_id": "123"},
			expectPath:  accountPath + "subscribers/a@b.com/remove",
			expectQuery: "campaign_id=123",
		},
		{
			name:        "numeric campaign id",
			args:        map[string]any{"id_or_email": "a@b.com", "campaign_id": 123.0},
			expectPath:  accountPath + "subscribers/a@b.com/remove",
			expectQuery: "campaign_id=123",
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			d, f := newTestDispatcher(t, nil)

			_, err := d.Invoke(context.Background(), "unsubscribe_subscriber", tt.args)
			require.NoError(t, err)
			require.Equal(t, 1, f.calls())

			req, body := f.request(0)
			assert.Equal(t, http.MethodPost, req.Method)
			assert.Equal(t, tt.expectPath, req.URL.Path)
			assert.Equal(t, tt.expectQuery, req.URL.RawQuery)
			assert.Empty(t, body)
		})
	}
}

func Test_tagSubscriber(t *testing.T) {
	d, f := newTestDispatcher(t, map[string]route{
		"POST " + accountPath + "tags": {code: 201},
	})

	res, err := d.Invoke(context.Background(), "tag_subscriber", map[string]any{
		"email": "A@b.com",
		"tags":  []any{" lead ", nil, "vip"},
	})
	require.NoError(t, err)
	assert.Equal(t, types.SuccessResponse{Success: true}, res)

	_, body := f.request(0)
	assert.JSONEq(t,
		`{"tags":[{"email":"a@b.com","tag":"lead"},{"email":"a@b.com","tag":"vip"}]}`,
		body,
	)
}

func Test_removeSubscriberTag(t *testing.T) {
	d, f := newTestDispatcher(t, map[string]route{
		"DELETE " + accountPath + "subscribers/a@b.com/tags/big spender": {code: 204},
	})

	res, err := d.Invoke(context.Background(), "remove_subscriber_tag", map[string]any{
		"id_or_email": "a@b.com",
		"tag":         "big spender",
	})
	require.NoError(t, err)
	assert.Equal(t, types.SuccessResponse{Success: true}, res)

	_, body := f.request(0)
	assert.Empty(t, body)
}

func Test_batchCreateSubscribers_chunks(t *testing.T) {
	testCases := []struct {
		name        string
		count       int
		expectCalls int
		expectSeq   bool
	}{
		{name: "500 is one call", count: 500, expectCalls: 1},
		{name: "1000 is one call", count: 1000, expectCalls: 1},
		{name: "1500 is two calls", count: 1500, expectCalls: 2, expectSeq: true},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			d, f := newTestDispatcher(t, map[string]route{
				"POST " + accountPath + "subscribers/batches": {code: 201, body: `{}`},
			})

			list := make([]any, tt.count)
			for i := range list {
				list[i] = map[string]any{"email": fmt.Sprintf("User%d@Example.com", i), "plan": "pro"}
			}

			res, err := d.Invoke(context.Background(), "batch_create_subscribers", map[string]any{"subscribers": list})
			require.NoError(t, err)
			require.Equal(t, tt.expectCalls, f.calls())

			seq, isSeq := res.([]any)
			assert.Equal(t, tt.expectSeq, isSeq)
			if isSeq {
				assert.Len(t, seq, tt.expectCalls)
			}

			sizes := 0
			for i := 0; i < f.calls(); i++ {
				_, body := f.request(i)
				batch := decode(t, body)["batches"].([]any)[0].(map[string]any)
				subs := batch["subscribers"].([]any)
				if i == 0 {
					first := subs[0].(map[string]any)
					assert.Equal(t, "user0@example.com", first["email"])
					assert.Equal(t, map[string]any{"plan": "pro"}, first["custom_fields"])
				}
				sizes += len(subs)
			}
			assert.Equal(t, tt.count, sizes)
		})
	}
}

func Test_batchCreateSubscribers_fails_fast(t *testing.T) {
	d, f := newTestDispatcher(t, nil)

	_, err := d.Invoke(context.Background(), "batch_create_subscribers", map[string]any{
		"subscribers": []any{
			map[string]any{"email": "ok@b.com"},
			map[string]any{"email": "broken"},
			map[string]any{"email": "also-broken"},
		},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "index 1")
	assert.Equal(t, 0, f.calls())
}

func Test_batchUnsubscribeSubscribers(t *testing.T) {
	d, f := newTestDispatcher(t, map[string]route{
		"POST " + accountPath + "unsubscribes/batches": {code: 204},
	})

	res, err := d.Invoke(context.Background(), "batch_unsubscribe_subscribers", map[string]any{
		"subscribers": []any{"a@b.com", map[string]any{"email": "c@d.com", "id": "x"}},
	})
	require.NoError(t, err)
	assert.Equal(t, types.SuccessResponse{Success: true}, res)
	require.Equal(t, 1, f.calls())

	_, body := f.request(0)
	assert.JSONEq(t, `{"batches":[{"subscribers":[{"email":"a@b.com"},{"email":"c@d.com"}]}]}`, body)
}
