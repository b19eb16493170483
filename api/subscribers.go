package api

import (
	"context"
	"net/url"
	"strings"

	"github.com/GravityKit/drip-mcp-server/types"
)

const (
	pathSubscribers              = "subscribers"
	pathSubscriber               = "subscribers/{id}"
	pathSubscriberRemove         = "subscribers/{id}/remove"
	pathSubscriberUnsubscribeAll = "subscribers/{id}/unsubscribe_all"
	pathSubscriberTag            = "subscribers/{id}/tags/{tag}"
	pathSubscribersBatches       = "subscribers/batches"
	pathUnsubscribesBatches      = "unsubscribes/batches"
	pathTags                     = "tags"

	// MaxBatchSize is the most subscribers Drip accepts in one batch call.
	MaxBatchSize = 1000
)

// Subscribers implements the /v2/:account_id/subscribers API methods,
// See: https://developer.drip.com/#subscribers
type Subscribers struct {
	api *apiClient
}

func NewSubscribersApi(cfg Config) *Subscribers {
	return &Subscribers{
		api: newApiClient(cfg),
	}
}

// CreateOrUpdate upserts one subscriber, keyed by email (or id).
func (s *Subscribers) CreateOrUpdate(ctx context.Context, subscriber types.Object) (types.Object, error) {
	req := types.SubscribersEnvelope{Subscribers: []types.Object{subscriber}}
	var res types.Object
	_, err := s.api.postJson(ctx, s.api.endpoint(pathSubscribers, nil), req, &res)
	return toNilErr(res, err)
}

func (s *Subscribers) List(ctx context.Context, query types.ListQuery) (types.Object, error) {
	var res types.Object
	_, err := s.api.getJson(ctx, s.api.endpoint(pathSubscribers, listQuery(query)), &res)
	return toNilErr(res, err)
}

func (s *Subscribers) Get(ctx context.Context, idOrEmail string) (types.Object, error) {
	var res types.Object
	_, err := s.api.getJson(ctx, s.api.endpoint(subscriberPath(pathSubscriber, idOrEmail), nil), &res)
	return toNilErr(res, err)
}

// Delete removes the subscriber permanently.
// It reports true only when Drip answers 204 No Content.
func (s *Subscribers) Delete(ctx context.Context, idOrEmail string) (bool, error) {
	return noContent(s.api.deleteJson(
		ctx, s.api.endpoint(subscriberPath(pathSubscriber, idOrEmail), nil), nil,
	))
}

// RemoveFromCampaign unsubscribes the subscriber from one campaign only.
func (s *Subscribers) RemoveFromCampaign(ctx context.Context, idOrEmail string, campaignId string) (types.Object, error) {
	query := url.Values{}
	query.Set("campaign_id", campaignId)

	var res types.Object
	_, err := s.api.postJson(
		ctx, s.api.endpoint(subscriberPath(pathSubscriberRemove, idOrEmail), query), nil, &res,
	)
	return toNilErr(res, err)
}

// UnsubscribeAll unsubscribes the subscriber from all mailings.
func (s *Subscribers) UnsubscribeAll(ctx context.Context, idOrEmail string) (types.Object, error) {
	var res types.Object
	_, err := s.api.postJson(
		ctx, s.api.endpoint(subscriberPath(pathSubscriberUnsubscribeAll, idOrEmail), nil), nil, &res,
	)
	return toNilErr(res, err)
}

// AddTags applies each tag to the subscriber. Drip answers with an empty
// body, so the returned object is usually nil.
func (s *Subscribers) AddTags(ctx context.Context, email string, tags []string) (types.Object, error) {
	req := types.TagsEnvelope{Tags: make([]types.TagRequest, 0, len(tags))}
	for _, tag := range tags {
		req.Tags = append(req.Tags, types.TagRequest{Email: email, Tag: tag})
	}

	var res types.Object
	_, err := s.api.postJson(ctx, s.api.endpoint(pathTags, nil), req, &res)
	return toNilErr(res, err)
}

// RemoveTag sends no body: the identifier and the tag are both in the path.
func (s *Subscribers) RemoveTag(ctx context.Context, idOrEmail string, tag string) (bool, error) {
	path := strings.Replace(subscriberPath(pathSubscriberTag, idOrEmail), "{tag}", pathParam(tag), 1)
	return noContent(s.api.deleteJson(ctx, s.api.endpoint(path, nil), nil))
}

// BatchCreate sends one batch; callers split larger sets into chunks
// of at most MaxBatchSize subscribers.
func (s *Subscribers) BatchCreate(ctx context.Context, subscribers []types.Object) (types.Object, error) {
	return s.batch(ctx, pathSubscribersBatches, subscribers)
}

func (s *Subscribers) BatchUnsubscribe(ctx context.Context, subscribers []types.Object) (types.Object, error) {
	return s.batch(ctx, pathUnsubscribesBatches, subscribers)
}

func (s *Subscribers) batch(ctx context.Context, path string, subscribers []types.Object) (types.Object, error) {
	req := types.BatchesEnvelope{
		Batches: []types.Batch{{Subscribers: subscribers}},
	}
	var res types.Object
	_, err := s.api.postJson(ctx, s.api.endpoint(path, nil), req, &res)
	return toNilErr(res, err)
}

func subscriberPath(template string, idOrEmail string) string {
	return strings.Replace(template, "{id}", pathParam(idOrEmail), 1)
}
