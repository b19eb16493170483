package api

import (
	"context"
	"strings"

	"github.com/GravityKit/drip-mcp-server/types"
)

const (
	pathWorkflows           = "workflows"
	pathWorkflow            = "workflows/{id}"
	pathWorkflowActivate    = "workflows/{id}/activate"
	pathWorkflowPause       = "workflows/{id}/pause"
	pathWorkflowSubscribers = "workflows/{id}/subscribers"
	pathWorkflowSubscriber  = "workflows/{id}/subscribers/{subscriber}"
)

// Workflows implements the /v2/:account_id/workflows API methods,
// See: https://developer.drip.com/#workflows
type Workflows struct {
	api *apiClient
}

func NewWorkflowsApi(cfg Config) *Workflows {
	return &Workflows{
		api: newApiClient(cfg),
	}
}

func (w *Workflows) List(ctx context.Context, query types.ListQuery) (types.Object, error) {
	var res types.Object
	_, err := w.api.getJson(ctx, w.api.endpoint(pathWorkflows, listQuery(query)), &res)
	return toNilErr(res, err)
}

func (w *Workflows) Get(ctx context.Context, workflowId string) (types.Object, error) {
	var res types.Object
	_, err := w.api.getJson(ctx, w.api.endpoint(workflowPath(pathWorkflow, workflowId), nil), &res)
	return toNilErr(res, err)
}

// Activate and Pause report true for any 2xx answer.
func (w *Workflows) Activate(ctx context.Context, workflowId string) (bool, error) {
	status, err := w.api.postJson(ctx, w.api.endpoint(workflowPath(pathWorkflowActivate, workflowId), nil), nil, nil)
	return succeeded(status, err)
}

func (w *Workflows) Pause(ctx context.Context, workflowId string) (bool, error) {
	status, err := w.api.postJson(ctx, w.api.endpoint(workflowPath(pathWorkflowPause, workflowId), nil), nil, nil)
	return succeeded(status, err)
}

// Start adds a subscriber to the workflow, creating the subscriber
// if needed.
func (w *Workflows) Start(ctx context.Context, workflowId string, subscriber types.Object) (types.Object, error) {
	req := types.SubscribersEnvelope{Subscribers: []types.Object{subscriber}}
	var res types.Object
	_, err := w.api.postJson(ctx, w.api.endpoint(workflowPath(pathWorkflowSubscribers, workflowId), nil), req, &res)
	return toNilErr(res, err)
}

// RemoveSubscriber reports true only when Drip answers 204 No Content.
func (w *Workflows) RemoveSubscriber(ctx context.Context, workflowId string, idOrEmail string) (bool, error) {
	path := strings.Replace(workflowPath(pathWorkflowSubscriber, workflowId), "{subscriber}", pathParam(idOrEmail), 1)
	return noContent(w.api.deleteJson(ctx, w.api.endpoint(path, nil), nil))
}

func workflowPath(template string, workflowId string) string {
	return strings.Replace(template, "{id}", pathParam(workflowId), 1)
}
