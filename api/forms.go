package api

import (
	"context"
	"strings"

	"github.com/GravityKit/drip-mcp-server/types"
)

const (
	pathForms = "forms"
	pathForm  = "forms/{id}"
)

// Forms implements the /v2/:account_id/forms API methods,
// See: https://developer.drip.com/#forms
type Forms struct {
	api *apiClient
}

func NewFormsApi(cfg Config) *Forms {
	return &Forms{
		api: newApiClient(cfg),
	}
}

func (f *Forms) List(ctx context.Context) (types.Object, error) {
	var res types.Object
	_, err := f.api.getJson(ctx, f.api.endpoint(pathForms, nil), &res)
	return toNilErr(res, err)
}

func (f *Forms) Get(ctx context.Context, formId string) (types.Object, error) {
	var res types.Object
	_, err := f.api.getJson(ctx, f.api.endpoint(strings.Replace(pathForm, "{id}", pathParam(formId), 1), nil), &res)
	return toNilErr(res, err)
}
