package tools

import (
	"github.com/GravityKit/drip-mcp-server/types"
)

// first unwraps {key:[x, ...]} to x. When the collection is missing or
// empty the response is returned as is.
func first(res types.Object, key string) any {
	if list, ok := res[key].([]any); ok && len(list) > 0 {
		return list[0]
	}
	return res
}

// orSuccess stands in {success:true} for an empty (204) response.
func orSuccess(res types.Object) any {
	if res == nil {
		return types.SuccessResponse{Success: true}
	}
	return res
}

// firstOrSuccess is first for responses that may be empty.
func firstOrSuccess(res types.Object, key string) any {
	if res == nil {
		return types.SuccessResponse{Success: true}
	}
	return first(res, key)
}

func success(ok bool, err error) (any, error) {
	if err != nil {
		return nil, err
	}
	return types.SuccessResponse{Success: ok}, nil
}

// single returns the only element of results directly, or the whole
// sequence when there is more than one.
func single(results []types.Object) any {
	shaped := make([]any, 0, len(results))
	for _, r := range results {
		shaped = append(shaped, orSuccess(r))
	}
	if len(shaped) == 1 {
		return shaped[0]
	}
	return shaped
}

// objects returns the records stored under res[key].
func objects(res types.Object, key string) []types.Object {
	list, _ := res[key].([]any)
	out := make([]types.Object, 0, len(list))
	for _, item := range list {
		if obj, ok := item.(map[string]any); ok {
			out = append(out, obj)
		}
	}
	return out
}
