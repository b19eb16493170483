package tools

import (
	"strconv"
	"strings"

	"github.com/GravityKit/drip-mcp-server/errors"
	"github.com/GravityKit/drip-mcp-server/types"
	"github.com/GravityKit/drip-mcp-server/validate"
)

// readString reads a trimmed string argument. Numbers are accepted and
// formatted, since identifiers often arrive as JSON numbers.
func readString(args map[string]any, key string, required bool) (string, error) {
	v, ok := args[key]
	if !ok || v == nil {
		if required {
			return "", errors.Invalid(key, "Parameter %q is required", key)
		}
		return "", nil
	}

	var s string
	switch t := v.(type) {
	case string:
		s = strings.TrimSpace(t)
	default:
		n, isNum := validate.Number(v)
		if !isNum {
			return "", errors.Invalid(key, "Parameter %q must be a string", key)
		}
		s = strconv.FormatFloat(n, 'f', -1, 64)
	}

	if s == "" && required {
		return "", errors.Invalid(key, "Parameter %q cannot be empty", key)
	}
	return s, nil
}

// readInt reads an optional non-negative integer; 0 means "not set".
func readInt(args map[string]any, key string) (int, error) {
	v, ok := args[key]
	if !ok || v == nil {
		return 0, nil
	}

	n, isNum := validate.Number(v)
	if !isNum {
		s, isStr := v.(string)
		if !isStr {
			return 0, errors.Invalid(key, "Parameter %q must be an integer", key)
		}
		parsed, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return 0, errors.Invalid(key, "Parameter %q must be an integer", key)
		}
		n = float64(parsed)
	}
	if n < 0 || n != float64(int(n)) {
		return 0, errors.Invalid(key, "Parameter %q must be a non-negative integer", key)
	}
	return int(n), nil
}

// readStringSlice accepts a list of strings, a single string, or a
// comma-separated string.
func readStringSlice(args map[string]any, key string) ([]string, error) {
	v, ok := args[key]
	if !ok || v == nil {
		return nil, nil
	}

	var raw []string
	switch arr := v.(type) {
	case []string:
		raw = arr
	case []any:
		for _, item := range arr {
			if item == nil {
				continue
			}
			s, isStr := item.(string)
			if !isStr {
				return nil, errors.Invalid(key, "Parameter %q must be a list of strings", key)
			}
			raw = append(raw, s)
		}
	case string:
		raw = strings.Split(arr, ",")
	default:
		return nil, errors.Invalid(key, "Parameter %q must be a string or a list of strings", key)
	}

	result := make([]string, 0, len(raw))
	for _, s := range raw {
		if s = strings.TrimSpace(s); s != "" {
			result = append(result, s)
		}
	}
	return result, nil
}

func readList(args map[string]any, key string, required bool) ([]any, error) {
	v, ok := args[key]
	if !ok || v == nil {
		if required {
			return nil, errors.Invalid(key, "Parameter %q is required", key)
		}
		return nil, nil
	}
	list, isList := v.([]any)
	if !isList {
		return nil, errors.Invalid(key, "Parameter %q must be a list", key)
	}
	return list, nil
}

// readListQuery reads the paging and filtering parameters shared by the
// list operations. Only the keys named in keys are considered.
func readListQuery(args map[string]any, keys ...string) (types.ListQuery, error) {
	var (
		q   types.ListQuery
		err error
	)
	for _, key := range keys {
		switch key {
		case "page":
			q.Page, err = readInt(args, key)
		case "per_page":
			q.PerPage, err = readInt(args, key)
		case "sort":
			q.Sort, err = readString(args, key, false)
		case "direction":
			q.Direction, err = readString(args, key, false)
			if err == nil && q.Direction != "" && q.Direction != "asc" && q.Direction != "desc" {
				err = errors.Invalid(key, "Parameter %q must be \"asc\" or \"desc\"", key)
			}
		case "status":
			q.Status, err = readString(args, key, false)
		case "tags":
			q.Tags, err = readStringSlice(args, key)
		}
		if err != nil {
			return types.ListQuery{}, err
		}
	}
	return q, nil
}

// without returns a shallow copy of args minus the given keys.
func without(args map[string]any, keys ...string) map[string]any {
	out := make(map[string]any, len(args))
	for k, v := range args {
		out[k] = v
	}
	for _, k := range keys {
		delete(out, k)
	}
	return out
}
