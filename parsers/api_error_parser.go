package parsers

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/GravityKit/drip-mcp-server/types"
)

// ErrorMessageFromBody turns a non-2xx Drip response body into a single
// human-readable message. Drip reports errors either as a list
// ({"errors":[{"code":..,"message":..}]}) or as a map of attribute to
// messages ({"errors":{"email":["is invalid"]}}). When neither is present
// the top-level "message"/"error" is used, and finally a generic text
// naming the HTTP status.
func ErrorMessageFromBody(httpStatus int, body []byte) string {
	if msg, ok := messageFromBody(body); ok {
		return msg
	}
	return fmt.Sprintf("Drip API request failed with HTTP status %d", httpStatus)
}

func messageFromBody(body []byte) (string, bool) {
	if len(body) == 0 {
		return "", false
	}

	var res types.ErrorResponse
	if err := json.Unmarshal(body, &res); err != nil {
		return "", false
	}

	if msg, ok := fromErrorList(res.Errors); ok {
		return msg, true
	}
	if msg, ok := fromErrorMap(res.Errors); ok {
		return msg, true
	}
	if res.Message != "" {
		return res.Message, true
	}
	if res.Error != "" {
		return res.Error, true
	}
	return "", false
}

func fromErrorList(raw json.RawMessage) (string, bool) {
	var list []types.ErrorEntry
	if len(raw) == 0 || json.Unmarshal(raw, &list) != nil {
		return "", false
	}

	var parts []string
	for _, e := range list {
		switch {
		case e.Message != "":
			parts = append(parts, e.Message)
		case e.Attribute != "" && e.Code != "":
			parts = append(parts, e.Attribute+": "+e.Code)
		case e.Code != "":
			parts = append(parts, e.Code)
		}
	}
	if len(parts) == 0 {
		return "", false
	}
	return strings.Join(parts, "; "), true
}

func fromErrorMap(raw json.RawMessage) (string, bool) {
	var m map[string]any
	if len(raw) == 0 || json.Unmarshal(raw, &m) != nil || len(m) == 0 {
		return "", false
	}

	fields := make([]string, 0, len(m))
	for k := range m {
		fields = append(fields, k)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		switch v := m[field].(type) {
		case string:
			parts = append(parts, field+": "+v)
		case []any:
			msgs := make([]string, 0, len(v))
			for _, item := range v {
				msgs = append(msgs, fmt.Sprint(item))
			}
			parts = append(parts, field+": "+strings.Join(msgs, ", "))
		default:
			parts = append(parts, fmt.Sprintf("%s: %v", field, v))
		}
	}
	return strings.Join(parts, "; "), true
}
