// Package mapper shapes loosely-typed subscriber input into the record
// Drip expects on the wire.
package mapper

import (
	"maps"

	"github.com/GravityKit/drip-mcp-server/errors"
	"github.com/GravityKit/drip-mcp-server/types"
	"github.com/GravityKit/drip-mcp-server/validate"
)

const customFieldsKey = "custom_fields"

// RootFields are accepted by Drip at the top level of a subscriber.
// Every other key belongs in custom_fields.
var RootFields = map[string]bool{
	"email":                 true,
	"first_name":            true,
	"last_name":             true,
	"user_id":               true,
	"time_zone":             true,
	"eu_consent":            true,
	"eu_consent_message":    true,
	"prospect":              true,
	"base_lead_score":       true,
	"tags":                  true,
	"reactivate_if_removed": true,
}

// KnownCustomFields are shorthand keys callers commonly pass at the top
// level. Like any other non-root key they land in custom_fields; the list
// is advertised in the tool schemas.
var KnownCustomFields = []string{
	"company",
	"phone",
	"address1",
	"address2",
	"city",
	"state",
	"zip",
	"country",
	"name",
	"full_name",
}

// IsCustomField reports whether a top-level key is moved into the
// custom bucket.
func IsCustomField(key string) bool {
	return !RootFields[key] && key != customFieldsKey
}

// FormatSubscriber builds the wire record for one subscriber.
// Top-level custom keys override same-named entries of the caller's
// custom_fields. The input map is never modified.
func FormatSubscriber(in map[string]any) (types.Object, error) {
	out := types.Object{}
	if email, ok := in["email"]; ok && email != nil {
		out["email"] = email
	}

	for _, key := range []string{"first_name", "last_name", "user_id", "time_zone"} {
		if truthy(in[key]) {
			out[key] = in[key]
		}
	}

	custom := map[string]any{}
	if cf, ok := in[customFieldsKey].(map[string]any); ok {
		maps.Copy(custom, cf)
	}
	for key, v := range in {
		if IsCustomField(key) {
			custom[key] = v
		}
	}
	if len(custom) > 0 {
		for key, v := range custom {
			if err := validate.CustomFieldValue(key, v); err != nil {
				return nil, err
			}
		}
		out[customFieldsKey] = custom
	}

	if raw, ok := in["tags"]; ok && raw != nil {
		tags, err := validate.Tags(raw)
		if err != nil {
			return nil, err
		}
		out["tags"] = tags
	}

	if v, ok := in["prospect"]; ok && v != nil {
		out["prospect"] = v
	}

	if v, ok := in["base_lead_score"]; ok && v != nil {
		if n, isNum := validate.Number(v); isNum && n < 0 {
			return nil, errors.Invalid("base_lead_score", "base_lead_score cannot be negative")
		}
		out["base_lead_score"] = v
	}

	for _, key := range []string{"eu_consent", "eu_consent_message", "reactivate_if_removed"} {
		if v, ok := in[key]; ok {
			out[key] = v
		}
	}

	return out, nil
}

// truthy follows the usual loose-typing rules: nil, false, zero and the
// empty string are false.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	}
	if n, ok := validate.Number(v); ok {
		return n != 0
	}
	return true
}
