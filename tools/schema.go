package tools

import "github.com/GravityKit/drip-mcp-server/mapper"

// The helpers below build JSON schemas as plain maps, which is what
// mcp.Tool.InputSchema carries on the wire.

func schema(props map[string]any, required ...string) map[string]any {
	s := map[string]any{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		s["required"] = required
	}
	return s
}

func strProp(desc string) map[string]any {
	return map[string]any{"type": "string", "description": desc}
}

func intProp(desc string) map[string]any {
	return map[string]any{"type": "integer", "minimum": 0, "description": desc}
}

func numProp(desc string) map[string]any {
	return map[string]any{"type": "number", "description": desc}
}

func boolProp(desc string) map[string]any {
	return map[string]any{"type": "boolean", "description": desc}
}

func objProp(desc string) map[string]any {
	return map[string]any{"type": "object", "description": desc}
}

// idProp accepts identifiers sent either as strings or as numbers.
func idProp(desc string) map[string]any {
	return map[string]any{"type": []string{"string", "integer"}, "description": desc}
}

// tagsProp accepts a single tag or a list of tags; null entries are skipped.
func tagsProp(desc string) map[string]any {
	return map[string]any{
		"description": desc,
		"anyOf": []any{
			map[string]any{"type": "string"},
			map[string]any{"type": "array", "items": map[string]any{"type": []string{"string", "null"}}},
		},
	}
}

func dateProp(desc string) map[string]any {
	return map[string]any{
		"type":        []string{"string", "integer"},
		"description": desc + " ISO 8601 timestamp or epoch milliseconds.",
	}
}

func arrayProp(desc string, items map[string]any) map[string]any {
	return map[string]any{"type": "array", "items": items, "description": desc}
}

// withPaging adds page/per_page/sort/direction to props.
func withPaging(props map[string]any) map[string]any {
	props["page"] = intProp("Page number, starting at 1.")
	props["per_page"] = map[string]any{
		"type":        "integer",
		"minimum":     1,
		"maximum":     1000,
		"description": "Results per page (max 1000).",
	}
	props["sort"] = strProp("Attribute to sort by, e.g. created_at.")
	props["direction"] = map[string]any{"type": "string", "enum": []string{"asc", "desc"}, "description": "Sort direction."}
	return props
}

// subscriberProps lists the root attributes and the known custom fields.
// Any other property is accepted and stored as a custom field.
func subscriberProps() map[string]any {
	props := map[string]any{
		"email":                 strProp("Subscriber email address."),
		"first_name":            strProp("First name."),
		"last_name":             strProp("Last name."),
		"user_id":               strProp("Your own identifier for the subscriber."),
		"time_zone":             strProp("IANA time zone, e.g. America/Los_Angeles."),
		"tags":                  tagsProp("Tags to apply."),
		"custom_fields":         objProp("Custom fields as key/value pairs."),
		"prospect":              boolProp("Whether the subscriber is a lead-scoring prospect."),
		"base_lead_score":       numProp("Starting lead score, not negative."),
		"eu_consent":            strProp("GDPR consent: granted or denied."),
		"eu_consent_message":    strProp("Consent text shown to the subscriber."),
		"reactivate_if_removed": boolProp("Reactivate a previously removed subscriber."),
	}
	for _, key := range mapper.KnownCustomFields {
		props[key] = map[string]any{"description": "Stored as custom field " + key + "."}
	}
	return props
}
