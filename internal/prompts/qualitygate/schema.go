package qualitygate

// ResponseSchema is the JSON schema for the quality-gate verdict.
var ResponseSchema = map[string]any{
	"type": "json_schema",
	"json_schema": map[string]any{
		"name":   "quality_gate",
		"strict": true,
		"schema": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"pass": map[string]any{"type": "boolean"},
				"scores": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"people_first": map[string]any{"type": "integer"},
						"methodology":  map[string]any{"type": "integer"},
						"balance":      map[string]any{"type": "integer"},
						"sources":      map[string]any{"type": "integer"},
						"language":     map[string]any{"type": "integer"},
					},
					"required":             []string{"people_first", "methodology", "balance", "sources", "language"},
					"additionalProperties": false,
				},
				"problems": map[string]any{
					"type":  "array",
					"items": map[string]any{"type": "string"},
				},
			},
			"required":             []string{"pass", "scores", "problems"},
			"additionalProperties": false,
		},
	},
}
