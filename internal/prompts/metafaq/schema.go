package metafaq

// ResponseSchema is the JSON schema for the meta/FAQ structured output.
var ResponseSchema = map[string]any{
	"type": "json_schema",
	"json_schema": map[string]any{
		"name":   "meta_faq",
		"strict": true,
		"schema": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"title": map[string]any{
					"type":        "string",
					"description": "SEO title including the primary keyword",
				},
				"description": map[string]any{
					"type":        "string",
					"description": "Meta description, at most 155 characters",
				},
				"faq": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"q": map[string]any{"type": "string"},
							"a": map[string]any{"type": "string"},
						},
						"required":             []string{"q", "a"},
						"additionalProperties": false,
					},
				},
			},
			"required":             []string{"title", "description", "faq"},
			"additionalProperties": false,
		},
	},
}
