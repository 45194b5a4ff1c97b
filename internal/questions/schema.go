package questions

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const bankSchemaURL = "schema://stockmaster/bank.json"

// bankSchema describes a bank file before it is decoded into Go types.
var bankSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"version": map[string]any{"type": "string", "minLength": 1},
		"deck": map[string]any{
			"type": "string",
			"enum": []any{"charts", "indicators", "swipe", "lessons"},
		},
		"questions": map[string]any{
			"type":  "array",
			"items": map[string]any{"$ref": "#/$defs/question"},
		},
		"phases": map[string]any{
			"type":  "array",
			"items": map[string]any{"$ref": "#/$defs/phase"},
		},
	},
	"required":             []any{"version", "deck", "questions"},
	"additionalProperties": false,
	"$defs": map[string]any{
		"question": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"id":          map[string]any{"type": "string", "minLength": 1},
				"prompt":      map[string]any{"type": "string", "minLength": 1},
				"answer":      map[string]any{"$ref": "#/$defs/answer"},
				"explanation": map[string]any{"type": "string"},
				"category":    map[string]any{"type": "string", "minLength": 1},
				"difficulty": map[string]any{
					"type": "string",
					"enum": []any{"beginner", "intermediate", "advanced"},
				},
				"visual": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"chart":   map[string]any{"type": "string", "enum": []any{"candlestick", "line"}},
						"pattern": map[string]any{"type": "string"},
					},
					"additionalProperties": false,
				},
				"lesson": map[string]any{"$ref": "#/$defs/lesson"},
			},
			"required":             []any{"id", "prompt", "answer", "category", "difficulty"},
			"additionalProperties": false,
		},
		"answer": map[string]any{
			"oneOf": []any{
				map[string]any{
					"type": "object",
					"properties": map[string]any{
						"side": map[string]any{"type": "string", "enum": []any{"BUY", "SELL"}},
					},
					"required":             []any{"side"},
					"additionalProperties": false,
				},
				map[string]any{
					"type": "object",
					"properties": map[string]any{
						"options": map[string]any{
							"type":     "array",
							"items":    map[string]any{"type": "string"},
							"minItems": 2,
						},
						"correct": map[string]any{"type": "integer", "minimum": 0},
					},
					"required":             []any{"options", "correct"},
					"additionalProperties": false,
				},
			},
		},
		"lesson": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"day":   map[string]any{"type": "integer", "minimum": 1},
				"phase": map[string]any{"type": "integer", "minimum": 0},
				"title": map[string]any{"type": "string"},
				"badge": map[string]any{"type": "string"},
				"trade": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"stock":      map[string]any{"type": "string"},
						"buy_price":  map[string]any{"type": "integer"},
						"sell_price": map[string]any{"type": "integer"},
						"profit":     map[string]any{"type": "integer"},
					},
					"required":             []any{"stock", "profit"},
					"additionalProperties": false,
				},
				"theory":    map[string]any{"$ref": "#/$defs/theory"},
				"challenge": map[string]any{"$ref": "#/$defs/challenge"},
			},
			"required":             []any{"day", "phase", "title"},
			"additionalProperties": false,
		},
		"theory": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"title": map[string]any{"type": "string"},
				"points": map[string]any{
					"type":     "array",
					"items":    map[string]any{"type": "string", "minLength": 1},
					"minItems": 1,
				},
				"key_term":     map[string]any{"type": "string"},
				"key_term_def": map[string]any{"type": "string"},
				"unlock":       map[string]any{"type": "string"},
			},
			"required":             []any{"title", "points"},
			"additionalProperties": false,
		},
		"challenge": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"title":    map[string]any{"type": "string"},
				"scenario": map[string]any{"type": "string"},
				"price_data": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"label": map[string]any{"type": "string", "minLength": 1},
							"price": map[string]any{"type": "integer"},
							"note":  map[string]any{"type": "string"},
						},
						"required":             []any{"label", "price"},
						"additionalProperties": false,
					},
				},
				"prompt": map[string]any{"type": "string", "minLength": 1},
				"options": map[string]any{
					"type":     "array",
					"items":    map[string]any{"type": "string"},
					"minItems": 2,
				},
				"correct":     map[string]any{"type": "integer", "minimum": 0},
				"explanation": map[string]any{"type": "string"},
			},
			"required":             []any{"prompt", "options", "correct"},
			"additionalProperties": false,
		},
		"phase": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"id":        map[string]any{"type": "integer", "minimum": 0},
				"name":      map[string]any{"type": "string", "minLength": 1},
				"tagline":   map[string]any{"type": "string"},
				"first_day": map[string]any{"type": "integer", "minimum": 1},
				"last_day":  map[string]any{"type": "integer", "minimum": 1},
				"badge":     map[string]any{"type": "string"},
			},
			"required":             []any{"id", "name", "first_day", "last_day"},
			"additionalProperties": false,
		},
	},
}

var (
	compiledOnce   sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

func schema() (*jsonschema.Schema, error) {
	compiledOnce.Do(func() {
		def, err := normalise(bankSchema)
		if err != nil {
			compileErr = err
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(bankSchemaURL, def); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(bankSchemaURL)
	})
	return compiledSchema, compileErr
}

// validateDocument checks a generic decoded document against the bank
// schema.
func validateDocument(doc any) error {
	parsed, err := normalise(doc)
	if err != nil {
		return err
	}

	s, err := schema()
	if err != nil {
		return fmt.Errorf("compile bank schema: %w", err)
	}
	if err := s.Validate(parsed); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

// normalise round-trips v through encoding/json so numbers, maps and
// slices arrive in the shapes the validator expects.
func normalise(v any) (any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("normalise document: %w", err)
	}
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("normalise document: %w", err)
	}
	return parsed, nil
}
