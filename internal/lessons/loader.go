package lessons

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

var (
	packSchemaOnce sync.Once
	packSchema     *jsonschema.Schema
	packSchemaErr  error
)

// compiledPackSchema compiles PackSchema once and caches the result.
func compiledPackSchema() (*jsonschema.Schema, error) {
	packSchemaOnce.Do(func() {
		// The jsonschema library expects a parsed JSON value, not Go maps
		// containing typed values. Round-trip through JSON to normalize.
		raw, err := json.Marshal(PackSchema)
		if err != nil {
			packSchemaErr = fmt.Errorf("marshal pack schema: %w", err)
			return
		}
		var parsed any
		if err := json.Unmarshal(raw, &parsed); err != nil {
			packSchemaErr = fmt.Errorf("parse pack schema: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource("schema://lesson-pack.json", parsed); err != nil {
			packSchemaErr = fmt.Errorf("add resource: %w", err)
			return
		}
		packSchema, packSchemaErr = c.Compile("schema://lesson-pack.json")
	})
	return packSchema, packSchemaErr
}

type packFile struct {
	Lessons []Lesson `json:"lessons"`
}

// LoadPack reads a lesson-pack JSON file, validates it against PackSchema,
// and returns the contained lessons. Validation failures reject the whole
// pack; a half-loaded pack never enters the catalog.
func LoadPack(path string) ([]Lesson, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read lesson pack: %w", err)
	}
	return ParsePack(raw)
}

// ParsePack validates and decodes raw lesson-pack JSON.
func ParsePack(raw []byte) ([]Lesson, error) {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("lesson pack is not valid JSON: %w", err)
	}

	schema, err := compiledPackSchema()
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(parsed); err != nil {
		return nil, fmt.Errorf("lesson pack failed validation: %w", err)
	}

	var pf packFile
	if err := json.Unmarshal(raw, &pf); err != nil {
		return nil, fmt.Errorf("decode lesson pack: %w", err)
	}

	seen := make(map[string]bool, len(pf.Lessons))
	for _, l := range pf.Lessons {
		if seen[l.ID] {
			return nil, fmt.Errorf("duplicate lesson id %q in pack", l.ID)
		}
		seen[l.ID] = true
	}

	return pf.Lessons, nil
}
