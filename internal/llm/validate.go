package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// compiled holds compiled schemas by name. Schema names are package-level
// constants of their callers, so the map stays small.
var compiled sync.Map // map[string]*jsonschema.Schema

// checkResponse runs the checks every provider applies to an answer before
// handing it back: the stop reason, the request schema, then Accept.
func checkResponse(req Request, raw json.RawMessage, stop string) error {
	if stop == StopRefused {
		return &ErrRefused{Content: raw}
	}
	if req.Schema == nil {
		return nil
	}

	if err := matchSchema(req.Schema, raw); err != nil {
		if stop == StopMaxTokens {
			return &ErrMaxTokensExceeded{Content: raw}
		}
		return &ErrInvalidResponse{Content: raw, Err: err}
	}

	if req.Accept != nil {
		if err := req.Accept(raw); err != nil {
			return &ErrInvalidResponse{Content: raw, Err: err}
		}
	}
	return nil
}

// matchSchema parses raw and validates it against schema.
func matchSchema(schema *Schema, raw json.RawMessage) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	sch, err := compileSchema(schema)
	if err != nil {
		return fmt.Errorf("compile schema %q: %w", schema.Name, err)
	}
	if err := sch.Validate(parsed); err != nil {
		return fmt.Errorf("schema %q: %w", schema.Name, err)
	}
	return nil
}

func compileSchema(schema *Schema) (*jsonschema.Schema, error) {
	if sch, ok := compiled.Load(schema.Name); ok {
		return sch.(*jsonschema.Schema), nil
	}

	// The compiler wants decoded JSON, not Go maps with typed slices.
	b, err := json.Marshal(schema.Definition)
	if err != nil {
		return nil, fmt.Errorf("marshal definition: %w", err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("decode definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	url := "schema://" + schema.Name + ".json"
	if err := c.AddResource(url, doc); err != nil {
		return nil, err
	}
	sch, err := c.Compile(url)
	if err != nil {
		return nil, err
	}

	compiled.Store(schema.Name, sch)
	return sch, nil
}
