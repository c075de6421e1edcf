package layout

import (
	"fmt"

	goccyjson "github.com/goccy/go-json"
)

// FieldJSON is one aggregate member in descriptor form.
type FieldJSON struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Size  int    `json:"size,omitempty"`  // required for array/bytes types
	Align int    `json:"align,omitempty"` // optional override
}

// AggregateJSON is the JSON descriptor of an aggregate layout.
type AggregateJSON struct {
	Name   string      `json:"name"`
	Fields []FieldJSON `json:"fields"`
}

// Parse unmarshals a JSON descriptor and places its fields.
func Parse(data []byte) (*Aggregate, error) {
	var desc AggregateJSON
	if err := goccyjson.Unmarshal(data, &desc); err != nil {
		return nil, fmt.Errorf("layout: parse descriptor: %w", err)
	}
	return Build(&desc)
}
