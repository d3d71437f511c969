package dataset

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// decodeJSON accepts a top-level array of records or an object with a
// "points" array.
func decodeJSON(r io.Reader) ([]record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '{' {
		var wrapped struct {
			Points []record `json:"points"`
		}
		if err := json.Unmarshal(data, &wrapped); err != nil {
			return nil, fmt.Errorf("json: %w", err)
		}
		return wrapped.Points, nil
	}
	var recs []record
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, fmt.Errorf("json: %w", err)
	}
	return recs, nil
}

// decodeYAML accepts the same two shapes as decodeJSON.
func decodeYAML(r io.Reader) ([]record, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("yaml: %w", err)
	}
	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind == yaml.MappingNode {
		var wrapped struct {
			Points []record `yaml:"points"`
		}
		if err := root.Decode(&wrapped); err != nil {
			return nil, fmt.Errorf("yaml: %w", err)
		}
		return wrapped.Points, nil
	}
	var recs []record
	if err := root.Decode(&recs); err != nil {
		return nil, fmt.Errorf("yaml: %w", err)
	}
	return recs, nil
}
