// Package catalog provides the POI records the seed loader writes: the
// built-in Moscow set, or a JSON file of the same shape.
package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/johnwards/poiseed/internal/domain"
)

// Moscow returns the built-in catalog in its fixed order. Each call returns
// fresh copies; mutating them does not affect later calls.
func Moscow() []domain.POI {
	return clone(moscow)
}

// Load returns the catalog to seed: the built-in one when path is empty,
// otherwise the JSON array stored at path.
//
// File records are not validated here. A bad record must fail on its own
// during import without taking the rest of the file down with it.
func Load(path string) ([]domain.POI, error) {
	if path == "" {
		return Moscow(), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(raw)
}

// Parse decodes a JSON array of POI records. Unknown fields are rejected.
func Parse(raw []byte) ([]domain.POI, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()

	var pois []domain.POI
	if err := dec.Decode(&pois); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if pois == nil {
		return nil, errors.New("decode catalog: expected a JSON array")
	}
	return pois, nil
}

func clone(pois []domain.POI) []domain.POI {
	out := make([]domain.POI, len(pois))
	for i, p := range pois {
		out[i] = p.Clone()
	}
	return out
}

// mustValidate panics if any built-in record is invalid or a name repeats.
func mustValidate(pois []domain.POI) []domain.POI {
	seen := make(map[string]bool, len(pois))
	for i, p := range pois {
		if err := p.Validate(); err != nil {
			panic(fmt.Sprintf("catalog: record %d (%s): %v", i, p.Name, err))
		}
		if seen[p.Name] {
			panic(fmt.Sprintf("catalog: duplicate name %q", p.Name))
		}
		seen[p.Name] = true
	}
	return pois
}
