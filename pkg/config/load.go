package config

import (
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/crapsim/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// File is the layout of a scenario file. A file without a scenarios list
// is a single scenario written at the top level.
type File struct {
	Defaults  map[string]any   `yaml:"defaults" json:"defaults"`
	Scenarios []map[string]any `yaml:"scenarios" json:"scenarios"`
}

// Decode overlays raw key/values onto base. Values are weakly typed, so
// "5" and 5 both decode into an integer field. Unknown keys are rejected.
func Decode(base domain.Scenario, raw map[string]any) (domain.Scenario, error) {
	out := base
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &out,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return base, err
	}
	if err := dec.Decode(raw); err != nil {
		return base, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return out, nil
}

// Load reads a YAML or JSON scenario file and returns its scenarios layered
// over Default. Scenarios are validated before they are returned.
func Load(path string) ([]domain.Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return Parse(data, strings.ToLower(filepath.Ext(path)) == ".json")
}

// Parse decodes scenario file contents. YAML is assumed unless isJSON.
func Parse(data []byte, isJSON bool) ([]domain.Scenario, error) {
	var (
		doc map[string]any
		err error
	)
	if isJSON {
		err = json.Unmarshal(data, &doc)
	} else {
		err = yaml.Unmarshal(data, &doc)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse scenario file: %w", err)
	}
	return FromMap(doc)
}

// FromMap builds the scenarios of an already decoded scenario document,
// laid out as File describes.
func FromMap(doc map[string]any) ([]domain.Scenario, error) {
	var err error
	doc = maps.Clone(doc)
	base := Default()
	if defaults, ok := doc["defaults"]; ok {
		m, ok := defaults.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: defaults must be a mapping", ErrInvalidConfig)
		}
		if base, err = Decode(base, m); err != nil {
			return nil, fmt.Errorf("defaults: %w", err)
		}
	}

	list, batch := doc["scenarios"]
	if !batch {
		delete(doc, "defaults")
		sc, err := Decode(base, doc)
		if err != nil {
			return nil, err
		}
		if err := Validate(sc); err != nil {
			return nil, err
		}
		return []domain.Scenario{sc}, nil
	}

	items, ok := list.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: scenarios must be a list", ErrInvalidConfig)
	}
	out := make([]domain.Scenario, 0, len(items))
	for i, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: scenario %d must be a mapping", ErrInvalidConfig, i)
		}
		sc, err := Decode(base, m)
		if err != nil {
			return nil, fmt.Errorf("scenario %d: %w", i, err)
		}
		if sc.Label == "" {
			sc.Label = fmt.Sprintf("scenario-%d", i+1)
		}
		if err := Validate(sc); err != nil {
			return nil, fmt.Errorf("scenario %q: %w", sc.Label, err)
		}
		out = append(out, sc)
	}
	return out, nil
}
