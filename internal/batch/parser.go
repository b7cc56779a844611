package batch

import (
	"bytes"
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"github.com/goccy/go-yaml"
	"github.com/mitchellh/mapstructure"
)

// Entry is one expression to convert.
type Entry struct {
	Name       string `json:"name" mapstructure:"name"`
	Expression string `json:"expression" mapstructure:"expression"`
}

type fileDef struct {
	Expressions []any `json:"expressions"`
}

func ParseYAML(r io.Reader) ([]Entry, error) {
	yamlBytes, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("io.ReadAll: %w", err)
	}

	jsonBytes, err := yaml.YAMLToJSON(yamlBytes)
	if err != nil {
		return nil, fmt.Errorf("yaml.YAMLToJSON: %w", err)
	}

	return ParseJSON(bytes.NewReader(jsonBytes))
}

func ParseJSON(r io.Reader) ([]Entry, error) {
	decoder := json.NewDecoder(r)
	decoder.UseNumber()

	var def fileDef
	if err := decoder.Decode(&def); err != nil {
		return nil, fmt.Errorf("json.Decode: %w", err)
	}

	return def.compile()
}

func (d *fileDef) compile() ([]Entry, error) {
	entries := make([]Entry, len(d.Expressions))
	for i, v := range d.Expressions {
		var entry Entry
		switch vv := v.(type) {
		case string:
			entry.Expression = vv

		case json.Number:
			entry.Expression = vv.String()

		case map[string]any:
			config := &mapstructure.DecoderConfig{
				ErrorUnused: true,
				Result:      &entry,
			}
			decoder, err := mapstructure.NewDecoder(config)
			if err != nil {
				return nil, fmt.Errorf("mapstructure.NewDecoder: %w", err)
			}
			if err := decoder.Decode(vv); err != nil {
				return nil, fmt.Errorf("expressions[%d]: %w", i, err)
			}

		default:
			return nil, fmt.Errorf("expressions[%d]: unsupported type: %T", i, v)
		}

		if entry.Name == "" {
			entry.Name = fmt.Sprintf("#%d", i+1)
		}
		entries[i] = entry
	}
	return entries, nil
}
