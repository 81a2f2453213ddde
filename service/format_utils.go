package service

import (
	"encoding/json"

	"gopkg.in/yaml.v3"

	"github.com/ludo-technologies/tuplecheck/domain"
)

// EncodeJSON returns an indented JSON string for the given value.
func EncodeJSON(v interface{}) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", domain.NewOutputError("failed to marshal JSON", err)
	}
	return string(data), nil
}

// EncodeYAML returns a YAML string for the given value.
func EncodeYAML(v interface{}) (string, error) {
	data, err := yaml.Marshal(v)
	if err != nil {
		return "", domain.NewOutputError("failed to marshal YAML", err)
	}
	return string(data), nil
}

