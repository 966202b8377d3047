package adapter

import (
	"encoding/json"
	"fmt"
	"os"
)

// JSON defines an interface for JSON codec operations to enable mocking
//
//go:generate mockgen -source=json.go -destination=../mocks/json.go -package=mocks -mock_names=JSON=MockJSON
type JSON interface {
	Marshal(v interface{}) ([]byte, error)
	Unmarshal(data []byte, v interface{}) error

	// UnmarshalFromFile reads and decodes a JSON file in one step
	UnmarshalFromFile(path string, v interface{}) error
}

// RealJSON implements JSON on the standard encoding/json package
type RealJSON struct{}

// NewJSON creates a new real JSON codec
func NewJSON() JSON {
	return &RealJSON{}
}

func (j *RealJSON) Marshal(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

func (j *RealJSON) Unmarshal(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}

func (j *RealJSON) UnmarshalFromFile(path string, v interface{}) error {
	data, err := os.ReadFile(path) //nolint:gosec,G304 // callers pass trusted paths
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	return json.Unmarshal(data, v)
}
