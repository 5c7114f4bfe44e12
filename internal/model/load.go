package model

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadDocument reads and decodes one content-model JSON document. All file
// I/O for documents goes through here so the rendering core stays pure.
func LoadDocument(path string) (*Document, error) {
	// #nosec G304 -- path comes from internal discovery over the input dir.
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	return DecodeDocument(data)
}

// DecodeDocument decodes document bytes (split out for tests and the render cache).
func DecodeDocument(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	if doc.Identifier == "" {
		return nil, fmt.Errorf("document has no identifier")
	}
	return &doc, nil
}

// LoadNavigationIndex reads the whole-site navigation tree. Failure here is
// fatal for a run: every page's sidebar depends on it.
func LoadNavigationIndex(path string) (*NavigationIndex, error) {
	// #nosec G304 -- path is the configured navigation artifact.
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read navigation index: %w", err)
	}
	var idx NavigationIndex
	if err := json.Unmarshal(data, &idx); err != nil {
		return nil, fmt.Errorf("decode navigation index: %w", err)
	}
	return &idx, nil
}
