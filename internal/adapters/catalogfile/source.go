// Package catalogfile loads catalog definitions from YAML or JSON documents,
// including the sample catalog compiled into the binary.
package catalogfile

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/andrescamacho/production-planner/internal/domain/production"
)

//go:embed default_catalog.yaml
var defaultCatalogYAML []byte

// DefaultCatalog returns the raw embedded sample catalog
func DefaultCatalog() []byte {
	return append([]byte(nil), defaultCatalogYAML...)
}

// FileSource reads a catalog from a YAML or JSON file. JSON documents are
// accepted because they are valid YAML.
type FileSource struct {
	Path string
}

// NewFileSource creates a file-backed catalog source
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

// Load reads and decodes the catalog file
func (s *FileSource) Load(ctx context.Context) (*production.Definition, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file %s: %w", s.Path, err)
	}
	def, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse catalog file %s: %w", s.Path, err)
	}
	return def, nil
}

// EmbeddedSource serves the sample catalog compiled into the binary
type EmbeddedSource struct{}

// NewEmbeddedSource creates the built-in catalog source
func NewEmbeddedSource() *EmbeddedSource {
	return &EmbeddedSource{}
}

// Load decodes the embedded catalog
func (s *EmbeddedSource) Load(ctx context.Context) (*production.Definition, error) {
	def, err := Parse(defaultCatalogYAML)
	if err != nil {
		return nil, fmt.Errorf("failed to parse embedded catalog: %w", err)
	}
	return def, nil
}

// Parse decodes a catalog document. Unknown fields are rejected.
func Parse(data []byte) (*production.Definition, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	var def production.Definition
	if err := decoder.Decode(&def); err != nil {
		return nil, fmt.Errorf("unmarshaling catalog: %w", err)
	}
	return &def, nil
}

// Encode renders a definition as a YAML document
func Encode(def *production.Definition) ([]byte, error) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(def); err != nil {
		return nil, fmt.Errorf("marshaling catalog: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("marshaling catalog: %w", err)
	}
	return buf.Bytes(), nil
}
