package shadermap

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"
)

// ErrNotFound is returned when no mapping file exists for a shader.
var ErrNotFound = errors.New("shadermap: mapping not found")

// Suffix is appended to the shader name to form a mapping file name.
const Suffix = "-ShaderMapping"

// Extensions lists the mapping file extensions in lookup order.
var Extensions = []string{".yaml", ".yml", ".json"}

// FileName returns the mapping file base name (without extension) for a
// host shader name. The name is NFC-normalized and path separators are
// replaced by "+".
func FileName(shaderName string) string {
	name := norm.NFC.String(shaderName)
	return strings.ReplaceAll(name, "/", "+") + Suffix
}

// Decode reads a mapping document. YAML and JSON are both accepted.
func Decode(r io.Reader) (*ShaderMapping, error) {
	var m ShaderMapping
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("shadermap: empty document")
		}
		return nil, fmt.Errorf("shadermap: decode: %w", err)
	}
	return &m, nil
}

// Load reads the mapping at path. Relative shader sources are resolved
// against the directory of the mapping file.
func Load(path string) (*ShaderMapping, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-selected mapping file
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("shadermap: %w", err)
	}
	m, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	dir := filepath.Dir(path)
	for i := range m.Shaders {
		src := m.Shaders[i].Source
		if src != "" && !filepath.IsAbs(src) {
			m.Shaders[i].Source = filepath.Join(dir, src)
		}
	}
	m.path = path
	return m, nil
}

// Encode writes m as YAML.
func Encode(w io.Writer, m *ShaderMapping) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("shadermap: encode: %w", err)
	}
	return enc.Close()
}

// Save writes m as YAML to path.
func Save(m *ShaderMapping, path string) error {
	var buf bytes.Buffer
	if err := Encode(&buf, m); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("shadermap: save: %w", err)
	}
	return nil
}
