package sgexport

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/gogpu/sgexport/target/binary"
	"github.com/gogpu/sgexport/target/text"
	"github.com/gogpu/sgexport/walker"
)

// DefaultFileName is the base name used when Settings.ExportFileName is
// empty.
const DefaultFileName = "export"

// Settings configure an export. They are usually read from a TOML file:
//
//	export_directory = "out"
//	export_file_name = "scene"
//	binary_export = true
//	show_preview = false
//	match_scene_camera = true
//
//	[graph]
//	auto_add_cull = true
//	zero_root_transform = false
//	keep_identity_transforms = false
type Settings struct {
	ExportDirectory  string         `toml:"export_directory"`
	ExportFileName   string         `toml:"export_file_name"`
	BinaryExport     bool           `toml:"binary_export"`
	ShowPreview      bool           `toml:"show_preview"`
	MatchSceneCamera bool           `toml:"match_scene_camera"`
	Graph            walker.Options `toml:"graph"`
}

// DefaultSettings returns settings for a binary export to
// ./export.sgxb.
func DefaultSettings() Settings {
	return Settings{
		ExportFileName:   DefaultFileName,
		BinaryExport:     true,
		MatchSceneCamera: true,
	}
}

// LoadSettings reads settings from a TOML file. Keys missing from the
// file keep their DefaultSettings value.
func LoadSettings(path string) (Settings, error) {
	f, err := os.Open(path)
	if err != nil {
		return Settings{}, fmt.Errorf("sgexport: settings: %w", err)
	}
	defer f.Close()
	return DecodeSettings(f)
}

// DecodeSettings reads TOML settings from r. Unknown keys are an error.
func DecodeSettings(r io.Reader) (Settings, error) {
	s := DefaultSettings()
	if err := toml.NewDecoder(r).DisallowUnknownFields().Decode(&s); err != nil {
		return Settings{}, fmt.Errorf("sgexport: settings: %w", err)
	}
	return s, nil
}

// Save writes the settings as TOML to path.
func (s Settings) Save(path string) error {
	b, err := toml.Marshal(s)
	if err != nil {
		return fmt.Errorf("sgexport: settings: %w", err)
	}
	return os.WriteFile(path, b, 0o644)
}

// TargetName returns the registered target matching BinaryExport.
func (s Settings) TargetName() string {
	if s.BinaryExport {
		return "binary"
	}
	return "text"
}

// FinalFileName returns the path the document is written to.
func (s Settings) FinalFileName() string {
	ext := text.Extension
	if s.BinaryExport {
		ext = binary.Extension
	}
	return s.pathWith(ext)
}

// pathWith joins the export directory and base name with ext. An
// extension already present on the base name is replaced.
func (s Settings) pathWith(ext string) string {
	base := strings.TrimSpace(s.ExportFileName)
	if base == "" {
		base = DefaultFileName
	}
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(s.ExportDirectory, base+ext)
}
