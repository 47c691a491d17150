// Command sgexport exports a YAML scene file to a scene-graph document.
//
// Usage:
//
//	sgexport -scene scene.yaml [-settings export.toml] [-mappings dir] [-out dir] [-text] [-v]
//	sgexport -scene scene.yaml -templates dir
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"github.com/gogpu/sgexport"
	"github.com/gogpu/sgexport/host/inmem"
	"github.com/gogpu/sgexport/shadermap"
)

func main() {
	var (
		scenePath    = flag.String("scene", "", "scene file (YAML)")
		settingsPath = flag.String("settings", "", "export settings (TOML)")
		mappings     = flag.String("mappings", sgexport.DefaultMappingDir, "shader mapping directory")
		outDir       = flag.String("out", "", "output directory, overrides the settings")
		name         = flag.String("name", "", "output base name, overrides the settings")
		text         = flag.Bool("text", false, "write the text form instead of the binary form")
		viewer       = flag.String("viewer", os.Getenv("SGEXPORT_VIEWER"), "viewer executable for previews")
		templates    = flag.String("templates", "", "write shader mapping templates for unmapped shaders to this directory and exit")
		verbose      = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	if *scenePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	sgexport.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	scene, err := inmem.Load(*scenePath)
	if err != nil {
		log.Fatalf("Failed to load scene: %v", err)
	}

	if *templates != "" {
		n, err := writeTemplates(scene, shadermap.NewDir(*mappings), *templates)
		if err != nil {
			log.Fatalf("Failed to write templates: %v", err)
		}
		log.Printf("%d mapping templates written to %s\n", n, *templates)
		return
	}

	settings := sgexport.DefaultSettings()
	if *settingsPath != "" {
		if settings, err = sgexport.LoadSettings(*settingsPath); err != nil {
			log.Fatalf("Failed to load settings: %v", err)
		}
	}
	if *outDir != "" {
		settings.ExportDirectory = *outDir
	}
	if *name != "" {
		settings.ExportFileName = *name
	}
	if *text {
		settings.BinaryExport = false
	}

	res, err := sgexport.ExportDocument(sgexport.SceneOf(scene), settings,
		sgexport.WithMappingDir(*mappings),
		sgexport.WithViewer(*viewer, scene.Camera),
	)
	if res != nil && res.Report != nil {
		for _, line := range res.Report.Lines() {
			fmt.Fprintln(os.Stderr, line)
		}
	}
	if err != nil {
		log.Fatalf("Export failed: %v", err)
	}
	log.Printf("Scene exported to %s (%d report entries)\n", res.Path, res.Report.Len())
}

// writeTemplates saves a mapping skeleton for every material whose shader
// has no mapping in mappings. Existing files are not overwritten.
func writeTemplates(scene *inmem.Scene, mappings *shadermap.Dir, dir string) (int, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, err
	}
	seen := make(map[string]bool)
	written := 0
	for _, id := range slices.Sorted(maps.Keys(scene.Materials)) {
		mat := scene.Materials[id]
		shader := mat.ShaderName()
		if seen[shader] {
			continue
		}
		seen[shader] = true
		if _, err := mappings.Find(shader); err == nil {
			continue
		}

		path := filepath.Join(dir, shadermap.FileName(shader)+".yaml")
		if _, err := os.Stat(path); err == nil {
			continue
		}
		if err := shadermap.Save(shadermap.Template(mat), path); err != nil {
			return written, err
		}
		written++
	}
	return written, nil
}
