// Package sgexport exports host scenes to scene-graph documents.
//
// # Overview
//
// An export walks a host scene (package host) depth-first, converts its
// meshes, materials, textures, lights and terrains into shared graph
// records (package convert) and emits a nested node stream (packages
// walker and graph). The finished document is written by a registered
// target, either the compact binary form (.sgxb) or the readable text
// form (.sgxt).
//
// Problems with individual resources never abort an export. They are
// collected in a report that Export returns.
//
// # Quick Start
//
//	scene, err := inmem.Load("scene.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	settings, err := sgexport.LoadSettings("export.toml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	report, err := sgexport.Export(walker.Scene{
//	    Roots:       scene.HostRoots(),
//	    Environment: scene.Environment,
//	}, settings, sgexport.WithMappingDir("mappings"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, line := range report.Lines() {
//	    fmt.Println(line)
//	}
//
// # Architecture
//
// The module is organized into:
//   - host, host/inmem: the read-only scene model and an in-memory implementation
//   - shadermap: shader mapping documents that bind material properties to shader inputs
//   - convert: resource converters and the per-pass record caches
//   - graph: records, the node stream and its emitter
//   - walker: the scene walk
//   - target, target/binary, target/text: document writers
//
// # Coordinate System
//
// Hosts are left-handed with Y up. Documents are right-handed: X is
// mirrored on positions, normals and matrices, and triangle winding is
// reversed.
package sgexport

// Version is the current version of the exporter.
const Version = "0.1.0"
