// batchtool is a headless CLI for inspecting scenes and their batches.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/draycott/meshbatch/internal/config"
	"github.com/draycott/meshbatch/internal/engine/batch"
	"github.com/draycott/meshbatch/internal/engine/material"
	"github.com/draycott/meshbatch/internal/engine/mesh"
	"github.com/draycott/meshbatch/internal/engine/scene"
	"github.com/draycott/meshbatch/pkg/formats"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "stats":
		cmdStats(args)
	case "dump":
		cmdDump(args)
	case "inspect":
		cmdInspect(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`batchtool - mesh batching inspection utility

Usage:
  batchtool <command> [options]

Commands:
  stats <scene.yaml>            Batch the scene and print per-batch stats
  dump <scene.yaml> <outdir>    Batch the scene and write raw buffers per batch
  inspect <model.obj>           Print mesh info for a single model

Examples:
  batchtool stats scene.yaml
  batchtool dump scene.yaml ./out
  batchtool inspect models/crate.obj`)
}

// loadScene reads a config file and batches its scene section. The file
// may be a full viewer config or a bare scene section.
func loadScene(path string) (*scene.Scene, *batch.Batches[material.Flat], error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}

	var cfg config.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	sceneCfg := cfg.Scene
	if len(sceneCfg.Models) == 0 {
		if err := yaml.Unmarshal(data, &sceneCfg); err != nil {
			return nil, nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}
	if len(sceneCfg.Models) == 0 {
		return nil, nil, fmt.Errorf("%s: no models configured", path)
	}

	sc, err := scene.Load(sceneCfg)
	if err != nil {
		return nil, nil, err
	}

	batches := batch.NewBatches[material.Flat]()
	if err := batch.Prepare(sc.Meshes, sc.Refs, nil, batches); err != nil {
		return nil, nil, err
	}
	return sc, batches, nil
}

func cmdStats(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: batchtool stats <scene.yaml>")
		os.Exit(1)
	}

	sc, batches, err := loadScene(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Scene:     %s\n", args[0])
	fmt.Printf("Meshes:    %d\n", sc.Meshes.Len())
	fmt.Printf("Instances: %d\n", len(sc.Refs))
	fmt.Printf("Batches:   %d\n", batches.Len())
	fmt.Println()

	batches.ForEach(func(key mesh.Key, b *batch.Batch) bool {
		fmt.Printf("batch %s\n", key)
		fmt.Printf("  members:      %d\n", len(b.Meshes))
		for _, id := range b.Meshes {
			fmt.Printf("    %s\n", id)
		}
		fmt.Printf("  vertex bytes: %d (%d vertices)\n", len(b.VertexData), vertexCount(b))
		fmt.Printf("  indices:      %d\n", indexCount(b))
		fmt.Printf("  draw cmds:    %d\n", b.IndirectData.Len())
		return true
	})
}

func cmdDump(args []string) {
	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: batchtool dump <scene.yaml> <outdir>")
		os.Exit(1)
	}

	sc, batches, err := loadScene(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	outdir := args[1]
	if err := os.MkdirAll(outdir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	counts := sc.InstanceCounts()
	n := 0
	var dumpErr error
	batches.ForEach(func(key mesh.Key, b *batch.Batch) bool {
		prefix := filepath.Join(outdir, fmt.Sprintf("batch%02d", n))
		n++

		if err := os.WriteFile(prefix+".vertex.bin", b.VertexData, 0o644); err != nil {
			dumpErr = err
			return false
		}
		if ix, ok := b.IndexData.(mesh.Indexed); ok {
			if err := os.WriteFile(prefix+".index.bin", ix.Indices.Bytes(), 0o644); err != nil {
				dumpErr = err
				return false
			}
		}

		resolved, err := batch.ResolveDraws(b, counts)
		if err != nil {
			dumpErr = err
			return false
		}
		if err := os.WriteFile(prefix+".indirect.bin", resolved.Bytes(), 0o644); err != nil {
			dumpErr = err
			return false
		}

		fmt.Printf("%s: %s (%d members, %d draws)\n", prefix, key, len(b.Meshes), resolved.Len())
		return true
	})
	if dumpErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", dumpErr)
		os.Exit(1)
	}
}

func cmdInspect(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: batchtool inspect <model.obj>")
		os.Exit(1)
	}

	obj, err := formats.LoadOBJ(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	rec := mesh.BuildRecord(objVertices(obj), obj.Indices)
	fmt.Printf("Model:     %s\n", args[0])
	fmt.Printf("Vertices:  %d\n", rec.VertexCount)
	fmt.Printf("Triangles: %d\n", len(obj.Indices)/3)
	fmt.Printf("Key:       %s\n", rec.Key)
	fmt.Printf("Bytes:     %d\n", len(rec.VertexData))
}

func objVertices(obj *formats.OBJ) []mesh.StandardVertex {
	verts := make([]mesh.StandardVertex, len(obj.Vertices))
	for i, v := range obj.Vertices {
		verts[i] = mesh.StandardVertex{
			Position: v.Position,
			Normal:   v.Normal,
			TexCoord: v.TexCoord,
		}
	}
	return verts
}

func vertexCount(b *batch.Batch) int {
	stride := int(mesh.StandardLayout().Stride)
	if stride == 0 {
		return 0
	}
	return len(b.VertexData) / stride
}

func indexCount(b *batch.Batch) int {
	switch ix := b.IndexData.(type) {
	case mesh.Indexed:
		return int(ix.Count)
	default:
		return 0
	}
}
