// offtool is a CLI utility for inspecting OFF meshes and exporting them,
// transformed, to glTF.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Faultbox/offview/internal/export"
	"github.com/Faultbox/offview/internal/logger"
	"github.com/Faultbox/offview/internal/mesh"
	"github.com/Faultbox/offview/internal/session"
	"github.com/Faultbox/offview/internal/shading"
	"github.com/Faultbox/offview/pkg/formats"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "info":
		cmdInfo(args)
	case "normals", "n":
		cmdNormals(args)
	case "export", "x":
		cmdExport(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`offtool - OFF mesh utility

Usage:
  offtool <command> [options]

Commands:
  info <file.off>                       Show counts, bounds and face sizes
  normals [-n N] <file.off>             Print accumulated vertex normals
  export [options] <file.off>           Write the mesh as glTF (.gltf or .glb)

Export options:
  -o path        Output file (default: <mesh>.glb)
  -script path   Replay viewer commands (t, s, q, w, e, r, u, a) before export
  -shader N      Bake vertex colors with shading model 1, 2 or 3
  -v             Log to stderr

Examples:
  offtool info off/6.off
  offtool normals -n 10 off/6.off
  offtool export -script turn.txt -shader 3 -o out.glb off/6.off`)
}

func cmdInfo(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: offtool info <file.off>")
		os.Exit(1)
	}

	off, err := formats.LoadOFF(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	m := mesh.FromOFF(off)
	degenerate := m.ComputeNormals()
	b := m.Bounds()

	fmt.Printf("Mesh:     %s\n", args[0])
	fmt.Printf("Vertices: %d\n", len(m.Vertices))
	fmt.Printf("Faces:    %d\n", len(m.Faces))
	fmt.Printf("Edges:    %d (declared)\n", off.NumEdges)
	fmt.Printf("Bounds:   (%g, %g, %g) - (%g, %g, %g)\n", b.Min.X, b.Min.Y, b.Min.Z, b.Max.X, b.Max.Y, b.Max.Z)
	size := b.Size()
	fmt.Printf("Size:     %g x %g x %g\n", size.X, size.Y, size.Z)
	if degenerate > 0 {
		fmt.Printf("Degenerate faces: %d\n", degenerate)
	}
	fmt.Println()
	fmt.Println("Faces by size:")

	sizes := make(map[int]int)
	for _, f := range m.Faces {
		sizes[len(f)]++
	}
	keys := make([]int, 0, len(sizes))
	for k := range sizes {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	for _, k := range keys {
		fmt.Printf("  %-4d %d\n", k, sizes[k])
	}
}

func cmdNormals(args []string) {
	fs := flag.NewFlagSet("normals", flag.ExitOnError)
	limit := fs.Int("n", 0, "Limit output to N vertices (0 = all)")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: offtool normals [-n N] <file.off>")
		os.Exit(1)
	}

	m := loadMesh(fs.Arg(0))
	for i, v := range m.Vertices {
		if *limit > 0 && i >= *limit {
			fmt.Printf("... (%d more)\n", len(m.Vertices)-i)
			break
		}
		p, n := v.Position, v.Normal
		fmt.Printf("%6d  % .4f % .4f % .4f   % .4f % .4f % .4f\n", i, p.X, p.Y, p.Z, n.X, n.Y, n.Z)
	}
}

func cmdExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	output := fs.String("o", "", "Output file (.gltf or .glb)")
	script := fs.String("script", "", "Command script to replay before export")
	shader := fs.String("shader", "", "Bake colors with shading model 1, 2 or 3")
	verbose := fs.Bool("v", false, "Log to stderr")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: offtool export [-o out.glb] [-script file] [-shader N] <file.off>")
		os.Exit(1)
	}
	if *verbose {
		if err := logger.Init("debug", ""); err != nil {
			fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()
	}

	path := fs.Arg(0)
	m := loadMesh(path)

	model := shading.Banded
	if *shader != "" {
		model = shading.Select(*shader)
	}

	var commands io.Reader = strings.NewReader("")
	if *script != "" {
		f, err := os.Open(*script)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		commands = f
	}

	s := session.New(m, model, shading.DefaultLight, session.NewPrompter(commands, io.Discard))
	if err := s.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s: %v\n", *script, err)
		os.Exit(1)
	}

	doc, err := export.Build(m, s.Stack().Current(), export.Options{
		Name:    strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		Bake:    *shader != "",
		Shading: model,
		Light:   shading.DefaultLight,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	out := *output
	if out == "" {
		out = strings.TrimSuffix(path, filepath.Ext(path)) + ".glb"
	}
	if err := export.Write(doc, out); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %s (%d vertices, %d faces, %d commands applied)\n",
		out, len(m.Vertices), len(m.Faces), s.Stack().Depth()-1)
}

func loadMesh(path string) *mesh.Mesh {
	m, err := mesh.LoadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	m.ComputeNormals()
	return m
}
