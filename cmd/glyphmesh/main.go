// Command glyphmesh builds glyph and shape meshes on a headless device and
// reports how they were packed into GPU buffers.
//
// Usage:
//
//	glyphmesh -chars "Hello, 世界" -font NotoSansCJK.otf -svg icon.svg
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/glyphmesh"
	"github.com/gogpu/glyphmesh/fonts"
	"github.com/gogpu/glyphmesh/pool"
	"github.com/gogpu/glyphmesh/shader"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

// run executes the command and returns its exit code. Errors are logged
// and reported as 1 so deferred releases still run.
func run(args []string, stdout io.Writer) int {
	var (
		fontPaths []string
		svgPaths  []string
	)
	fs := flag.NewFlagSet("glyphmesh", flag.ContinueOnError)
	fs.Func("font", "font file, repeat for fallback faces (default Go Regular)", func(s string) error {
		fontPaths = append(fontPaths, s)
		return nil
	})
	fs.Func("svg", "SVG document to import, repeatable", func(s string) error {
		svgPaths = append(svgPaths, s)
		return nil
	})
	var (
		chars     = fs.String("chars", "The quick brown fox jumps over the lazy dog", "characters to register")
		backend   = fs.String("backend", "opentype", "font backend: opentype or sfnt")
		chunkSize = fs.Uint64("chunk", pool.ChunkSize, "buffer chunk size in bytes")
		verbose   = fs.Bool("v", false, "enable debug logging")
	)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	glyphmesh.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	faces, err := loadFaces(fontPaths, *backend)
	if err != nil {
		log.Printf("Failed to load fonts: %v", err)
		return 1
	}

	device, queue, release, err := openDevice()
	if err != nil {
		log.Printf("Failed to open device: %v", err)
		return 1
	}
	defer release()

	module, err := shader.CreateModule(device)
	if err != nil {
		log.Printf("Failed to compile glyph shader: %v", err)
		return 1
	}
	defer device.DestroyShaderModule(module)

	gc, err := glyphmesh.New(device, queue, faces, glyphmesh.WithPoolOptions(pool.WithChunkSize(*chunkSize)))
	if err != nil {
		log.Printf("Failed to create glyph cache: %v", err)
		return 1
	}
	defer gc.Destroy()

	if err := gc.Register([]rune(*chars)); err != nil {
		log.Printf("Failed to register characters: %v", err)
		return 1
	}
	for _, path := range svgPaths {
		data, err := os.ReadFile(path)
		if err != nil {
			log.Printf("Failed to read %s: %v", path, err)
			return 1
		}
		key := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		if err := gc.RegisterSVG(key, data); err != nil {
			var shapeErr *glyphmesh.ShapeError
			if errors.As(err, &shapeErr) {
				log.Printf("Skipping %s: %v", path, shapeErr.Err)
				continue
			}
			log.Printf("Failed to import %s: %v", path, err)
			return 1
		}
	}

	report(stdout, gc)
	return 0
}

func loadFaces(paths []string, backend string) ([]fonts.Face, error) {
	load := func(data []byte) (fonts.Face, error) {
		switch backend {
		case "opentype":
			return fonts.ParseOpenType(data)
		case "sfnt":
			return fonts.ParseSFNT(data)
		default:
			return nil, fmt.Errorf("unknown backend %q", backend)
		}
	}
	if len(paths) == 0 {
		f, err := load(goregular.TTF)
		if err != nil {
			return nil, err
		}
		return []fonts.Face{f}, nil
	}
	faces := make([]fonts.Face, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		f, err := load(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		faces = append(faces, f)
	}
	return faces, nil
}

// openDevice opens the headless noop device.
func openDevice() (hal.Device, hal.Queue, func(), error) {
	instance, err := noop.API{}.CreateInstance(nil)
	if err != nil {
		return nil, nil, nil, err
	}
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, nil, nil, errors.New("no adapter")
	}
	openDev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, nil, nil, err
	}
	release := func() {
		openDev.Device.Destroy()
		instance.Destroy()
	}
	return openDev.Device, openDev.Queue, release, nil
}

func report(w io.Writer, gc *glyphmesh.GlyphCache) {
	s := gc.Stats()
	fmt.Fprintf(w, "glyphs: %d  shapes: %d\n", s.Glyphs, s.Shapes)
	fmt.Fprintf(w, "outline memo: %d hits, %d misses\n", s.OutlineHits, s.OutlineMisses)
	for _, c := range s.Pool.VertexChunks {
		fmt.Fprintf(w, "  %-28s %8d / %d bytes\n", c.Label, c.Offset, c.Capacity)
	}
	for _, c := range s.Pool.IndexChunks {
		fmt.Fprintf(w, "  %-28s %8d / %d bytes\n", c.Label, c.Offset, c.Capacity)
	}

	var wide []string
	for _, k := range gc.RegisteredKeys() {
		if k.Direction == glyphmesh.Vertical {
			wide = append(wide, string(k.Rune))
		}
	}
	if len(wide) > 0 {
		fmt.Fprintf(w, "vertical variants: %s\n", strings.Join(wide, " "))
	}
	for _, key := range gc.ShapeKeys() {
		info, err := gc.ShapeDrawInfo(key)
		if err != nil {
			continue
		}
		fmt.Fprintf(w, "shape %s: %d triangles\n", key, info.IndexCount()/3)
	}
}
