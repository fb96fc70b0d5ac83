// Command topoguia renders a printable route sheet from a JSON route record.
//
// # Usage
//
//	topoguia -in record.json -out ficha.pdf
//
// Media references in the record (panoramic, topoMap, elevationProfile and
// the logos list) are read as file paths relative to the record file. Missing
// media is replaced by labelled placeholder frames and reported on stderr.
//
// # Flags
//
//   - -in: route record JSON file (required)
//   - -out: output PDF path (default ficha.pdf)
//   - -stationery: PDF whose first pages are drawn under the content
//   - -fonts: directory with core font definition files
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"topoguia/layout"
	"topoguia/media"
	"topoguia/record"
	"topoguia/render"
)

func main() {
	var (
		in         = flag.String("in", "", "route record JSON file")
		out        = flag.String("out", "ficha.pdf", "output PDF path")
		stationery = flag.String("stationery", "", "stationery PDF drawn under the content")
		fonts      = flag.String("fonts", "", "core font definition directory")
	)
	flag.Parse()

	if *in == "" {
		fmt.Fprintln(os.Stderr, "topoguia: -in is required")
		flag.Usage()
		os.Exit(2)
	}

	if err := run(*in, *out, *stationery, *fonts); err != nil {
		fmt.Fprintf(os.Stderr, "topoguia: %v\n", err)
		os.Exit(1)
	}
}

func run(in, out, stationery, fonts string) error {
	data, err := os.ReadFile(in)
	if err != nil {
		return err
	}
	var rec record.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return fmt.Errorf("parsing %s: %w", in, err)
	}

	assets, err := loadMedia(&rec, filepath.Dir(in))
	if err != nil {
		return err
	}

	ins, warnings, err := layout.Build(&rec, layout.DefaultTemplate())
	if err != nil {
		return err
	}
	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "topoguia: %s\n", w)
	}

	var opts []render.Option
	if fonts != "" {
		opts = append(opts, render.WithFontDir(fonts))
	}
	if stationery != "" {
		opts = append(opts, render.WithStationery(stationery))
	}

	f, err := os.Create(out)
	if err != nil {
		return err
	}
	if err := render.New(opts...).Render(f, ins, assets); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	fmt.Printf("wrote %s (%s, %d blocks)\n", out, rec.Code, len(ins))
	return nil
}

// loadMedia resolves the record's media paths against dir, registers the
// images that exist and rewrites the record references onto the registered
// handle names. Absent paths are left for the placeholder machinery.
func loadMedia(rec *record.Record, dir string) (*media.Set, error) {
	assets := media.NewSet()

	slots := []struct {
		path *string
		name string
	}{
		{&rec.Media.Panoramic, layout.SlotPanoramic},
		{&rec.Media.TopoMap, layout.SlotTopoMap},
		{&rec.Media.ElevationProfile, layout.SlotProfile},
	}
	for _, s := range slots {
		if *s.path == "" {
			continue
		}
		if err := addFile(assets, s.name, dir, *s.path); err != nil {
			return nil, err
		}
		*s.path = s.name
	}

	for i, path := range rec.Logos {
		name := fmt.Sprintf("logo-%d", i)
		if err := addFile(assets, name, dir, path); err != nil {
			return nil, err
		}
		if err := assets.ScaleLogo(name, 200, 120); err != nil {
			return nil, err
		}
		rec.Logos[i] = name
	}
	return assets, nil
}

func addFile(assets *media.Set, name, dir, path string) error {
	if !filepath.IsAbs(path) {
		path = filepath.Join(dir, path)
	}
	if _, err := assets.AddFile(name, path); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}
