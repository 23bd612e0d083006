// Package loader reads YAML world definitions into a validated World.
// Every file contributes rooms, items and NPCs; exactly one file carries
// the game section.
package loader

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/nathoo/ember/engine/state"
	"github.com/nathoo/ember/world"
)

// Load reads all .yaml files from dir.
func Load(dir string, log *slog.Logger) (*state.World, error) {
	w, err := LoadFS(os.DirFS(dir), log)
	if err != nil {
		return nil, fmt.Errorf("loading world from %s: %w", dir, err)
	}
	return w, nil
}

// Default loads the world embedded in the binary.
func Default(log *slog.Logger) (*state.World, error) {
	return LoadFS(world.Files, log)
}

// LoadFS reads all top-level .yaml files in fsys, compiles them and checks
// the result. A *ValidationError is returned when the data is unusable;
// warnings are only logged.
func LoadFS(fsys fs.FS, log *slog.Logger) (*state.World, error) {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	names, err := fs.Glob(fsys, "*.yaml")
	if err != nil {
		return nil, fmt.Errorf("listing world files: %w", err)
	}
	if len(names) == 0 {
		return nil, errors.New("no .yaml world files found")
	}

	var files []rawFile
	for _, name := range sortedFiles(names) {
		f, err := decodeFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", name, err)
		}
		files = append(files, f)
	}

	w, err := compile(files)
	if err != nil {
		return nil, fmt.Errorf("compiling world data: %w", err)
	}

	ve := check(w)
	for _, warning := range ve.Warnings {
		log.Warn("world data", "warning", warning)
	}
	if len(ve.Errors) > 0 {
		return nil, ve
	}

	log.Info("world loaded", "files", len(files), "rooms", len(w.Rooms),
		"items", len(w.Items), "npcs", len(w.NPCs))
	return w, nil
}

// decodeFile decodes one file strictly: unknown fields are errors.
func decodeFile(fsys fs.FS, name string) (rawFile, error) {
	rf := rawFile{name: name}

	f, err := fsys.Open(name)
	if err != nil {
		return rf, err
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&rf); err != nil && !errors.Is(err, io.EOF) {
		return rf, err
	}
	return rf, nil
}
