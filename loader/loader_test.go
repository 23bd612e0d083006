package loader

import (
	"bytes"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/nathoo/ember/engine/state"
	"github.com/nathoo/ember/types"
	"github.com/nathoo/ember/world"
)

// embeddedFiles copies the embedded world into a MapFS that tests can edit.
func embeddedFiles(t *testing.T) fstest.MapFS {
	t.Helper()
	m := fstest.MapFS{}
	names, err := fs.Glob(world.Files, "*.yaml")
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range names {
		data, err := fs.ReadFile(world.Files, name)
		if err != nil {
			t.Fatal(err)
		}
		m[name] = &fstest.MapFile{Data: data}
	}
	return m
}

func TestDefault_LoadsEmbeddedWorld(t *testing.T) {
	w, err := Default(nil)
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	if w.Start != "center" {
		t.Errorf("Start = %q, want center", w.Start)
	}
	if w.Title == "" || len(w.Intro) == 0 {
		t.Error("missing title or intro")
	}
	for _, key := range state.ScriptedRooms {
		if _, ok := w.Rooms[key]; !ok {
			t.Errorf("room %q missing", key)
		}
	}
	if n := w.NPCAt(state.NPCOldRover); n == nil || n.Interaction != "salvage" {
		t.Errorf("old rover = %+v", n)
	}
	if w.Rooms[state.RoomSurface].Area != state.AreaSurface {
		t.Error("surface room not in the surface area")
	}
	if _, ok := w.Rooms[state.RoomExitHatch].Exits[types.West]; ok {
		t.Error("exit hatch should have no west exit")
	}
}

func TestDefault_FreshCopies(t *testing.T) {
	a, err := Default(nil)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Default(nil)
	if err != nil {
		t.Fatal(err)
	}
	a.Rooms["center"].Items = nil
	if len(b.Rooms["center"].Items) == 0 {
		t.Error("worlds share room state")
	}
}

func TestLoad_Directory(t *testing.T) {
	dir := t.TempDir()
	for name, f := range embeddedFiles(t) {
		if err := os.WriteFile(filepath.Join(dir, name), f.Data, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	// Non-yaml files are ignored.
	if err := os.WriteFile(filepath.Join(dir, "README.txt"), []byte("notes"), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := Load(dir, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(w.Rooms) != 14 {
		t.Errorf("rooms = %d, want 14", len(w.Rooms))
	}
}

func TestLoad_MissingDirectory(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope"), nil)
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestLoadFS_CorruptedExitAborts(t *testing.T) {
	m := embeddedFiles(t)
	ship := string(m["ship.yaml"].Data)
	m["ship.yaml"] = &fstest.MapFile{Data: []byte(strings.Replace(ship, "north: control_room", "north: bridge", 1))}

	_, err := LoadFS(m, nil)
	if err == nil {
		t.Fatal("expected validation error")
	}
	ve, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("expected *ValidationError, got %T: %v", err, err)
	}
	assertContains(t, ve.Errors, `undefined room "bridge"`)
}

func TestLoadFS_UnknownField(t *testing.T) {
	m := embeddedFiles(t)
	m["extra.yaml"] = &fstest.MapFile{Data: []byte("rooms:\n  - key: attic\n    colour: red\n")}
	_, err := LoadFS(m, nil)
	if err == nil || !strings.Contains(err.Error(), "extra.yaml") {
		t.Fatalf("err = %v, want decode error naming extra.yaml", err)
	}
}

func TestLoadFS_EmptyFile(t *testing.T) {
	m := embeddedFiles(t)
	m["empty.yaml"] = &fstest.MapFile{Data: nil}
	if _, err := LoadFS(m, nil); err != nil {
		t.Fatalf("empty file rejected: %v", err)
	}
}

func TestLoadFS_NoFiles(t *testing.T) {
	_, err := LoadFS(fstest.MapFS{"notes.txt": {Data: []byte("x")}}, nil)
	if err == nil || !strings.Contains(err.Error(), "no .yaml") {
		t.Fatalf("err = %v", err)
	}
}

func TestLoadFS_LogsWarnings(t *testing.T) {
	m := embeddedFiles(t)
	m["extra.yaml"] = &fstest.MapFile{Data: []byte(
		"rooms:\n  - key: attic\n    area: ship\n    description: Dusty.\n")}

	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))
	if _, err := LoadFS(m, log); err != nil {
		t.Fatalf("LoadFS: %v", err)
	}
	if !strings.Contains(buf.String(), `room \"attic\" is not reachable`) {
		t.Errorf("log = %q", buf.String())
	}
}
