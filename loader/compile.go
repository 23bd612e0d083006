package loader

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nathoo/ember/engine/direction"
	"github.com/nathoo/ember/engine/state"
	"github.com/nathoo/ember/types"
)

// rawFile is one decoded world definition file.
type rawFile struct {
	name string

	Game  *rawGame  `yaml:"game"`
	Rooms []rawRoom `yaml:"rooms"`
	Items []rawItem `yaml:"items"`
	NPCs  []rawNPC  `yaml:"npcs"`
}

type rawGame struct {
	Title string   `yaml:"title"`
	Start string   `yaml:"start"`
	Intro []string `yaml:"intro"`
}

type rawRoom struct {
	Key         string            `yaml:"key"`
	Name        string            `yaml:"name"`
	Area        string            `yaml:"area"`
	Description string            `yaml:"description"`
	Exits       map[string]string `yaml:"exits"`
	Items       []string          `yaml:"items"`
	FirstVisit  []string          `yaml:"first_visit"`
}

type rawItem struct {
	Key          string            `yaml:"key"`
	Name         string            `yaml:"name"`
	Description  string            `yaml:"description"`
	Requires     []string          `yaml:"requires"`
	Contains     []string          `yaml:"contains"`
	Interactions map[string]string `yaml:"interactions"`
}

type rawNPC struct {
	Key         string   `yaml:"key"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Location    string   `yaml:"location"`
	Approach    []string `yaml:"approach"`
	Dialogue    []string `yaml:"dialogue"`
	Interaction string   `yaml:"interaction"`
}

// compile turns decoded files into a World. Items are compiled first so
// rooms can hold pointers into the registry. Problems that prevent building
// the graph (duplicate keys, bad directions, unknown placements) are
// collected into a ValidationError.
func compile(files []rawFile) (*state.World, error) {
	ve := &ValidationError{}
	w := &state.World{
		Rooms: make(map[string]*state.Room),
		Items: make(map[string]*state.Item),
		NPCs:  make(map[string]*state.NPC),
	}

	gameFrom := ""
	for _, f := range files {
		if f.Game == nil {
			continue
		}
		if gameFrom != "" {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"game section defined in both %s and %s", gameFrom, f.name))
			continue
		}
		gameFrom = f.name
		w.Title = f.Game.Title
		w.Start = f.Game.Start
		w.Intro = f.Game.Intro
	}
	if gameFrom == "" {
		ve.Errors = append(ve.Errors, "no game section found")
	}

	for _, f := range files {
		for _, ri := range f.Items {
			if ri.Key == "" {
				ve.Errors = append(ve.Errors, fmt.Sprintf("%s: item without a key", f.name))
				continue
			}
			if _, dup := w.Items[ri.Key]; dup {
				ve.Errors = append(ve.Errors, fmt.Sprintf("%s: duplicate item %q", f.name, ri.Key))
				continue
			}
			w.Items[ri.Key] = compileItem(ri)
		}
	}

	for _, f := range files {
		for _, rr := range f.Rooms {
			if rr.Key == "" {
				ve.Errors = append(ve.Errors, fmt.Sprintf("%s: room without a key", f.name))
				continue
			}
			if _, dup := w.Rooms[rr.Key]; dup {
				ve.Errors = append(ve.Errors, fmt.Sprintf("%s: duplicate room %q", f.name, rr.Key))
				continue
			}
			w.Rooms[rr.Key] = compileRoom(rr, w.Items, ve)
		}
	}

	for _, f := range files {
		for _, rn := range f.NPCs {
			if rn.Key == "" {
				ve.Errors = append(ve.Errors, fmt.Sprintf("%s: npc without a key", f.name))
				continue
			}
			if _, dup := w.NPCs[rn.Key]; dup {
				ve.Errors = append(ve.Errors, fmt.Sprintf("%s: duplicate npc %q", f.name, rn.Key))
				continue
			}
			w.NPCs[rn.Key] = &state.NPC{
				Key:         rn.Key,
				Name:        rn.Name,
				Description: rn.Description,
				Location:    rn.Location,
				Approach:    rn.Approach,
				Dialogue:    rn.Dialogue,
				Interaction: rn.Interaction,
			}
		}
	}

	if len(ve.Errors) > 0 {
		return nil, ve
	}
	return w, nil
}

func compileItem(ri rawItem) *state.Item {
	name := ri.Name
	if name == "" {
		name = strings.ReplaceAll(ri.Key, "_", " ")
	}
	return &state.Item{
		Key:          ri.Key,
		Name:         name,
		Description:  ri.Description,
		Requires:     ri.Requires,
		Contains:     ri.Contains,
		Interactions: ri.Interactions,
	}
}

func compileRoom(rr rawRoom, items map[string]*state.Item, ve *ValidationError) *state.Room {
	room := &state.Room{
		Key:         rr.Key,
		Name:        rr.Name,
		Area:        state.Area(rr.Area),
		Description: rr.Description,
		Exits:       make(map[types.Direction]string, len(rr.Exits)),
		Items:       make([]*state.Item, 0, len(rr.Items)),
		FirstVisit:  rr.FirstVisit,
	}

	switch room.Area {
	case state.AreaShip, state.AreaSurface:
	default:
		ve.Errors = append(ve.Errors, fmt.Sprintf(
			"room %q has unknown area %q (want %q or %q)", rr.Key, rr.Area, state.AreaShip, state.AreaSurface))
	}

	// Sorted so error order does not depend on map iteration.
	dirs := make([]string, 0, len(rr.Exits))
	for d := range rr.Exits {
		dirs = append(dirs, d)
	}
	sort.Strings(dirs)
	for _, d := range dirs {
		abs := types.Direction(strings.ToLower(d))
		if !direction.IsAbsolute(abs) {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"room %q exit %q is not a compass direction", rr.Key, d))
			continue
		}
		room.Exits[abs] = rr.Exits[d]
	}

	for _, key := range rr.Items {
		it, ok := items[key]
		if !ok {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"room %q places undefined item %q", rr.Key, key))
			continue
		}
		room.Items = append(room.Items, it)
	}
	return room
}

// sortedFiles returns world files with game.yaml first and the rest sorted
// alphabetically.
func sortedFiles(files []string) []string {
	var gameFile string
	var others []string
	for _, f := range files {
		if f == "game.yaml" {
			gameFile = f
		} else {
			others = append(others, f)
		}
	}
	sort.Strings(others)
	if gameFile != "" {
		return append([]string{gameFile}, others...)
	}
	return others
}
