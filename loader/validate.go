package loader

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nathoo/ember/engine/npc"
	"github.com/nathoo/ember/engine/state"
)

// ValidationError collects all validation errors and warnings.
type ValidationError struct {
	Errors   []string
	Warnings []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed with %d error(s):\n  %s",
		len(e.Errors), strings.Join(e.Errors, "\n  "))
}

// Validate checks a compiled world for referential integrity. It returns
// nil or a *ValidationError listing every problem found.
func Validate(w *state.World) error {
	if ve := check(w); len(ve.Errors) > 0 {
		return ve
	}
	return nil
}

func check(w *state.World) *ValidationError {
	ve := &ValidationError{}

	if w.Title == "" {
		ve.Errors = append(ve.Errors, "game title is required")
	}
	if w.Start == "" {
		ve.Errors = append(ve.Errors, "game start room is required")
	} else if _, ok := w.Rooms[w.Start]; !ok {
		ve.Errors = append(ve.Errors, fmt.Sprintf(
			"start room %q not found in defined rooms", w.Start))
	}

	// Exit targets valid.
	for _, key := range sortedKeys(w.Rooms) {
		room := w.Rooms[key]
		for dir, target := range room.Exits {
			if _, ok := w.Rooms[target]; !ok {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"room %q exit %s points to undefined room %q", key, dir, target))
			}
		}
	}

	// Contents valid, never self-referential.
	for _, key := range sortedKeys(w.Items) {
		it := w.Items[key]
		for _, c := range it.Contains {
			if c == key {
				ve.Errors = append(ve.Errors, fmt.Sprintf("item %q contains itself", key))
			} else if _, ok := w.Items[c]; !ok {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"item %q contains undefined item %q", key, c))
			}
		}
	}

	checkOwnership(w, ve)

	for _, key := range state.ScriptedRooms {
		if _, ok := w.Rooms[key]; !ok {
			ve.Errors = append(ve.Errors, fmt.Sprintf("required room %q is not defined", key))
		}
	}
	for _, key := range state.ScriptedItems {
		if _, ok := w.Items[key]; !ok {
			ve.Errors = append(ve.Errors, fmt.Sprintf("required item %q is not defined", key))
		}
	}

	located := make(map[string]string)
	for _, key := range sortedKeys(w.NPCs) {
		n := w.NPCs[key]
		if _, ok := w.Rooms[n.Location]; !ok {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"npc %q location %q does not match any defined room", key, n.Location))
		}
		if other, ok := located[n.Location]; ok {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"npcs %q and %q share room %q", other, key, n.Location))
		}
		located[n.Location] = key
		if n.Interaction != "" {
			if _, ok := npc.Lookup(n.Interaction); !ok {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"npc %q uses unknown interaction %q", key, n.Interaction))
			}
		}
	}

	// Warnings: tools nobody can hold, rooms nobody can reach.
	names := make(map[string]bool, len(w.Items))
	for _, it := range w.Items {
		names[strings.ToLower(it.Name)] = true
	}
	for _, key := range sortedKeys(w.Items) {
		for _, tool := range w.Items[key].Requires {
			if !names[strings.ToLower(tool)] {
				ve.Warnings = append(ve.Warnings, fmt.Sprintf(
					"item %q requires %q, which no item is called", key, tool))
			}
		}
	}
	if _, ok := w.Rooms[w.Start]; ok {
		reached := reachable(w)
		for _, key := range sortedKeys(w.Rooms) {
			if !reached[key] {
				ve.Warnings = append(ve.Warnings, fmt.Sprintf(
					"room %q is not reachable from %q", key, w.Start))
			}
		}
	}

	return ve
}

// checkOwnership reports items held by more than one room or container.
func checkOwnership(w *state.World, ve *ValidationError) {
	owners := make(map[string][]string)
	for _, key := range sortedKeys(w.Rooms) {
		for _, it := range w.Rooms[key].Items {
			owners[it.Key] = append(owners[it.Key], "room "+key)
		}
	}
	for _, key := range sortedKeys(w.Items) {
		for _, c := range w.Items[key].Contains {
			owners[c] = append(owners[c], "item "+key)
		}
	}
	for _, key := range sortedKeys(owners) {
		if o := owners[key]; len(o) > 1 {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"item %q has more than one owner: %s", key, strings.Join(o, ", ")))
		}
	}
}

// reachable walks exits from the start room. The exit hatch also leads to
// the surface through its scripted door.
func reachable(w *state.World) map[string]bool {
	seen := map[string]bool{w.Start: true}
	queue := []string{w.Start}
	for len(queue) > 0 {
		key := queue[0]
		queue = queue[1:]
		room, ok := w.Rooms[key]
		if !ok {
			continue
		}
		next := make([]string, 0, len(room.Exits)+1)
		for _, target := range room.Exits {
			next = append(next, target)
		}
		if key == state.RoomExitHatch {
			next = append(next, state.RoomSurface)
		}
		for _, target := range next {
			if !seen[target] {
				seen[target] = true
				queue = append(queue, target)
			}
		}
	}
	return seen
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
