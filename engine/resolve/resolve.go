// Package resolve maps item names typed by the player to items in the
// current room or the inventory.
package resolve

import (
	"fmt"

	"github.com/nathoo/ember/engine/state"
	"github.com/nathoo/ember/engine/suggest"
)

// Owner identifies where an item was found.
type Owner int

const (
	Nowhere Owner = iota
	Room
	Inventory
)

func (o Owner) String() string {
	switch o {
	case Room:
		return "here"
	case Inventory:
		return "in your inventory"
	default:
		return "anywhere"
	}
}

// NotFoundError indicates no item matched a name in the searched owners.
type NotFoundError struct {
	Name       string
	Where      Owner // the only owner searched, or Nowhere when several were
	Suggestion string
}

func (e *NotFoundError) Error() string {
	msg := fmt.Sprintf("There is no %q %s.", e.Name, e.Where)
	if e.Suggestion != "" {
		msg += fmt.Sprintf(" Did you mean %q?", e.Suggestion)
	}
	return msg
}

// Find searches the owners in order and returns the first item whose name
// matches case-insensitively, along with where it was found.
func Find(p *state.Player, w *state.World, name string, order ...Owner) (*state.Item, Owner, error) {
	var candidates []string
	for _, o := range order {
		items := itemsOf(p, w, o)
		for _, it := range items {
			candidates = append(candidates, it.Name)
		}
		switch o {
		case Room:
			if room, ok := w.Rooms[p.Room]; ok {
				if it := room.FindItem(name); it != nil {
					return it, Room, nil
				}
			}
		case Inventory:
			if it := p.FindItem(name); it != nil {
				return it, Inventory, nil
			}
		}
	}

	where := Nowhere
	if len(order) == 1 {
		where = order[0]
	}
	nf := &NotFoundError{Name: name, Where: where}
	if s, ok := suggest.Closest(name, candidates, suggest.DefaultCutoff); ok {
		nf.Suggestion = s
	}
	return nil, Nowhere, nf
}

func itemsOf(p *state.Player, w *state.World, o Owner) []*state.Item {
	switch o {
	case Room:
		if room, ok := w.Rooms[p.Room]; ok {
			return room.Items
		}
	case Inventory:
		return p.Inventory
	}
	return nil
}
