package resolve

import (
	"errors"
	"strings"
	"testing"

	"github.com/nathoo/ember/engine/state"
	"github.com/nathoo/ember/types"
)

func testSetup() (*state.Player, *state.World) {
	laptop := &state.Item{Key: "laptop", Name: "laptop"}
	beacon := &state.Item{Key: "emergency_beacon", Name: "emergency beacon"}
	journal := &state.Item{Key: "journal", Name: "journal"}
	roomLaptop := &state.Item{Key: "spare_laptop", Name: "laptop"}
	w := &state.World{
		Start: "comms",
		Rooms: map[string]*state.Room{
			"comms": {
				Key:   "comms",
				Exits: map[types.Direction]string{},
				Items: []*state.Item{beacon, roomLaptop},
			},
		},
		Items: map[string]*state.Item{
			"laptop": laptop, "emergency_beacon": beacon, "journal": journal, "spare_laptop": roomLaptop,
		},
	}
	p := state.NewPlayer("Player1", w)
	p.AddItem(laptop)
	p.AddItem(journal)
	return p, w
}

func TestFind_RoomFirst(t *testing.T) {
	p, w := testSetup()
	it, owner, err := Find(p, w, "LAPTOP", Room, Inventory)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if owner != Room || it.Key != "spare_laptop" {
		t.Errorf("got %s from %v, want spare_laptop from room", it.Key, owner)
	}
}

func TestFind_InventoryFirst(t *testing.T) {
	p, w := testSetup()
	it, owner, err := Find(p, w, "laptop", Inventory, Room)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if owner != Inventory || it.Key != "laptop" {
		t.Errorf("got %s from %v, want laptop from inventory", it.Key, owner)
	}
}

func TestFind_FallsThrough(t *testing.T) {
	p, w := testSetup()
	it, owner, err := Find(p, w, "journal", Room, Inventory)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if owner != Inventory || it.Key != "journal" {
		t.Errorf("got %s from %v", it.Key, owner)
	}
}

func TestFind_NotFoundWithSuggestion(t *testing.T) {
	p, w := testSetup()
	_, owner, err := Find(p, w, "emergency beacn", Room)
	if owner != Nowhere {
		t.Errorf("owner = %v, want Nowhere", owner)
	}
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected *NotFoundError, got %T", err)
	}
	if nf.Suggestion != "emergency beacon" {
		t.Errorf("Suggestion = %q", nf.Suggestion)
	}
	if !strings.Contains(err.Error(), "here") || !strings.Contains(err.Error(), "Did you mean") {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestFind_NotFoundNoSuggestion(t *testing.T) {
	p, w := testSetup()
	_, _, err := Find(p, w, "xylophone", Room, Inventory)
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected *NotFoundError, got %T", err)
	}
	if nf.Suggestion != "" {
		t.Errorf("expected no suggestion, got %q", nf.Suggestion)
	}
	if nf.Where != Nowhere {
		t.Errorf("Where = %v, want Nowhere for multi-owner search", nf.Where)
	}
}

func TestFind_OnlyRoomSearched(t *testing.T) {
	p, w := testSetup()
	// journal is carried but not in the room.
	_, _, err := Find(p, w, "journal", Room)
	if err == nil {
		t.Fatal("expected not found when only the room is searched")
	}
}
