package state

import (
	"testing"

	"github.com/nathoo/ember/types"
)

func testWorld() *World {
	wrench := &Item{Key: "wrench", Name: "wrench", Description: "A heavy wrench."}
	box := &Item{
		Key:          "locked_box",
		Name:         "locked box",
		Description:  "A steel box.",
		Requires:     []string{"Wrench"},
		Contains:     []string{"power_cell"},
		Interactions: map[string]string{"inspect": "The lid is bolted shut."},
	}
	cell := &Item{Key: "power_cell", Name: "power cell", Description: "A charged cell."}
	return &World{
		Start: "center",
		Rooms: map[string]*Room{
			"center": {
				Key:         "center",
				Area:        AreaShip,
				Description: "The center of the ship.",
				Exits:       map[types.Direction]string{types.East: "storage_room"},
				Items:       []*Item{wrench, box},
			},
			"storage_room": {
				Key:         "storage_room",
				Name:        "Cargo Hold",
				Area:        AreaShip,
				Description: "Crates everywhere.",
				Exits:       map[types.Direction]string{types.West: "center"},
			},
		},
		Items: map[string]*Item{"wrench": wrench, "locked_box": box, "power_cell": cell},
		NPCs: map[string]*NPC{
			"unit": {Key: "unit", Name: "Unit", Location: "storage_room"},
		},
	}
}

func TestNewPlayer_Defaults(t *testing.T) {
	w := testWorld()
	p := NewPlayer("Player1", w)

	if p.Room != "center" {
		t.Errorf("Room = %q, want %q", p.Room, "center")
	}
	if p.Facing != types.North {
		t.Errorf("Facing = %q, want north", p.Facing)
	}
	if !p.Flags.OldRoverAlive {
		t.Error("OldRoverAlive should start true")
	}
	if p.Flags.CommsUnlocked || p.Flags.StormHintShown || p.Flags.IrisBroken {
		t.Error("one-shot flags should start false")
	}
	if p.Inventory == nil || p.History == nil {
		t.Error("inventory and history should be non-nil")
	}
}

func TestRoom_FindAndRemoveItem(t *testing.T) {
	w := testWorld()
	room := w.Rooms["center"]

	if it := room.FindItem("LOCKED BOX"); it == nil || it.Key != "locked_box" {
		t.Fatalf("FindItem case-insensitive failed, got %v", it)
	}
	if it := room.FindItem("box"); it != nil {
		t.Errorf("FindItem should require the full name, got %v", it.Key)
	}
	if !room.RemoveItem("wrench") {
		t.Fatal("RemoveItem(wrench) returned false")
	}
	if room.RemoveItem("wrench") {
		t.Error("second RemoveItem(wrench) should return false")
	}
	if len(room.Items) != 1 {
		t.Errorf("expected 1 item left, got %d", len(room.Items))
	}
}

func TestRoom_DisplayName(t *testing.T) {
	tests := []struct {
		room Room
		want string
	}{
		{Room{Key: "rover_launch_bay"}, "Rover Launch Bay"},
		{Room{Key: "center"}, "Center"},
		{Room{Key: "storage_room", Name: "Cargo Hold"}, "Cargo Hold"},
	}
	for _, tt := range tests {
		if got := tt.room.DisplayName(); got != tt.want {
			t.Errorf("DisplayName(%q) = %q, want %q", tt.room.Key, got, tt.want)
		}
	}
}

func TestItem_InspectText(t *testing.T) {
	w := testWorld()
	if got := w.Items["locked_box"].InspectText(); got != "The lid is bolted shut." {
		t.Errorf("InspectText = %q", got)
	}
	if got := w.Items["wrench"].InspectText(); got != "A heavy wrench." {
		t.Errorf("InspectText fallback = %q", got)
	}
}

func TestItem_Unlockable(t *testing.T) {
	w := testWorld()
	box := w.Items["locked_box"]
	if !box.Unlockable(w.Items["wrench"]) {
		t.Error("box should be unlockable by wrench (case-insensitive)")
	}
	if box.Unlockable(w.Items["power_cell"]) {
		t.Error("box should not be unlockable by power cell")
	}
	if w.Items["wrench"].Unlockable(box) {
		t.Error("item without requires should never unlock")
	}
}

func TestPlayer_Inventory(t *testing.T) {
	w := testWorld()
	p := NewPlayer("Player1", w)
	p.AddItem(w.Items["wrench"])

	if !p.HasItem("wrench") {
		t.Error("expected HasItem(wrench)")
	}
	if p.FindItem("Wrench") == nil {
		t.Error("expected FindItem(Wrench)")
	}
	if !p.RemoveItem("wrench") {
		t.Error("expected RemoveItem(wrench) to succeed")
	}
	if p.HasItem("wrench") {
		t.Error("wrench should be gone")
	}
}

func TestPlayer_FirstVisitFlag(t *testing.T) {
	p := NewPlayer("Player1", testWorld())
	for _, room := range []string{RoomHabitatAirlock, RoomSleepingQuarters, RoomStorage} {
		f := p.FirstVisitFlag(room)
		if f == nil {
			t.Fatalf("expected a flag for %s", room)
		}
		*f = true
	}
	if !p.Flags.AirlockVisited || !p.Flags.QuartersVisited || !p.Flags.StorageVisited {
		t.Error("flags should be set through the returned pointers")
	}
	if p.FirstVisitFlag("center") != nil {
		t.Error("center has no first-visit flag")
	}
}

func TestWorld_NPCAt(t *testing.T) {
	w := testWorld()
	if n := w.NPCAt("storage_room"); n == nil || n.Key != "unit" {
		t.Errorf("NPCAt(storage_room) = %v", n)
	}
	if n := w.NPCAt("center"); n != nil {
		t.Errorf("NPCAt(center) = %v, want nil", n)
	}
}

func TestItemNames(t *testing.T) {
	w := testWorld()
	got := ItemNames(w.Rooms["center"].Items)
	if len(got) != 2 || got[0] != "wrench" || got[1] != "locked box" {
		t.Errorf("ItemNames = %v", got)
	}
}
