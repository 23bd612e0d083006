// Package state holds the world graph and the mutable player record the
// engine operates on. A World is owned by a single session and passed
// explicitly to every engine call.
package state

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/nathoo/ember/types"
)

// Area groups rooms into inside and outside the ship.
type Area string

const (
	AreaShip    Area = "ship"
	AreaSurface Area = "surface"
)

// Room keys with scripted entry behaviour.
const (
	RoomCommunications   = "communications_room"
	RoomExitHatch        = "exit_hatch"
	RoomSurface          = "mars_surface"
	RoomHabitatAirlock   = "habitat_airlock"
	RoomSleepingQuarters = "sleeping_quarters"
	RoomStorage          = "storage_room"
)

// Item keys with scripted use behaviour.
const (
	ItemPowerCell = "power_cell"
	ItemIris      = "iris"
	ItemAntenna   = "antenna"
	ItemBeacon    = "emergency_beacon"
	ItemWrench    = "wrench"
)

// NPCOldRover is the derelict rover unit met on the surface.
const NPCOldRover = "old_rover"

// ScriptedRooms must exist in every world.
var ScriptedRooms = []string{
	RoomCommunications, RoomExitHatch, RoomSurface,
	RoomHabitatAirlock, RoomSleepingQuarters, RoomStorage,
}

// ScriptedItems must exist in every world.
var ScriptedItems = []string{ItemPowerCell, ItemIris, ItemAntenna, ItemBeacon, ItemWrench}

// Item is an entity that lives in a room, in the inventory, or sealed
// inside a container until it is unlocked.
type Item struct {
	Key          string
	Name         string
	Description  string
	Requires     []string          // tool names that unlock this item
	Contains     []string          // item keys revealed when unlocked
	Interactions map[string]string // verb -> text overriding the description
}

// InspectText returns the custom inspect text, falling back to the
// description.
func (it *Item) InspectText() string {
	if text, ok := it.Interactions["inspect"]; ok && text != "" {
		return text
	}
	return it.Description
}

// Unlockable reports whether tool opens this item.
func (it *Item) Unlockable(tool *Item) bool {
	for _, name := range it.Requires {
		if strings.EqualFold(name, tool.Name) {
			return true
		}
	}
	return false
}

// Room is a node in the location graph.
type Room struct {
	Key         string
	Name        string
	Area        Area
	Description string
	Exits       map[types.Direction]string
	Items       []*Item
	FirstVisit  []string // narration played on the first entry, if any
}

// DisplayName returns the room's name, deriving one from the key when unset.
// "rover_launch_bay" -> "Rover Launch Bay".
func (r *Room) DisplayName() string {
	if r.Name != "" {
		return r.Name
	}
	return DisplayName(r.Key)
}

// DisplayName title-cases an underscore separated key.
func DisplayName(key string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(key, "_", " "))
}

// FindItem returns the room item whose name matches case-insensitively.
func (r *Room) FindItem(name string) *Item {
	return findByName(r.Items, name)
}

// RemoveItem removes the item with the given key. Returns false if absent.
func (r *Room) RemoveItem(key string) bool {
	var ok bool
	r.Items, ok = removeByKey(r.Items, key)
	return ok
}

// NPC is a non-player character bound to a room.
type NPC struct {
	Key         string
	Name        string
	Description string
	Location    string
	Approach    []string // narration played as the player arrives
	Dialogue    []string
	Interaction string // name of the procedure in engine/npc
}

// World is the static room graph plus the item registry.
type World struct {
	Title string
	Intro []string
	Start string
	Rooms map[string]*Room
	Items map[string]*Item // every item definition, by key
	NPCs  map[string]*NPC
}

// NPCAt returns the NPC stationed in room, or nil.
func (w *World) NPCAt(room string) *NPC {
	for _, n := range w.NPCs {
		if n.Location == room {
			return n
		}
	}
	return nil
}

// Flags are the one-shot and persistent narrative markers.
type Flags struct {
	CommsUnlocked      bool // communications room access code accepted
	OldRoverAlive      bool // the derelict rover is intact
	AirlockVisited     bool // habitat air lock first-visit narration played
	QuartersVisited    bool // sleeping quarters first-visit narration played
	StorageVisited     bool // storage room first-visit narration played
	AirlockFromDoor    bool // left the ship through the interior hatch door
	StormHintShown     bool
	IrisBroken         bool
	CalibrationSuccess bool // outcome of the last IRIS calibration
}

// Player is the mutable record for the single actor.
type Player struct {
	Name      string
	Room      string
	Facing    types.Direction
	Inventory []*Item
	MoveCount int
	History   []string // rooms entered, in order
	Flags     Flags
}

// NewPlayer creates a player standing in the world's start room, facing north.
func NewPlayer(name string, w *World) *Player {
	return &Player{
		Name:      name,
		Room:      w.Start,
		Facing:    types.North,
		Inventory: []*Item{},
		History:   []string{},
		Flags: Flags{
			OldRoverAlive: true,
		},
	}
}

// HasItem returns true if an item with the given key is carried.
func (p *Player) HasItem(key string) bool {
	for _, it := range p.Inventory {
		if it.Key == key {
			return true
		}
	}
	return false
}

// FindItem returns the carried item whose name matches case-insensitively.
func (p *Player) FindItem(name string) *Item {
	return findByName(p.Inventory, name)
}

// AddItem appends it to the inventory.
func (p *Player) AddItem(it *Item) {
	p.Inventory = append(p.Inventory, it)
}

// RemoveItem drops the carried item with the given key.
func (p *Player) RemoveItem(key string) bool {
	var ok bool
	p.Inventory, ok = removeByKey(p.Inventory, key)
	return ok
}

// FirstVisitFlag returns the dedicated first-visit flag for room, or nil
// when the room has none.
func (p *Player) FirstVisitFlag(room string) *bool {
	switch room {
	case RoomHabitatAirlock:
		return &p.Flags.AirlockVisited
	case RoomSleepingQuarters:
		return &p.Flags.QuartersVisited
	case RoomStorage:
		return &p.Flags.StorageVisited
	}
	return nil
}

// ItemNames returns the display names of items in order.
func ItemNames(items []*Item) []string {
	names := make([]string, 0, len(items))
	for _, it := range items {
		names = append(names, it.Name)
	}
	return names
}

func findByName(items []*Item, name string) *Item {
	name = strings.TrimSpace(name)
	for _, it := range items {
		if strings.EqualFold(it.Name, name) {
			return it
		}
	}
	return nil
}

func removeByKey(items []*Item, key string) ([]*Item, bool) {
	for i, it := range items {
		if it.Key == key {
			return append(items[:i], items[i+1:]...), true
		}
	}
	return items, false
}
