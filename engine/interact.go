package engine

import (
	"fmt"
	"strings"

	"github.com/nathoo/ember/engine/direction"
	"github.com/nathoo/ember/engine/parser"
	"github.com/nathoo/ember/engine/resolve"
	"github.com/nathoo/ember/engine/state"
	"github.com/nathoo/ember/types"
)

// currentRoom returns the player's room, reporting a turn-local error when
// the record is missing.
func (e *Engine) currentRoom() (*state.Room, bool) {
	room, ok := e.World.Rooms[e.Player.Room]
	if !ok {
		e.fail((&UnknownRoomError{Key: e.Player.Room}).Error())
	}
	return room, ok
}

func (e *Engine) look() {
	room, ok := e.currentRoom()
	if !ok {
		return
	}
	e.say(room.Description)
	if len(room.Items) == 0 {
		e.say("There are no items here.")
		return
	}
	e.say("You see:")
	for _, name := range state.ItemNames(room.Items) {
		e.say("  - " + name)
	}
}

func (e *Engine) inventory() {
	if len(e.Player.Inventory) == 0 {
		e.say("Your inventory is empty.")
		return
	}
	e.say("You are carrying:")
	for _, name := range state.ItemNames(e.Player.Inventory) {
		e.say("  - " + name)
	}
}

// exits lists every door relative to the way the player faces.
func (e *Engine) exits() {
	room, ok := e.currentRoom()
	if !ok {
		return
	}
	if len(room.Exits) == 0 {
		e.say("There are no exits here.")
		return
	}
	e.say("Exits:")
	for _, abs := range direction.Compass {
		key, ok := room.Exits[abs]
		if !ok {
			continue
		}
		rel, err := direction.Relative(e.Player.Facing, abs)
		if err != nil {
			e.fail(moveMessage(err))
			return
		}
		name := state.DisplayName(key)
		if dest, ok := e.World.Rooms[key]; ok {
			name = dest.DisplayName()
		}
		e.say(fmt.Sprintf("  %s to %s", rel, name))
	}
}

func (e *Engine) take(name string) {
	if name == "" {
		e.fail("Take what?")
		return
	}
	room, ok := e.currentRoom()
	if !ok {
		return
	}
	it, _, err := resolve.Find(e.Player, e.World, name, resolve.Room)
	if err != nil {
		e.fail(err.Error())
		return
	}
	if e.Player.FindItem(it.Name) != nil {
		e.fail(fmt.Sprintf("You already have a %s.", it.Name))
		return
	}

	room.RemoveItem(it.Key)
	e.Player.AddItem(it)
	e.say(fmt.Sprintf("You take the %s.", it.Name))
	e.emit("item_taken", map[string]any{"item": it.Key, "room": room.Key})
}

func (e *Engine) inspect(name string) {
	if name == "" {
		e.fail("Inspect what?")
		return
	}
	it, _, err := resolve.Find(e.Player, e.World, name, resolve.Inventory, resolve.Room)
	if err != nil {
		e.fail(err.Error())
		return
	}
	e.say(it.InspectText())
}

// use handles "use <tool> on <target>".
func (e *Engine) use(args []string) {
	toolName, targetName, found := parser.SplitOn(args, parser.UseSeparator)
	if !found || toolName == "" || targetName == "" {
		e.fail("Use what on what? Try: use <item> on <target>")
		return
	}

	if strings.EqualFold(targetName, state.ItemIris) && e.Player.Flags.IrisBroken {
		e.say("IRIS lies in pieces. There is nothing left to power.")
		return
	}

	// 1. The tool must be carried.
	tool, _, err := resolve.Find(e.Player, e.World, toolName, resolve.Inventory)
	if err != nil {
		e.fail(err.Error())
		return
	}

	// 2. Power cell on IRIS: IRIS itself has to be carried.
	if tool.Key == state.ItemPowerCell && strings.EqualFold(targetName, state.ItemIris) {
		if e.Player.FindItem(targetName) == nil {
			e.fail("You need to be carrying IRIS before you can power it.")
			return
		}
		e.emit("item_used", map[string]any{"tool": tool.Key, "target": state.ItemIris})
		e.calibrate()
		return
	}

	// 3. Resolve the target, room first.
	target, owner, err := resolve.Find(e.Player, e.World, targetName, resolve.Room, resolve.Inventory)
	if err != nil {
		e.fail(err.Error())
		return
	}

	// 4. Antenna on the emergency beacon.
	if tool.Key == state.ItemAntenna && target.Key == state.ItemBeacon {
		e.emit("item_used", map[string]any{"tool": tool.Key, "target": target.Key})
		e.end(types.EndingRescue, rescueEnding...)
		return
	}

	// 5. Generic unlock.
	if target.Unlockable(tool) {
		e.unlock(tool, target, owner)
		return
	}

	e.say(fmt.Sprintf("Using the %s on the %s did nothing.", tool.Name, target.Name))
}

// unlock opens container with tool: its contents always go to the
// inventory and the container leaves whichever owner held it.
func (e *Engine) unlock(tool, container *state.Item, owner resolve.Owner) {
	e.say(fmt.Sprintf("You use the %s on the %s. It opens.", tool.Name, container.Name))

	var revealed []string
	for _, key := range container.Contains {
		it, ok := e.World.Items[key]
		if !ok {
			e.Log.Warn("container holds unknown item", "container", container.Key, "item", key)
			continue
		}
		e.Player.AddItem(it)
		revealed = append(revealed, it.Key)
		e.say(fmt.Sprintf("You find %s inside and take it.", withArticle(it.Name)))
	}

	switch owner {
	case resolve.Inventory:
		e.Player.RemoveItem(container.Key)
	case resolve.Room:
		if room, ok := e.World.Rooms[e.Player.Room]; ok {
			room.RemoveItem(container.Key)
		}
	}

	e.emit("container_opened", map[string]any{
		"container": container.Key, "tool": tool.Key, "contents": revealed,
	})
}

// withArticle prefixes name with "a" or "an". All-caps names are proper
// nouns and stay bare.
func withArticle(name string) string {
	if name == "" || name == strings.ToUpper(name) {
		return name
	}
	if strings.ContainsRune("aeiouAEIOU", rune(name[0])) {
		return "an " + name
	}
	return "a " + name
}
