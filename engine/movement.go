package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nathoo/ember/engine/direction"
	"github.com/nathoo/ember/engine/npc"
	"github.com/nathoo/ember/engine/state"
	"github.com/nathoo/ember/types"
)

// AccessCode opens the communications room door.
const AccessCode = "EMBER-IRIS-8924"

// NoExitError indicates a valid compass direction with no door in it.
type NoExitError struct {
	Token     string
	Direction types.Direction
	Room      string
}

func (e *NoExitError) Error() string {
	return fmt.Sprintf("You cannot move %s (%s) from the %s.", e.Token, e.Direction, e.Room)
}

// UnknownRoomError indicates a room key with no room record.
type UnknownRoomError struct {
	Key string
}

func (e *UnknownRoomError) Error() string {
	return fmt.Sprintf("There is no room called %q.", e.Key)
}

// move resolves token against the player's facing and walks through the
// matching exit, running any entry gate on the way.
func (e *Engine) move(token string) {
	from, dest, abs, err := e.route(token)
	if err != nil {
		e.fail(moveMessage(err))
		return
	}
	e.enter(from, dest, abs)
}

// route finds the source room, destination room and absolute direction for
// a movement token without touching player state.
func (e *Engine) route(token string) (from, dest *state.Room, abs types.Direction, err error) {
	from, ok := e.World.Rooms[e.Player.Room]
	if !ok {
		return nil, nil, "", &UnknownRoomError{Key: e.Player.Room}
	}
	abs, err = direction.Resolve(e.Player.Facing, token)
	if err != nil {
		return nil, nil, "", err
	}
	destKey, ok := from.Exits[abs]
	if !ok {
		return nil, nil, "", &NoExitError{
			Token:     strings.ToLower(strings.TrimSpace(token)),
			Direction: abs,
			Room:      from.DisplayName(),
		}
	}
	dest, ok = e.World.Rooms[destKey]
	if !ok {
		return nil, nil, "", &UnknownRoomError{Key: destKey}
	}
	return from, dest, abs, nil
}

func moveMessage(err error) string {
	var de *direction.InvalidDirectionError
	if errors.As(err, &de) {
		return fmt.Sprintf("%q is not a direction. Try forward, back, left or right.", de.Token)
	}
	var fe *direction.InvalidFacingError
	if errors.As(err, &fe) {
		return fmt.Sprintf("You have lost your bearings (%s).", err)
	}
	return err.Error()
}

// enter applies the destination gates in order, then the generic transition.
func (e *Engine) enter(from, dest *state.Room, abs types.Direction) {
	f := &e.Player.Flags

	switch dest.Key {
	case state.RoomCommunications:
		if !f.CommsUnlocked {
			e.askAccessCode(from, dest, abs)
			return
		}
	case state.RoomExitHatch:
		e.askHatch(from, dest)
		return
	}

	if n := e.World.NPCAt(dest.Key); n != nil && e.npcActive(n) {
		e.narrate(n.Approach...)
		e.narrate(n.Dialogue...)
		e.encounter(n, func() {
			e.firstVisit(dest)
			e.transition(dest, abs)
		})
		return
	}

	e.firstVisit(dest)
	e.transition(dest, abs)
}

func (e *Engine) askAccessCode(from, dest *state.Room, abs types.Direction) {
	e.narrate("The door to the " + dest.DisplayName() + " is sealed. A keypad glows beside it.")
	e.ask("Enter access code:", func(input string) {
		if strings.ToUpper(strings.TrimSpace(input)) != AccessCode {
			e.say("ACCESS DENIED. The keypad flashes red and the door stays shut.")
			e.Log.Info("access code rejected", "room", dest.Key)
			return
		}
		e.Player.Flags.CommsUnlocked = true
		e.emit("flag_set", map[string]any{"flag": "comms_unlocked"})
		e.narrate("ACCESS GRANTED. The door slides open with a pneumatic sigh.")
		e.enter(from, dest, abs)
	})
}

func (e *Engine) askHatch(from, hatch *state.Room) {
	leaving := from.Area == state.AreaShip
	question := "Step out onto the surface of Mars? (yes/no)"
	if !leaving {
		question = "Cycle the hatch and climb back into the ship? (yes/no)"
	}

	var ask func()
	ask = func() {
		e.ask(question, func(input string) {
			switch strings.ToLower(strings.TrimSpace(input)) {
			case "y", "yes":
			case "n", "no":
				e.say("You keep the hatch sealed and stay where you are.")
				return
			default:
				e.fail("Please answer yes or no.")
				ask()
				return
			}

			if leaving {
				surface, ok := e.World.Rooms[state.RoomSurface]
				if !ok {
					e.fail((&UnknownRoomError{Key: state.RoomSurface}).Error())
					return
				}
				e.narrate(hatchExit)
				e.Player.Flags.AirlockFromDoor = true
				e.emit("flag_set", map[string]any{"flag": "airlock_from_door"})
				e.transition(surface, types.West)
				return
			}
			e.narrate(hatchEnter)
			e.transition(hatch, types.East)
		})
	}
	ask()
}

// npcActive reports whether meeting n still triggers its encounter.
func (e *Engine) npcActive(n *state.NPC) bool {
	if n.Key == state.NPCOldRover {
		return e.Player.Flags.OldRoverAlive
	}
	return true
}

// encounter runs n's interaction until the player gives an accepted
// answer, then continues with then.
func (e *Engine) encounter(n *state.NPC, then func()) {
	inter, ok := npc.Lookup(n.Interaction)
	if !ok {
		e.Log.Warn("npc has no interaction", "npc", n.Key, "interaction", n.Interaction)
		then()
		return
	}

	var ask func()
	ask = func() {
		e.ask(inter.Prompt(n), func(input string) {
			lines, ok := inter.Choose(input, n, e.Player, e.World)
			if !ok {
				e.fail("That is not one of the choices.")
				ask()
				return
			}
			e.narrate(lines...)
			e.emit("npc_interaction", map[string]any{"npc": n.Key, "choice": strings.TrimSpace(input)})
			then()
		})
	}
	ask()
}

// firstVisit plays a room's one-shot narration.
func (e *Engine) firstVisit(dest *state.Room) {
	flag := e.Player.FirstVisitFlag(dest.Key)
	if flag == nil || *flag {
		return
	}
	e.narrate(dest.FirstVisit...)
	*flag = true
	e.emit("flag_set", map[string]any{"flag": "visited:" + dest.Key})
}

// transition commits the move: room, facing, description, counter, history.
func (e *Engine) transition(dest *state.Room, facing types.Direction) {
	from := e.Player.Room
	e.Player.Room = dest.Key
	e.Player.Facing = facing
	e.Player.MoveCount++
	e.Player.History = append(e.Player.History, dest.Key)

	e.say(fmt.Sprintf("You move to the %s, facing %s.", dest.DisplayName(), facing))
	e.say(dest.Description)

	e.emit("moved", map[string]any{"from": from, "to": dest.Key, "facing": string(facing)})
	e.Log.Info("player moved", "from", from, "to", dest.Key, "facing", string(facing), "moves", e.Player.MoveCount)
}
