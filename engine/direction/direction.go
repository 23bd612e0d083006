// Package direction maps relative movement tokens onto the compass,
// relative to the way the player is facing.
package direction

import (
	"fmt"
	"strings"

	"github.com/nathoo/ember/types"
)

// Compass is the fixed cyclic order used for all offset arithmetic.
var Compass = []types.Direction{types.North, types.East, types.South, types.West}

type relative int

const (
	front relative = 0
	right relative = 1
	back  relative = 2
	left  relative = 3
)

var aliases = map[string]relative{
	"forward":   front,
	"f":         front,
	"forwards":  front,
	"frontward": front,
	"front":     front,
	"back":      back,
	"backward":  back,
	"backwards": back,
	"b":         back,
	"left":      left,
	"l":         left,
	"right":     right,
	"r":         right,
}

var relativeNames = map[relative]string{
	front: "forward",
	right: "right",
	back:  "back",
	left:  "left",
}

// InvalidDirectionError is returned for a token that is neither a relative
// alias nor an absolute direction.
type InvalidDirectionError struct {
	Token string
}

func (e *InvalidDirectionError) Error() string {
	return fmt.Sprintf("%q is not a direction", e.Token)
}

// InvalidFacingError is returned when the facing is not a compass point.
type InvalidFacingError struct {
	Facing types.Direction
}

func (e *InvalidFacingError) Error() string {
	return fmt.Sprintf("invalid facing %q", string(e.Facing))
}

// Index returns the position of d in Compass, or -1.
func Index(d types.Direction) int {
	for i, c := range Compass {
		if c == d {
			return i
		}
	}
	return -1
}

// IsAbsolute reports whether d is one of the four compass points.
func IsAbsolute(d types.Direction) bool {
	return Index(d) >= 0
}

// Resolve turns a movement token into an absolute direction. Relative
// aliases are applied against facing; absolute tokens pass through unchanged.
func Resolve(facing types.Direction, token string) (types.Direction, error) {
	fi := Index(facing)
	if fi < 0 {
		return "", &InvalidFacingError{Facing: facing}
	}

	tok := strings.ToLower(strings.TrimSpace(token))
	if rel, ok := aliases[tok]; ok {
		return Compass[(fi+int(rel))%len(Compass)], nil
	}
	if d := types.Direction(tok); IsAbsolute(d) {
		return d, nil
	}
	return "", &InvalidDirectionError{Token: tok}
}

// Relative is the inverse of Resolve: it names the relative direction that
// leads from facing to the absolute direction exit.
func Relative(facing, exit types.Direction) (string, error) {
	fi := Index(facing)
	if fi < 0 {
		return "", &InvalidFacingError{Facing: facing}
	}
	ei := Index(exit)
	if ei < 0 {
		return "", &InvalidDirectionError{Token: string(exit)}
	}
	diff := ((ei-fi)%len(Compass) + len(Compass)) % len(Compass)
	return relativeNames[relative(diff)], nil
}
