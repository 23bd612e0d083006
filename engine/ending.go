package engine

import (
	"strings"

	"github.com/nathoo/ember/engine/state"
	"github.com/nathoo/ember/types"
)

// Trust thresholds: a draw below the threshold means hostile contact.
const (
	HostileThresholdCalibrated = 0.55
	HostileThresholdFailed     = 0.80
)

// calibrationStep is one multiple-choice IRIS calibration question.
type calibrationStep struct {
	question string
	options  [2]string
	correct  string
}

func (s calibrationStep) prompt() string {
	return s.question + "\n  1. " + s.options[0] + "\n  2. " + s.options[1]
}

var calibrationSteps = []calibrationStep{
	{
		question: "IRIS: Select primary directive alignment.",
		options:  [2]string{"Preserve the vessel", "Preserve the crew"},
		correct:  "2",
	},
	{
		question: "IRIS: Select relay band for the distress signal.",
		options:  [2]string{"Deep-space band, 8.4 GHz", "Surface band, 400 MHz"},
		correct:  "1",
	},
	{
		question: "IRIS: Confirm handshake authority.",
		options:  [2]string{"Crew key EMBER", "Open broadcast, no key"},
		correct:  "1",
	},
}

// calibrate powers IRIS and runs the calibration quiz. The first wrong
// answer fails the calibration and skips the remaining questions.
func (e *Engine) calibrate() {
	e.narrate(irisBoot...)
	e.Player.Flags.CalibrationSuccess = true
	e.Log.Info("iris calibration started")
	e.calibrationStep(0)
}

func (e *Engine) calibrationStep(i int) {
	if i >= len(calibrationSteps) {
		e.narrate("IRIS: Calibration complete. All systems nominal.")
		e.finalChoice()
		return
	}

	step := calibrationSteps[i]
	e.ask(step.prompt(), func(input string) {
		if strings.TrimSpace(input) != step.correct {
			e.Player.Flags.CalibrationSuccess = false
			e.narrate("IRIS: Calibration failed. Proceeding with degraded parameters.")
			e.Log.Info("iris calibration failed", "step", i+1)
			e.finalChoice()
			return
		}
		e.say("IRIS: Parameter accepted.")
		e.calibrationStep(i + 1)
	})
}

// finalChoice asks whether to trust IRIS. Smashing it is only offered
// while the wrench is carried; anything else is asked again.
func (e *Engine) finalChoice() {
	canSmash := e.Player.HasItem(state.ItemWrench)
	prompt := "IRIS: I can reach whoever is listening. Will you let me?\n  1. Trust IRIS"
	if canSmash {
		prompt += "\n  2. Smash IRIS with the wrench"
	}

	e.ask(prompt, func(input string) {
		switch strings.TrimSpace(input) {
		case "1":
			e.trust()
			return
		case "2":
			if canSmash {
				e.smash()
				return
			}
		}
		e.fail("Choose one of the listed options.")
		e.finalChoice()
	})
}

func (e *Engine) smash() {
	e.Player.RemoveItem(state.ItemIris)
	e.Player.RemoveItem(state.ItemPowerCell)
	e.Player.Flags.IrisBroken = true
	e.emit("flag_set", map[string]any{"flag": "iris_broken"})
	e.end(types.EndingDefiant, defiantEnding...)
}

func (e *Engine) trust() {
	threshold := HostileThresholdCalibrated
	if !e.Player.Flags.CalibrationSuccess {
		threshold = HostileThresholdFailed
	}
	roll := e.Rand.Float64()
	attrs := []any{"roll", roll, "threshold", threshold,
		"calibrated", e.Player.Flags.CalibrationSuccess}
	if rng, ok := e.Rand.(*RNG); ok {
		attrs = append(attrs, "rng_seed", rng.Seed(), "rng_pos", rng.Position())
	}
	e.Log.Info("iris trusted", attrs...)

	if roll < threshold {
		e.end(types.EndingHostile, hostileEnding...)
		return
	}
	e.end(types.EndingPreserved, preservedEnding...)
}
