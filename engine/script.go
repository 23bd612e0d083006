package engine

// Fixed narration blocks for scripted moments.

var stormHint = []string{
	"A gust rattles grit against your visor. Far to the west a brown wall of dust is climbing the sky.",
	"Your suit radio crackles: the storm that grounded the ship also tore the long-range antenna off the hull.",
	"Maybe something out here still has one.",
}

const (
	hatchExit  = "The inner door seals behind you, the pressure bleeds away, and the outer hatch swings open onto Mars."
	hatchEnter = "You haul yourself through the outer hatch and wait while the chamber fills with air."
)

var irisBoot = []string{
	"You slot the power cell into IRIS. The casing warms in your hands.",
	"A ring of amber light spins up. \"Interplanetary Relay Intelligence System online. Calibration required.\"",
}

var rescueEnding = []string{
	"You bolt the rover's antenna onto the emergency beacon and thumb the transmit switch.",
	"Static. Then a voice, faint and astonished, from the relay station at Phobos.",
	"\"Ember, we hear you. Hold on. We're coming.\"",
	"RESCUE ENDING.",
}

var defiantEnding = []string{
	"You bring the wrench down. Again. Again. The amber ring flickers and dies.",
	"Whatever IRIS would have called, it will never answer now. You will face Mars on your own terms.",
	"DEFIANT ENDING.",
}

var hostileEnding = []string{
	"IRIS pours its signal into the sky. For a long time nothing answers.",
	"Then something does, and it is not human. Lights descend over the ridge in perfect silence.",
	"HOSTILE CONTACT ENDING.",
}

var preservedEnding = []string{
	"IRIS hums softly and lowers the habitat into hibernation around you.",
	"\"Rest, crew member. I will keep you until someone comes.\" The cold is almost kind.",
	"PRESERVED ALONE ENDING.",
}
