package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nathoo/ember/types"
)

var (
	styleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("52")).
			Foreground(lipgloss.Color("223")).
			Bold(true)

	styleInputPrompt = lipgloss.NewStyle().
				Foreground(lipgloss.Color("208"))

	styleRoomDesc = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	styleNarration = lipgloss.NewStyle().
			Foreground(lipgloss.Color("223")).
			Italic(true)

	styleHeading = lipgloss.NewStyle().
			Bold(true)

	styleListItem = lipgloss.NewStyle().
			Foreground(lipgloss.Color("180"))

	styleDialogue = lipgloss.NewStyle().
			Foreground(lipgloss.Color("228"))

	styleIris = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	styleQuestion = lipgloss.NewStyle().
			Foreground(lipgloss.Color("81"))

	styleSystem = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleError = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	stylePlayerInput = lipgloss.NewStyle().
				Foreground(lipgloss.Color("208"))

	styleTrace = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// lineKind identifies the type of an output line for styling.
type lineKind int

const (
	kindRoomDesc lineKind = iota
	kindNarration
	kindHeading
	kindListItem
	kindDialogue
	kindIris
	kindQuestion
	kindSystem
	kindError
	kindTrace
)

// kindOf picks the style for an engine line: the engine's own kind first,
// then the text.
func kindOf(l types.Line) lineKind {
	switch l.Kind {
	case types.Failure:
		return kindError
	case types.Narration:
		if k := classifyLine(l.Text); k == kindDialogue || k == kindIris {
			return k
		}
		return kindNarration
	}
	return classifyLine(l.Text)
}

// classifyLine determines what kind of output line this is.
func classifyLine(line string) lineKind {
	switch {
	case strings.HasPrefix(line, "[trace]"):
		return kindTrace
	case strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]"):
		return kindSystem
	case line == "You see:", line == "Exits:", line == "You are carrying:", line == "Commands:":
		return kindHeading
	case strings.HasPrefix(line, "  "):
		return kindListItem
	case strings.HasPrefix(line, "IRIS:"):
		return kindIris
	case containsQuotedSpeech(line):
		return kindDialogue
	default:
		return kindRoomDesc
	}
}

// containsQuotedSpeech reports whether line carries a double-quoted
// utterance longer than a few characters.
func containsQuotedSpeech(line string) bool {
	inQuote := false
	quoteLen := 0
	for _, r := range line {
		if r == '"' {
			if inQuote && quoteLen > 5 {
				return true
			}
			inQuote = !inQuote
			quoteLen = 0
		} else if inQuote {
			quoteLen++
		}
	}
	return false
}

func renderLineKind(line string, kind lineKind) string {
	switch kind {
	case kindNarration:
		return styleNarration.Render(line)
	case kindHeading:
		return styleHeading.Render(line)
	case kindListItem:
		return styleListItem.Render(line)
	case kindDialogue:
		return styleDialogue.Render(line)
	case kindIris:
		return styleIris.Render(line)
	case kindQuestion:
		return styleQuestion.Render(line)
	case kindSystem:
		return styleSystem.Render(line)
	case kindError:
		return styleError.Render(line)
	case kindTrace:
		return styleTrace.Render(line)
	default:
		return styleRoomDesc.Render(line)
	}
}

// styledSystemMsg renders a system message in gray with brackets.
func styledSystemMsg(text string) string {
	return styleSystem.Render("[" + text + "]")
}
