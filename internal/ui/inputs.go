package ui

// inputs.go holds the three debounced search inputs of the Search section.

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
)

const (
	inputName = iota
	inputLetter
	inputID
	inputCount
)

var inputLabels = [inputCount]string{"Name", "Letter", "Recipe ID"}

// newSearchInputs creates the name, first-letter and id inputs
func newSearchInputs(width int) []textinput.Model {
	placeholders := [inputCount]string{"e.g. Arrabiata", "A-Z", "e.g. 52772"}
	limits := [inputCount]int{100, 1, 10}

	inputs := make([]textinput.Model, inputCount)
	for i := range inputs {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = limits[i]
		ti.Prompt = "› "
		ti.PromptStyle = lipgloss.NewStyle().Foreground(ColorBorder)
		ti.PlaceholderStyle = DimStyle
		ti.TextStyle = NormalStyle
		inputs[i] = ti
	}
	resizeSearchInputs(inputs, width)
	return inputs
}

// resizeSearchInputs gives the name input whatever the fixed-size inputs leave over
func resizeSearchInputs(inputs []textinput.Model, width int) {
	inputs[inputLetter].Width = 4
	inputs[inputID].Width = 10
	rest := width - 4 - 10 - 3*12
	if rest < 12 {
		rest = 12
	}
	inputs[inputName].Width = rest
}

// renderSearchInputs lays the inputs out on one row with their labels
func renderSearchInputs(inputs []textinput.Model, active int, focused bool) string {
	cells := make([]string, len(inputs))
	for i, in := range inputs {
		label := RenderDim(inputLabels[i] + ":")
		if focused && i == active {
			label = AccentStyle.Render(inputLabels[i] + ":")
		}
		cells[i] = label + " " + in.View()
	}
	return strings.Join(cells, "   ") + "\n"
}

// sanitizeInput removes potentially dangerous characters from user input
func sanitizeInput(s string) string {
	return strings.Map(func(r rune) rune {
		if r == 0 || (r < 32 && r != '\t') || r == 127 {
			return -1
		}
		return r
	}, s)
}
