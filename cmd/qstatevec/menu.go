package main

import (
	"fmt"
	"strings"

	"github.com/hlalwani/qstatevec/internal/circuit"
)

// parameterHint provides a hint for parameter input
type parameterHint struct {
	required bool
	example  string
}

// menuItem represents a single gate choice in the menu.
type menuItem struct {
	name        string
	gateType    string
	symbol      string
	needsTarget bool
	needsParams bool
	paramHint   parameterHint
}

// menuCategory groups related menu items under a tab.
type menuCategory struct {
	name  string
	items []menuItem
}

// paramExamples supplies the input-box placeholder for parameterized gates.
// It is purely a display hint, not a classification, so it stays local
// rather than living on circuit.GateSpec alongside the executability data.
var paramExamples = map[string]string{
	"RX": "pi/2", "RY": "pi/2", "RZ": "pi/2",
	"P": "pi/4", "U1": "lambda", "U2": "phi,lambda", "U3": "theta,phi,lambda",
	"CRX": "pi/2", "CRY": "pi/2", "CRZ": "pi/2", "CU1": "lambda",
}

// gateMenu defines the gate picker categories and items, built from the
// compiler's own gate registry so the picker can never offer a gate type
// the simulator does not actually know how to run.
var gateMenu = buildGateMenu()

func buildGateMenu() []menuCategory {
	cats := make([]menuCategory, 0, len(circuit.GateCategories))
	for _, name := range circuit.GateCategories {
		specs := circuit.GateSpecsByCategory(name)
		items := make([]menuItem, 0, len(specs))
		for _, s := range specs {
			items = append(items, menuItem{
				name:        s.Name,
				gateType:    s.Type,
				symbol:      s.Symbol,
				needsTarget: s.NeedsTarget,
				needsParams: s.NumParams > 0,
				paramHint:   parameterHint{required: s.NumParams > 0, example: paramExamples[s.Type]},
			})
		}
		cats = append(cats, menuCategory{name: name, items: items})
	}
	return cats
}

// renderMenu renders the floating gate-picker popup.
func (m Model) renderMenu() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Add Gate"))
	sb.WriteString("\n")

	// Category tabs
	for i, cat := range gateMenu {
		name := " " + cat.name + " "
		if i == m.menuCat {
			sb.WriteString(activeGateStyle.Render(name))
		} else {
			sb.WriteString(dimStyle.Render(name))
		}
		if i < len(gateMenu)-1 {
			sb.WriteString(dimStyle.Render("│"))
		}
	}
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render(strings.Repeat("─", 42)))
	sb.WriteString("\n")

	// Items in the selected category
	cat := gateMenu[m.menuCat]
	for i, item := range cat.items {
		style := categoryStyle(cat.name)
		if i == m.menuItem {
			sb.WriteString(menuSelectedStyle.Render(" ▸ "))
			sb.WriteString(menuSelectedStyle.Render(fmt.Sprintf("%-18s", item.name)))
			sb.WriteString(style.Render(item.symbol))
		} else {
			sb.WriteString("   ")
			sb.WriteString(menuNormalStyle.Render(fmt.Sprintf("%-18s", item.name)))
			sb.WriteString(dimStyle.Render(item.symbol))
		}
		if item.needsTarget {
			sb.WriteString(dimStyle.Render(" →target"))
		}
		if item.needsParams {
			sb.WriteString(dimStyle.Render(fmt.Sprintf(" (%s)", item.paramHint.example)))
		}
		sb.WriteString("\n")
	}
	sb.WriteString(dimStyle.Render(" ↑↓ Select  ←→ Cat  ⏎ Ok  Esc ✕"))

	return menuBorderStyle.Render(sb.String())
}

// isParameterizedGate returns true if the gate type requires parameters,
// deferring to the compiler's own registry instead of keeping a second copy
// of the classification.
func isParameterizedGate(gateType string) bool {
	return circuit.IsParameterizedGate(gateType)
}
