package circuit

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// Pre-compiled regexps for QASM parsing.
var (
	singleGateRegex      = regexp.MustCompile(`^(\w+)\s+q\[(\d+)\];?$`)
	singleGateParamRegex = regexp.MustCompile(`^(\w+)\s*\(\s*(` + paramPattern + `(?:\s*,\s*` + paramPattern + `)*)\s*\)\s+q\[(\d+)\];?$`)
	twoQubitRegex        = regexp.MustCompile(`^(\w+)\s+q\[(\d+)\],\s*q\[(\d+)\];?$`)
	twoQubitParamRegex   = regexp.MustCompile(`^(\w+)\s*\(\s*(` + paramPattern + `)\s*\)\s+q\[(\d+)\],\s*q\[(\d+)\];?$`)
	threeQubitRegex      = regexp.MustCompile(`^(\w+)\s+q\[(\d+)\],\s*q\[(\d+)\],\s*q\[(\d+)\];?$`)
	measureRegex         = regexp.MustCompile(`^measure\s+q\[(\d+)\]\s*->\s*(\w+)\[(\d+)\];?$`)
	resetRegex           = regexp.MustCompile(`^reset\s+q\[(\d+)\];?$`)
	qregRegex            = regexp.MustCompile(`qreg\s+(\w+)\[(\d+)\]`)
)

// Gate represents a quantum gate placed on the circuit.
type Gate struct {
	Type     string
	Target   int
	Control  int       // -1 if not a controlled gate
	Controls []int     // Multiple control qubits (for CCX/Toffoli)
	Step     int       // position in circuit timeline
	Params   []float64 // Parameters for parameterized gates
	IsDagger bool      // True if gate is dagger (adjoint)
	IsReset  bool      // True if this is a reset operation
}

// Circuit holds the quantum circuit state.
type Circuit struct {
	NumQubits int
	Gates     []Gate
	MaxSteps  int
}

// AddGate appends a gate to the circuit.
func (c *Circuit) AddGate(gateType string, target, step int, control ...int) {
	ctrl := -1
	if len(control) > 0 {
		ctrl = control[0]
	}
	c.Gates = append(c.Gates, Gate{
		Type:    gateType,
		Target:  target,
		Control: ctrl,
		Step:    step,
	})
	if step >= c.MaxSteps {
		c.MaxSteps = step + 1
	}
}

// AddParameterizedGate appends a parameterized gate to the circuit.
func (c *Circuit) AddParameterizedGate(gateType string, target, step int, params []float64, control ...int) {
	ctrl := -1
	if len(control) > 0 {
		ctrl = control[0]
	}
	c.Gates = append(c.Gates, Gate{
		Type:    gateType,
		Target:  target,
		Control: ctrl,
		Step:    step,
		Params:  params,
	})
	if step >= c.MaxSteps {
		c.MaxSteps = step + 1
	}
}

// AddMultiControlGate appends a multi-controlled gate to the circuit.
func (c *Circuit) AddMultiControlGate(gateType string, target, step int, controls []int) {
	c.Gates = append(c.Gates, Gate{
		Type:     gateType,
		Target:   target,
		Control:  -1,
		Controls: controls,
		Step:     step,
	})
	if step >= c.MaxSteps {
		c.MaxSteps = step + 1
	}
}

// AddDaggerGate appends a dagger (adjoint) gate to the circuit.
func (c *Circuit) AddDaggerGate(gateType string, target, step int) {
	c.Gates = append(c.Gates, Gate{
		Type:     gateType,
		Target:   target,
		Control:  -1,
		Step:     step,
		IsDagger: true,
	})
	if step >= c.MaxSteps {
		c.MaxSteps = step + 1
	}
}

// AddReset appends a reset gate to the circuit.
func (c *Circuit) AddReset(target, step int) {
	c.Gates = append(c.Gates, Gate{
		Type:    "RESET",
		Target:  target,
		Control: -1,
		Step:    step,
		IsReset: true,
	})
	if step >= c.MaxSteps {
		c.MaxSteps = step + 1
	}
}

// AddBarrier appends a barrier spanning all qubits at the given step.
func (c *Circuit) AddBarrier(step int) {
	// Remove any existing barrier at this step
	c.Gates = slices.DeleteFunc(c.Gates, func(g Gate) bool {
		return g.Step == step && g.Type == "BARRIER"
	})
	c.Gates = append(c.Gates, Gate{
		Type:    "BARRIER",
		Target:  -1, // spans all qubits
		Control: -1,
		Step:    step,
	})
	if step >= c.MaxSteps {
		c.MaxSteps = step + 1
	}
}

// UnsupportedGates returns the step of every gate whose type the compiler
// cannot lower, so a driver can flag a circuit that looks complete in the
// editor but would fail partway through simulation.
func (c *Circuit) UnsupportedGates() []int {
	var steps []int
	for _, g := range c.Gates {
		if !IsExecutable(g) {
			steps = append(steps, g.Step)
		}
	}
	return steps
}

// gateReferences reports whether the gate references the given qubit.
func (g Gate) gateReferences(qubit int) bool {
	if g.Target == qubit || g.Control == qubit {
		return true
	}
	for _, ctrl := range g.Controls {
		if ctrl == qubit {
			return true
		}
	}
	return false
}

// RemoveGateAt removes any gate at the given step and qubit.
// Also removes barriers at that step since they span all qubits.
func (c *Circuit) RemoveGateAt(step, qubit int) {
	c.Gates = slices.DeleteFunc(c.Gates, func(g Gate) bool {
		if g.Step == step && g.Type == "BARRIER" {
			return true
		}
		return g.Step == step && g.gateReferences(qubit)
	})
}

// RemoveGatesOnQubit removes all gates that reference the given qubit index.
func (c *Circuit) RemoveGatesOnQubit(qubit int) {
	c.Gates = slices.DeleteFunc(c.Gates, func(g Gate) bool {
		return g.gateReferences(qubit)
	})
}

// GetGateAt returns the gate at the given step and qubit, or nil.
func (c *Circuit) GetGateAt(step, qubit int) *Gate {
	for i := range c.Gates {
		g := &c.Gates[i]
		if g.Step == step && g.gateReferences(qubit) {
			return g
		}
	}
	return nil
}

// NumCbits returns the number of classical bits needed to hold every
// measurement outcome in the circuit. Returns 0 when no measurements exist.
func (c *Circuit) NumCbits() int {
	maxMeasureQubit := -1
	for _, gate := range c.Gates {
		if gate.Type == "MEASURE" {
			maxMeasureQubit = max(maxMeasureQubit, gate.Target)
		}
	}
	if maxMeasureQubit < 0 {
		return 0
	}
	return maxMeasureQubit + 1
}

// GetMeasureAtStep returns the qubit index being measured at the given step, or -1 if none.
// This is used to determine which classical bit wire receives a value at each step.
func (c *Circuit) GetMeasureAtStep(step int) int {
	for _, g := range c.Gates {
		if g.Step != step {
			continue
		}
		if g.Type == "MEASURE" {
			return g.Target
		}
	}
	return -1
}

// ToQASM generates QASM 2.0 output from the circuit.
func (c *Circuit) ToQASM() string {
	// Determine actual qubit count and classical bit count based on gates
	maxQubit := -1
	maxMeasureQubit := -1
	for _, gate := range c.Gates {
		maxQubit = max(maxQubit, gate.Target, gate.Control)
		for _, ctrl := range gate.Controls {
			maxQubit = max(maxQubit, ctrl)
		}
		if gate.Type == "MEASURE" {
			maxMeasureQubit = max(maxMeasureQubit, gate.Target)
		}
	}

	// Use the larger of gate-derived count and visual qubit count
	numQubits := max(maxQubit+1, c.NumQubits, 1)

	// creg must be large enough to hold the highest classical bit index used
	numCbits := maxMeasureQubit + 1
	if numCbits < 1 {
		numCbits = 1
	}

	var sb strings.Builder
	sb.WriteString("OPENQASM 2.0;\n")
	sb.WriteString("include \"qelib1.inc\";\n\n")
	fmt.Fprintf(&sb, "qreg q[%d];\n", numQubits)
	fmt.Fprintf(&sb, "creg c[%d];\n\n", numCbits)

	for step := 0; step < c.MaxSteps; step++ {
		for _, gate := range c.Gates {
			if gate.Step != step {
				continue
			}
			switch {
			case gate.Type == "BARRIER":
				// Barrier spanning all qubits
				qubits := make([]string, numQubits)
				for q := 0; q < numQubits; q++ {
					qubits[q] = fmt.Sprintf("q[%d]", q)
				}
				fmt.Fprintf(&sb, "barrier %s;\n", strings.Join(qubits, ", "))
			case gate.IsReset:
				fmt.Fprintf(&sb, "reset q[%d];\n", gate.Target)
			case gate.Type == "MEASURE":
				fmt.Fprintf(&sb, "measure q[%d] -> c[%d];\n", gate.Target, gate.Target)
			case len(gate.Controls) > 0:
				// Multi-controlled gates (e.g., Toffoli CCX)
				switch gate.Type {
				case "CCX", "TOFFOLI":
					if len(gate.Controls) >= 2 {
						fmt.Fprintf(&sb, "ccx q[%d], q[%d], q[%d];\n", gate.Controls[0], gate.Controls[1], gate.Target)
					}
				default:
					// Generic multi-controlled gate
					gateType := strings.ToLower(gate.Type)
					fmt.Fprintf(&sb, "%s ", gateType)
					for i, ctrl := range gate.Controls {
						if i > 0 {
							sb.WriteString(", ")
						}
						fmt.Fprintf(&sb, "q[%d]", ctrl)
					}
					fmt.Fprintf(&sb, ", q[%d];\n", gate.Target)
				}
			case gate.Control >= 0:
				switch gate.Type {
				case "CX":
					fmt.Fprintf(&sb, "cx q[%d], q[%d];\n", gate.Control, gate.Target)
				case "CZ":
					fmt.Fprintf(&sb, "cz q[%d], q[%d];\n", gate.Control, gate.Target)
				case "CY":
					fmt.Fprintf(&sb, "cy q[%d], q[%d];\n", gate.Control, gate.Target)
				case "SWAP":
					fmt.Fprintf(&sb, "swap q[%d], q[%d];\n", gate.Control, gate.Target)
				case "CH":
					fmt.Fprintf(&sb, "ch q[%d], q[%d];\n", gate.Control, gate.Target)
				case "CRX":
					if len(gate.Params) > 0 {
						fmt.Fprintf(&sb, "crx(%s) q[%d], q[%d];\n", FormatParam(gate.Params[0]), gate.Control, gate.Target)
					}
				case "CRY":
					if len(gate.Params) > 0 {
						fmt.Fprintf(&sb, "cry(%s) q[%d], q[%d];\n", FormatParam(gate.Params[0]), gate.Control, gate.Target)
					}
				case "CRZ":
					if len(gate.Params) > 0 {
						fmt.Fprintf(&sb, "crz(%s) q[%d], q[%d];\n", FormatParam(gate.Params[0]), gate.Control, gate.Target)
					}
				case "CP", "CU1":
					if len(gate.Params) > 0 {
						fmt.Fprintf(&sb, "cu1(%s) q[%d], q[%d];\n", FormatParam(gate.Params[0]), gate.Control, gate.Target)
					}
				default:
					fmt.Fprintf(&sb, "cx q[%d], q[%d];\n", gate.Control, gate.Target)
				}
			default:
				// Single-qubit gates
				gateType := strings.ToLower(gate.Type)
				switch gateType {
				case "rx", "ry", "rz", "p", "u1", "u2", "u3":
					// Parameterized gates
					if len(gate.Params) == 1 {
						fmt.Fprintf(&sb, "%s(%s) q[%d];\n", gateType, FormatParam(gate.Params[0]), gate.Target)
					} else if len(gate.Params) == 2 && gateType == "u2" {
						fmt.Fprintf(&sb, "%s(%s, %s) q[%d];\n", gateType, FormatParam(gate.Params[0]), FormatParam(gate.Params[1]), gate.Target)
					} else if len(gate.Params) == 3 && gateType == "u3" {
						fmt.Fprintf(&sb, "%s(%s, %s, %s) q[%d];\n", gateType, FormatParam(gate.Params[0]), FormatParam(gate.Params[1]), FormatParam(gate.Params[2]), gate.Target)
					}
				case "s", "t":
					if gate.IsDagger {
						fmt.Fprintf(&sb, "%sdg q[%d];\n", gateType, gate.Target)
					} else {
						fmt.Fprintf(&sb, "%s q[%d];\n", gateType, gate.Target)
					}
				case "sx", "sy", "sz":
					// Square root gates
					if gate.IsDagger {
						fmt.Fprintf(&sb, "%sdg q[%d];\n", gateType, gate.Target)
					} else {
						fmt.Fprintf(&sb, "%s q[%d];\n", gateType, gate.Target)
					}
				default:
					fmt.Fprintf(&sb, "%s q[%d];\n", gateType, gate.Target)
				}
			}
		}
	}

	return sb.String()
}

// ParseQASM parses QASM text and rebuilds the circuit from it.
func (c *Circuit) ParseQASM(qasm string) error {
	c.Gates = nil
	c.MaxSteps = 0
	step := 0

	lines := strings.Split(qasm, "\n")

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "//") {
			continue
		}
		if strings.HasPrefix(line, "OPENQASM") ||
			strings.HasPrefix(line, "include") {
			continue
		}
		if strings.HasPrefix(line, "qreg") {
			if matches := qregRegex.FindStringSubmatch(line); len(matches) > 1 {
				n, _ := strconv.Atoi(matches[2])
				c.NumQubits = n
			}
			continue
		}
		if strings.HasPrefix(line, "creg") {
			continue
		}
		if strings.HasPrefix(line, "barrier") {
			c.AddBarrier(step)
			step++
			continue
		}

		// Measurement: "measure q[0] -> c[0];"
		if matches := measureRegex.FindStringSubmatch(line); matches != nil {
			source, _ := strconv.Atoi(matches[1])
			c.AddGate("MEASURE", source, step)
			step++
			continue
		}

		// Two-qubit gates: cx, cz, swap
		if matches := twoQubitRegex.FindStringSubmatch(line); matches != nil {
			gateType := strings.ToUpper(matches[1])
			qubit1, _ := strconv.Atoi(matches[2])
			qubit2, _ := strconv.Atoi(matches[3])
			switch gateType {
			case "CX":
				c.AddGate("CX", qubit2, step, qubit1)
			case "CZ":
				c.AddGate("CZ", qubit2, step, qubit1)
			case "SWAP":
				c.AddGate("SWAP", qubit2, step, qubit1)
			default:
				c.AddGate(gateType, qubit2, step, qubit1)
			}
			step++
			continue
		}

		// Single-qubit parameterized gates (RX, RY, RZ, P, U1, U2, U3)
		if matches := singleGateParamRegex.FindStringSubmatch(line); matches != nil {
			gateType := strings.ToUpper(matches[1])
			paramsStr := matches[2]
			target, _ := strconv.Atoi(matches[3])

			var params []float64
			paramStrs := strings.Split(paramsStr, ",")
			for _, pStr := range paramStrs {
				pStr = strings.TrimSpace(pStr)
				if p, ok := ParseParamExpr(pStr); ok {
					params = append(params, p)
				}
			}

			c.AddParameterizedGate(gateType, target, step, params)
			step++
			continue
		}

		// Two-qubit parameterized gates (CRX, CRY, CRZ, CU1)
		if matches := twoQubitParamRegex.FindStringSubmatch(line); matches != nil {
			gateType := strings.ToUpper(matches[1])
			param, _ := ParseParamExpr(matches[2])
			qubit1, _ := strconv.Atoi(matches[3])
			qubit2, _ := strconv.Atoi(matches[4])
			c.AddParameterizedGate(gateType, qubit2, step, []float64{param}, qubit1)
			step++
			continue
		}

		// Three-qubit gates (Toffoli/CCX)
		if matches := threeQubitRegex.FindStringSubmatch(line); matches != nil {
			gateType := strings.ToUpper(matches[1])
			qubit1, _ := strconv.Atoi(matches[2])
			qubit2, _ := strconv.Atoi(matches[3])
			qubit3, _ := strconv.Atoi(matches[4])
			if gateType == "CCX" || gateType == "TOFFOLI" {
				c.AddMultiControlGate("CCX", qubit3, step, []int{qubit1, qubit2})
			}
			step++
			continue
		}

		// Reset gate
		if matches := resetRegex.FindStringSubmatch(line); matches != nil {
			target, _ := strconv.Atoi(matches[1])
			c.AddReset(target, step)
			step++
			continue
		}

		// Single-qubit gate (including dagger gates)
		if matches := singleGateRegex.FindStringSubmatch(line); matches != nil {
			gateType := strings.ToUpper(matches[1])
			target, _ := strconv.Atoi(matches[2])

			// Check for dagger gates (sdg, tdg)
			isDagger := false
			if strings.HasSuffix(gateType, "DG") {
				isDagger = true
				gateType = strings.TrimSuffix(gateType, "DG")
			}

			// Check for square root gates with dagger (sxdg, sydg, szdg)
			baseGate := gateType
			if strings.HasPrefix(gateType, "SX") || strings.HasPrefix(gateType, "SY") || strings.HasPrefix(gateType, "SZ") {
				baseGate = gateType
				if strings.HasSuffix(gateType, "DG") {
					isDagger = true
					baseGate = strings.TrimSuffix(gateType, "DG")
				}
			}

			if isDagger {
				c.AddDaggerGate(baseGate, target, step)
			} else {
				c.AddGate(baseGate, target, step)
			}
			step++
			continue
		}
	}

	return nil
}

// getStepWidth returns the cell width needed for the given step.
func (c *Circuit) getStepWidth(step int) int {
	maxW := 3 // minimum cell width
	for _, g := range c.Gates {
		if g.Step != step {
			continue
		}
		// Skip barriers and controls
		if g.Type == "BARRIER" {
			continue
		}
		name := g.Type
		if name == "MEASURE" {
			name = "M"
		}
		cw := CellWidthForName(name)
		if cw > maxW {
			maxW = cw
		}
	}
	return maxW
}

// getStepWidths returns cell widths for steps in [startStep, startStep+count).
func (c *Circuit) getStepWidths(startStep, count int) []int {
	widths := make([]int, count)
	for i := 0; i < count; i++ {
		widths[i] = c.getStepWidth(startStep + i)
	}
	return widths
}

// CellInfo describes what occupies a single cell in the circuit grid.
type CellInfo struct {
	Gate         *Gate
	IsControl    bool
	IsTarget     bool
	VertAbove    bool
	VertBelow    bool
	PassThrough  bool
	MeasureBelow bool
	IsBarrier    bool
	Executable   bool
}

// GetCellInfo returns rendering information for the cell at (step, qubit).
func (c *Circuit) GetCellInfo(step, qubit int) CellInfo {
	var info CellInfo

	gate := c.GetGateAt(step, qubit)
	if gate != nil {
		info.Gate = gate
		info.Executable = IsExecutable(*gate)
		info.IsControl = (gate.Control == qubit)
		info.IsTarget = (gate.Target == qubit && gate.Control >= 0)
		if !info.IsControl && len(gate.Controls) > 0 {
			for _, ctrl := range gate.Controls {
				if ctrl == qubit {
					info.IsControl = true
					break
				}
			}
		}
		if !info.IsTarget && gate.Target == qubit && len(gate.Controls) > 0 {
			info.IsTarget = true
		}
	}

	// Check for barrier at this step
	for i := range c.Gates {
		if c.Gates[i].Step == step && c.Gates[i].Type == "BARRIER" {
			info.IsBarrier = true
			if info.Gate == nil {
				info.Gate = &c.Gates[i]
			}
			break
		}
	}

	// Vertical connections for two-qubit gates
	for _, g := range c.Gates {
		if g.Step != step {
			continue
		}

		var minQ, maxQ int
		switch {
		case len(g.Controls) > 0:
			minQ = g.Target
			maxQ = g.Target
			for _, ctrl := range g.Controls {
				if ctrl < minQ {
					minQ = ctrl
				}
				if ctrl > maxQ {
					maxQ = ctrl
				}
			}
		case g.Control >= 0:
			minQ, maxQ = min(g.Control, g.Target), max(g.Control, g.Target)
		default:
			continue
		}

		if qubit >= minQ && qubit <= maxQ {
			if qubit > minQ {
				info.VertAbove = true
			}
			if qubit < maxQ {
				info.VertBelow = true
			}
			if qubit > minQ && qubit < maxQ && info.Gate == nil {
				info.PassThrough = true
			}
		}
	}

	// Vertical connections for measurement gates going down to classical wires
	for _, g := range c.Gates {
		if g.Step != step {
			continue
		}
		if g.Type == "MEASURE" && qubit > g.Target {
			info.MeasureBelow = true
		}
	}

	return info
}

// CellWidthForName returns the cell width needed for a gate name.
func CellWidthForName(name string) int {
	// Minimum width of 3, plus extra for longer names
	if len(name) <= 1 {
		return 3
	}
	return len(name) + 2
}
