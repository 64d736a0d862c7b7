package circuit

// GateSpec describes one gate type's shape: how many qubits a front end
// needs to collect before it can call AddGate, how many numeric parameters
// it takes, and which picker category it belongs under. It is the single
// place that classification lives, so a driver presenting gate choices and
// the compiler lowering them never drift out of sync with each other.
type GateSpec struct {
	Type        string
	Name        string
	Symbol      string
	Category    string
	NeedsTarget bool
	NumParams   int
}

// GateCategories lists the picker categories in display order.
var GateCategories = []string{"Single Qubit", "Rotation", "Multi Qubit", "Measurement", "Special"}

// GateSpecs enumerates every gate type the compiler can accept, grouped by
// category. A front end builds its menu by filtering this slice rather than
// carrying its own parallel classification table.
var GateSpecs = []GateSpec{
	{Type: "H", Name: "Hadamard", Symbol: "H", Category: "Single Qubit"},
	{Type: "X", Name: "Pauli-X (NOT)", Symbol: "X", Category: "Single Qubit"},
	{Type: "Y", Name: "Pauli-Y", Symbol: "Y", Category: "Single Qubit"},
	{Type: "Z", Name: "Pauli-Z", Symbol: "Z", Category: "Single Qubit"},
	{Type: "I", Name: "Identity", Symbol: "I", Category: "Single Qubit"},
	{Type: "S", Name: "Phase (S)", Symbol: "S", Category: "Single Qubit"},
	{Type: "SDG", Name: "Phase Dagger (S†)", Symbol: "S†", Category: "Single Qubit"},
	{Type: "T", Name: "T Gate", Symbol: "T", Category: "Single Qubit"},
	{Type: "TDG", Name: "T Dagger (T†)", Symbol: "T†", Category: "Single Qubit"},
	{Type: "SX", Name: "√X (SX)", Symbol: "√X", Category: "Single Qubit"},
	{Type: "SY", Name: "√Y (SY)", Symbol: "√Y", Category: "Single Qubit"},

	{Type: "RX", Name: "Rotate X", Symbol: "RX", Category: "Rotation", NumParams: 1},
	{Type: "RY", Name: "Rotate Y", Symbol: "RY", Category: "Rotation", NumParams: 1},
	{Type: "RZ", Name: "Rotate Z", Symbol: "RZ", Category: "Rotation", NumParams: 1},
	{Type: "P", Name: "Phase Shift", Symbol: "P", Category: "Rotation", NumParams: 1},
	{Type: "U1", Name: "Universal U1", Symbol: "U1", Category: "Rotation", NumParams: 1},
	{Type: "U2", Name: "Universal U2", Symbol: "U2", Category: "Rotation", NumParams: 2},
	{Type: "U3", Name: "Universal U3", Symbol: "U3", Category: "Rotation", NumParams: 3},

	{Type: "CX", Name: "CNOT", Symbol: "●─⊕", Category: "Multi Qubit", NeedsTarget: true},
	{Type: "CZ", Name: "Controlled-Z", Symbol: "●─●", Category: "Multi Qubit", NeedsTarget: true},
	{Type: "CY", Name: "Controlled-Y", Symbol: "●─Y", Category: "Multi Qubit", NeedsTarget: true},
	{Type: "CH", Name: "Controlled-H", Symbol: "●─H", Category: "Multi Qubit", NeedsTarget: true},
	{Type: "SWAP", Name: "SWAP", Symbol: "×─×", Category: "Multi Qubit", NeedsTarget: true},
	{Type: "CCX", Name: "Toffoli (CCX)", Symbol: "●─●─⊕", Category: "Multi Qubit", NeedsTarget: true},
	{Type: "CRX", Name: "C-Rotate X", Symbol: "●─RX", Category: "Multi Qubit", NeedsTarget: true, NumParams: 1},
	{Type: "CRY", Name: "C-Rotate Y", Symbol: "●─RY", Category: "Multi Qubit", NeedsTarget: true, NumParams: 1},
	{Type: "CRZ", Name: "C-Rotate Z", Symbol: "●─RZ", Category: "Multi Qubit", NeedsTarget: true, NumParams: 1},
	{Type: "CU1", Name: "C-Phase (CU1)", Symbol: "●─U1", Category: "Multi Qubit", NeedsTarget: true, NumParams: 1},

	{Type: "MEASURE", Name: "Measure", Symbol: "M", Category: "Measurement"},

	{Type: "RESET", Name: "Reset", Symbol: "|0⟩", Category: "Special"},
	{Type: "BARRIER", Name: "Barrier", Symbol: "┃", Category: "Special"},
}

// gateSpecByType indexes GateSpecs for lookup by type string, built once at
// package init rather than linearly scanned on every query.
var gateSpecByType = func() map[string]GateSpec {
	m := make(map[string]GateSpec, len(GateSpecs))
	for _, s := range GateSpecs {
		m[s.Type] = s
	}
	return m
}()

// SpecForGate returns the registered GateSpec for a gate type, if any.
func SpecForGate(gateType string) (GateSpec, bool) {
	s, ok := gateSpecByType[gateType]
	return s, ok
}

// GateSpecsByCategory returns the registered gates belonging to category, in
// registration order.
func GateSpecsByCategory(category string) []GateSpec {
	var out []GateSpec
	for _, s := range GateSpecs {
		if s.Category == category {
			out = append(out, s)
		}
	}
	return out
}

// IsParameterizedGate reports whether gateType takes one or more numeric
// parameters, replacing a hand-maintained duplicate of this table.
func IsParameterizedGate(gateType string) bool {
	s, ok := gateSpecByType[gateType]
	return ok && s.NumParams > 0
}

// IsExecutable reports whether the compiler can lower gate onto a register.
// Barrier and measurement gates (matched by Type) and reset gates (matched by
// the IsReset flag) are always executable. A dagger gate is executable only
// for the types applyDagger inverts (S, T, RX, RY, RZ). Everything else must
// resolve through one of the compiler's three lowering paths: the fixed
// multi-qubit switch, the controlled-rotation table, or the 2x2 matrix table.
func IsExecutable(gate Gate) bool {
	switch {
	case gate.Type == "BARRIER", gate.Type == "MEASURE":
		return true
	case gate.IsReset:
		return true
	}
	if gate.IsDagger {
		switch gate.Type {
		case "S", "T", "RX", "RY", "RZ":
			return true
		}
		return false
	}
	switch gate.Type {
	case "CX", "CY", "CZ", "CH", "SWAP", "CCX":
		return true
	}
	if _, ok := rotationGate(gate.Type); ok {
		return true
	}
	_, ok := gateMatrix(gate.Type, gate.Params)
	return ok
}
