package circuit

import (
	"fmt"
	"slices"
)

// DAGNode represents a gate in the circuit as a node in a DAG.
// Dependencies represent ordering constraints - a gate cannot execute before
// the gates that affect the same qubits in prior steps.
type DAGNode struct {
	ID           string    // Unique identifier for this node
	Type         string    // Gate type: "H", "X", "CX", "RX", etc.
	Target       int       // Target qubit index
	Control      int       // Control qubit for 2-qubit gates (-1 if none)
	Controls     []int     // Multiple control qubits (for CCX/Toffoli)
	Step         int       // Position in circuit timeline (for ordering only)
	Params       []float64 // Parameters for rotation gates
	IsDagger     bool      // True for adjoint gates
	IsReset      bool      // True for reset operation
	Dependencies []string  // IDs of nodes that must execute before this one
}

// CircuitDAG represents a quantum circuit as a Directed Acyclic Graph.
// It serves as the single source of truth that both Circuit and the editor
// views derive from: the editor mutates the graph node-by-node as the user
// places and removes gates, while the statevector compiler only ever sees
// the flattened Circuit that ToCircuit produces.
type CircuitDAG struct {
	Nodes     map[string]*DAGNode // All nodes by ID
	NumQubits int                 // Number of qubits in the circuit
	NumCbits  int                 // Number of classical bits
	rootNodes []string            // Node IDs with no dependencies (for topological sort)
}

// NewCircuitDAG creates a new empty CircuitDAG.
func NewCircuitDAG() *CircuitDAG {
	return &CircuitDAG{
		Nodes:     make(map[string]*DAGNode),
		NumQubits: 0,
		NumCbits:  0,
		rootNodes: []string{},
	}
}

// generateNodeID creates a unique ID for a node based on its properties.
func generateNodeID(gateType string, target, step int) string {
	return fmt.Sprintf("%s_q%d_s%d", gateType, target, step)
}

// AddNode adds a new gate node to the DAG.
func (dag *CircuitDAG) AddNode(node *DAGNode) {
	if node.ID == "" {
		node.ID = generateNodeID(node.Type, node.Target, node.Step)
	}
	dag.Nodes[node.ID] = node
	dag.updateRootNodes()

	// Update qubit count
	maxQubit := node.Target
	if node.Control > maxQubit {
		maxQubit = node.Control
	}
	for _, ctrl := range node.Controls {
		if ctrl > maxQubit {
			maxQubit = ctrl
		}
	}
	if maxQubit+1 > dag.NumQubits {
		dag.NumQubits = maxQubit + 1
	}

	// Update classical bit count
	if node.Type == "MEASURE" && node.Target+1 > dag.NumCbits {
		dag.NumCbits = node.Target + 1
	}
}

// RemoveNode removes a node from the DAG and updates dependencies.
func (dag *CircuitDAG) RemoveNode(nodeID string) {
	delete(dag.Nodes, nodeID)

	// Remove this node from all dependency lists
	for _, node := range dag.Nodes {
		node.Dependencies = slices.DeleteFunc(node.Dependencies, func(dep string) bool {
			return dep == nodeID
		})
	}

	dag.updateRootNodes()
}

// updateRootNodes recalculates the list of root nodes (nodes with no dependencies).
func (dag *CircuitDAG) updateRootNodes() {
	dag.rootNodes = []string{}
	for id, node := range dag.Nodes {
		if len(node.Dependencies) == 0 {
			dag.rootNodes = append(dag.rootNodes, id)
		}
	}
}

// TopologicalSort returns nodes in topological order (respecting dependencies).
func (dag *CircuitDAG) TopologicalSort() []*DAGNode {
	visited := make(map[string]bool)
	result := make([]*DAGNode, 0, len(dag.Nodes))

	var visit func(nodeID string)
	visit = func(nodeID string) {
		if visited[nodeID] {
			return
		}
		visited[nodeID] = true

		node := dag.Nodes[nodeID]
		for _, depID := range node.Dependencies {
			visit(depID)
		}
		result = append(result, node)
	}

	// Visit all root nodes first
	for _, rootID := range dag.rootNodes {
		visit(rootID)
	}

	// Visit any remaining unvisited nodes
	for id := range dag.Nodes {
		visit(id)
	}

	return result
}

// GetNodesAtStep returns all nodes at a specific step.
func (dag *CircuitDAG) GetNodesAtStep(step int) []*DAGNode {
	var result []*DAGNode
	for _, node := range dag.Nodes {
		if node.Step == step {
			result = append(result, node)
		}
	}
	return result
}

// GetNodesOnQubit returns all nodes that reference a specific qubit.
func (dag *CircuitDAG) GetNodesOnQubit(qubit int) []*DAGNode {
	var result []*DAGNode
	for _, node := range dag.Nodes {
		if node.Target == qubit || node.Control == qubit {
			result = append(result, node)
			continue
		}
		for _, ctrl := range node.Controls {
			if ctrl == qubit {
				result = append(result, node)
				break
			}
		}
	}
	return result
}

// MaxStep returns the maximum step index in the DAG.
func (dag *CircuitDAG) MaxStep() int {
	maxStep := 0
	for _, node := range dag.Nodes {
		if node.Step > maxStep {
			maxStep = node.Step
		}
	}
	return maxStep
}

// ToCircuit converts the DAG to a Circuit struct, the flat representation
// the compiler actually lowers onto the statevector register.
func (dag *CircuitDAG) ToCircuit() *Circuit {
	circuit := &Circuit{
		NumQubits: dag.NumQubits,
		Gates:     make([]Gate, 0, len(dag.Nodes)),
		MaxSteps:  dag.MaxStep() + 1,
	}

	for _, node := range dag.Nodes {
		circuit.Gates = append(circuit.Gates, Gate{
			Type:     node.Type,
			Target:   node.Target,
			Control:  node.Control,
			Controls: node.Controls,
			Step:     node.Step,
			Params:   node.Params,
			IsDagger: node.IsDagger,
			IsReset:  node.IsReset,
		})
	}

	return circuit
}

// FromCircuit creates a DAG from a Circuit struct.
func FromCircuit(circuit *Circuit) *CircuitDAG {
	dag := NewCircuitDAG()
	dag.NumQubits = circuit.NumQubits
	dag.NumCbits = circuit.NumCbits()

	// Track the last gate on each qubit to establish dependencies
	lastGateOnQubit := make(map[int]string)

	// Sort gates by step to maintain order
	sortedGates := make([]Gate, len(circuit.Gates))
	copy(sortedGates, circuit.Gates)
	slices.SortFunc(sortedGates, func(a, b Gate) int {
		return a.Step - b.Step
	})

	for _, gate := range sortedGates {
		node := &DAGNode{
			Type:         gate.Type,
			Target:       gate.Target,
			Control:      gate.Control,
			Controls:     gate.Controls,
			Step:         gate.Step,
			Params:       gate.Params,
			IsDagger:     gate.IsDagger,
			IsReset:      gate.IsReset,
			Dependencies: []string{},
		}

		// Establish dependencies based on qubit usage
		qubitsUsed := []int{gate.Target}
		if gate.Control >= 0 {
			qubitsUsed = append(qubitsUsed, gate.Control)
		}
		qubitsUsed = append(qubitsUsed, gate.Controls...)

		depSet := make(map[string]bool)
		for _, qubit := range qubitsUsed {
			if lastID, ok := lastGateOnQubit[qubit]; ok {
				depSet[lastID] = true
			}
		}
		for depID := range depSet {
			node.Dependencies = append(node.Dependencies, depID)
		}

		node.ID = generateNodeID(gate.Type, gate.Target, gate.Step)
		dag.AddNode(node)

		for _, qubit := range qubitsUsed {
			lastGateOnQubit[qubit] = node.ID
		}
	}

	return dag
}

// ToQASM generates QASM 2.0 output from the DAG by flattening it to a
// Circuit first — the DAG's own contribution is ordering and editor
// bookkeeping, not a second QASM dialect.
func (dag *CircuitDAG) ToQASM() string {
	return dag.ToCircuit().ToQASM()
}

// ParseQASM parses QASM text and rebuilds the DAG from it, routing through
// Circuit's parser and re-deriving dependencies via FromCircuit.
func (dag *CircuitDAG) ParseQASM(qasm string) error {
	c := &Circuit{}
	if err := c.ParseQASM(qasm); err != nil {
		return err
	}
	*dag = *FromCircuit(c)
	return nil
}

// Clone creates a deep copy of the DAG.
func (dag *CircuitDAG) Clone() *CircuitDAG {
	clone := NewCircuitDAG()
	clone.NumQubits = dag.NumQubits
	clone.NumCbits = dag.NumCbits

	for id, node := range dag.Nodes {
		newNode := &DAGNode{
			ID:           node.ID,
			Type:         node.Type,
			Target:       node.Target,
			Control:      node.Control,
			Controls:     append([]int{}, node.Controls...),
			Step:         node.Step,
			Params:       append([]float64{}, node.Params...),
			IsDagger:     node.IsDagger,
			IsReset:      node.IsReset,
			Dependencies: append([]string{}, node.Dependencies...),
		}
		clone.Nodes[id] = newNode
	}

	clone.updateRootNodes()
	return clone
}

// GetNodeAt returns the node at the given step and qubit, if any.
func (dag *CircuitDAG) GetNodeAt(step, qubit int) *DAGNode {
	for _, node := range dag.Nodes {
		if node.Step == step {
			if node.Target == qubit || node.Control == qubit {
				return node
			}
			for _, ctrl := range node.Controls {
				if ctrl == qubit {
					return node
				}
			}
		}
	}
	return nil
}

// CanPlaceGateAt checks if a gate can be placed at the given step using the specified qubits.
// Returns false if any qubit is already used by a multi-qubit gate or barrier at that step.
func (dag *CircuitDAG) CanPlaceGateAt(step int, qubits []int) bool {
	for _, node := range dag.Nodes {
		if node.Step == step && node.Type == "BARRIER" {
			return false
		}
	}
	for _, qubit := range qubits {
		node := dag.GetNodeAt(step, qubit)
		if node == nil {
			continue
		}
		if node.Type == "BARRIER" {
			return false
		}
		if node.Control >= 0 || len(node.Controls) > 0 {
			return false
		}
	}
	return true
}

// RemoveNodeAt removes a node at the given step and qubit.
func (dag *CircuitDAG) RemoveNodeAt(step, qubit int) {
	node := dag.GetNodeAt(step, qubit)
	if node != nil {
		dag.RemoveNode(node.ID)
	}
}

// RemoveNodesOnQubit removes all nodes that reference a specific qubit.
func (dag *CircuitDAG) RemoveNodesOnQubit(qubit int) {
	toRemove := []string{}
	for id, node := range dag.Nodes {
		if node.Target == qubit || node.Control == qubit {
			toRemove = append(toRemove, id)
			continue
		}
		for _, ctrl := range node.Controls {
			if ctrl == qubit {
				toRemove = append(toRemove, id)
				break
			}
		}
	}
	for _, id := range toRemove {
		dag.RemoveNode(id)
	}
}

// lastGateOnQubits finds, for each tracked qubit, the most recent node ID
// placed strictly before the given (step, gateType) position.
func (dag *CircuitDAG) lastGateOnQubits(step int, gateType string) map[int]string {
	lastGateOnQubit := make(map[int]string)
	for _, n := range dag.Nodes {
		qubits := []int{n.Target}
		if n.Control >= 0 {
			qubits = append(qubits, n.Control)
		}
		qubits = append(qubits, n.Controls...)
		for _, q := range qubits {
			if n.Step < step || (n.Step == step && n.Type < gateType) {
				prev, seen := dag.Nodes[lastGateOnQubit[q]]
				if !seen || prev.Step < n.Step || (prev.Step == n.Step && prev.Type < n.Type) {
					lastGateOnQubit[q] = n.ID
				}
			}
		}
	}
	return lastGateOnQubit
}

// AddGate adds a gate to the DAG at the specified step.
func (dag *CircuitDAG) AddGate(gateType string, target, step int, control ...int) {
	ctrl := -1
	if len(control) > 0 {
		ctrl = control[0]
	}

	node := &DAGNode{
		Type:         gateType,
		Target:       target,
		Control:      ctrl,
		Step:         step,
		Dependencies: []string{},
	}

	lastGateOnQubit := dag.lastGateOnQubits(step, gateType)
	qubitsUsed := []int{target}
	if ctrl >= 0 {
		qubitsUsed = append(qubitsUsed, ctrl)
	}

	depSet := make(map[string]bool)
	for _, qubit := range qubitsUsed {
		if lastID, ok := lastGateOnQubit[qubit]; ok {
			depSet[lastID] = true
		}
	}
	for depID := range depSet {
		node.Dependencies = append(node.Dependencies, depID)
	}

	node.ID = generateNodeID(gateType, target, step)
	dag.AddNode(node)
}

// AddParameterizedGate adds a parameterized gate to the DAG.
func (dag *CircuitDAG) AddParameterizedGate(gateType string, target, step int, params []float64, control ...int) {
	ctrl := -1
	if len(control) > 0 {
		ctrl = control[0]
	}

	node := &DAGNode{
		Type:         gateType,
		Target:       target,
		Control:      ctrl,
		Step:         step,
		Params:       params,
		Dependencies: []string{},
	}

	lastGateOnQubit := dag.lastGateOnQubits(step, gateType)
	qubitsUsed := []int{target}
	if ctrl >= 0 {
		qubitsUsed = append(qubitsUsed, ctrl)
	}

	depSet := make(map[string]bool)
	for _, qubit := range qubitsUsed {
		if lastID, ok := lastGateOnQubit[qubit]; ok {
			depSet[lastID] = true
		}
	}
	for depID := range depSet {
		node.Dependencies = append(node.Dependencies, depID)
	}

	node.ID = generateNodeID(gateType, target, step)
	dag.AddNode(node)
}

// AddMultiControlGate adds a multi-controlled gate to the DAG.
func (dag *CircuitDAG) AddMultiControlGate(gateType string, target, step int, controls []int) {
	node := &DAGNode{
		Type:         gateType,
		Target:       target,
		Control:      -1,
		Controls:     controls,
		Step:         step,
		Dependencies: []string{},
	}

	lastGateOnQubit := dag.lastGateOnQubits(step, gateType)
	qubitsUsed := append([]int{target}, controls...)

	depSet := make(map[string]bool)
	for _, qubit := range qubitsUsed {
		if lastID, ok := lastGateOnQubit[qubit]; ok {
			depSet[lastID] = true
		}
	}
	for depID := range depSet {
		node.Dependencies = append(node.Dependencies, depID)
	}

	node.ID = generateNodeID(gateType, target, step)
	dag.AddNode(node)
}

// AddDaggerGate adds a dagger gate to the DAG.
func (dag *CircuitDAG) AddDaggerGate(gateType string, target, step int) {
	node := &DAGNode{
		Type:         gateType,
		Target:       target,
		Control:      -1,
		Step:         step,
		IsDagger:     true,
		Dependencies: []string{},
	}

	lastGateOnQubit := dag.lastGateOnQubits(step, gateType)
	if lastID, ok := lastGateOnQubit[target]; ok {
		node.Dependencies = append(node.Dependencies, lastID)
	}

	node.ID = generateNodeID(gateType, target, step)
	dag.AddNode(node)
}

// AddReset adds a reset operation to the DAG.
func (dag *CircuitDAG) AddReset(target, step int) {
	node := &DAGNode{
		Type:         "RESET",
		Target:       target,
		Control:      -1,
		Step:         step,
		IsReset:      true,
		Dependencies: []string{},
	}

	lastGateOnQubit := dag.lastGateOnQubits(step, "RESET")
	if lastID, ok := lastGateOnQubit[target]; ok {
		node.Dependencies = append(node.Dependencies, lastID)
	}

	node.ID = generateNodeID("RESET", target, step)
	dag.AddNode(node)
}

// AddBarrier adds a barrier spanning all qubits at the given step.
func (dag *CircuitDAG) AddBarrier(step int) {
	// Remove any existing barrier at this step
	toRemove := []string{}
	for id, node := range dag.Nodes {
		if node.Step == step && node.Type == "BARRIER" {
			toRemove = append(toRemove, id)
		}
	}
	for _, id := range toRemove {
		dag.RemoveNode(id)
	}

	node := &DAGNode{
		Type:         "BARRIER",
		Target:       -1,
		Control:      -1,
		Step:         step,
		Dependencies: []string{},
	}

	node.ID = generateNodeID("BARRIER", -1, step)
	dag.AddNode(node)
}

// NumCbitsInt returns the number of classical bits.
func (dag *CircuitDAG) NumCbitsInt() int {
	return dag.NumCbits
}
