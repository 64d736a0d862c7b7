package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/theapemachine/errnie"

	"github.com/hlalwani/qstatevec/internal/circuit"
	"github.com/hlalwani/qstatevec/internal/statevector"
)

func main() {
	headless := flag.Bool("headless", false, "run a QASM file against the statevector engine and print the resulting register as JSON, instead of opening the editor")
	qasmPath := flag.String("qasm", "", "path to a QASM 2.0 file; required with -headless, used to seed the editor otherwise")
	workers := flag.Int("workers", 1, "worker goroutines for the statevector engine above the parallel threshold")
	chop := flag.Float64("chop", 0, "zero out real and imaginary parts with magnitude at or below this threshold when printing JSON")
	flag.Parse()

	if *headless {
		if err := runHeadless(*qasmPath, *workers, *chop); err != nil {
			errnie.Info("qstatevec headless - failed: %v", err)
			fmt.Fprintln(os.Stderr, "qstatevec:", err)
			os.Exit(1)
		}
		return
	}

	m := initialModel()
	if *qasmPath != "" {
		data, err := os.ReadFile(*qasmPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "qstatevec:", err)
			os.Exit(1)
		}
		m.qasmEditor.SetValue(string(data))
		m.parseQASMInput()
	}

	errnie.Info("qstatevec - starting editor, qubits %d", m.dag.NumQubits)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "qstatevec:", err)
		os.Exit(1)
	}
}

func runHeadless(qasmPath string, workers int, chop float64) error {
	if qasmPath == "" {
		return fmt.Errorf("-qasm is required with -headless")
	}
	data, err := os.ReadFile(qasmPath)
	if err != nil {
		return err
	}

	c := circuit.Circuit{}
	if err := c.ParseQASM(string(data)); err != nil {
		return fmt.Errorf("parsing %s: %w", qasmPath, err)
	}

	errnie.Info("qstatevec headless - qubits %d, gates %d, workers %d", c.NumQubits, len(c.Gates), workers)

	opts := []statevector.Option{statevector.WithJSONChopThreshold(chop)}
	if workers > 1 {
		opts = append(opts, statevector.WithWorkers(workers))
	}
	qv, err := circuit.Run(&c, -1, opts...)
	if err != nil {
		return fmt.Errorf("simulating circuit: %w", err)
	}

	b, err := qv.MarshalJSON()
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(append(b, '\n'))
	return err
}
