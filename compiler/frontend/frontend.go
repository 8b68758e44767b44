// Package frontend extracts the CZ-gate program the compiler consumes
// from an already-validated front-end circuit: either a DAG built by the
// fluent builder, or a minimal line-oriented loader for pre-transpiled
// "cz q0,q1" text.
package frontend

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/kegliz/nacompile/compiler/model"
	"github.com/kegliz/nacompile/qc/dag"
	"github.com/kegliz/nacompile/qc/gate"
)

// ErrMalformedLine is returned by LoadQASMLike for any line that isn't a
// well-formed "cz q0,q1" statement.
var ErrMalformedLine = fmt.Errorf("frontend: malformed cz line")

// ExtractFromDAG walks d's topological order and returns the qubit pair
// of every CZ node, in program order. Non-CZ nodes (single-qubit basis
// gates, measurements) are skipped: the pipeline driver only schedules
// the two-qubit interaction layer.
func ExtractFromDAG(d dag.DAGReader) model.Program {
	var prog model.Program
	for _, n := range d.Operations() {
		if n.G.Name() != gate.CZ().Name() {
			continue
		}
		if len(n.Qubits) != 2 {
			continue
		}
		prog = append(prog, model.NewGate(n.Qubits[0], n.Qubits[1]))
	}
	return prog
}

// LoadQASMLike parses the minimal already-decomposed subset this
// repository accepts from run-qasm: one statement per line, of the form
// "cz q0,q1" (whitespace-insensitive, blank lines and "#"-comments
// ignored). Anything richer — actual OpenQASM syntax, other gate names,
// basis transpilation — is out of scope; an external collaborator is
// expected to have already reduced the circuit to this form.
func LoadQASMLike(r io.Reader) (model.Program, error) {
	var prog model.Program
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 || strings.ToLower(fields[0]) != "cz" {
			return nil, fmt.Errorf("%w at line %d: %q", ErrMalformedLine, lineNo, line)
		}
		pair := strings.Split(strings.Join(fields[1:], ""), ",")
		if len(pair) != 2 {
			return nil, fmt.Errorf("%w at line %d: %q", ErrMalformedLine, lineNo, line)
		}
		a, err := parseQubit(pair[0])
		if err != nil {
			return nil, fmt.Errorf("%w at line %d: %v", ErrMalformedLine, lineNo, err)
		}
		b, err := parseQubit(pair[1])
		if err != nil {
			return nil, fmt.Errorf("%w at line %d: %v", ErrMalformedLine, lineNo, err)
		}
		prog = append(prog, model.NewGate(a, b))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("frontend: reading qasm-like input: %w", err)
	}
	return prog, nil
}

func parseQubit(s string) (int, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "q")
	return strconv.Atoi(s)
}
