// Package testutil centralizes test fixtures and constants shared across
// the compiler package tests: deterministic seeds and small chip
// geometries, so individual test files don't each invent their own.
package testutil

import (
	"time"

	"github.com/kegliz/nacompile/compiler/model"
)

const (
	// DeterministicSeed is the fixed PRNG seed used by every test that
	// checks placer/router determinism.
	DeterministicSeed = 0

	DefaultTestTimeout = 10 * time.Second

	SmallChipNx = 4
	SmallChipNy = 4
	SmallChipNc = 4
	SmallChipNr = 4

	MediumChipNx = 8
	MediumChipNy = 8
	MediumChipNc = 8
	MediumChipNr = 8
)

// LineProgram returns the two-gate line program (0,1),(1,2) used across
// scheduler/router/pipeline tests as the minimal non-trivial case.
func LineProgram() model.Program {
	return model.Program{model.NewGate(0, 1), model.NewGate(1, 2)}
}

// TriangleProgram returns the fully-commutable triangle program on 3
// qubits, used to check the Delta+1 coloring bound.
func TriangleProgram() model.Program {
	return model.Program{model.NewGate(0, 1), model.NewGate(1, 2), model.NewGate(0, 2)}
}

// TrivialMapping lays nQubit qubits out left to right along the first
// row of an nx-wide chip.
func TrivialMapping(nx, nQubit int) model.Mapping {
	mapping := make(model.Mapping, nQubit)
	x, y := 0, 0
	for i := 0; i < nQubit; i++ {
		mapping[i] = model.Site{X: x, Y: y}
		x++
		if x%nx == 0 {
			x = 0
			y++
		}
	}
	return mapping
}
