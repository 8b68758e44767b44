// Package graphset loads and generates the preset random 3-regular graphs
// the "run" CLI subcommand compiles, mirroring the graphs.json fixture
// the original research driver shipped with.
package graphset

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"

	"github.com/kegliz/nacompile/compiler/model"
)

// Edge is a single (u, v) pair as stored in graphs.json.
type Edge [2]int

// Set maps a graph size (as its decimal string key, matching the JSON
// fixture) to its ten preset instances.
type Set map[string][]Program

// Program is one graph instance: a flat edge list.
type Program []Edge

// Load reads a graphs.json file. A missing file is not an error — it
// returns an empty Set, matching the original loader's behavior of
// falling back to generation.
func Load(path string) (Set, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Set{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("graphset: reading %s: %w", path, err)
	}
	var s Set
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("graphset: parsing %s: %w", path, err)
	}
	return s, nil
}

// Save writes s as graphs_new.json-style output.
func Save(path string, s Set) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("graphset: marshaling: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Get returns instance id (0-9) of the graph for the given size, or
// false if it isn't present in s.
func (s Set) Get(size, id int) (Program, bool) {
	key := fmt.Sprintf("%d", size)
	instances, ok := s[key]
	if !ok || id < 0 || id >= len(instances) {
		return nil, false
	}
	return instances[id], true
}

// GenerateTen produces ten random 3-regular graph instances on `size`
// vertices, seeded 0..9 for reproducibility, and stores them in s under
// size's key.
func GenerateTen(s Set, size int) {
	key := fmt.Sprintf("%d", size)
	instances := make([]Program, 10)
	for i := 0; i < 10; i++ {
		instances[i] = random3Regular(size, int64(i))
	}
	s[key] = instances
}

// random3Regular builds a simple 3-regular graph via the stub-matching
// configuration model with rejection of self-loops and parallel edges,
// retrying the whole matching on failure. 3-regular graphs require an
// even size*3, i.e. size must be even.
func random3Regular(size int, seed int64) Program {
	if size <= 0 {
		return Program{}
	}
	rng := rand.New(rand.NewSource(seed))

	for attempt := 0; attempt < 1000; attempt++ {
		stubs := make([]int, 0, size*3)
		for v := 0; v < size; v++ {
			stubs = append(stubs, v, v, v)
		}
		rng.Shuffle(len(stubs), func(i, j int) { stubs[i], stubs[j] = stubs[j], stubs[i] })

		seen := make(map[[2]int]bool)
		edges := make(Program, 0, size*3/2)
		ok := true
		for i := 0; i+1 < len(stubs); i += 2 {
			u, v := stubs[i], stubs[i+1]
			if u == v {
				ok = false
				break
			}
			if u > v {
				u, v = v, u
			}
			key := [2]int{u, v}
			if seen[key] {
				ok = false
				break
			}
			seen[key] = true
			edges = append(edges, Edge{u, v})
		}
		if ok {
			return edges
		}
	}
	// Extremely unlikely for small/medium sizes; return an empty program
	// rather than looping forever.
	return Program{}
}

// ToModelProgram converts a graph's edge list into the gate program the
// compiler pipeline consumes.
func ToModelProgram(p Program) model.Program {
	prog := make(model.Program, len(p))
	for i, e := range p {
		prog[i] = model.NewGate(e[0], e[1])
	}
	return prog
}
