package router

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"
	"os/exec"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/kegliz/nacompile/compiler/model"
)

// Strategy selects a maximal independent set of candidate motions (by
// index into candidates), given the pairwise incompatibility edges and
// the current mapping (used by strategies that rank candidates by
// distance).
type Strategy func(candidates []Motion, edges [][2]int, mapping model.Mapping, rng *rand.Rand) ([]int, error)

// Registry is a thread-safe, string-keyed factory map for MIS strategies.
type Registry struct {
	mu    sync.RWMutex
	named map[string]Strategy
}

// NewRegistry returns a Registry preloaded with the three built-in
// strategies: "mis", "maximalis", "maximalis_sorted".
func NewRegistry() *Registry {
	r := &Registry{named: make(map[string]Strategy)}
	r.MustRegister("mis", externalMIS)
	r.MustRegister("maximalis", maximalIS)
	r.MustRegister("maximalis_sorted", maximalISSorted)
	return r
}

// Register adds a new named strategy. Returns an error if the name is
// already taken, so callers extending the registry fail loudly on
// collision rather than silently shadowing a built-in.
func (r *Registry) Register(name string, s Strategy) error {
	if name == "" {
		return fmt.Errorf("router: strategy name cannot be empty")
	}
	if s == nil {
		return fmt.Errorf("router: strategy %q cannot be nil", name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.named[name]; exists {
		return fmt.Errorf("router: strategy %q already registered", name)
	}
	r.named[name] = s
	return nil
}

// MustRegister is like Register but panics on failure; used for the
// built-ins wired in NewRegistry.
func (r *Registry) MustRegister(name string, s Strategy) {
	if err := r.Register(name, s); err != nil {
		panic(err)
	}
}

// Get looks up a strategy by name.
func (r *Registry) Get(name string) (Strategy, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.named[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
	return s, nil
}

// ErrUnknownStrategy is the sentinel returned for an unregistered strategy name.
var ErrUnknownStrategy = fmt.Errorf("router: unknown MIS strategy")

func incompatibleSet(edges [][2]int, n int) [][]bool {
	adj := make([][]bool, n)
	for i := range adj {
		adj[i] = make([]bool, n)
	}
	for _, e := range edges {
		adj[e[0]][e[1]] = true
		adj[e[1]][e[0]] = true
	}
	return adj
}

// maximalISSorted (default) is a greedy, deterministic first-fit over
// candidates sorted by descending current mover-to-partner distance:
// the candidates most likely to resolve the longest-range gates are
// favored first.
func maximalISSorted(candidates []Motion, edges [][2]int, mapping model.Mapping, rng *rand.Rand) ([]int, error) {
	adj := incompatibleSet(edges, len(candidates))

	order := make([]int, len(candidates))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return motionDistSq(candidates[order[a]]) > motionDistSq(candidates[order[b]])
	})

	included := make([]bool, len(candidates))
	var selected []int
	for _, idx := range order {
		conflict := false
		for _, s := range selected {
			if adj[idx][s] {
				conflict = true
				break
			}
		}
		if !conflict {
			included[idx] = true
			selected = append(selected, idx)
		}
	}
	return selected, nil
}

func motionDistSq(m Motion) int {
	dx := m.XE - m.XS
	dy := m.YE - m.YS
	return dx*dx + dy*dy
}

// maximalIS builds a maximal independent set by visiting candidates in a
// deterministically seeded random order and greedily accepting any that
// do not conflict with what is already selected.
func maximalIS(candidates []Motion, edges [][2]int, mapping model.Mapping, rng *rand.Rand) ([]int, error) {
	adj := incompatibleSet(edges, len(candidates))

	order := rng.Perm(len(candidates))

	var selected []int
	for _, idx := range order {
		conflict := false
		for _, s := range selected {
			if adj[idx][s] {
				conflict = true
				break
			}
		}
		if !conflict {
			selected = append(selected, idx)
		}
	}
	return selected, nil
}

// externalMIS shells out to a `mis`/`redumis`-named binary using the
// DIMACS-style contract: N M, then N 1-based neighbor lists as input;
// N lines of 0/1 inclusion flags as output.
func externalMIS(candidates []Motion, edges [][2]int, mapping model.Mapping, rng *rand.Rand) ([]int, error) {
	n := len(candidates)
	if n == 0 {
		return nil, nil
	}

	neighbors := make([][]int, n)
	for _, e := range edges {
		neighbors[e[0]] = append(neighbors[e[0]], e[1]+1)
		neighbors[e[1]] = append(neighbors[e[1]], e[0]+1)
	}

	in, err := os.CreateTemp("", "nacompile-mis-in-*.graph")
	if err != nil {
		return nil, fmt.Errorf("router: creating mis input file: %w", err)
	}
	defer os.Remove(in.Name())

	w := bufio.NewWriter(in)
	fmt.Fprintf(w, "%d %d\n", n, len(edges))
	for i := 0; i < n; i++ {
		strs := make([]string, len(neighbors[i]))
		for j, v := range neighbors[i] {
			strs[j] = strconv.Itoa(v)
		}
		fmt.Fprintln(w, strings.Join(strs, " "))
	}
	if err := w.Flush(); err != nil {
		in.Close()
		return nil, fmt.Errorf("router: writing mis input file: %w", err)
	}
	in.Close()

	outPath := in.Name() + ".out"
	defer os.Remove(outPath)

	cmd := exec.Command("mis/redumis", in.Name(), "--output", outPath, "--time_limit", "3600")
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExternalMISFailed, err)
	}

	out, err := os.Open(outPath)
	if err != nil {
		return nil, fmt.Errorf("%w: reading output: %v", ErrExternalMISFailed, err)
	}
	defer out.Close()

	var selected []int
	scanner := bufio.NewScanner(out)
	idx := 0
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "1" {
			selected = append(selected, idx)
		}
		idx++
	}
	if idx != n {
		return nil, fmt.Errorf("%w: expected %d lines, got %d", ErrExternalMISFailed, n, idx)
	}
	return selected, nil
}

// ErrExternalMISFailed wraps any failure of the external MIS subprocess
// contract: non-zero exit, missing output, or malformed output.
var ErrExternalMISFailed = fmt.Errorf("router: external mis solver failed")
