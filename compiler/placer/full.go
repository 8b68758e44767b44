package placer

import (
	"math"
	"math/rand"

	"github.com/kegliz/nacompile/compiler/model"
)

// FullPlacer runs simulated annealing from a random initial permutation to
// find a qubit-to-site mapping minimizing layer-weighted wirelength.
type FullPlacer struct {
	*sharedState

	saT, saT1 float64

	bestMapping []model.Site
	bestCost    float64
}

// workingGeometry implements the §4.C geometry-sizing rule: a virtual
// square side of ceil(sqrt(nQubit))+4, clamped to the real chip, falling
// back to the full chip if that would be too small to hold every qubit.
func workingGeometry(nx, ny, nQubit int) (int, int) {
	length := int(math.Ceil(math.Sqrt(float64(nQubit)))) + 4
	wx, wy := minInt(nx, length), minInt(ny, length)
	if wx*wy < nQubit {
		return nx, ny
	}
	return wx, wy
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Place runs the full simulated-annealing placer and returns the
// best-seen mapping. rng must be seeded deterministically by the caller
// when reproducibility is required.
func Place(rng *rand.Rand, nx, ny, nQubit int, listGate [][]model.Gate, l2 bool) []model.Site {
	wx, wy := workingGeometry(nx, ny, nQubit)

	p := &FullPlacer{
		sharedState: newSharedState(rng, l2, nQubit, [2]int{wx, wy}, listGate),
		saT:         100000.0,
		saT1:        4.0,
		bestCost:    math.MaxFloat64,
	}

	p.initSolution()

	saN := 0
	for p.saT > saTFrozen {
		saN++
		p.saDeltaSum = 0
		p.saDeltaCostCnt = 0
		for i := 0; i < saL; i++ {
			p.makeMovement()
			p.saDeltaCostCnt++
			p.saDeltaSum += math.Abs(p.saDelta)

			if p.saDelta <= 0 {
				p.acceptCurrentDelta()
			} else if acceptWorse(p.rng, p.saDelta, p.saT) {
				p.acceptCurrentDelta()
			} else {
				p.recover()
			}
		}
		p.updateTemperature(saN)
		if saN > saIterLimit {
			break
		}
	}

	return p.bestMapping
}

// currentCost is tracked incrementally via saDelta rather than
// recomputed each step; acceptCurrentDelta folds the last movement's
// delta into it and updates the best-seen solution.
func (p *FullPlacer) acceptCurrentDelta() {
	p.currentCostAccum += p.saDelta
	if p.bestCost-p.currentCostAccum > 1e-9 {
		p.bestMapping = append([]model.Site(nil), p.mapping...)
		p.bestCost = p.currentCostAccum
	}
}

func (p *FullPlacer) initSolution() {
	cells := make([]int, p.chipDim[0]*p.chipDim[1])
	for i := range cells {
		cells[i] = i
	}
	p.rng.Shuffle(len(cells), func(i, j int) { cells[i], cells[j] = cells[j], cells[i] })

	p.mapping = make([]model.Site, p.nQubit)
	p.physToQubit = make([][]int, p.chipDim[0])
	for x := range p.physToQubit {
		p.physToQubit[x] = make([]int, p.chipDim[1])
		for y := range p.physToQubit[x] {
			p.physToQubit[x][y] = -1
		}
	}
	for i := 0; i < p.nQubit; i++ {
		y := cells[i] % p.chipDim[1]
		x := cells[i] / p.chipDim[1]
		p.mapping[i] = model.Site{X: x, Y: y}
		p.physToQubit[x][y] = i
	}

	p.currentCostAccum = p.cost()
	if p.bestCost-p.currentCostAccum > 1e-9 {
		p.bestMapping = append([]model.Site(nil), p.mapping...)
		p.bestCost = p.currentCostAccum
	}

	p.initPerturb()
}

// initPerturb runs a short random walk to estimate the mean uphill cost
// delta, from which the initial annealing temperature T1 is derived.
func (p *FullPlacer) initPerturb() {
	var uphillSum float64
	var uphillCnt int
	for i := 0; i < saInitPerturbNum; i++ {
		p.makeMovement()
		p.currentCostAccum += p.saDelta
		if p.bestCost-p.currentCostAccum > 1e-9 {
			p.bestMapping = append([]model.Site(nil), p.mapping...)
			p.bestCost = p.currentCostAccum
		}
		if p.saDelta > 0 {
			uphillSum += p.saDelta
			uphillCnt++
		}
	}
	p.saT1 = (uphillSum / float64(uphillCnt)) / (-math.Log(saP))
	p.saT = p.saT1
}

func (p *FullPlacer) makeMovement() {
	q := p.rng.Intn(p.nQubit)
	x := p.rng.Intn(p.chipDim[0])
	y := p.rng.Intn(p.chipDim[1])
	p.move(q, x, y)
}

func (p *FullPlacer) updateTemperature(saN int) {
	mean := p.saT1 * math.Abs(p.saDeltaSum) / float64(p.saDeltaCostCnt)
	if saN <= saK {
		p.saT = mean / float64(saN) / saC
	} else {
		p.saT = mean / float64(saN)
	}
}
