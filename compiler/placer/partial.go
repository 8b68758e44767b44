package placer

import (
	"math"
	"math/rand"

	"github.com/kegliz/nacompile/compiler/model"
)

// PartialPlacer re-anneals a subset of qubits (target) over the
// remaining layers, holding every other qubit fixed at its given site.
type PartialPlacer struct {
	*sharedState

	saT, saT1 float64

	target       []int
	listPosition []model.Site // candidate target cells: empty cells ∪ targets' current sites

	bestMapping []model.Site
	bestCost    float64
}

// PlacePartial runs the partial SA placer starting from initialMapping,
// moving only the qubits in target, and returns the best-seen mapping.
func PlacePartial(rng *rand.Rand, nx, ny, nQubit int, listGate [][]model.Gate, initialMapping []model.Site, target []int, l2 bool) []model.Site {
	wx, wy := workingGeometry(nx, ny, nQubit)

	p := &PartialPlacer{
		sharedState: newSharedState(rng, l2, nQubit, [2]int{wx, wy}, listGate),
		saT:         100000.0,
		saT1:        4.0,
		bestCost:    math.MaxFloat64,
		target:      target,
	}

	p.initSolution(initialMapping, wx, wy)

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

func (p *PartialPlacer) acceptCurrentDelta() {
	p.currentCostAccum += p.saDelta
	if p.bestCost-p.currentCostAccum > 1e-9 {
		p.bestMapping = append([]model.Site(nil), p.mapping...)
		p.bestCost = p.currentCostAccum
	}
}

func (p *PartialPlacer) initSolution(initialMapping []model.Site, wx, wy int) {
	occupied := make(map[model.Site]bool, len(initialMapping))
	for _, s := range initialMapping {
		occupied[s] = true
	}

	p.listPosition = nil
	for x := 0; x < wx; x++ {
		for y := 0; y < wy; y++ {
			if !occupied[model.Site{X: x, Y: y}] {
				p.listPosition = append(p.listPosition, model.Site{X: x, Y: y})
			}
		}
	}
	for _, q := range p.target {
		p.listPosition = append(p.listPosition, initialMapping[q])
	}

	p.mapping = append([]model.Site(nil), initialMapping...)
	p.physToQubit = make([][]int, wx)
	for x := range p.physToQubit {
		p.physToQubit[x] = make([]int, wy)
		for y := range p.physToQubit[x] {
			p.physToQubit[x][y] = -1
		}
	}
	for i, s := range p.mapping {
		p.physToQubit[s.X][s.Y] = i
	}

	p.currentCostAccum = p.cost()
	if p.bestCost-p.currentCostAccum > 1e-9 {
		p.bestMapping = append([]model.Site(nil), p.mapping...)
		p.bestCost = p.currentCostAccum
	}

	p.initPerturb()
}

func (p *PartialPlacer) initPerturb() {
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

func (p *PartialPlacer) makeMovement() {
	q := p.target[p.rng.Intn(len(p.target))]
	pos := p.listPosition[p.rng.Intn(len(p.listPosition))]
	p.move(q, pos.X, pos.Y)
}

func (p *PartialPlacer) updateTemperature(saN int) {
	mean := p.saT1 * math.Abs(p.saDeltaSum) / float64(p.saDeltaCostCnt)
	if saN <= saK {
		p.saT = mean / float64(saN) / saC
	} else {
		p.saT = mean / float64(saN)
	}
}
