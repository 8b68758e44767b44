package codegen

import (
	"math"

	"github.com/kegliz/nacompile/compiler/hardware"
	"github.com/kegliz/nacompile/compiler/model"
)

// NewInit pins every qubit to a static trap at its mapped site. It is
// always the first instruction of the stream.
func NewInit(ctx *Context, mapping model.Mapping) (Inst, error) {
	if len(mapping) != len(ctx.Qubits) {
		return nil, violatedf("init: mapping has %d qubits, context has %d", len(mapping), len(ctx.Qubits))
	}
	idx := make([]int, len(mapping))
	xys := make([][2]float64, len(mapping))
	for q, site := range mapping {
		x, y := hardware.SiteX(site.X), hardware.SiteY(site.Y)
		ctx.Qubits[q].Array = hardware.Static
		ctx.Qubits[q].X, ctx.Qubits[q].Y = x, y
		idx[q] = q
		xys[q] = [2]float64{x, y}
	}

	return &base{
		kind:     KindInit,
		duration: hardware.InitFrame,
		fields: map[string]any{
			"slm_qubit_idx": idx,
			"slm_qubit_xys": xys,
		},
		snapshot: snapshotIfFull(ctx),
	}, nil
}

// Pickup is one qubit's assignment onto an AOD column/row intersection.
type Pickup struct {
	Qubit    int
	Col, Row int
}

// NewActivate lifts each pickup's qubit off its static trap onto the
// named column/row intersection, activating any column/row not already
// active at the given coordinate. Every picked qubit must currently sit
// exactly at the intersection's coordinates.
func NewActivate(ctx *Context, pickups []Pickup, colX, rowY map[int]float64) (Inst, error) {
	var cols, rows []int
	for c, x := range colX {
		ctx.Cols[c].Active = true
		ctx.Cols[c].X = x
		cols = append(cols, c)
	}
	for r, y := range rowY {
		ctx.Rows[r].Active = true
		ctx.Rows[r].Y = y
		rows = append(rows, r)
	}
	if err := ctx.checkColOrder(); err != nil {
		return nil, err
	}
	if err := ctx.checkRowOrder(); err != nil {
		return nil, err
	}

	qubits := make([]int, len(pickups))
	for i, p := range pickups {
		col := ctx.Cols[p.Col]
		row := ctx.Rows[p.Row]
		if math.Abs(ctx.Qubits[p.Qubit].X-col.X) > 1e-6 || math.Abs(ctx.Qubits[p.Qubit].Y-row.Y) > 1e-6 {
			return nil, violatedf("activate: qubit %d not coincident with intersection (col %d, row %d)", p.Qubit, col.ID, row.ID)
		}
		ctx.Qubits[p.Qubit].Array = hardware.Movable
		ctx.Qubits[p.Qubit].Col = col.ID
		ctx.Qubits[p.Qubit].Row = row.ID
		qubits[i] = p.Qubit
	}

	return &base{
		kind:     KindActivate,
		duration: hardware.TActivate,
		fields: map[string]any{
			"cols": cols, "rows": rows, "qubits": qubits,
		},
		snapshot: snapshotIfFull(ctx),
	}, nil
}

// NewDeactivate drops the given qubits from their AOD intersection onto
// the static trap at the column/row's current coordinates.
func NewDeactivate(ctx *Context, cols, rows []int, qubits []int) (Inst, error) {
	for _, q := range qubits {
		if ctx.Qubits[q].Array != hardware.Movable {
			return nil, violatedf("deactivate: qubit %d is not on the movable lattice", q)
		}
		col := ctx.Cols[ctx.Qubits[q].Col]
		row := ctx.Rows[ctx.Qubits[q].Row]
		ctx.Qubits[q].Array = hardware.Static
		ctx.Qubits[q].X, ctx.Qubits[q].Y = col.X, row.Y
	}
	for _, c := range cols {
		ctx.Cols[c].Active = false
	}
	for _, r := range rows {
		ctx.Rows[r].Active = false
	}

	return &base{
		kind:     KindDeactivate,
		duration: hardware.TActivate,
		fields: map[string]any{
			"cols": cols, "rows": rows, "qubits": qubits,
		},
		snapshot: snapshotIfFull(ctx),
	}, nil
}

// NewMove shifts every currently active column/row to its new target
// coordinate in a single multi-track motion; duration scales with the
// largest single-track travel distance.
func NewMove(ctx *Context, colTargets, rowTargets map[int]float64) (Inst, error) {
	var maxDist float64
	for id, x := range colTargets {
		d := math.Abs(ctx.Cols[id].X - x)
		if d > maxDist {
			maxDist = d
		}
	}
	for id, y := range rowTargets {
		d := math.Abs(ctx.Rows[id].Y - y)
		if d > maxDist {
			maxDist = d
		}
	}

	for id, x := range colTargets {
		c := ctx.Cols[id]
		c.X = x
		ctx.Cols[id] = c
		for _, q := range qubitsOnCol(ctx, id) {
			ctx.Qubits[q].X = x
		}
	}
	for id, y := range rowTargets {
		r := ctx.Rows[id]
		r.Y = y
		ctx.Rows[id] = r
		for _, q := range qubitsOnRow(ctx, id) {
			ctx.Qubits[q].Y = y
		}
	}
	if err := ctx.checkColOrder(); err != nil {
		return nil, err
	}
	if err := ctx.checkRowOrder(); err != nil {
		return nil, err
	}

	duration := 200 * math.Sqrt(maxDist/110)

	return &base{
		kind:     KindMove,
		duration: duration,
		fields: map[string]any{
			"col_targets": colTargets, "row_targets": rowTargets,
		},
		snapshot: snapshotIfFull(ctx),
	}, nil
}

func qubitsOnCol(ctx *Context, col int) []int {
	var out []int
	for _, q := range ctx.Qubits {
		if q.Array == hardware.Movable && q.Col == col {
			out = append(out, q.ID)
		}
	}
	return out
}

func qubitsOnRow(ctx *Context, row int) []int {
	var out []int
	for _, q := range ctx.Qubits {
		if q.Array == hardware.Movable && q.Row == row {
			out = append(out, q.ID)
		}
	}
	return out
}

// NewRydberg fires the given gates. The caller must ensure each gate's
// two qubits are co-located before constructing this instruction.
func NewRydberg(ctx *Context, gates []model.Gate) (Inst, error) {
	for _, g := range gates {
		a, b := ctx.Qubits[g.Q0], ctx.Qubits[g.Q1]
		dx, dy := a.X-b.X, a.Y-b.Y
		if math.Hypot(dx, dy) > ctx.consts.RB+1e-6 {
			return nil, violatedf("rydberg: qubits %d and %d are not within blockade range", g.Q0, g.Q1)
		}
	}
	return &base{
		kind:     KindRydberg,
		duration: ctx.consts.TRydberg,
		fields: map[string]any{
			"gates": gates,
		},
		snapshot: snapshotIfFull(ctx),
	}, nil
}
