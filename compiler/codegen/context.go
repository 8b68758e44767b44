package codegen

import "github.com/kegliz/nacompile/compiler/hardware"

// Context is the single owned, explicitly-threaded lattice state that
// every instruction's verify/operate step reads and mutates. FullCode
// selects whether emitted instructions carry a structural snapshot.
type Context struct {
	Qubits []hardware.Qubit
	Cols   []hardware.Col
	Rows   []hardware.Row

	FullCode bool
	consts   hardware.Constants
}

// NewContext allocates a lattice of nQubit atoms, nCol columns and nRow
// rows, all initially off-lattice/inactive.
func NewContext(nQubit, nCol, nRow int, fullCode bool, consts hardware.Constants) *Context {
	ctx := &Context{FullCode: fullCode, consts: consts}
	ctx.Qubits = make([]hardware.Qubit, nQubit)
	for i := range ctx.Qubits {
		ctx.Qubits[i] = hardware.NewQubit(i)
	}
	ctx.Cols = make([]hardware.Col, nCol)
	for i := range ctx.Cols {
		ctx.Cols[i] = hardware.NewCol(i)
	}
	ctx.Rows = make([]hardware.Row, nRow)
	for i := range ctx.Rows {
		ctx.Rows[i] = hardware.NewRow(i)
	}
	return ctx
}

// activeCols returns column ids currently active, sorted by id.
func (ctx *Context) activeCols() []int {
	var out []int
	for _, c := range ctx.Cols {
		if c.Active {
			out = append(out, c.ID)
		}
	}
	return out
}

func (ctx *Context) activeRows() []int {
	var out []int
	for _, r := range ctx.Rows {
		if r.Active {
			out = append(out, r.ID)
		}
	}
	return out
}

// checkColOrder (and checkRowOrder) verify that active column (or row) coordinates are
// strictly increasing in id, with gaps of at least AOD_SEP — the
// "active-lattice order preserved" invariant.
func (ctx *Context) checkColOrder() error {
	ids := ctx.activeCols()
	for i := 1; i < len(ids); i++ {
		a, b := ctx.Cols[ids[i-1]], ctx.Cols[ids[i]]
		if b.X-a.X < ctx.consts.AODSep {
			return violatedf("columns %d and %d violate AOD separation (x=%.2f,%.2f)", a.ID, b.ID, a.X, b.X)
		}
	}
	return nil
}

func (ctx *Context) checkRowOrder() error {
	ids := ctx.activeRows()
	for i := 1; i < len(ids); i++ {
		a, b := ctx.Rows[ids[i-1]], ctx.Rows[ids[i]]
		if b.Y-a.Y < ctx.consts.AODSep {
			return violatedf("rows %d and %d violate AOD separation (y=%.2f,%.2f)", a.ID, b.ID, a.Y, b.Y)
		}
	}
	return nil
}
