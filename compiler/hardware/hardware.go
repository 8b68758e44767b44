// Package hardware holds the neutral-atom chip's physical constants and
// the mutable Col/Row/Qubit state records that code generation operates
// on.
package hardware

// Physical constants (micrometers / microseconds), matching the source
// hardware generation these defaults are drawn from. Overridable via
// internal/config for experimentation with alternate hardware generations.
const (
	RB          = 6.0  // Rydberg blockade radius
	AODSep      = 2.0  // minimum gap between active AOD traps
	RydSep      = 15.0 // Rydberg site separation
	SiteWidth   = 4.0  // SLM site width (two static traps per site)
	XSiteSep    = RydSep + SiteWidth
	YSiteSep    = RydSep
	TRydberg    = 0.36 // Rydberg pulse duration, microseconds
	TActivate   = 15.0 // activation duration, microseconds
	InitFrame   = 24.0 // initial animation frame offset, carried for parity with emitted "state" snapshots
)

// Constants bundles the physical constants so they can be threaded
// explicitly instead of referenced as package globals, matching the
// "no process-wide global" design note for the codegen context.
type Constants struct {
	RB, AODSep, RydSep, SiteWidth, XSiteSep, YSiteSep, TRydberg, TActivate float64
}

// DefaultConstants returns the compiled-in physical defaults.
func DefaultConstants() Constants {
	return Constants{
		RB: RB, AODSep: AODSep, RydSep: RydSep, SiteWidth: SiteWidth,
		XSiteSep: XSiteSep, YSiteSep: YSiteSep, TRydberg: TRydberg, TActivate: TActivate,
	}
}

// Architecture is the chip's grid dimensions: Nx x Ny static sites,
// Nc columns and Nr rows of the movable AOD lattice.
type Architecture struct {
	Nx, Ny, Nc, Nr int
}

// ArrayKind distinguishes which physical trap system currently holds an
// atom.
type ArrayKind int

const (
	Static ArrayKind = iota
	Movable
)

// Qubit is the mutable physical state of one atom: which array it
// currently sits in, its shadowed real coordinates, and — when movable —
// which column/row intersection carries it.
type Qubit struct {
	ID     int
	Array  ArrayKind
	X, Y   float64 // real coordinates, shadowing either a static trap or an active intersection
	Col    int     // valid only when Array == Movable
	Row    int     // valid only when Array == Movable
}

// Col is one vertical line of the movable AOD lattice.
type Col struct {
	ID     int
	Active bool
	X      float64
}

// Row is one horizontal line of the movable AOD lattice.
type Row struct {
	ID     int
	Active bool
	Y      float64
}

// offscreen is the padding coordinate inactive cols/rows/qubits are
// initialized to, keeping them clearly out of any real site's range.
const offscreen = -1000.0

// NewQubit returns a Qubit parked off-screen, not yet placed.
func NewQubit(id int) Qubit { return Qubit{ID: id, X: offscreen, Y: offscreen} }

// NewCol returns an inactive Col parked off-screen.
func NewCol(id int) Col { return Col{ID: id, X: offscreen} }

// NewRow returns an inactive Row parked off-screen.
func NewRow(id int) Row { return Row{ID: id, Y: offscreen} }

// SiteX returns the x-coordinate of column sx's left static trap.
func SiteX(sx int) float64 { return float64(sx) * XSiteSep }

// SiteY returns the y-coordinate of row sy's static trap.
func SiteY(sy int) float64 { return float64(sy) * YSiteSep }
