package graph

// SequenceView is a read-only, length-and-index façade over an owned []int.
// Go slices already alias their backing array, so re-slicing is cheap on
// its own; SequenceView exists to make the read-only intent explicit at the
// call sites that walk a fan without wanting to accidentally mutate it.
type SequenceView struct {
	target []int
}

// NewSequenceView wraps target. The view observes later appends to target
// only if they don't force a reallocation; callers that need a stable view
// should take it after the sequence stops growing.
func NewSequenceView(target []int) SequenceView { return SequenceView{target: target} }

// Len returns the number of elements in the view.
func (v SequenceView) Len() int { return len(v.target) }

// At returns the element at index i.
func (v SequenceView) At(i int) int { return v.target[i] }

// Slice returns a sub-view [lo:hi), itself a SequenceView.
func (v SequenceView) Slice(lo, hi int) SequenceView {
	return SequenceView{target: v.target[lo:hi]}
}
