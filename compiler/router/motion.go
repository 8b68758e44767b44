// Package router turns a scheduled layer of commuting gates into one or
// more routing sub-layers of simultaneous atom motions, using a
// maximal-independent-set selection over a pairwise compatibility graph.
package router

import "github.com/kegliz/nacompile/compiler/model"

// Motion is a candidate move of the mover qubit onto the partner's site.
type Motion struct {
	Mover, Partner int
	XS, XE, YS, YE int
}

// compatible2D reports whether two motions can execute simultaneously on
// the rigid AOD lattice: along each axis, either both motions start equal
// and stay equal, or their start order is strict and preserved at the end.
func compatible2D(a, b Motion) bool {
	return compatibleAxis(a.XS, a.XE, b.XS, b.XE) && compatibleAxis(a.YS, a.YE, b.YS, b.YE)
}

func compatibleAxis(as, ae, bs, be int) bool {
	if (as == bs) != (ae == be) {
		return false
	}
	if as < bs && ae >= be {
		return false
	}
	if as > bs && ae <= be {
		return false
	}
	return true
}

// buildCandidates returns, for every gate still outstanding in the layer,
// two candidate motions: moving each endpoint onto the other's site. With
// window truncation the list is capped at 1000 entries.
func buildCandidates(gates []model.Gate, mapping model.Mapping, useWindow bool) []Motion {
	var out []Motion
	for _, g := range gates {
		a, b := mapping[g.Q0], mapping[g.Q1]
		out = append(out,
			Motion{Mover: g.Q0, Partner: g.Q1, XS: a.X, XE: b.X, YS: a.Y, YE: b.Y},
			Motion{Mover: g.Q1, Partner: g.Q0, XS: b.X, XE: a.X, YS: b.Y, YE: a.Y},
		)
	}
	if useWindow && len(out) > 1000 {
		out = out[:1000]
	}
	return out
}
