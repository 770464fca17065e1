package buffer

import (
	"time"

	"rcbuf/params"
	"rcbuf/rctree"
)

// Result of a buffer insertion run.
type Result struct {
	Root *rctree.Node

	Stages int // inverters inserted to meet the time constraint
	Fixes  int // inverters inserted to reconcile polarity at junctions
	Unmet  int // stage loops that stopped with the constraint unmet
}

// Satisfied reports whether every stage loop met the time constraint.
func (r Result) Satisfied() bool {
	return r.Unmet == 0
}

func (r Result) Inverters() int {
	return r.Stages + r.Fixes
}

type engine struct {
	p   params.Params
	res *Result
}

// Insert returns a copy of the tree with inverters inserted so that every
// buffering stage meets p.TimeConstraint where a legal insertion point
// exists. Junctions on a rewritten path are copied; the input tree is not
// modified. Accumulate must have run on root.
func Insert(root *rctree.Node, p params.Params) *Result {
	start := time.Now()

	e := &engine{
		p:   p,
		res: &Result{},
	}
	e.res.Root = e.insert(root, 0)

	invertersPerRun.Observe(float64(e.res.Inverters()))
	insertDuration.Observe(time.Since(start).Seconds())

	return e.res
}

// insert processes n, reached over a wire of length l, and returns n or the
// head of the inverter chain now driving it.
func (e *engine) insert(n *rctree.Node, l float64) *rctree.Node {
	if n == nil {
		return nil
	}

	switch n.Kind {
	case rctree.Leaf:
		return e.stage(n, l, 0)
	case rctree.Inverter:
		return n
	}

	j := *n
	e.replace(&j, left, e.insert(n.Left, n.LeftWire))
	e.replace(&j, right, e.insert(n.Right, n.RightWire))

	// Both branches must present the same polarity. The one still at 0
	// gets an extra inverter right at the junction.
	if j.Left.Polarity != j.Right.Polarity {
		side := left
		if j.Right.Polarity == 0 {
			side = right
		}
		child, wire := childOf(&j, side)
		inv := rctree.NewInverter(e.p.InvInCap, wire, 0, e.p.UnitCap, child)
		e.replace(&j, side, inv)

		e.res.Fixes++
		invertersInserted.WithLabelValues("polarity").Inc()
	}
	j.Polarity = j.Left.Polarity

	tl := j.LeftWire * e.p.UnitRes * j.Left.ElmoreCap
	tr := j.RightWire * e.p.UnitRes * j.Right.ElmoreCap

	return e.stage(&j, l, max(tl, tr))
}

type side int

const (
	left side = iota
	right
)

func childOf(n *rctree.Node, s side) (*rctree.Node, float64) {
	if s == left {
		return n.Left, n.LeftWire
	}
	return n.Right, n.RightWire
}

// replace swaps the child on side s of j for c and patches j's capacitances.
// An inverter shortens the wire to its cut length.
func (e *engine) replace(n *rctree.Node, s side, c *rctree.Node) {
	child, wire := &n.Left, &n.LeftWire
	if s == right {
		child, wire = &n.Right, &n.RightWire
	}
	if *child == c {
		return
	}

	half := *wire * e.p.UnitCap / 2
	n.TotalCap -= half
	n.ElmoreCap -= half + (*child).ElmoreCap

	*child = c
	if c.Kind == rctree.Inverter {
		*wire = c.CutWire
	}

	half = *wire * e.p.UnitCap / 2
	n.TotalCap += half
	n.ElmoreCap += half + c.ElmoreCap
}

// stage chains inverters above n, on the wire of length l leading to it,
// until the stage driving the remaining wire meets the budget. consumed is
// the delay already committed below n in the current stage.
func (e *engine) stage(n *rctree.Node, l, consumed float64) *rctree.Node {
	p := e.p

	best, remaining := n, l
	budget := p.TimeConstraint - consumed

	a := p.UnitCap * p.UnitRes / 2
	coeffs := func() (b, c float64) {
		// The unconsumed wire's half capacitance is already lumped on best.
		ec := best.ElmoreCap - remaining*p.UnitCap/2
		b = p.InvOutRes*p.UnitCap + p.UnitRes*ec
		c = p.InvOutRes*p.InvOutCap + p.InvOutRes*ec
		return
	}

	b, c := coeffs()
	for a*remaining*remaining+b*remaining+c > budget {
		off := Solve(a, b, c-budget)
		if off <= 0 {
			e.res.Unmet++
			infeasibleStages.Inc()
			return best
		}

		best = rctree.NewInverter(p.InvInCap, off, remaining-off, p.UnitCap, best)
		remaining -= off

		e.res.Stages++
		invertersInserted.WithLabelValues("stage").Inc()

		// A new stage starts with the full budget.
		budget = p.TimeConstraint
		b, c = coeffs()
	}

	return best
}
