package rctree

import (
	"rcbuf/params"
)

// Accumulate computes the Elmore capacitance of every node in the subtree
// rooted at n and returns the value at n.
func Accumulate(n *Node) float64 {
	if n == nil {
		return 0
	}

	left := Accumulate(n.Left)
	right := Accumulate(n.Right)

	n.ElmoreCap = left + right + n.TotalCap
	return n.ElmoreCap
}

// Propagate computes the Elmore delay of every node top-down. The root is
// driven through the inverter output resistance; every other node through
// the resistance of the wire from its parent. emit is called for each leaf
// in pre-order. Accumulate must have run first.
func Propagate(root *Node, p params.Params, emit func(label int, delay float64) error) error {
	return propagate(root, 0, p.InvOutRes, p, emit)
}

func propagate(n *Node, delay, res float64, p params.Params, emit func(int, float64) error) error {
	if n == nil {
		return nil
	}

	delay += res * n.ElmoreCap
	n.ElmoreDelay = delay

	if n.IsLeaf() && emit != nil {
		if err := emit(n.Label, delay); err != nil {
			return err
		}
	}

	if err := propagate(n.Left, delay, p.UnitRes*n.LeftWire, p, emit); err != nil {
		return err
	}
	return propagate(n.Right, delay, p.UnitRes*n.RightWire, p, emit)
}

type Delay struct {
	Label int
	Delay float64
}

// Delays runs Propagate and collects the leaf delays.
func Delays(root *Node, p params.Params) (delays []Delay) {
	Propagate(root, p, func(label int, delay float64) error {
		delays = append(delays, Delay{label, delay})
		return nil
	})
	return
}
