package rctree

import (
	"fmt"
)

type Kind int

const (
	Leaf Kind = iota
	Junction
	Inverter
)

func (k Kind) String() string {
	switch k {
	case Leaf:
		return "LEAF"
	case Junction:
		return "JUNCTION"
	case Inverter:
		return "INVERTER"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Node is a vertex of an RC tree. A Leaf has no children, a Junction has
// both, and an Inverter drives its single child through Left.
type Node struct {
	Kind Kind

	Label       int     // Leaf
	Capacitance float64 // Leaf: sink cap. Inverter: input cap.

	// Junction: wire lengths to the children. Inverter: LeftWire is the
	// wire consumed below the inverter and RightWire is -1.
	LeftWire  float64
	RightWire float64
	Left      *Node
	Right     *Node

	// Inverter: wire left between the inverter and the point it was cut from.
	CutWire float64

	TotalCap    float64
	ElmoreCap   float64
	ElmoreDelay float64
	Polarity    int
}

func NewLeaf(label int, c float64) *Node {
	return &Node{
		Kind:        Leaf,
		Label:       label,
		Capacitance: c,
		TotalCap:    c,
	}
}

func NewJunction(lw, rw float64, left, right *Node) *Node {
	return &Node{
		Kind:      Junction,
		Label:     -1,
		LeftWire:  lw,
		RightWire: rw,
		Left:      left,
		Right:     right,
	}
}

// NewInverter returns an inverter with input capacitance cin driving child
// over consumed wire. The inverter's own load is its input capacitance plus
// half of the cut wire above it.
func NewInverter(cin, consumed, cut, unitcap float64, child *Node) *Node {
	total := cin + cut*unitcap/2
	return &Node{
		Kind:        Inverter,
		Label:       -1,
		Capacitance: cin,
		LeftWire:    consumed,
		RightWire:   -1,
		Left:        child,
		CutWire:     cut,
		TotalCap:    total,
		ElmoreCap:   total,
		Polarity:    1 - child.Polarity,
	}
}

func (n Node) IsLeaf() bool {
	return n.Kind == Leaf
}

// Children returns the non-nil children of n, left first.
func (n *Node) Children() (children []*Node) {
	if n.Left != nil {
		children = append(children, n.Left)
	}
	if n.Right != nil {
		children = append(children, n.Right)
	}
	return
}

// Walk visits n and its subtree in pre-order. Returning false from fn skips
// the children of the visited node.
func (n *Node) Walk(fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range n.Children() {
		c.Walk(fn)
	}
}

// Count returns the number of nodes of each kind in the subtree.
func (n *Node) Count() map[Kind]int {
	counts := make(map[Kind]int)
	n.Walk(func(m *Node) bool {
		counts[m.Kind]++
		return true
	})
	return counts
}

func (n Node) String() string {
	switch n.Kind {
	case Leaf:
		return fmt.Sprintf("[LEAF %d(%e)]", n.Label, n.Capacitance)
	case Junction:
		return fmt.Sprintf("[JUNCTION (%e %e) p:%d]", n.LeftWire, n.RightWire, n.Polarity)
	}
	return fmt.Sprintf("[INVERTER (%e cut:%e) p:%d]", n.LeftWire, n.CutWire, n.Polarity)
}
