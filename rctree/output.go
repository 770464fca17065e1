package rctree

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"rcbuf/params"
)

// Binary streams are little endian. Structural records start with an int32
// tag: a leaf label, or -1 for a junction or inverter.
var order = binary.LittleEndian

const internal int32 = -1

// WritePre writes the tree in pre-order, one line per node, in the same
// format Parse reads per line.
func WritePre(w io.Writer, root *Node) error {
	bw := bufio.NewWriter(w)
	root.Walk(func(n *Node) bool {
		switch n.Kind {
		case Leaf:
			fmt.Fprintf(bw, "%d(%e)\n", n.Label, n.Capacitance)
		case Junction:
			fmt.Fprintf(bw, "(%e %e)\n", n.LeftWire, n.RightWire)
		}
		return true
	})
	return bw.Flush()
}

// WriteDelays propagates delays through the tree and writes one
// (int32 label, float64 delay) record per leaf, in pre-order.
func WriteDelays(w io.Writer, root *Node, p params.Params) error {
	bw := bufio.NewWriter(w)
	err := Propagate(root, p, func(label int, delay float64) error {
		return binary.Write(bw, order, struct {
			Label int32
			Delay float64
		}{int32(label), delay})
	})
	if err != nil {
		return err
	}
	return bw.Flush()
}

// Record is one entry of the post-order structural stream. Leaves use Label
// and Cap; internal nodes use Left, Right and Inv, with Right == -1 for an
// inverter.
type Record struct {
	Label int32
	Cap   float64
	Left  float64
	Right float64
	Inv   int32
}

func (r Record) IsLeaf() bool {
	return r.Label != internal
}

func (r Record) String() string {
	if r.IsLeaf() {
		return fmt.Sprintf("%d(%e)", r.Label, r.Cap)
	}
	return fmt.Sprintf("(%e %e %d)", r.Left, r.Right, r.Inv)
}

type internalRecord struct {
	Tag   int32
	Left  float64
	Right float64
	Inv   int32
}

type leafRecord struct {
	Label int32
	Cap   float64
}

// sentinel closes the post-order stream. A second one follows when the root
// polarity is 0, asking the consumer for one more inversion at the top.
var sentinel = Record{Label: internal, Left: 0, Right: -1, Inv: 1}

// PostRecords lists the buffered tree in post-order, terminators included.
func PostRecords(root *Node) (records []Record) {
	var post func(n *Node)
	post = func(n *Node) {
		if n == nil {
			return
		}
		post(n.Left)
		post(n.Right)

		switch n.Kind {
		case Leaf:
			records = append(records, Record{Label: int32(n.Label), Cap: n.Capacitance})
		case Junction:
			records = append(records, Record{Label: internal, Left: n.LeftWire, Right: n.RightWire, Inv: 0})
		case Inverter:
			records = append(records, Record{Label: internal, Left: n.LeftWire, Right: -1, Inv: 1})
		}
	}
	post(root)

	records = append(records, sentinel)
	if root != nil && root.Polarity == 0 {
		records = append(records, sentinel)
	}
	return
}

// WritePost writes the buffered tree in post-order to a text and a binary
// stream.
func WritePost(text, bin io.Writer, root *Node) error {
	tw := bufio.NewWriter(text)
	bw := bufio.NewWriter(bin)

	for _, r := range PostRecords(root) {
		fmt.Fprintln(tw, r)

		var err error
		if r.IsLeaf() {
			err = binary.Write(bw, order, leafRecord{r.Label, r.Cap})
		} else {
			err = binary.Write(bw, order, internalRecord{r.Label, r.Left, r.Right, r.Inv})
		}
		if err != nil {
			return err
		}
	}

	if err := tw.Flush(); err != nil {
		return err
	}
	return bw.Flush()
}

// ErrTruncated is returned by the readers when a stream ends inside a record.
var ErrTruncated = errors.New("truncated record")

// ReadDelays decodes a stream written by WriteDelays.
func ReadDelays(r io.Reader) (delays []Delay, err error) {
	br := bufio.NewReader(r)
	for {
		var label int32
		if err = binary.Read(br, order, &label); err != nil {
			if err == io.EOF {
				return delays, nil
			}
			return delays, ErrTruncated
		}

		var delay float64
		if err = binary.Read(br, order, &delay); err != nil {
			return delays, ErrTruncated
		}
		delays = append(delays, Delay{int(label), delay})
	}
}

// ReadPost decodes a binary stream written by WritePost.
func ReadPost(r io.Reader) (records []Record, err error) {
	br := bufio.NewReader(r)
	for {
		var tag int32
		if err = binary.Read(br, order, &tag); err != nil {
			if err == io.EOF {
				return records, nil
			}
			return records, ErrTruncated
		}

		if tag != internal {
			var c float64
			if err = binary.Read(br, order, &c); err != nil {
				return records, ErrTruncated
			}
			records = append(records, Record{Label: tag, Cap: c})
			continue
		}

		var rest struct {
			Left  float64
			Right float64
			Inv   int32
		}
		if err = binary.Read(br, order, &rest); err != nil {
			return records, ErrTruncated
		}
		records = append(records, Record{Label: internal, Left: rest.Left, Right: rest.Right, Inv: rest.Inv})
	}
}
