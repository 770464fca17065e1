package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/uuid"

	"rcbuf/buffer"
	"rcbuf/params"
	"rcbuf/rctree"
)

func TestSummary(t *testing.T) {
	p := params.New(
		params.Inverter{InCap: 1.0e-4, OutCap: 1.0e-4, OutRes: 1.0},
		params.Wire{UnitRes: 1.0, UnitCap: 1.0e-4},
		10,
	)
	root, err := rctree.Parse("fixture", strings.NewReader("1(1.0e-3)\n2(2.0e-3)\n(1000.0 500.0)\n"), p)
	if err != nil {
		t.Fatal(err)
	}
	rctree.Accumulate(root)
	delays := rctree.Delays(root, p)
	res := buffer.Insert(root, p)

	s := New("fixture", root, delays, res, p)

	if _, err := uuid.Parse(s.Run); err != nil {
		t.Errorf("Expecting a uuid run id. Got %q", s.Run)
	}
	if s.Leaves != 2 || s.Junctions != 1 {
		t.Errorf("Expecting 2 leaves and 1 junction. Got %d, %d", s.Leaves, s.Junctions)
	}
	if s.Stages != res.Stages || s.Fixes != res.Fixes || s.Satisfied != res.Satisfied() {
		t.Errorf("Summary %+v does not match result %+v", s, res)
	}
	var worst float64
	for _, d := range delays {
		worst = max(worst, d.Delay)
	}
	if s.MaxDelay != worst {
		t.Errorf("Expecting max delay %e. Got %e.", worst, s.MaxDelay)
	}
	if s.MaxDelay != delays[0].Delay {
		t.Errorf("Expecting leaf 1 on the long wire to be slowest. Got %v.", delays)
	}

	h := DelayHistogram(delays)
	if len(h.Bins()) != len(s.Delays) {
		t.Errorf("Expecting %d histogram bins. Got %v.", len(s.Delays), h.Bins())
	}

	var buf bytes.Buffer
	if err := s.Write(&buf); err != nil {
		t.Fatal(err)
	}

	back, err := Read(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if back.Run != s.Run || back.Params != s.Params || back.Stages != s.Stages || len(back.Delays) != len(s.Delays) {
		t.Errorf("Expected %+v. Got %+v.", s, back)
	}
}
