package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"rcbuf/params"
	"rcbuf/rctree"
)

func TestDump(t *testing.T) {
	p := params.New(
		params.Inverter{InCap: 1.0e-4, OutCap: 1.0e-4, OutRes: 1.0},
		params.Wire{UnitRes: 1.0, UnitCap: 1.0e-4},
		1,
	)
	root, err := rctree.Parse("test", strings.NewReader("1(1.0e-3)\n2(2.0e-3)\n(1.0 1.0)\n"), p)
	if err != nil {
		t.Fatal(err)
	}
	rctree.Accumulate(root)

	var delays bytes.Buffer
	if err := rctree.WriteDelays(&delays, root, p); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err := dump(&out, bytes.NewReader(delays.Bytes()), false); err != nil {
		t.Fatal(err)
	}
	if exp := "1 4.350000e-03\n2 5.350000e-03\n"; out.String() != exp {
		t.Errorf("Expected %q. Got %q.", exp, out.String())
	}

	var text, bin bytes.Buffer
	if err := rctree.WritePost(&text, &bin, root); err != nil {
		t.Fatal(err)
	}

	out.Reset()
	if err := dump(&out, &bin, true); err != nil {
		t.Fatal(err)
	}
	exp := "1(1.0000000000e-03)\n" +
		"2(2.0000000000e-03)\n" +
		"(1.0000000000e+00 1.0000000000e+00 0)\n" +
		"(0.0000000000e+00 -1.0000000000e+00 1)\n"
	if root.Polarity == 0 {
		exp += "(0.0000000000e+00 -1.0000000000e+00 1)\n"
	}
	if out.String() != exp {
		t.Errorf("Expected %q. Got %q.", exp, out.String())
	}
}

func TestDumpTruncated(t *testing.T) {
	raw := []byte{1, 0, 0, 0, 0, 0}

	var out bytes.Buffer
	if err := dump(&out, bytes.NewReader(raw), false); !errors.Is(err, rctree.ErrTruncated) {
		t.Errorf("Expecting ErrTruncated. Got %v", err)
	}
}
