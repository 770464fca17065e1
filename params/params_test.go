package params

import (
	"errors"
	"strings"
	"testing"
)

func TestLoadInverter(t *testing.T) {
	inv, err := LoadInverter("inv", strings.NewReader("1.0e-4 2.0e-4 3.0\n"))
	if err != nil {
		t.Fatal(err)
	}
	if inv.InCap != 1.0e-4 || inv.OutCap != 2.0e-4 || inv.OutRes != 3.0 {
		t.Errorf("Unexpected inverter params %+v", inv)
	}
}

func TestLoadWire(t *testing.T) {
	w, err := LoadWire("wire", strings.NewReader("  1.0\t1.0e-4  "))
	if err != nil {
		t.Fatal(err)
	}
	if w.UnitRes != 1.0 || w.UnitCap != 1.0e-4 {
		t.Errorf("Unexpected wire params %+v", w)
	}
}

func TestLoadErrors(t *testing.T) {
	testcases := []struct {
		inp string
		n   int
	}{
		{"", 2},
		{"1.0", 2},
		{"1.0 2.0 3.0", 2},
		{"1.0 abc", 2},
		{"1.0 2.0", 3},
		{"\n1.0 2.0 3.0", 3},
	}

	for i, tc := range testcases {
		var err error
		if tc.n == 2 {
			_, err = LoadWire("test", strings.NewReader(tc.inp))
		} else {
			_, err = LoadInverter("test", strings.NewReader(tc.inp))
		}

		var perr *ParseError
		if !errors.As(err, &perr) {
			t.Errorf("Test %d: Expecting ParseError for %q. Got %v", i, tc.inp, err)
		}
	}
}

func TestValidate(t *testing.T) {
	good := New(Inverter{1e-4, 1e-4, 1}, Wire{1, 1e-4}, 1e-2)
	if err := good.Validate(); err != nil {
		t.Errorf("Expecting valid params. Got %v", err)
	}

	bad := []Params{
		New(Inverter{1e-4, 1e-4, 1}, Wire{0, 1e-4}, 1e-2),
		New(Inverter{1e-4, 1e-4, 1}, Wire{1, 0}, 1e-2),
		New(Inverter{-1, 1e-4, 1}, Wire{1, 1e-4}, 1e-2),
		New(Inverter{1e-4, 1e-4, 1}, Wire{1, 1e-4}, 0),
	}
	for i, p := range bad {
		if err := p.Validate(); !errors.Is(err, ErrInvalid) {
			t.Errorf("Test %d: Expecting ErrInvalid for %v. Got %v", i, p, err)
		}
	}
}
