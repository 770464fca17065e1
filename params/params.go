package params

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Params holds the electrical parameters of a run. It is loaded once and
// passed by value to every pass.
type Params struct {
	UnitRes        float64 `yaml:"unit_res" bson:"unitres"`
	UnitCap        float64 `yaml:"unit_cap" bson:"unitcap"`
	InvInCap       float64 `yaml:"inv_in_cap" bson:"invincap"`
	InvOutCap      float64 `yaml:"inv_out_cap" bson:"invoutcap"`
	InvOutRes      float64 `yaml:"inv_out_res" bson:"invoutres"`
	TimeConstraint float64 `yaml:"time_constraint" bson:"constraint"`
}

var ErrInvalid = fmt.Errorf("invalid parameters")

type ParseError struct {
	Name string
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Name, e.Msg)
}

// Inverter is the content of an inverter parameter file.
type Inverter struct {
	InCap  float64
	OutCap float64
	OutRes float64
}

// Wire is the content of a wire parameter file.
type Wire struct {
	UnitRes float64
	UnitCap float64
}

func New(inv Inverter, wire Wire, constraint float64) Params {
	return Params{
		UnitRes:        wire.UnitRes,
		UnitCap:        wire.UnitCap,
		InvInCap:       inv.InCap,
		InvOutCap:      inv.OutCap,
		InvOutRes:      inv.OutRes,
		TimeConstraint: constraint,
	}
}

func LoadInverter(name string, r io.Reader) (Inverter, error) {
	v, err := scalars(name, r, 3)
	if err != nil {
		return Inverter{}, err
	}
	return Inverter{InCap: v[0], OutCap: v[1], OutRes: v[2]}, nil
}

func LoadWire(name string, r io.Reader) (Wire, error) {
	v, err := scalars(name, r, 2)
	if err != nil {
		return Wire{}, err
	}
	return Wire{UnitRes: v[0], UnitCap: v[1]}, nil
}

// scalars reads the first line of r and parses exactly n whitespace
// separated floats from it.
func scalars(name string, r io.Reader, n int) ([]float64, error) {
	scanner := bufio.NewScanner(r)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, err
		}
		return nil, &ParseError{name, "empty file"}
	}

	fields := strings.Fields(scanner.Text())
	if len(fields) != n {
		return nil, &ParseError{name, fmt.Sprintf("expecting %d values, got %d", n, len(fields))}
	}

	values := make([]float64, n)
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, &ParseError{name, fmt.Sprintf("bad value %q", f)}
		}
		values[i] = v
	}
	return values, nil
}

// Validate rejects parameters for which the stage quadratic degenerates.
func (p Params) Validate() error {
	switch {
	case p.UnitRes <= 0:
		return fmt.Errorf("%w: unit wire resistance %g", ErrInvalid, p.UnitRes)
	case p.UnitCap <= 0:
		return fmt.Errorf("%w: unit wire capacitance %g", ErrInvalid, p.UnitCap)
	case p.InvInCap < 0, p.InvOutCap < 0, p.InvOutRes < 0:
		return fmt.Errorf("%w: negative inverter parameter", ErrInvalid)
	case p.TimeConstraint <= 0:
		return fmt.Errorf("%w: time constraint %g", ErrInvalid, p.TimeConstraint)
	}
	return nil
}

func (p Params) String() string {
	return fmt.Sprintf("R:%e C:%e Cin:%e Cout:%e Rout:%e T:%e",
		p.UnitRes, p.UnitCap, p.InvInCap, p.InvOutCap, p.InvOutRes, p.TimeConstraint)
}
