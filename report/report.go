package report

import (
	"io"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"rcbuf/buffer"
	"rcbuf/histogram"
	"rcbuf/params"
	"rcbuf/rctree"
)

// Summary describes one buffer insertion run.
type Summary struct {
	Run    string        `yaml:"run" bson:"run"`
	Tree   string        `yaml:"tree" bson:"tree"`
	Date   time.Time     `yaml:"date" bson:"date"`
	Params params.Params `yaml:"params" bson:"params"`

	Leaves    int `yaml:"leaves" bson:"leaves"`
	Junctions int `yaml:"junctions" bson:"junctions"`

	MaxDelay float64        `yaml:"max_delay" bson:"maxdelay"`
	Delays   map[string]int `yaml:"delay_histogram" bson:"delays"`

	Stages    int  `yaml:"stage_inverters" bson:"stages"`
	Fixes     int  `yaml:"polarity_inverters" bson:"fixes"`
	Unmet     int  `yaml:"unmet_stages" bson:"unmet"`
	Satisfied bool `yaml:"satisfied" bson:"satisfied"`
	Polarity  int  `yaml:"root_polarity" bson:"polarity"`
}

// New summarizes a run over the tree read from name. delays are the leaf
// delays of the unbuffered tree.
func New(name string, root *rctree.Node, delays []rctree.Delay, res *buffer.Result, p params.Params) Summary {
	counts := root.Count()

	h := DelayHistogram(delays)
	var worst float64
	for _, d := range delays {
		worst = max(worst, d.Delay)
	}

	s := Summary{
		Run:       uuid.New().String(),
		Tree:      name,
		Date:      time.Now().UTC(),
		Params:    p,
		Leaves:    counts[rctree.Leaf],
		Junctions: counts[rctree.Junction],
		MaxDelay:  worst,
		Delays:    h.Map(),
	}

	if res != nil {
		s.Stages = res.Stages
		s.Fixes = res.Fixes
		s.Unmet = res.Unmet
		s.Satisfied = res.Satisfied()
		if res.Root != nil {
			s.Polarity = res.Root.Polarity
		}
	}
	return s
}

// DelayHistogram bins leaf delays by decade.
func DelayHistogram(delays []rctree.Delay) histogram.Histogram {
	h := histogram.New()
	for _, d := range delays {
		h.Add(d.Delay)
	}
	return h
}

func (s Summary) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return err
	}
	return enc.Close()
}

func Read(r io.Reader) (s Summary, err error) {
	err = yaml.NewDecoder(r).Decode(&s)
	return
}
