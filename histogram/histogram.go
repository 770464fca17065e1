package histogram

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Histogram counts observations per decade. Bin k holds values in
// [10^k, 10^(k+1)).
type Histogram map[int]int

func New() Histogram {
	return make(Histogram)
}

func bin(v float64) int {
	b := int(math.Floor(math.Log10(v)))
	// Log10 is not exact at powers of ten.
	switch {
	case math.Pow10(b+1) <= v:
		b++
	case math.Pow10(b) > v:
		b--
	}
	return b
}

// Add records a positive observation. Non-positive values are ignored.
func (h Histogram) Add(obs float64) {
	if obs <= 0 || math.IsInf(obs, 0) || math.IsNaN(obs) {
		return
	}
	h[bin(obs)]++
}

func (h Histogram) Bins() (bins []int) {
	for bin := range h {
		bins = append(bins, bin)
	}
	sort.Ints(bins)
	return
}

// Map returns the counts keyed by the lower bound of each bin.
func (h Histogram) Map() map[string]int {
	m := make(map[string]int)
	for bin, count := range h {
		m[fmt.Sprintf("1e%d", bin)] = count
	}
	return m
}

func (h Histogram) String() (str string) {
	for _, bin := range h.Bins() {
		str += fmt.Sprintf("1e%d: %d\n", bin, h[bin])
	}
	str = strings.TrimSuffix(str, "\n")
	return
}
