package set

// Set is a set of integer labels.
type Set map[int]struct{}

func New(elements ...int) Set {
	set := make(Set)
	for _, e := range elements {
		set.Add(e)
	}
	return set
}

func (set Set) Add(e int) {
	set[e] = struct{}{}
}

func (set Set) Has(e int) bool {
	if _, ok := set[e]; ok {
		return true
	}
	return false
}
