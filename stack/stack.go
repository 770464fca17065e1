package stack

type element struct {
	value interface{}
	next  *element
}

func newelement(value interface{}, next *element) *element {
	return &element{
		value,
		next,
	}
}

// Stack is a LIFO list of arbitrary values.
type Stack struct {
	top    *element
	length int
}

func New() *Stack {
	return &Stack{}
}

func (s *Stack) Push(value interface{}) {
	s.top = newelement(value, s.top)
	s.length++
}

// Pop removes and returns the most recently pushed value, or nil if the
// stack is empty.
func (s *Stack) Pop() interface{} {
	if s.length == 0 {
		return nil
	}

	e := s.top
	s.top = e.next
	s.length--
	return e.value
}

func (s Stack) Len() int {
	return s.length
}

func (s Stack) Empty() bool {
	return s.length == 0
}
