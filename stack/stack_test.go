package stack

import (
	"testing"
)

// popAll empties s and returns its values from top to bottom.
func popAll(s *Stack) (values []interface{}) {
	for !s.Empty() {
		values = append(values, s.Pop())
	}
	return
}

func TestPushLen(t *testing.T) {
	testcases := []struct {
		inp []int
		exp []int
	}{
		{[]int{}, []int{}},
		{[]int{1}, []int{1}},
		{[]int{1, 2}, []int{2, 1}},
		{[]int{1, 2, 3}, []int{3, 2, 1}},
	}

	for i, tc := range testcases {
		s := New()

		for _, v := range tc.inp {
			s.Push(v)
		}

		if s.Len() != len(tc.exp) {
			t.Errorf("Test %d: Expected length of %d. Got %d.", i, len(tc.exp), s.Len())
		}

		values := popAll(s)

		if len(values) != len(tc.exp) {
			t.Errorf("Test %d: Expected length of %d. Got %d.", i, len(tc.exp), len(values))
		}

		for j, v := range values {
			if tc.exp[j] != v {
				t.Errorf("Test %d: Expected %v. Got %v.", i, tc.exp, values)
			}
		}
	}
}

func TestPop(t *testing.T) {
	testcases := []struct {
		inp []int
		exp []int
		val interface{}
	}{
		{[]int{}, []int{}, nil},
		{[]int{1}, []int{}, 1},
		{[]int{2, 2}, []int{2}, 2},
		{[]int{1, 2, 3}, []int{2, 1}, 3},
	}

	for i, tc := range testcases {
		s := New()

		for _, v := range tc.inp {
			s.Push(v)
		}

		v := s.Pop()

		if v != tc.val {
			t.Errorf("Test %d: Expected %v. Got %v.", i, tc.val, v)
		}

		if s.Len() != len(tc.exp) {
			t.Errorf("Test %d: Expected length of %d. Got %d.", i, len(tc.exp), s.Len())
		}

		values := popAll(s)

		for j, v := range values {
			if tc.exp[j] != v {
				t.Errorf("Test %d: Expected %v. Got %v.", i, tc.exp, values)
			}
		}
	}
}

func TestEmpty(t *testing.T) {
	s := New()

	if !s.Empty() {
		t.Errorf("Expecting empty stack. Got non-empty.")
	}

	s.Push(1)

	if s.Empty() {
		t.Errorf("Expecting non-empty stack. Got empty.")
	}

	s.Pop()

	if !s.Empty() {
		t.Errorf("Expecting empty stack. Got non-empty.")
	}
}
