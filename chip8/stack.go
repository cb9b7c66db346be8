package chip8

const StackDepth = 16

// Stack holds subroutine return addresses.
type Stack struct {
	addr [StackDepth]uint16
	sp   int
}

func (s *Stack) Push(v uint16) error {
	if s.sp == StackDepth {
		return ErrStackOverflow
	}
	s.addr[s.sp] = v
	s.sp++
	return nil
}

func (s *Stack) Pop() (uint16, error) {
	if s.sp == 0 {
		return 0, ErrStackUnderflow
	}
	s.sp--
	return s.addr[s.sp], nil
}

// Peek returns the next return address without popping it.
func (s *Stack) Peek() (uint16, bool) {
	if s.sp == 0 {
		return 0, false
	}
	return s.addr[s.sp-1], true
}

func (s *Stack) Depth() int {
	return s.sp
}

func (s *Stack) Reset() {
	*s = Stack{}
}
