package happy

import "github.com/emirpasic/gods/stacks/linkedliststack"

// Frame holds the variables of one running function.
type Frame map[string]Data

// Get returns the value of name. A name seen for the first time is created
// with the value None.
func (f Frame) Get(name string) Data {
	d, ok := f[name]
	if !ok {
		f[name] = NewNone()
	}

	return d
}

func (f Frame) Set(name string, d Data) {
	f[name] = d
}

// Scopes is the stack of frames. Only the topmost frame is ever read or
// written.
type Scopes struct {
	stack *linkedliststack.Stack
}

func NewScopes() *Scopes {
	return &Scopes{stack: linkedliststack.New()}
}

func (s *Scopes) Push() Frame {
	f := make(Frame)
	s.stack.Push(f)
	return f
}

func (s *Scopes) Pop() (Frame, bool) {
	f, ok := s.stack.Pop()
	if !ok {
		return nil, false
	}

	return f.(Frame), true
}

// Top returns the topmost frame, pushing one if the stack is empty.
func (s *Scopes) Top() Frame {
	if f, ok := s.stack.Peek(); ok {
		return f.(Frame)
	}

	return s.Push()
}

func (s *Scopes) Depth() int {
	return s.stack.Size()
}

func (s *Scopes) Clear() {
	s.stack.Clear()
}
