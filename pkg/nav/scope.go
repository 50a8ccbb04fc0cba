package nav

import "github.com/vango-dev/nestroute/pkg/target"

// Scope is a Navigator for a child routing level, seen through a mapper
// from its parent.
type Scope[P, C any] struct {
	parent Navigator[P]
	mapper target.Mapper[P, C]
}

// Nest returns the child navigator of parent described by mapper.
//
// Current is Down(parent's current target); it reports false when the
// parent does not match or does not route through the child. Navigate(c)
// navigates the parent to Up(c).
func Nest[P, C any](parent Navigator[P], mapper target.Mapper[P, C]) *Scope[P, C] {
	return &Scope[P, C]{parent: parent, mapper: mapper}
}

// Current implements Navigator.
func (s *Scope[P, C]) Current() (C, bool) {
	p, ok := s.parent.Current()
	if !ok {
		var zero C
		return zero, false
	}
	return s.mapper.Down(p)
}

// Navigate implements Navigator.
func (s *Scope[P, C]) Navigate(c C) {
	s.parent.Navigate(s.mapper.Up(c))
}

var (
	_ Navigator[target.Target] = (*Router[target.Target])(nil)
	_ Navigator[int]           = (*Scope[string, int])(nil)
)
