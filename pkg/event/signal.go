// Package event provides synchronous listener lists.
package event

// Signal is a list of listeners invoked synchronously, in subscription order
type Signal[T any] struct {
	nextID    uint64
	listeners []listener[T]
}

type listener[T any] struct {
	id uint64
	fn func(T)
}

// Subscribe adds fn and returns a function that removes it again.
// Calling the returned function more than once is a no-op.
func (s *Signal[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	s.nextID++
	id := s.nextID
	s.listeners = append(s.listeners, listener[T]{id: id, fn: fn})

	return func() {
		s.remove(id)
	}
}

func (s *Signal[T]) remove(id uint64) {
	for i, l := range s.listeners {
		if l.id == id {
			s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
			return
		}
	}
}

// Emit calls every listener with v. Listeners added or removed during
// Emit take effect from the next call.
func (s *Signal[T]) Emit(v T) {
	snapshot := s.listeners
	for _, l := range snapshot {
		l.fn(v)
	}
}

// Len returns the number of listeners
func (s *Signal[T]) Len() int {
	return len(s.listeners)
}

// Clear removes every listener
func (s *Signal[T]) Clear() {
	s.listeners = nil
}
