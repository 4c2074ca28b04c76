// Package events holds the typed event contract between the gateway and
// application code: the Event variants, the Handler interface, typed handler
// constructors and the factory that turns DISPATCH payloads into events.
package events

// An Event is one decoded DISPATCH payload. Every pointer type in the model
// package that has a Kind method is an Event.
type Event interface {
	// Kind returns the "t" key of the DISPATCH payload, e.g. "READY".
	Kind() string
}

// Handler defines a type that can be passed into a Socket to listen for
// an event being broadcasted.
type Handler interface {
	// Name returns the name of the packet that this handler process, the
	// "t" key in gateway payloads.
	Name() string
	// Invoke is called with the decoded event. Returned errors are logged
	// and redispatched as an EXCEPTION event; they never end the session.
	Invoke(e Event) error
}

// typed adapts a function taking one concrete event type to a Handler.
type typed[T Event] struct {
	name string
	fn   func(T) error
}

func (t typed[T]) Name() string { return t.name }

func (t typed[T]) Invoke(e Event) error {
	v, ok := e.(T)
	if !ok {
		return &MismatchError{Want: t.name, Got: e.Kind()}
	}

	return t.fn(v)
}

// Func returns a Handler for the event type T, named after T's kind.
func Func[T Event](fn func(T) error) Handler {
	var zero T
	return typed[T]{name: zero.Kind(), fn: fn}
}

// MismatchError is returned by a typed handler that was invoked with an
// event of another kind.
type MismatchError struct {
	Want, Got string
}

func (m *MismatchError) Error() string {
	return "events: handler for " + m.Want + " invoked with " + m.Got
}
