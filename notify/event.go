package notify

// Handler receives an event raised by sender.
type Handler[A any] func(sender any, args A)

type subscription[A any] struct {
	id      int
	handler Handler[A]
}

// Event is a multicast list of handlers. The zero value is ready to use.
// Events are not safe for concurrent use, like the objects that own them.
type Event[A any] struct {
	subs   []subscription[A]
	nextID int
}

// Subscribe adds h and returns a function that removes it again.
// Calling the returned function more than once is a no-op.
func (e *Event[A]) Subscribe(h Handler[A]) (unsubscribe func()) {
	if h == nil {
		return func() {}
	}
	e.nextID++
	id := e.nextID
	e.subs = append(e.subs, subscription[A]{id: id, handler: h})
	return func() { e.remove(id) }
}

func (e *Event[A]) remove(id int) {
	for i, s := range e.subs {
		if s.id == id {
			e.subs = append(e.subs[:i:i], e.subs[i+1:]...)
			return
		}
	}
}

// Raise calls every handler in subscription order. Handlers added or removed
// during Raise take effect on the next Raise.
func (e *Event[A]) Raise(sender any, args A) {
	subs := e.subs
	for _, s := range subs {
		s.handler(sender, args)
	}
}

// Len reports the number of subscribed handlers.
func (e *Event[A]) Len() int {
	return len(e.subs)
}

// PropertyChangedEventArgs identifies the accessor whose value changed.
type PropertyChangedEventArgs struct {
	PropertyName string
}

// PropertyChangingEventArgs identifies the accessor about to change.
type PropertyChangingEventArgs struct {
	PropertyName string
}
