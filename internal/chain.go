package internal

// HandlerFunc is a single step in a page's middleware chain. A non-nil error
// stops the chain and routes into error handling; ending the response stops
// the chain without an error.
type HandlerFunc func(c Context) error

// Chain collects the ordered handlers that run before a page renders. Each
// page instance gets its own chain during setup; after Build the chain is
// immutable and further Add calls fail.
type Chain struct {
	handlers  []HandlerFunc
	finalized bool
	err       error
}

// NewChain creates an empty chain.
func NewChain() *Chain {
	return &Chain{}
}

// Add appends handlers to the chain. After Build it records
// ErrChainFinalized, surfaced by the next Build call.
func (ch *Chain) Add(handlers ...HandlerFunc) *Chain {
	if ch.finalized {
		ch.err = ErrChainFinalized
		return ch
	}
	ch.handlers = append(ch.handlers, handlers...)
	return ch
}

// Len returns the number of handlers added so far.
func (ch *Chain) Len() int {
	return len(ch.handlers)
}

// Build finalizes the chain and returns its handlers in execution order.
func (ch *Chain) Build() ([]HandlerFunc, error) {
	if ch.err != nil {
		return nil, ch.err
	}
	ch.finalized = true
	return ch.handlers, nil
}
