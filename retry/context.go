package retry

import "context"

// Context is a 'context.Context' which also carries the number of the attempt currently being made.
type Context struct {
	context.Context
	attempt int
}

// NewContext wraps the given context, starting at the first attempt.
func NewContext(ctx context.Context) *Context {
	return &Context{Context: ctx, attempt: 1}
}

// Attempt returns the current (one based) attempt number.
func (c *Context) Attempt() int {
	return c.attempt
}
