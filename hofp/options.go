package hofp

import (
	"context"
	"runtime"

	"github.com/soitun/aistore/log"
)

// Options encapsulates the available options which can be used when creating a worker pool.
type Options struct {
	// Context is the parent of the context given to each function, defaults to 'context.Background()'.
	Context context.Context

	// Size is the maximum number of functions executed concurrently, defaults to the number of vCPUs.
	Size int

	// Logger receives errors which occur once teardown has already begun, may be <nil>.
	Logger log.Logger

	// LogPrefix defaults to '(HOFP)'.
	LogPrefix string
}

func (o *Options) defaults() {
	if o.Context == nil {
		o.Context = context.Background()
	}

	if o.Size <= 0 {
		o.Size = runtime.NumCPU()
	}

	if o.LogPrefix == "" {
		o.LogPrefix = "(HOFP)"
	}
}
