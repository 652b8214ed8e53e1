package objects

type options struct {
	finalize func()
}

// Option configures object construction.
type Option func(*options)

// WithFinalizer attaches fn to the object's finalize hook. The hook runs at
// most once, when the object is swept or the heap is drained.
func WithFinalizer(fn func()) Option {
	return func(o *options) {
		o.finalize = fn
	}
}

func applyOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
