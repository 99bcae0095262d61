package importer

// Option configures an Importer.
type Option func(*options)

type options struct {
	onFile func(FileStat)
}

func newOptions() *options {
	return &options{}
}

func (o *options) apply(opts ...Option) *options {
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithFileHook registers fn to be called after each file is parsed.
func WithFileHook(fn func(FileStat)) Option {
	return func(o *options) {
		o.onFile = fn
	}
}
