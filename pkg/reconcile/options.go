package reconcile

// Option configures a deduplication pass.
type Option func(*options)

type options struct {
	strategy  Strategy
	onReplace func(Replacement)
}

func newOptions() *options {
	return &options{strategy: MostRecent()}
}

func (o *options) apply(opts ...Option) *options {
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithStrategy sets the survivor strategy. Nil keeps the default.
func WithStrategy(s Strategy) Option {
	return func(o *options) {
		if s != nil {
			o.strategy = s
		}
	}
}

// WithReplaceHook registers fn to be called for each replacement.
func WithReplaceHook(fn func(Replacement)) Option {
	return func(o *options) {
		o.onReplace = fn
	}
}
