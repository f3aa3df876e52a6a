package bimap

import "github.com/sirupsen/logrus"

const (
	// DefaultCapacity is the number of node slots reserved by New and
	// NewFunc when no WithCapacity option is given.
	DefaultCapacity = 32
)

type options struct {
	capacity int
	logger   logrus.FieldLogger
}

// Option configures a Bimap at construction.
type Option func(*options)

// WithCapacity reserves room for n pairs up front.
func WithCapacity(n int) Option {
	return func(o *options) {
		o.capacity = n
	}
}

// WithLogger sets the logger used for debug events such as insert
// rollback and default-value eviction. The default is the logrus standard
// logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func newOptions(opts []Option) options {
	o := options{
		capacity: DefaultCapacity,
		logger:   logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
