// Package build realizes annotated struct instances into labeled arrays
// and datasets according to their derived specifications.
package build

import (
	"darray/labeled"
	"darray/spec"
)

// Options collects construction options.
type Options struct {
	// Reference supplies the shape to broadcast rank-zero values against.
	Reference labeled.Ref

	// Cache is the specification cache to derive through.
	Cache *spec.Cache
}

// Option customizes a single construction call.
type Option func(*Options)

// WithReference sets the broadcast shape reference.
func WithReference(ref labeled.Ref) Option {
	return func(o *Options) {
		o.Reference = ref
	}
}

// WithCache sets the specification cache.
func WithCache(c *spec.Cache) Option {
	return func(o *Options) {
		o.Cache = c
	}
}

func apply(opts []Option) Options {
	o := Options{Cache: spec.DefaultCache}
	for _, fn := range opts {
		fn(&o)
	}

	return o
}

// ArrayWrapper post-processes the realized array of its implementing
// class, the composition counterpart of a construction factory.
type ArrayWrapper interface {
	WrapArray(*labeled.Array) (*labeled.Array, error)
}

// DatasetWrapper post-processes the realized dataset of its implementing
// class.
type DatasetWrapper interface {
	WrapDataset(*labeled.Dataset) (*labeled.Dataset, error)
}
