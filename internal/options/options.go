// Package options holds the functional options used to build block configs.
package options

// Option mutates a T, normally a *Config, and may refuse the change.
type Option[T any] interface {
	apply(T) error
}

type optionFunc[T any] func(T) error

func (f optionFunc[T]) apply(target T) error { return f(target) }

// New turns a validating setter into an Option.
func New[T any](fn func(T) error) Option[T] {
	return optionFunc[T](fn)
}

// NoError turns a setter that cannot fail into an Option.
func NoError[T any](fn func(T)) Option[T] {
	return optionFunc[T](func(target T) error {
		fn(target)
		return nil
	})
}

// Apply runs opts against target left to right. The first error aborts the
// run and is returned as is; options applied before it keep their effect.
// nil entries are ignored so callers can pass conditional options.
func Apply[T any](target T, opts ...Option[T]) error {
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt.apply(target); err != nil {
			return err
		}
	}

	return nil
}
