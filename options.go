package spread

import (
	"go.llib.dev/frameless/port/option"

	"go.llib.dev/spread/pkg/sourcekit"
)

type Option = option.Option[Config]

type Config struct {
	// Cache is used to read the source line of call sites.
	//
	// Default: a cache owned by the wrapped function.
	Cache *sourcekit.Cache
	// CallerSkip is the number of frames between the calling statement and the wrapped function,
	// for when the wrapped function is called through helper functions.
	CallerSkip int
}

func (c *Config) Init() {
	c.Cache = &sourcekit.Cache{}
}

// WithCache shares a source line cache, so it can be invalidated or watched from outside.
func WithCache(cache *sourcekit.Cache) Option {
	return option.Func[Config](func(c *Config) {
		if cache != nil {
			c.Cache = cache
		}
	})
}

func WithCallerSkip(n int) Option {
	return option.Func[Config](func(c *Config) {
		c.CallerSkip = max(n, 0)
	})
}
