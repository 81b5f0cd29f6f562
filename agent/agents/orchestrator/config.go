package orchestrator

import "time"

// Config is read with prefix ENRICH.
type Config struct {
	// MaxConcurrency caps in-flight cells. Zero or less means unbounded.
	MaxConcurrency int `split_words:"true" default:"8"`
	// MaxRetries is the number of automatic retries after a transient failure.
	MaxRetries     int           `split_words:"true" default:"2"`
	InitialBackoff time.Duration `split_words:"true" default:"500ms"`
	MaxBackoff     time.Duration `split_words:"true" default:"10s"`
	// AttemptTimeout bounds one try of the protocol. Zero disables it.
	AttemptTimeout time.Duration `split_words:"true" default:"0s"`
	ExampleLimit   int           `split_words:"true" default:"5"`
}

func (c Config) normalized() Config {
	if c.MaxRetries < 0 {
		c.MaxRetries = 0
	}
	if c.InitialBackoff < 0 {
		c.InitialBackoff = 0
	}
	if c.MaxBackoff < c.InitialBackoff {
		c.MaxBackoff = c.InitialBackoff
	}
	if c.AttemptTimeout < 0 {
		c.AttemptTimeout = 0
	}
	return c
}
