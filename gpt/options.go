package gpt

// ReadOption customizes Read without growing its signature, in the
// functional-options shape common across the retrieval pack's own
// constructors.
type ReadOption func(*readConfig)

type readConfig struct {
	log fieldLogger
}

// WithLogger attaches a structured logger (e.g. a *logrus.Entry scoped to
// the caller's request) that Read, Repair, and Write use to record
// recoverable anomalies such as a damaged entry array, a rebuilt copy, or
// a backup write skipped because it lies beyond the medium.
func WithLogger(log fieldLogger) ReadOption {
	return func(c *readConfig) { c.log = log }
}

func newReadConfig(opts []ReadOption) readConfig {
	c := readConfig{log: discardLogger}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}
