package message

// Config controls how Unmarshal treats option values.
type Config struct {
	// Strict rejects option values outside their registered format
	// instead of keeping them as unknown options.
	Strict bool `env:"COAP_STRICT" envDefault:"false"`

	// MaxOptions limits the number of options of a message. Zero means
	// no limit.
	MaxOptions int `env:"COAP_MAX_OPTIONS" envDefault:"0"`
}
