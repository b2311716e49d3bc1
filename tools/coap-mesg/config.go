package main

import (
	"github.com/caarlos0/env/v11"
	"github.com/ironzhang/coapopt/message"
	"github.com/pkg/errors"
)

// loadConfig reads the codec config from COAP_STRICT and COAP_MAX_OPTIONS.
func loadConfig() (message.Config, error) {
	var cfg message.Config
	if err := env.Parse(&cfg); err != nil {
		return message.Config{}, errors.Wrap(err, "load config")
	}
	return cfg, nil
}
