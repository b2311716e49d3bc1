package main

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/ironzhang/coapopt/option"
)

func splitOption(s string) (string, string) {
	name, value, _ := strings.Cut(s, ":")
	return strings.TrimSpace(name), strings.TrimSpace(value)
}

func makeOption(n option.Number, format option.ValueFormat, value string) (option.Option, error) {
	switch format {
	case option.EmptyValue:
		if value != "" {
			return option.Option{}, fmt.Errorf("option %s takes no value", n)
		}
		return option.FromRaw(n, nil), nil
	case option.UintValue:
		u, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return option.Option{}, fmt.Errorf("option %s: %v", n, err)
		}
		return option.FromRaw(n, option.EncodeUint(u)), nil
	case option.StringValue:
		return option.FromRaw(n, []byte(value)), nil
	case option.OpaqueValue:
		b, err := hex.DecodeString(value)
		if err != nil {
			return option.Option{}, fmt.Errorf("option %s: %v", n, err)
		}
		return option.FromRaw(n, b), nil
	default:
		return option.Option{}, fmt.Errorf("unsupport option format: %s", format)
	}
}

func parseOptionByName(s string) (option.Option, error) {
	name, value := splitOption(s)
	def, ok := option.LookupDefByName(name)
	if !ok {
		return option.Option{}, fmt.Errorf("not found option define: %s", name)
	}
	return makeOption(def.Number, def.Format.Value, value)
}

func parseOptionByNumber(format option.ValueFormat, s string) (option.Option, error) {
	name, value := splitOption(s)
	n, err := strconv.ParseUint(name, 10, 16)
	if err != nil {
		return option.Option{}, fmt.Errorf("option number %q: %v", name, err)
	}
	return makeOption(option.Number(n), format, value)
}

func addOptions(opts *option.Options, c *EncodeCmd) error {
	for _, s := range c.Option {
		o, err := parseOptionByName(s)
		if err != nil {
			return err
		}
		opts.Push(o)
	}
	byNumber := []struct {
		format option.ValueFormat
		ss     []string
	}{
		{option.EmptyValue, c.Empty},
		{option.UintValue, c.Uint},
		{option.StringValue, c.Str},
		{option.OpaqueValue, c.Opaque},
	}
	for _, g := range byNumber {
		for _, s := range g.ss {
			o, err := parseOptionByNumber(g.format, s)
			if err != nil {
				return err
			}
			opts.Push(o)
		}
	}
	return nil
}
