package main

import (
	"fmt"
	"io"

	"github.com/ironzhang/coapopt/message"
	"github.com/ironzhang/coapopt/option"
	"github.com/sirupsen/logrus"
)

func numberFlags(n option.Number) string {
	b := []byte("---")
	if n.IsCritical() {
		b[0] = 'C'
	}
	if n.IsUnsafeToForward() {
		b[1] = 'U'
	}
	if n.IsSafeToForward() && n.IsNoCacheKey() {
		b[2] = 'N'
	}
	return string(b)
}

func defFlags(def option.Def) string {
	if def.Repeatable {
		return numberFlags(def.Number) + "R"
	}
	return numberFlags(def.Number) + "-"
}

func printMessage(w io.Writer, log *logrus.Logger, m message.Message) error {
	fmt.Fprintf(w, "%s\n", m)

	var last option.Number
	for o := range m.Options.All() {
		hdr, next, err := option.AppendHeader(nil, last, o)
		if err != nil {
			return err
		}
		delta, length, _, err := option.ParseHeader(hdr)
		if err != nil {
			return err
		}
		log.WithFields(logrus.Fields{
			"header": fmt.Sprintf("%x", hdr),
			"delta":  delta,
			"length": length,
		}).Debug(o.Number.Name())
		last = next

		fmt.Fprintf(w, "  [%s] %s\n", numberFlags(o.Number), o)
	}

	if len(m.Payload) > 0 {
		fmt.Fprintf(w, "payload(%d): %q\n", len(m.Payload), m.Payload)
	}
	return nil
}
