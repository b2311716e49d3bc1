package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/ironzhang/coapopt/message"
	"github.com/ironzhang/coapopt/option"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type CLI struct {
	Verbose int  `short:"v" type:"counter" help:"Log verbosity (-v info, -vv debug)."`
	Strict  bool `help:"Reject option values outside their registered format (overrides COAP_STRICT)."`

	Encode  EncodeCmd  `cmd:"" help:"Build a message and print its encoding in hex."`
	Decode  DecodeCmd  `cmd:"" help:"Decode a message given in hex and print it."`
	Options OptionsCmd `cmd:"" help:"List the registered options."`
}

type app struct {
	in  io.Reader
	out io.Writer
	log *logrus.Logger
	cfg message.Config
}

func newApp(stdin io.Reader, stdout, stderr io.Writer, cli *CLI) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if cli.Strict {
		cfg.Strict = true
	}

	log := logrus.New()
	log.SetOutput(stderr)
	switch cli.Verbose {
	case 0:
		log.SetLevel(logrus.WarnLevel)
	case 1:
		log.SetLevel(logrus.InfoLevel)
	default:
		log.SetLevel(logrus.DebugLevel)
	}
	log.WithFields(logrus.Fields{"strict": cfg.Strict, "max_options": cfg.MaxOptions}).Debug("codec config")

	return &app{in: stdin, out: stdout, log: log, cfg: cfg}, nil
}

// warnUnknown logs the options that did not match their registered format.
func (a *app) warnUnknown(opts *option.Options) {
	for o := range opts.All() {
		if !o.IsUnknown() {
			continue
		}
		if _, ok := option.LookupDef(o.Number); !ok {
			a.log.WithField("option", o.Number.String()).Info("unregistered option")
			continue
		}
		a.log.WithFields(logrus.Fields{
			"option": o.Number.String(),
			"format": option.Lookup(o.Number).String(),
			"length": o.Len(),
		}).Warn("option value does not match its registered format")
	}
}

type EncodeCmd struct {
	Type    string   `default:"CON" enum:"CON,NON,ACK,RST" help:"Message type (${enum})."`
	Code    string   `default:"GET" help:"Message code, by name (GET, Content) or as class.detail (2.05)."`
	ID      uint16   `name:"id" help:"Message ID."`
	Token   string   `help:"Token in hex, up to 8 bytes."`
	Option  []string `short:"o" sep:"none" help:"Registered option as Name:value. Opaque values are hex."`
	Empty   []string `name:"empty-option" sep:"none" help:"Empty option by number."`
	Uint    []string `name:"uint-option" sep:"none" help:"Uint option as number:value."`
	Str     []string `name:"string-option" sep:"none" help:"String option as number:value."`
	Opaque  []string `name:"opaque-option" sep:"none" help:"Opaque option as number:hex."`
	Payload string   `help:"Message payload."`
}

var messageTypes = map[string]message.Type{
	"CON": message.CON,
	"NON": message.NON,
	"ACK": message.ACK,
	"RST": message.RST,
}

func (c *EncodeCmd) message() (message.Message, error) {
	code, ok := message.ParseCode(c.Code)
	if !ok {
		return message.Message{}, errors.Errorf("invalid message code: %s", c.Code)
	}
	token, err := hex.DecodeString(c.Token)
	if err != nil {
		return message.Message{}, errors.Wrap(err, "token")
	}
	m := message.Message{
		Type:      messageTypes[c.Type],
		Code:      code,
		MessageID: c.ID,
		Token:     token,
		Options:   option.NewOptions(),
		Payload:   []byte(c.Payload),
	}
	if err = addOptions(m.Options, c); err != nil {
		return message.Message{}, err
	}
	return m, nil
}

func (c *EncodeCmd) Run(a *app) error {
	m, err := c.message()
	if err != nil {
		return err
	}
	a.warnUnknown(m.Options)
	data, err := m.Marshal()
	if err != nil {
		return err
	}
	a.log.WithFields(logrus.Fields{"message": m.String(), "bytes": len(data)}).Info("encoded message")
	fmt.Fprintf(a.out, "%x\n", data)
	return nil
}

type DecodeCmd struct {
	Hex string `arg:"" help:"Message in hex, or - to read it from stdin."`
}

func (c *DecodeCmd) input(a *app) (string, error) {
	if c.Hex != "-" {
		return c.Hex, nil
	}
	b, err := io.ReadAll(a.in)
	if err != nil {
		return "", errors.Wrap(err, "read stdin")
	}
	return string(b), nil
}

func (c *DecodeCmd) Run(a *app) error {
	s, err := c.input(a)
	if err != nil {
		return err
	}
	data, err := hex.DecodeString(strings.Join(strings.Fields(s), ""))
	if err != nil {
		return errors.Wrap(err, "hex")
	}

	var m message.Message
	if err = m.UnmarshalWithConfig(data, a.cfg); err != nil {
		return err
	}
	a.warnUnknown(m.Options)
	a.log.WithField("bytes", len(data)).Info("decoded message")
	return printMessage(a.out, a.log, m)
}

type OptionsCmd struct{}

func (c *OptionsCmd) Run(a *app) error {
	fmt.Fprintf(a.out, "%5s  %-16s %-16s %s\n", "No.", "Name", "Format", "Flags")
	for _, def := range option.Defs() {
		fmt.Fprintf(a.out, "%5d  %-16s %-16s %s\n", uint16(def.Number), def.Name, def.Format, defFlags(def))
	}
	return nil
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("coap-mesg"),
		kong.Description("Encode and decode CoAP messages and their options."),
		kong.Writers(stdout, stderr),
		kong.UsageOnError(),
	)
	if err != nil {
		return err
	}
	ctx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	a, err := newApp(stdin, stdout, stderr, &cli)
	if err != nil {
		return err
	}
	return ctx.Run(a)
}

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "coap-mesg: %v\n", err)
		os.Exit(1)
	}
}
