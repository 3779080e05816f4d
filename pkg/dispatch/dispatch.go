package dispatch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/platinummonkey/cog/pkg/help"
	"github.com/platinummonkey/cog/pkg/resolve"
	"github.com/platinummonkey/cog/pkg/schema"
)

// Result describes one dispatched command line.
type Result struct {
	ID      uuid.UUID      // unique per dispatch
	Path    []string       // schema names walked, root first
	Command *schema.Schema // innermost schema addressed
	Values  schema.Mapping // resolved values; nil when help or gui intercepted
	Invoked bool           // true when a target ran
	Elapsed time.Duration
}

// Config configures a Dispatcher. The zero value is usable: a nil Log gets a
// fresh logrus logger, a nil Help falls back to the help package renderer,
// a nil GUI makes the reserved "gui" command return ErrGUIUnavailable, and a
// nil Out writes to stdout.
type Config struct {
	Log  *logrus.Logger
	Help func(io.Writer, *schema.Schema) error
	GUI  func(*schema.Schema) error
	Out  io.Writer
}

// Dispatcher routes token streams to schemas and runs their targets.
type Dispatcher struct {
	log  *logrus.Logger
	help func(io.Writer, *schema.Schema) error
	gui  func(*schema.Schema) error
	out  io.Writer
}

// NewDispatcher creates a dispatcher from cfg. A nil cfg uses all defaults.
func NewDispatcher(cfg *Config) *Dispatcher {
	if cfg == nil {
		cfg = &Config{}
	}
	d := &Dispatcher{
		log:  cfg.Log,
		help: cfg.Help,
		gui:  cfg.GUI,
		out:  cfg.Out,
	}
	if d.log == nil {
		d.log = logrus.New()
	}
	if d.help == nil {
		d.help = help.Write
	}
	if d.out == nil {
		d.out = os.Stdout
	}
	return d
}

// Dispatch routes tokens starting at s. While the leading token names a
// subcommand it descends; the remaining tokens are resolved against the
// innermost schema and its target is invoked with the mapping. The reserved
// words "help" and "gui" and the flags --help/-h are intercepted before any
// resolution. On error the returned Result is nil.
func (d *Dispatcher) Dispatch(ctx context.Context, s *schema.Schema, tokens []string) (*Result, error) {
	start := time.Now()
	res := &Result{ID: uuid.New(), Path: []string{s.Name()}, Command: s}
	defer func() { res.Elapsed = time.Since(start) }()

	cur := s
	rest := tokens
	for len(rest) > 0 {
		sub, ok := cur.Sub(rest[0])
		if !ok {
			break
		}
		cur = sub
		rest = rest[1:]
		res.Path = append(res.Path, cur.Name())
		res.Command = cur
	}

	if len(rest) > 0 {
		switch rest[0] {
		case schema.ReservedHelp:
			return d.renderHelp(cur, rest[1:], res)
		case schema.ReservedGUI:
			return d.launchGUI(cur, res)
		}
	}
	for _, tok := range rest {
		if tok == "--help" || tok == "-h" {
			return d.renderHelp(cur, nil, res)
		}
	}

	vals, err := resolve.Resolve(cur, rest)
	if err != nil {
		d.log.WithFields(logrus.Fields{
			"command": cur.Name(),
			"id":      res.ID,
		}).WithError(err).Debug("resolution failed")
		return nil, err
	}
	res.Values = vals

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	target := cur.Target()
	if target == nil {
		return res, nil
	}

	d.log.WithFields(logrus.Fields{
		"command": cur.Name(),
		"id":      res.ID,
	}).Debug("invoking target")

	if err := invoke(target, vals); err != nil {
		return nil, err
	}
	res.Invoked = true
	return res, nil
}

// renderHelp renders usage for s, descending further while addr names
// subcommands. Tokens past the deepest addressable schema are ignored.
func (d *Dispatcher) renderHelp(s *schema.Schema, addr []string, res *Result) (*Result, error) {
	for _, name := range addr {
		sub, ok := s.Sub(name)
		if !ok {
			break
		}
		s = sub
		res.Path = append(res.Path, s.Name())
	}
	res.Command = s
	if err := d.help(d.out, s); err != nil {
		return nil, err
	}
	return res, nil
}

func (d *Dispatcher) launchGUI(s *schema.Schema, res *Result) (*Result, error) {
	if d.gui == nil {
		return nil, ErrGUIUnavailable
	}
	if err := d.gui(s); err != nil {
		return nil, err
	}
	return res, nil
}

// invoke runs a target, converting panics to errors.
func invoke(target schema.Target, vals schema.Mapping) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return target(vals)
}

// Main dispatches argv against s and returns a process exit code: 0 on
// success or clean termination, 1 on any error. Error text goes to errOut.
// argv is taken as already shell-split tokens, typically os.Args[1:].
func Main(s *schema.Schema, argv []string, out, errOut io.Writer) int {
	d := NewDispatcher(&Config{Out: out})
	_, err := d.Dispatch(context.Background(), s, argv)
	if err != nil {
		if errors.Is(err, ErrTerminate) {
			return 0
		}
		fmt.Fprintf(errOut, "Error: %v\n", err)
		return 1
	}
	return 0
}
