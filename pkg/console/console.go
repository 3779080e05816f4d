// Package console runs an interactive read-dispatch loop over a command
// schema: each input line is tokenized, dispatched and its errors printed,
// until the input ends, the context is canceled, or a target returns
// dispatch.ErrTerminate.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/platinummonkey/cog/pkg/dispatch"
	"github.com/platinummonkey/cog/pkg/schema"
	"github.com/platinummonkey/cog/pkg/tokenize"
)

var isTerminalFn = term.IsTerminal

// Config configures a Console. The zero value reads stdin, writes stdout
// and dispatches with a default Dispatcher. Setting Prompt forces the prompt
// even when the input is not a terminal; Color forces red error text.
type Config struct {
	Prompt     string
	In         io.Reader
	Out        io.Writer
	Log        *logrus.Logger
	Dispatcher *dispatch.Dispatcher
	Color      bool
}

// Console is an interactive loop bound to a root schema.
type Console struct {
	root       *schema.Schema
	prompt     string
	in         io.Reader
	out        io.Writer
	log        *logrus.Logger
	disp       *dispatch.Dispatcher
	showPrompt bool
	colorize   bool
}

// NewConsole creates a console for root. A nil cfg uses all defaults.
func NewConsole(root *schema.Schema, cfg *Config) *Console {
	if cfg == nil {
		cfg = &Config{}
	}
	c := &Console{
		root:   root,
		prompt: cfg.Prompt,
		in:     cfg.In,
		out:    cfg.Out,
		log:    cfg.Log,
		disp:   cfg.Dispatcher,
	}
	if c.prompt == "" {
		c.prompt = "> "
	}
	if c.in == nil {
		c.in = os.Stdin
	}
	if c.out == nil {
		c.out = os.Stdout
	}
	if c.log == nil {
		c.log = logrus.New()
	}
	if c.disp == nil {
		c.disp = dispatch.NewDispatcher(&dispatch.Config{Log: c.log, Out: c.out})
	}
	c.showPrompt = cfg.Prompt != "" || isTerminal(c.in)
	c.colorize = cfg.Color && isTerminal(c.out)
	return c
}

// Run reads lines until the input ends, ctx is canceled, or a target returns
// dispatch.ErrTerminate (a clean stop: Run returns nil). A reader goroutine
// feeds lines over a channel so cancellation takes effect between commands;
// if the loop stops while that goroutine is blocked reading, it is abandoned
// and exits with the input.
func (c *Console) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	eg, gctx := errgroup.WithContext(ctx)
	lines := make(chan string)

	eg.Go(func() error {
		defer close(lines)
		scanner := bufio.NewScanner(c.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-gctx.Done():
				return nil
			}
		}
		return scanner.Err()
	})

	for {
		c.writePrompt()
		select {
		case <-gctx.Done():
			return gctx.Err()
		case line, ok := <-lines:
			if !ok {
				// input exhausted; collect the scanner's error
				return eg.Wait()
			}
			if err := c.handle(gctx, line); err != nil {
				if errors.Is(err, dispatch.ErrTerminate) {
					return nil
				}
				return err
			}
		}
	}
}

// handle dispatches one input line. Dispatch errors other than ErrTerminate
// are printed and swallowed so the loop continues.
func (c *Console) handle(ctx context.Context, line string) error {
	tokens := tokenize.Split(line)
	if len(tokens) == 0 {
		return nil
	}

	res, err := c.disp.Dispatch(ctx, c.root, tokens)
	if err != nil {
		if errors.Is(err, dispatch.ErrTerminate) || errors.Is(err, context.Canceled) {
			return err
		}
		c.printError(err)
		return nil
	}

	c.log.WithFields(logrus.Fields{
		"command": res.Command.Name(),
		"invoked": res.Invoked,
		"elapsed": res.Elapsed,
	}).Debug("command handled")
	return nil
}

func (c *Console) writePrompt() {
	if c.showPrompt {
		fmt.Fprint(c.out, c.prompt)
	}
}

func (c *Console) printError(err error) {
	msg := fmt.Sprintf("Error: %v", err)
	if c.colorize {
		msg = color.RedString(msg)
	}
	fmt.Fprintln(c.out, msg)
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	if !ok {
		return false
	}
	return isTerminalFn(int(f.Fd()))
}
