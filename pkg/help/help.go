// Package help renders usage text for command schemas: a usage line, an
// argument table and a subcommand listing. It reads schemas through their
// exported accessors only and never resolves tokens, so rendering a schema
// has no side effects.
package help

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/platinummonkey/cog/pkg/schema"
)

// Write renders usage text for s to w.
func Write(w io.Writer, s *schema.Schema) error {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "Usage: %s\n", usageLine(s))
	if h := s.Help(); h != "" {
		fmt.Fprintf(&buf, "\n%s\n", h)
	}

	if args := s.Args(); len(args) > 0 {
		buf.WriteString("\nArguments:\n")
		writeArgTable(&buf, s)
	}

	if subs := s.Subcommands(); len(subs) > 0 {
		buf.WriteString("\nCommands:\n")
		for _, name := range subs {
			sub, _ := s.Sub(name)
			fmt.Fprintf(&buf, "  %-15s %s\n", name, sub.Help())
		}
		fmt.Fprintf(&buf, "\nRun \"%s help <command>\" for command details.\n", s.Name())
	}

	_, err := w.Write(buf.Bytes())
	return err
}

// Render returns the usage text for s as a string.
func Render(s *schema.Schema) string {
	var buf bytes.Buffer
	_ = Write(&buf, s)
	return buf.String()
}

func usageLine(s *schema.Schema) string {
	parts := []string{s.Name()}

	for _, arg := range s.Args() {
		var p string
		switch {
		case arg.IsSwitch():
			p = "[" + arg.LongFlag() + "]"
		case arg.Positional:
			p = placeholder(arg)
			if !arg.Required() {
				p = "[" + p + "]"
			}
		default:
			p = arg.LongFlag() + " " + placeholder(arg)
			if !arg.Required() {
				p = "[" + p + "]"
			}
		}
		parts = append(parts, p)
	}

	if len(s.Subcommands()) > 0 {
		sub := "<command> [args]"
		if s.Target() != nil {
			sub = "[" + sub + "]"
		}
		parts = append(parts, sub)
	}

	return strings.Join(parts, " ")
}

func placeholder(arg *schema.Spec) string {
	p := "<" + arg.Name + ">"
	if !arg.Arity.IsSingle() {
		p += " ..."
	}
	return p
}

func writeArgTable(buf *bytes.Buffer, s *schema.Schema) {
	w := tabwriter.NewWriter(buf, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "  ARGUMENT\tTYPE\tARITY\tDEFAULT\tDESCRIPTION")
	fmt.Fprintln(w, "  ────────\t────\t─────\t───────\t───────────")

	for _, arg := range s.Args() {
		name := "<" + arg.Name + ">"
		if !arg.Positional {
			name = strings.Join(arg.Flags, ", ")
		}
		fmt.Fprintf(w, "  %s\t%s\t%s\t%s\t%s\n",
			name,
			arg.Type,
			arg.Arity.String(),
			defaultText(s, arg),
			arg.Help,
		)
	}
	w.Flush()
}

// defaultText renders an argument's default through its codec so the text
// matches what the resolver would accept back.
func defaultText(s *schema.Schema, arg *schema.Spec) string {
	if arg.Required() {
		return "(required)"
	}

	reg := s.Registry()
	switch v := arg.Default.(type) {
	case []any:
		if len(v) == 0 {
			return "[]"
		}
		elems := make([]string, 0, len(v))
		for _, e := range v {
			text, err := reg.Encode(arg.Type, e)
			if err != nil {
				text = fmt.Sprintf("%v", e)
			}
			elems = append(elems, text)
		}
		return "[" + strings.Join(elems, " ") + "]"
	default:
		text, err := reg.Encode(arg.Type, v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return text
	}
}
