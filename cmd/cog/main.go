package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/platinummonkey/cog/pkg/codec"
	"github.com/platinummonkey/cog/pkg/dispatch"
	"github.com/platinummonkey/cog/pkg/schema"
	"github.com/platinummonkey/cog/pkg/store"
	"github.com/platinummonkey/cog/pkg/tokenize"
)

// cog inspects and edits command lines saved by applications built on this
// module. The command tree is itself declared with the module's own schemas.
func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(argv []string, in io.Reader, out, errOut io.Writer) int {
	root, err := rootSchema(in, out)
	if err != nil {
		fmt.Fprintf(errOut, "Error: %v\n", err)
		return 1
	}
	if len(argv) == 0 {
		argv = []string{"help"}
	}
	return dispatch.Main(root, argv, out, errOut)
}

func defaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".cog"
	}
	return filepath.Join(home, ".cog")
}

func dirSpec() *schema.Spec {
	return &schema.Spec{
		Name:    "dir",
		Type:    codec.TypeString,
		Default: defaultDir(),
		Help:    "directory of saved commands",
	}
}

func openStore(dir string) (*store.Store, error) {
	log := logrus.New()
	log.SetLevel(logrus.WarnLevel)
	return store.NewStore(&store.Config{Dir: dir, Log: log})
}

func rootSchema(in io.Reader, out io.Writer) (*schema.Schema, error) {
	list, err := schema.New(schema.Config{
		Name: "list",
		Help: "list saved command names",
		Args: []*schema.Spec{dirSpec()},
		Target: func(vals schema.Mapping) error {
			st, err := openStore(vals.String("dir"))
			if err != nil {
				return err
			}
			names, err := st.List()
			if err != nil {
				return err
			}
			for _, name := range names {
				fmt.Fprintln(out, name)
			}
			return nil
		},
	})
	if err != nil {
		return nil, err
	}

	show, err := schema.New(schema.Config{
		Name: "show",
		Help: "print a saved command line",
		Args: []*schema.Spec{
			{Name: "name", Type: codec.TypeString, Positional: true, Help: "saved name"},
			dirSpec(),
		},
		Target: func(vals schema.Mapping) error {
			st, err := openStore(vals.String("dir"))
			if err != nil {
				return err
			}
			tokens, err := st.Load(vals.String("name"))
			if err != nil {
				return err
			}
			fmt.Fprintln(out, tokenize.Join(tokens))
			return nil
		},
	})
	if err != nil {
		return nil, err
	}

	save, err := schema.New(schema.Config{
		Name: "save",
		Help: "save a command line read from stdin",
		Args: []*schema.Spec{
			{Name: "name", Type: codec.TypeString, Positional: true, Help: "name to save under"},
			{Name: "schema", Type: codec.TypeString, Default: "", Help: "schema the line targets"},
			dirSpec(),
		},
		Target: func(vals schema.Mapping) error {
			data, err := io.ReadAll(in)
			if err != nil {
				return fmt.Errorf("read command line: %w", err)
			}
			tokens := tokenize.Split(strings.TrimSpace(string(data)))
			if len(tokens) == 0 {
				return fmt.Errorf("empty command line on stdin")
			}
			st, err := openStore(vals.String("dir"))
			if err != nil {
				return err
			}
			name := vals.String("name")
			if err := st.SaveFor(name, vals.String("schema"), tokens); err != nil {
				return err
			}
			fmt.Fprintf(out, "saved %q (%d tokens)\n", name, len(tokens))
			return nil
		},
	})
	if err != nil {
		return nil, err
	}

	del, err := schema.New(schema.Config{
		Name: "delete",
		Help: "remove a saved command line",
		Args: []*schema.Spec{
			{Name: "name", Type: codec.TypeString, Positional: true, Help: "saved name"},
			dirSpec(),
		},
		Target: func(vals schema.Mapping) error {
			st, err := openStore(vals.String("dir"))
			if err != nil {
				return err
			}
			name := vals.String("name")
			if err := st.Delete(name); err != nil {
				return err
			}
			fmt.Fprintf(out, "deleted %q\n", name)
			return nil
		},
	})
	if err != nil {
		return nil, err
	}

	return schema.New(schema.Config{
		Name: "cog",
		Help: "inspect and edit saved command lines",
		Subcommands: map[string]*schema.Schema{
			"list":   list,
			"show":   show,
			"save":   save,
			"delete": del,
		},
	})
}
