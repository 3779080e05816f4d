package schema

import (
	"sort"
	"strconv"
	"strings"

	"github.com/platinummonkey/cog/pkg/codec"
)

// Config describes a command schema to build.
type Config struct {
	// Name of the command. Subject to the same naming rules as arguments.
	Name string

	// Help is the one-line command description for usage text.
	Help string

	// Args are the argument declarations, in binding order.
	Args []*Spec

	// Target is invoked with the resolved mapping. Optional: a schema
	// without a target still resolves and exposes its values.
	Target Target

	// Subcommands routes a first token matching a key to a child schema.
	Subcommands map[string]*Schema

	// Registry supplies the codecs for this schema. Nil gets a fresh
	// registry with the built-in types. Pass one registry to every schema
	// of a tree to share custom types.
	Registry *codec.Registry
}

// Schema is a validated command: ordered argument declarations, an optional
// target, and named subcommands. Schemas are immutable after construction.
type Schema struct {
	name     string
	help     string
	args     []*Spec
	byName   map[string]*Spec
	byFlag   map[string]*Spec
	bare     *Spec
	target   Target
	subs     map[string]*Schema
	registry *codec.Registry
}

// New builds and validates a schema. It returns a ConfigError describing
// the first problem found; a schema that constructs is safe to resolve
// against.
func New(cfg Config) (*Schema, error) {
	if msg := validateName(cfg.Name); msg != "" {
		return nil, configErrorf(cfg.Name, "", msg)
	}

	reg := cfg.Registry
	if reg == nil {
		reg = codec.NewRegistry()
	}

	s := &Schema{
		name:     cfg.Name,
		help:     cfg.Help,
		byName:   make(map[string]*Spec, len(cfg.Args)),
		byFlag:   make(map[string]*Spec, 2*len(cfg.Args)),
		target:   cfg.Target,
		subs:     make(map[string]*Schema, len(cfg.Subcommands)),
		registry: reg,
	}

	for _, src := range cfg.Args {
		if src == nil {
			return nil, configErrorf(cfg.Name, "", "nil argument declaration")
		}
		arg := src.clone()

		if msg := validateName(arg.Name); msg != "" {
			return nil, configErrorf(cfg.Name, arg.Name, msg)
		}
		if _, exists := s.byName[arg.Name]; exists {
			return nil, configErrorf(cfg.Name, arg.Name, "duplicate argument name")
		}
		if !reg.Has(arg.Type) {
			return nil, configErrorf(cfg.Name, arg.Name, "unknown type %q", arg.Type)
		}

		if arg.IsSwitch() {
			if arg.Positional {
				return nil, configErrorf(cfg.Name, arg.Name, "a switch binds by flag presence and cannot be bare")
			}
			if !arg.Arity.IsSingle() {
				return nil, configErrorf(cfg.Name, arg.Name, "a switch consumes no tokens and must have single arity")
			}
		}

		if arg.Default != nil {
			arg.Default = normalizeDefault(arg.Default)
			if err := validateDefault(cfg.Name, reg, arg); err != nil {
				return nil, err
			}
		}

		if arg.Positional {
			if len(arg.Flags) > 0 {
				return nil, configErrorf(cfg.Name, arg.Name, "a bare argument cannot declare flags")
			}
			if s.bare != nil {
				return nil, configErrorf(cfg.Name, arg.Name, "at most one bare argument per schema (already have %q)", s.bare.Name)
			}
			arg.Flags = nil
			s.bare = arg
		} else {
			explicit := arg.Flags != nil
			if !explicit {
				arg.Flags = deriveFlags(arg.Name)
			}
			if err := s.adoptFlags(arg, explicit); err != nil {
				return nil, err
			}
		}

		s.args = append(s.args, arg)
		s.byName[arg.Name] = arg
	}

	subNames := make([]string, 0, len(cfg.Subcommands))
	for name := range cfg.Subcommands {
		subNames = append(subNames, name)
	}
	sort.Strings(subNames)

	for _, name := range subNames {
		sub := cfg.Subcommands[name]
		if sub == nil {
			return nil, configErrorf(cfg.Name, "", "nil subcommand %q", name)
		}
		if msg := validateName(name); msg != "" {
			return nil, configErrorf(cfg.Name, "", "subcommand %q: %s", name, msg)
		}
		if _, exists := s.byName[name]; exists {
			return nil, configErrorf(cfg.Name, "", "subcommand %q collides with an argument name", name)
		}
		s.subs[name] = sub
	}

	return s, nil
}

// adoptFlags records an argument's flags in the schema lookup. Explicit
// flags must be free; a derived short flag that collides with an earlier
// argument or a reserved flag is dropped.
func (s *Schema) adoptFlags(arg *Spec, explicit bool) error {
	kept := make([]string, 0, len(arg.Flags))

	for i, flag := range arg.Flags {
		if explicit {
			if msg := validateFlag(flag); msg != "" {
				return configErrorf(s.name, arg.Name, "flag %q: %s", flag, msg)
			}
		}

		_, taken := s.byFlag[flag]
		_, reserved := reservedFlags[flag]
		if taken || reserved {
			if explicit {
				if reserved {
					return configErrorf(s.name, arg.Name, "flag %q is reserved", flag)
				}
				return configErrorf(s.name, arg.Name, "flag %q is already declared by %q", flag, s.byFlag[flag].Name)
			}
			if i == 0 {
				return configErrorf(s.name, arg.Name, "derived flag %q is already declared by %q", flag, s.byFlag[flag].Name)
			}
			// Short form collision: derived shorts are best-effort.
			continue
		}

		kept = append(kept, flag)
	}

	arg.Flags = kept
	for _, flag := range kept {
		s.byFlag[flag] = arg
	}
	return nil
}

func validateFlag(flag string) string {
	switch {
	case len(flag) < 2 || !strings.HasPrefix(flag, "-"):
		return "flags start with - or --"
	case strings.TrimLeft(flag, "-") == "":
		return "flag needs a name after the marker"
	case strings.ContainsAny(flag, " \t\r\n"):
		return "flag may not contain whitespace"
	}
	if _, err := strconv.ParseFloat(flag, 64); err == nil {
		return "flag would be read as a negative number"
	}
	return ""
}

func validateDefault(schemaName string, reg *codec.Registry, arg *Spec) error {
	if arg.Arity.IsSingle() {
		if err := checkValue(reg, arg.Type, arg.Default); err != nil {
			return configErrorf(schemaName, arg.Name, "invalid default: %v", err)
		}
	} else {
		elems, ok := arg.Default.([]any)
		if !ok {
			return configErrorf(schemaName, arg.Name, "default for arity %s must be a slice, got %T", arg.Arity, arg.Default)
		}
		if !arg.Arity.IsMany() && len(elems) != arg.Arity.Count() {
			return configErrorf(schemaName, arg.Name, "default has %d elements, arity wants %s", len(elems), arg.Arity)
		}
		for _, elem := range elems {
			if err := checkValue(reg, arg.Type, elem); err != nil {
				return configErrorf(schemaName, arg.Name, "invalid default element: %v", err)
			}
		}
	}

	if arg.Valid != nil && !arg.Valid(arg.Default) {
		return configErrorf(schemaName, arg.Name, "default fails validation")
	}
	return nil
}

// checkValue verifies a value is the codec's Go type (via Encode) and
// passes its structural constraints.
func checkValue(reg *codec.Registry, typeKey string, v any) error {
	if _, err := reg.Encode(typeKey, v); err != nil {
		return err
	}
	return reg.Check(typeKey, v)
}

// Name returns the command name.
func (s *Schema) Name() string { return s.name }

// Help returns the command description.
func (s *Schema) Help() string { return s.help }

// Args returns the argument declarations in binding order. The slice is
// shared; callers must not modify it.
func (s *Schema) Args() []*Spec { return s.args }

// Lookup finds an argument declaration by name.
func (s *Schema) Lookup(name string) (*Spec, bool) {
	arg, exists := s.byName[name]
	return arg, exists
}

// LookupFlag finds the argument declaration a flag token selects.
func (s *Schema) LookupFlag(flag string) (*Spec, bool) {
	arg, exists := s.byFlag[flag]
	return arg, exists
}

// Bare returns the flag-less argument, or nil.
func (s *Schema) Bare() *Spec { return s.bare }

// Sub returns the child schema a routing name selects.
func (s *Schema) Sub(name string) (*Schema, bool) {
	sub, exists := s.subs[name]
	return sub, exists
}

// Subcommands returns the routing names of all child schemas, sorted.
func (s *Schema) Subcommands() []string {
	names := make([]string, 0, len(s.subs))
	for name := range s.subs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Registry returns the codec registry the schema was built against.
func (s *Schema) Registry() *codec.Registry { return s.registry }

// Target returns the schema's callable, or nil.
func (s *Schema) Target() Target { return s.target }
