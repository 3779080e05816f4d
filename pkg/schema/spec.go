package schema

import (
	"regexp"
	"strings"
	"time"

	"github.com/platinummonkey/cog/pkg/codec"
)

var nameRegex = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_-]*$`)

// Spec declares one argument of a command schema.
type Spec struct {
	// Name identifies the argument and derives its flags. Names are unique
	// within a schema, may not be a reserved word, and may not start with
	// an underscore or the flag marker.
	Name string

	// Type is the codec key for the element type.
	Type string

	// Arity is how many tokens the argument consumes. Zero value: one.
	Arity Arity

	// Default is the typed value used when no tokens bind. A nil Default
	// marks the argument required. Declarations with non-single arity take
	// a typed slice or []any.
	Default any

	// Valid, when set, accepts or rejects the fully decoded value: the
	// scalar for single arity, the []any element slice otherwise.
	Valid func(v any) bool

	// Flags overrides the derived flags (--name plus -first-rune). Leave
	// nil to derive. Ignored for bare arguments.
	Flags []string

	// Positional marks a bare argument: it gets no flags and binds by
	// position only. At most one per schema.
	Positional bool

	// Help is the one-line description shown in usage text.
	Help string
}

// IsSwitch reports whether the argument is a boolean switch: element type
// bool with a default of exactly false. A switch binds true by bare flag
// presence and never consumes a following token.
func (s *Spec) IsSwitch() bool {
	b, ok := s.Default.(bool)
	return s.Type == codec.TypeBool && ok && !b
}

// Required reports whether resolution must bind a value: true when no
// default is declared.
func (s *Spec) Required() bool {
	return s.Default == nil
}

// LongFlag returns the first declared flag, or the empty string for bare
// arguments.
func (s *Spec) LongFlag() string {
	if len(s.Flags) == 0 {
		return ""
	}
	return s.Flags[0]
}

func (s *Spec) clone() *Spec {
	c := *s
	if s.Flags != nil {
		c.Flags = append([]string(nil), s.Flags...)
	}
	return &c
}

func deriveFlags(name string) []string {
	short := "-" + string([]rune(name)[0])
	return []string{"--" + name, short}
}

// validateName checks the naming rules shared by arguments and subcommands.
func validateName(name string) string {
	switch {
	case name == "":
		return "name is required"
	case isReservedName(name):
		return "name is reserved"
	case strings.HasPrefix(name, "_") || strings.HasPrefix(name, "-"):
		return "name may not start with a reserved prefix"
	case !nameRegex.MatchString(name):
		return "name must start with a letter and contain only letters, digits, hyphens and underscores"
	}
	return ""
}

// normalizeDefault converts the accepted slice kinds for non-single arity
// to the []any shape resolution produces, so defaults and resolved values
// compare equal. Scalars pass through.
func normalizeDefault(v any) any {
	switch vs := v.(type) {
	case []any:
		return append([]any(nil), vs...)
	case []string:
		return toAnySlice(vs)
	case []int:
		return toAnySlice(vs)
	case []float64:
		return toAnySlice(vs)
	case []bool:
		return toAnySlice(vs)
	case []time.Time:
		return toAnySlice(vs)
	case []time.Duration:
		return toAnySlice(vs)
	default:
		return v
	}
}

func toAnySlice[T any](vs []T) []any {
	out := make([]any, len(vs))
	for i, v := range vs {
		out[i] = v
	}
	return out
}
