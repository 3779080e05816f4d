package schema

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platinummonkey/cog/pkg/codec"
)

func TestNew_FlagDerivation(t *testing.T) {
	s, err := New(Config{
		Name: "move",
		Args: []*Spec{
			{Name: "dx", Type: codec.TypeInt},
			{Name: "dy", Type: codec.TypeInt},
		},
	})
	require.NoError(t, err)

	dx, ok := s.Lookup("dx")
	require.True(t, ok)
	assert.Equal(t, []string{"--dx", "-d"}, dx.Flags)

	// dy's short form collides with dx and is dropped
	dy, ok := s.Lookup("dy")
	require.True(t, ok)
	assert.Equal(t, []string{"--dy"}, dy.Flags)

	byShort, ok := s.LookupFlag("-d")
	require.True(t, ok)
	assert.Equal(t, "dx", byShort.Name)
}

func TestNew_ReservedShortFlagDropped(t *testing.T) {
	s, err := New(Config{
		Name: "server",
		Args: []*Spec{
			{Name: "host", Type: codec.TypeString, Default: "0.0.0.0"},
		},
	})
	require.NoError(t, err)

	host, _ := s.Lookup("host")
	assert.Equal(t, []string{"--host"}, host.Flags, "-h is reserved for help")
}

func TestNew_ExplicitFlags(t *testing.T) {
	s, err := New(Config{
		Name: "server",
		Args: []*Spec{
			{Name: "port", Type: codec.TypeInt, Default: 8080, Flags: []string{"--port", "-p", "--listen"}},
		},
	})
	require.NoError(t, err)

	port, _ := s.Lookup("port")
	assert.Equal(t, []string{"--port", "-p", "--listen"}, port.Flags)

	byAlias, ok := s.LookupFlag("--listen")
	require.True(t, ok)
	assert.Equal(t, "port", byAlias.Name)
}

func TestNew_ConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{
			name: "empty schema name",
			cfg:  Config{},
			want: "name is required",
		},
		{
			name: "reserved argument name",
			cfg: Config{Name: "c", Args: []*Spec{
				{Name: "help", Type: codec.TypeString},
			}},
			want: "reserved",
		},
		{
			name: "underscore prefix",
			cfg: Config{Name: "c", Args: []*Spec{
				{Name: "_hidden", Type: codec.TypeString},
			}},
			want: "reserved prefix",
		},
		{
			name: "duplicate argument name",
			cfg: Config{Name: "c", Args: []*Spec{
				{Name: "x", Type: codec.TypeString},
				{Name: "x", Type: codec.TypeInt},
			}},
			want: "duplicate",
		},
		{
			name: "unknown type",
			cfg: Config{Name: "c", Args: []*Spec{
				{Name: "x", Type: "quaternion"},
			}},
			want: "unknown type",
		},
		{
			name: "explicit flag collision",
			cfg: Config{Name: "c", Args: []*Spec{
				{Name: "alpha", Type: codec.TypeString},
				{Name: "beta", Type: codec.TypeString, Flags: []string{"--alpha"}},
			}},
			want: "already declared",
		},
		{
			name: "explicit reserved flag",
			cfg: Config{Name: "c", Args: []*Spec{
				{Name: "host", Type: codec.TypeString, Flags: []string{"-h"}},
			}},
			want: "reserved",
		},
		{
			name: "numeric flag",
			cfg: Config{Name: "c", Args: []*Spec{
				{Name: "one", Type: codec.TypeInt, Flags: []string{"-1"}},
			}},
			want: "negative number",
		},
		{
			name: "two bare arguments",
			cfg: Config{Name: "c", Args: []*Spec{
				{Name: "first", Type: codec.TypeString, Positional: true},
				{Name: "second", Type: codec.TypeString, Positional: true},
			}},
			want: "at most one bare",
		},
		{
			name: "bare argument with flags",
			cfg: Config{Name: "c", Args: []*Spec{
				{Name: "x", Type: codec.TypeString, Positional: true, Flags: []string{"--x"}},
			}},
			want: "cannot declare flags",
		},
		{
			name: "bare switch",
			cfg: Config{Name: "c", Args: []*Spec{
				{Name: "debug", Type: codec.TypeBool, Default: false, Positional: true},
			}},
			want: "cannot be bare",
		},
		{
			name: "many switch",
			cfg: Config{Name: "c", Args: []*Spec{
				{Name: "debug", Type: codec.TypeBool, Default: false, Arity: Many},
			}},
			want: "single arity",
		},
		{
			name: "default of wrong type",
			cfg: Config{Name: "c", Args: []*Spec{
				{Name: "port", Type: codec.TypeInt, Default: "8080"},
			}},
			want: "invalid default",
		},
		{
			name: "scalar default for many arity",
			cfg: Config{Name: "c", Args: []*Spec{
				{Name: "texts", Type: codec.TypeString, Arity: Many, Default: "nothing"},
			}},
			want: "must be a slice",
		},
		{
			name: "default length vs exact arity",
			cfg: Config{Name: "c", Args: []*Spec{
				{Name: "pair", Type: codec.TypeInt, Arity: Exactly(2), Default: []int{1, 2, 3}},
			}},
			want: "arity wants",
		},
		{
			name: "default fails user validator",
			cfg: Config{Name: "c", Args: []*Spec{
				{Name: "port", Type: codec.TypeInt, Default: 5, Valid: func(v any) bool {
					n, _ := v.(int)
					return n >= 10
				}},
			}},
			want: "fails validation",
		},
		{
			name: "reserved subcommand name",
			cfg: Config{Name: "c", Subcommands: map[string]*Schema{
				"gui": mustSchema(t, Config{Name: "g"}),
			}},
			want: "reserved",
		},
		{
			name: "subcommand collides with argument",
			cfg: Config{
				Name: "c",
				Args: []*Spec{{Name: "move", Type: codec.TypeString}},
				Subcommands: map[string]*Schema{
					"move": mustSchema(t, Config{Name: "move"}),
				},
			},
			want: "collides",
		},
		{
			name: "nil subcommand",
			cfg: Config{Name: "c", Subcommands: map[string]*Schema{
				"sub": nil,
			}},
			want: "nil subcommand",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.cfg)
			require.Error(t, err)

			var cfgErr *ConfigError
			require.True(t, errors.As(err, &cfgErr), "expected a ConfigError, got %T", err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestNew_DefaultsNormalized(t *testing.T) {
	s, err := New(Config{
		Name: "say",
		Args: []*Spec{
			{Name: "texts", Type: codec.TypeString, Arity: Many, Default: []string{"nothing"}},
		},
	})
	require.NoError(t, err)

	texts, _ := s.Lookup("texts")
	assert.Equal(t, []any{"nothing"}, texts.Default, "typed slice defaults normalize to []any")
}

func TestNew_StructuralDefaultCheck(t *testing.T) {
	reg := codec.NewRegistry()
	require.NoError(t, reg.Register("proto", codec.Choice("http", "https")))

	_, err := New(Config{
		Name:     "server",
		Registry: reg,
		Args: []*Spec{
			{Name: "proto", Type: "proto", Default: "gopher"},
		},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid default")

	_, err = New(Config{
		Name:     "server",
		Registry: reg,
		Args: []*Spec{
			{Name: "proto", Type: "proto", Default: "https"},
		},
	})
	assert.NoError(t, err)
}

func TestNew_SharedRegistry(t *testing.T) {
	reg := codec.NewRegistry()
	require.NoError(t, reg.Register("proto", codec.Choice("http", "https")))

	child := mustSchema(t, Config{
		Name:     "start",
		Registry: reg,
		Args:     []*Spec{{Name: "proto", Type: "proto", Default: "http"}},
	})

	root, err := New(Config{
		Name:        "server",
		Registry:    reg,
		Subcommands: map[string]*Schema{"start": child},
	})
	require.NoError(t, err)

	assert.Same(t, reg, root.Registry())
	sub, ok := root.Sub("start")
	require.True(t, ok)
	assert.Same(t, reg, sub.Registry())
}

func TestNew_DoesNotMutateInput(t *testing.T) {
	src := &Spec{Name: "texts", Type: codec.TypeString, Arity: Many, Default: []string{"nothing"}}

	_, err := New(Config{Name: "say", Args: []*Spec{src}})
	require.NoError(t, err)

	assert.Nil(t, src.Flags, "caller's declaration must stay untouched")
	assert.Equal(t, []string{"nothing"}, src.Default)
}

func TestSpec_IsSwitch(t *testing.T) {
	tests := []struct {
		name string
		spec Spec
		want bool
	}{
		{name: "bool false default", spec: Spec{Type: codec.TypeBool, Default: false}, want: true},
		{name: "bool true default", spec: Spec{Type: codec.TypeBool, Default: true}, want: false},
		{name: "bool no default", spec: Spec{Type: codec.TypeBool}, want: false},
		{name: "non-bool false default", spec: Spec{Type: codec.TypeInt, Default: false}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.spec.IsSwitch())
		})
	}
}

func TestSpec_Required(t *testing.T) {
	required := Spec{Name: "x", Type: codec.TypeString}
	assert.True(t, required.Required())

	optional := Spec{Name: "x", Type: codec.TypeString, Default: ""}
	assert.False(t, optional.Required(), "an empty string default still counts as a default")
}

func TestSchema_Subcommands(t *testing.T) {
	root := mustSchema(t, Config{
		Name: "ship",
		Subcommands: map[string]*Schema{
			"sink": mustSchema(t, Config{Name: "sink"}),
			"move": mustSchema(t, Config{Name: "move"}),
		},
	})

	assert.Equal(t, []string{"move", "sink"}, root.Subcommands())

	_, ok := root.Sub("move")
	assert.True(t, ok)
	_, ok = root.Sub("fly")
	assert.False(t, ok)
}

func mustSchema(t *testing.T, cfg Config) *Schema {
	t.Helper()
	s, err := New(cfg)
	require.NoError(t, err)
	return s
}
