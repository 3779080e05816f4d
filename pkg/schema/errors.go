package schema

import "fmt"

// Words the dispatcher routes before any resolution. Argument and
// subcommand names may not use them.
const (
	ReservedHelp = "help"
	ReservedGUI  = "gui"
)

// Flags claimed by the dispatcher's help interception.
var reservedFlags = map[string]struct{}{
	"--help": {},
	"-h":     {},
	"--gui":  {},
}

func isReservedName(name string) bool {
	return name == ReservedHelp || name == ReservedGUI
}

// ConfigError reports an invalid schema configuration. Construction stops
// at the first problem found.
type ConfigError struct {
	Schema string
	Arg    string
	Msg    string
}

func (e *ConfigError) Error() string {
	if e.Arg != "" {
		return fmt.Sprintf("schema %q: argument %q: %s", e.Schema, e.Arg, e.Msg)
	}
	return fmt.Sprintf("schema %q: %s", e.Schema, e.Msg)
}

func configErrorf(schema, arg, format string, args ...any) *ConfigError {
	return &ConfigError{
		Schema: schema,
		Arg:    arg,
		Msg:    fmt.Sprintf(format, args...),
	}
}
