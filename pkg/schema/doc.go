// Package schema declares the arguments a command accepts and composes
// commands into trees.
//
// # Overview
//
// A Spec describes one argument: its name, element type (a codec key), how
// many tokens it consumes (Arity), an optional default, an optional user
// validator, and the flags that select it. A Schema is an ordered list of
// Specs plus an optional target callable and named subcommand schemas.
//
// New validates the whole configuration up front and returns a ConfigError
// describing the first problem, so a schema that constructs at all is safe
// to resolve against. Construction normalizes private copies of the given
// Specs; the originals are never touched and a built Schema is never
// mutated, which makes it safe to attach one schema under several parents.
//
// # Usage Example
//
//	move, err := schema.New(schema.Config{
//		Name: "move",
//		Args: []*schema.Spec{
//			{Name: "dx", Type: codec.TypeInt, Help: "distance east"},
//			{Name: "dy", Type: codec.TypeInt, Help: "distance north"},
//		},
//		Target: func(vals schema.Mapping) error {
//			return ship.Move(vals.Int("dx"), vals.Int("dy"))
//		},
//	})
//
// Flags derive from names: dx gets --dx and -d, dy gets --dy (its short
// form collides and is dropped). A bool argument whose default is exactly
// false is a switch: bare --flag sets it true and it never consumes a
// following token.
package schema
