package resolve

import (
	"fmt"

	"github.com/platinummonkey/cog/pkg/codec"
	"github.com/platinummonkey/cog/pkg/schema"
)

// Encode renders a mapping back to command-line tokens: bare argument
// values first, then every other argument in flagged form. For any mapping
// produced by Resolve, resolving the encoded tokens yields an equal
// mapping. Names absent from the mapping fall back to their defaults;
// required names must be present.
func Encode(s *schema.Schema, m schema.Mapping) ([]string, error) {
	reg := s.Registry()

	var head, tail []string
	for _, arg := range s.Args() {
		v, exists := m[arg.Name]
		if !exists {
			if arg.Required() {
				return nil, &MissingRequiredError{Arg: arg.Name}
			}
			continue
		}

		if arg.IsSwitch() {
			on, ok := v.(bool)
			if !ok {
				return nil, fmt.Errorf("failed to encode argument %q: expected bool, got %T", arg.Name, v)
			}
			if on {
				tail = append(tail, arg.LongFlag())
			}
			continue
		}

		vals, err := encodeValues(reg, arg, v)
		if err != nil {
			return nil, err
		}

		if arg.Positional {
			head = append(head, vals...)
			continue
		}
		if len(vals) == 0 {
			// An unbounded argument holding no elements has no flagged
			// form; omission resolves to its default.
			continue
		}
		tail = append(tail, arg.LongFlag())
		tail = append(tail, vals...)
	}

	return append(head, tail...), nil
}

func encodeValues(reg *codec.Registry, arg *schema.Spec, v any) ([]string, error) {
	if arg.Arity.IsSingle() {
		token, err := reg.Encode(arg.Type, v)
		if err != nil {
			return nil, fmt.Errorf("failed to encode argument %q: %w", arg.Name, err)
		}
		return []string{token}, nil
	}

	elems, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("failed to encode argument %q: expected []any, got %T", arg.Name, v)
	}
	tokens := make([]string, 0, len(elems))
	for _, elem := range elems {
		token, err := reg.Encode(arg.Type, elem)
		if err != nil {
			return nil, fmt.Errorf("failed to encode argument %q: %w", arg.Name, err)
		}
		tokens = append(tokens, token)
	}
	return tokens, nil
}
