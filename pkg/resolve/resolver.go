package resolve

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/platinummonkey/cog/pkg/codec"
	"github.com/platinummonkey/cog/pkg/schema"
)

// Resolve binds tokens to the schema's declarations and returns the decoded
// mapping. It never mutates the schema and holds no state between calls:
// equal inputs give equal results.
func Resolve(s *schema.Schema, tokens []string) (schema.Mapping, error) {
	// Phase 1: split the token sequence at the first declared flag.
	flagStart := len(tokens)
	for i, tok := range tokens {
		if _, isFlag := s.LookupFlag(tok); isFlag {
			flagStart = i
			break
		}
		if flagLike(tok) {
			return nil, &UnknownFlagError{Flag: tok, Suggestion: suggestFlag(s, tok)}
		}
	}
	positional := tokens[:flagStart]
	flagged := tokens[flagStart:]

	// Phase 2: declarations addressed by flag skip positional binding.
	targeted := make(map[string]bool)
	for _, tok := range flagged {
		if arg, isFlag := s.LookupFlag(tok); isFlag {
			targeted[arg.Name] = true
		}
	}

	raw := make(map[string][]string)
	switchOn := make(map[string]bool)

	// Phase 3: positional binding.
	if err := bindPositional(s, positional, targeted, raw); err != nil {
		return nil, err
	}

	// Phase 4: flagged binding.
	if err := bindFlagged(s, flagged, flagStart, raw, switchOn); err != nil {
		return nil, err
	}

	// Phase 5: defaulting.
	for _, arg := range s.Args() {
		if switchOn[arg.Name] || len(raw[arg.Name]) > 0 {
			continue
		}
		if arg.Required() {
			return nil, &MissingRequiredError{Arg: arg.Name}
		}
	}

	// Phase 6: decoding.
	reg := s.Registry()
	decoded := make(map[string]any)
	for _, arg := range s.Args() {
		rawVals := raw[arg.Name]
		if len(rawVals) == 0 {
			continue
		}
		v, err := decodeArg(reg, arg, rawVals)
		if err != nil {
			return nil, err
		}
		decoded[arg.Name] = v
	}

	// Phase 7: validation of supplied values. Defaults were validated when
	// the schema was built.
	for _, arg := range s.Args() {
		v, supplied := decoded[arg.Name]
		if !supplied {
			continue
		}
		if err := validateArg(reg, arg, v); err != nil {
			return nil, err
		}
	}

	vals := make(schema.Mapping, len(s.Args()))
	for _, arg := range s.Args() {
		switch {
		case switchOn[arg.Name]:
			vals[arg.Name] = true
		case len(raw[arg.Name]) > 0:
			vals[arg.Name] = decoded[arg.Name]
		default:
			vals[arg.Name] = defaultValue(arg)
		}
	}
	return vals, nil
}

// bindPositional assigns the positional region to declarations in order,
// skipping flag-targeted declarations and switches.
func bindPositional(s *schema.Schema, positional []string, targeted map[string]bool, raw map[string][]string) error {
	candidates := make([]*schema.Spec, 0, len(s.Args()))
	for _, arg := range s.Args() {
		if targeted[arg.Name] || arg.IsSwitch() {
			continue
		}
		candidates = append(candidates, arg)
	}

	// Two unbounded candidates cannot share positional tokens: any split
	// point would be arbitrary.
	if len(positional) > 0 {
		first := ""
		for _, arg := range candidates {
			if !arg.Arity.IsMany() {
				continue
			}
			if first == "" {
				first = arg.Name
				continue
			}
			return &AmbiguousArityError{First: first, Second: arg.Name}
		}
	}

	rest := positional
	for _, arg := range candidates {
		if len(rest) == 0 {
			break
		}
		if arg.Arity.IsMany() {
			raw[arg.Name] = rest
			rest = nil
			continue
		}
		n := arg.Arity.Count()
		if len(rest) < n {
			// Partial fill; the count check fails it during validation.
			raw[arg.Name] = rest
			rest = nil
			continue
		}
		raw[arg.Name] = rest[:n]
		rest = rest[n:]
	}

	if len(rest) > 0 {
		return &OrderError{Token: rest[0], Position: len(positional) - len(rest)}
	}
	return nil
}

// bindFlagged walks the flagged region. offset is the region's index in the
// full token sequence, for error positions.
func bindFlagged(s *schema.Schema, flagged []string, offset int, raw map[string][]string, switchOn map[string]bool) error {
	i := 0
	for i < len(flagged) {
		tok := flagged[i]
		arg, isFlag := s.LookupFlag(tok)
		if !isFlag {
			if flagLike(tok) {
				return &UnknownFlagError{Flag: tok, Suggestion: suggestFlag(s, tok)}
			}
			return &OrderError{Token: tok, Position: offset + i}
		}
		i++

		if arg.IsSwitch() {
			switchOn[arg.Name] = true
			continue
		}

		vals, consumed, err := collectValues(s, arg, flagged[i:])
		if err != nil {
			return err
		}
		i += consumed

		// Later occurrences win, including one with no values.
		if len(vals) > 0 {
			raw[arg.Name] = vals
		} else {
			delete(raw, arg.Name)
		}
	}
	return nil
}

// collectValues takes value tokens for a flag up to its arity bound and the
// next declared flag. Unknown flag-looking tokens never bind as values.
func collectValues(s *schema.Schema, arg *schema.Spec, rest []string) ([]string, int, error) {
	limit := arg.Arity.Count()
	var vals []string

	for i, tok := range rest {
		if !arg.Arity.IsMany() && len(vals) == limit {
			return vals, i, nil
		}
		if _, isFlag := s.LookupFlag(tok); isFlag {
			return vals, i, nil
		}
		if flagLike(tok) {
			return nil, 0, &UnknownFlagError{Flag: tok, Suggestion: suggestFlag(s, tok)}
		}
		vals = append(vals, tok)
	}
	return vals, len(rest), nil
}

func decodeArg(reg *codec.Registry, arg *schema.Spec, rawVals []string) (any, error) {
	if arg.Arity.IsSingle() {
		v, err := reg.Decode(arg.Type, rawVals[0])
		if err != nil {
			return nil, &DecodeError{Arg: arg.Name, Type: arg.Type, Token: rawVals[0], Err: err}
		}
		return v, nil
	}

	elems := make([]any, 0, len(rawVals))
	for _, tok := range rawVals {
		v, err := reg.Decode(arg.Type, tok)
		if err != nil {
			return nil, &DecodeError{Arg: arg.Name, Type: arg.Type, Token: tok, Err: err}
		}
		elems = append(elems, v)
	}
	return elems, nil
}

func validateArg(reg *codec.Registry, arg *schema.Spec, v any) error {
	if arg.Arity.IsSingle() {
		if err := reg.Check(arg.Type, v); err != nil {
			return &ValidationError{Arg: arg.Name, Value: v, Err: err}
		}
	} else {
		elems := v.([]any)
		if !arg.Arity.IsMany() && len(elems) != arg.Arity.Count() {
			return &ValidationError{
				Arg:   arg.Name,
				Value: v,
				Err:   fmt.Errorf("want %d values, got %d", arg.Arity.Count(), len(elems)),
			}
		}
		for _, elem := range elems {
			if err := reg.Check(arg.Type, elem); err != nil {
				return &ValidationError{Arg: arg.Name, Value: elem, Err: err}
			}
		}
	}

	if arg.Valid != nil && !arg.Valid(v) {
		return &ValidationError{Arg: arg.Name, Value: v}
	}
	return nil
}

// defaultValue copies slice defaults so callers cannot alias schema state.
func defaultValue(arg *schema.Spec) any {
	if elems, ok := arg.Default.([]any); ok {
		return append([]any(nil), elems...)
	}
	return arg.Default
}

// flagLike reports whether a token would be read as a flag: it starts with
// the marker and is not a negative number.
func flagLike(tok string) bool {
	if len(tok) < 2 || !strings.HasPrefix(tok, "-") {
		return false
	}
	if _, err := strconv.ParseFloat(tok, 64); err == nil {
		return false
	}
	return true
}
