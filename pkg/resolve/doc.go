// Package resolve binds token sequences to typed values against a command
// schema.
//
// # Overview
//
// Resolve is a pure function over a schema and a token slice. It runs fixed
// phases:
//
//  1. Region split: tokens before the first declared flag are positional,
//     the rest flagged. Flag-looking tokens that match nothing and are not
//     numbers fail as unknown flags.
//  2. Flag pre-scan: declarations targeted by a flag in the flagged region
//     are exempt from positional binding.
//  3. Positional binding in declaration order. Single arity takes one
//     token, exact arity its count, unbounded arity everything left. Two
//     unbounded candidates with tokens to split is an ambiguity failure.
//     Switches never bind positionally.
//  4. Flagged binding left to right. A switch binds true by presence and
//     consumes nothing; other arities collect value tokens up to the next
//     declared flag. A later occurrence of a flag overwrites the earlier.
//  5. Defaulting: unfilled declarations take their default or fail as
//     missing when required.
//  6. Decoding through the schema's codec registry, element-wise.
//  7. Validation: structural checks, exact-arity counts, then the
//     declaration's validator.
//
// The first error wins, in phase order. A successful mapping holds a value
// for every declaration.
//
// Encode is the inverse: it renders a mapping back to tokens that resolve
// to the same mapping, which is what the command-line store persists.
//
// # Usage Example
//
//	vals, err := resolve.Resolve(s, tokenize.Split(`Ann -t Hello Goodbye`))
//	if err != nil {
//		var unknown *resolve.UnknownFlagError
//		if errors.As(err, &unknown) && unknown.Suggestion != "" {
//			fmt.Printf("did you mean %s?\n", unknown.Suggestion)
//		}
//		return err
//	}
//	fmt.Println(vals.String("name"), vals.Strings("texts"))
package resolve
