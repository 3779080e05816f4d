package resolve

import "fmt"

// OrderError reports a positional token where none may bind: after the
// flagged region began, or left over once every declaration is filled.
type OrderError struct {
	Token    string
	Position int
}

func (e *OrderError) Error() string {
	return fmt.Sprintf("unexpected positional token %q at position %d", e.Token, e.Position)
}

// AmbiguousArityError reports two unbounded declarations competing for the
// same positional tokens. The split point is undecidable, whichever
// declaration comes first.
type AmbiguousArityError struct {
	First  string
	Second string
}

func (e *AmbiguousArityError) Error() string {
	return fmt.Sprintf("cannot split positional tokens between %q and %q: both consume many", e.First, e.Second)
}

// UnknownFlagError reports a token that looks like a flag but matches no
// declared flag.
type UnknownFlagError struct {
	Flag       string
	Suggestion string
}

func (e *UnknownFlagError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("unknown flag %q (did you mean %q?)", e.Flag, e.Suggestion)
	}
	return fmt.Sprintf("unknown flag %q", e.Flag)
}

// MissingRequiredError reports a declaration without a default that no
// token filled.
type MissingRequiredError struct {
	Arg string
}

func (e *MissingRequiredError) Error() string {
	return fmt.Sprintf("missing required argument %q", e.Arg)
}

// DecodeError reports a token the declaration's codec rejected.
type DecodeError struct {
	Arg   string
	Type  string
	Token string
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("argument %q: cannot decode %q as %s: %v", e.Arg, e.Token, e.Type, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// ValidationError reports a decoded value that failed its structural check
// or the declaration's validator.
type ValidationError struct {
	Arg   string
	Value any
	Err   error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("argument %q: invalid value %v: %v", e.Arg, e.Value, e.Err)
	}
	return fmt.Sprintf("argument %q: value %v rejected by validator", e.Arg, e.Value)
}

func (e *ValidationError) Unwrap() error { return e.Err }
