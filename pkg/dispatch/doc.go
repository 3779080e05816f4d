// Package dispatch routes token streams to command schemas and runs their
// targets.
//
// # Overview
//
// A Dispatcher walks a schema tree: while the leading token names a
// subcommand it descends, then resolves the remaining tokens against the
// innermost schema and invokes its target with the resulting mapping. The
// reserved words "help" and "gui" plus the flags --help and -h are
// intercepted before any resolution, so they work on every schema without
// being declared.
//
// Targets signal a clean shutdown by returning ErrTerminate; the dispatcher
// passes it through unwrapped so driving loops can test for it with
// errors.Is. Panics inside a target are recovered and surfaced as errors.
//
// # Usage
//
//	d := dispatch.NewDispatcher(&dispatch.Config{})
//	res, err := d.Dispatch(ctx, root, tokenize.Split(line))
//	if errors.Is(err, dispatch.ErrTerminate) {
//	    return
//	}
package dispatch
