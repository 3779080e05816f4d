package dispatch

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platinummonkey/cog/pkg/codec"
	"github.com/platinummonkey/cog/pkg/resolve"
	"github.com/platinummonkey/cog/pkg/schema"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// shipRoot builds the interactive demo tree: ship <name> with move, sink and
// quit subcommands. Each target records the mapping it was called with.
type shipCalls struct {
	created string
	moves   []schema.Mapping
	quits   int
}

func shipRoot(t *testing.T, calls *shipCalls) *schema.Schema {
	t.Helper()

	move, err := schema.New(schema.Config{
		Name: "move",
		Help: "move the ship",
		Args: []*schema.Spec{
			{Name: "dx", Type: codec.TypeInt},
			{Name: "dy", Type: codec.TypeInt},
		},
		Target: func(vals schema.Mapping) error {
			calls.moves = append(calls.moves, vals)
			return nil
		},
	})
	require.NoError(t, err)

	sink, err := schema.New(schema.Config{
		Name: "sink",
		Help: "sink the ship",
		Args: []*schema.Spec{
			{Name: "sunk", Type: codec.TypeBool, Default: false},
		},
	})
	require.NoError(t, err)

	quit, err := schema.New(schema.Config{
		Name: "quit",
		Help: "leave the game",
		Target: func(schema.Mapping) error {
			calls.quits++
			return ErrTerminate
		},
	})
	require.NoError(t, err)

	root, err := schema.New(schema.Config{
		Name: "ship",
		Args: []*schema.Spec{
			{Name: "name", Type: codec.TypeString, Positional: true},
		},
		Target: func(vals schema.Mapping) error {
			calls.created = vals.String("name")
			return nil
		},
		Subcommands: map[string]*schema.Schema{
			"move": move,
			"sink": sink,
			"quit": quit,
		},
	})
	require.NoError(t, err)
	return root
}

func TestDispatch_InvokesTarget(t *testing.T) {
	var calls shipCalls
	root := shipRoot(t, &calls)
	d := NewDispatcher(&Config{Log: quietLogger(), Out: io.Discard})

	res, err := d.Dispatch(context.Background(), root, []string{"Fortuna"})
	require.NoError(t, err)

	assert.Equal(t, "Fortuna", calls.created)
	assert.True(t, res.Invoked)
	assert.Equal(t, []string{"ship"}, res.Path)
	assert.Equal(t, "Fortuna", res.Values.String("name"))
	assert.NotEqual(t, uuid.Nil, res.ID)
}

func TestDispatch_SubcommandWalk(t *testing.T) {
	var calls shipCalls
	root := shipRoot(t, &calls)
	d := NewDispatcher(&Config{Log: quietLogger(), Out: io.Discard})

	res, err := d.Dispatch(context.Background(), root, []string{"move", "2", "3"})
	require.NoError(t, err)

	require.Len(t, calls.moves, 1)
	assert.Equal(t, 2, calls.moves[0].Int("dx"))
	assert.Equal(t, 3, calls.moves[0].Int("dy"))
	assert.Equal(t, []string{"ship", "move"}, res.Path)
	assert.Equal(t, "move", res.Command.Name())
	assert.True(t, res.Invoked)
}

func TestDispatch_NestedSubcommands(t *testing.T) {
	var got schema.Mapping
	leaf, err := schema.New(schema.Config{
		Name: "set",
		Args: []*schema.Spec{{Name: "level", Type: codec.TypeString}},
		Target: func(vals schema.Mapping) error {
			got = vals
			return nil
		},
	})
	require.NoError(t, err)

	mid, err := schema.New(schema.Config{
		Name:        "log",
		Subcommands: map[string]*schema.Schema{"set": leaf},
	})
	require.NoError(t, err)

	root, err := schema.New(schema.Config{
		Name:        "admin",
		Subcommands: map[string]*schema.Schema{"log": mid},
	})
	require.NoError(t, err)

	d := NewDispatcher(&Config{Log: quietLogger(), Out: io.Discard})
	res, err := d.Dispatch(context.Background(), root, []string{"log", "set", "--level", "debug"})
	require.NoError(t, err)

	assert.Equal(t, "debug", got.String("level"))
	assert.Equal(t, []string{"admin", "log", "set"}, res.Path)
}

func TestDispatch_HelpFirstToken(t *testing.T) {
	var calls shipCalls
	root := shipRoot(t, &calls)

	var out bytes.Buffer
	d := NewDispatcher(&Config{Log: quietLogger(), Out: &out})

	res, err := d.Dispatch(context.Background(), root, []string{"help"})
	require.NoError(t, err)

	assert.False(t, res.Invoked)
	assert.Nil(t, res.Values)
	assert.True(t, strings.HasPrefix(out.String(), "Usage: ship"), out.String())
	assert.Zero(t, calls.created)
}

func TestDispatch_HelpAddressesSubcommand(t *testing.T) {
	var calls shipCalls
	root := shipRoot(t, &calls)

	var out bytes.Buffer
	d := NewDispatcher(&Config{Log: quietLogger(), Out: &out})

	res, err := d.Dispatch(context.Background(), root, []string{"help", "move"})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out.String(), "Usage: move"), out.String())
	assert.Equal(t, "move", res.Command.Name())
	assert.Equal(t, []string{"ship", "move"}, res.Path)
}

func TestDispatch_HelpFlagAnywhere(t *testing.T) {
	var calls shipCalls
	root := shipRoot(t, &calls)

	var out bytes.Buffer
	d := NewDispatcher(&Config{Log: quietLogger(), Out: &out})

	res, err := d.Dispatch(context.Background(), root, []string{"move", "2", "--help"})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out.String(), "Usage: move"), out.String())
	assert.False(t, res.Invoked)
	assert.Empty(t, calls.moves)
}

func TestDispatch_GUIHook(t *testing.T) {
	var calls shipCalls
	root := shipRoot(t, &calls)

	var guiFor string
	d := NewDispatcher(&Config{
		Log: quietLogger(),
		Out: io.Discard,
		GUI: func(s *schema.Schema) error {
			guiFor = s.Name()
			return nil
		},
	})

	res, err := d.Dispatch(context.Background(), root, []string{"gui"})
	require.NoError(t, err)
	assert.Equal(t, "ship", guiFor)
	assert.False(t, res.Invoked)
}

func TestDispatch_GUIUnavailable(t *testing.T) {
	var calls shipCalls
	root := shipRoot(t, &calls)
	d := NewDispatcher(&Config{Log: quietLogger(), Out: io.Discard})

	_, err := d.Dispatch(context.Background(), root, []string{"gui"})
	require.ErrorIs(t, err, ErrGUIUnavailable)
}

func TestDispatch_TerminateSentinel(t *testing.T) {
	var calls shipCalls
	root := shipRoot(t, &calls)
	d := NewDispatcher(&Config{Log: quietLogger(), Out: io.Discard})

	_, err := d.Dispatch(context.Background(), root, []string{"quit"})
	require.ErrorIs(t, err, ErrTerminate)
	assert.Equal(t, 1, calls.quits)
}

func TestDispatch_TargetPanicRecovered(t *testing.T) {
	boom, err := schema.New(schema.Config{
		Name:   "boom",
		Target: func(schema.Mapping) error { panic("kaboom") },
	})
	require.NoError(t, err)

	d := NewDispatcher(&Config{Log: quietLogger(), Out: io.Discard})
	_, err = d.Dispatch(context.Background(), boom, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "panic")
	assert.Contains(t, err.Error(), "kaboom")
}

func TestDispatch_NoTargetExposesValues(t *testing.T) {
	var calls shipCalls
	root := shipRoot(t, &calls)
	d := NewDispatcher(&Config{Log: quietLogger(), Out: io.Discard})

	res, err := d.Dispatch(context.Background(), root, []string{"sink", "--sunk"})
	require.NoError(t, err)

	assert.False(t, res.Invoked)
	assert.True(t, res.Values.Bool("sunk"))
}

func TestDispatch_ContextCanceled(t *testing.T) {
	var calls shipCalls
	root := shipRoot(t, &calls)
	d := NewDispatcher(&Config{Log: quietLogger(), Out: io.Discard})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := d.Dispatch(ctx, root, []string{"Fortuna"})
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, calls.created, "target must not run after cancellation")
}

func TestDispatch_ResolutionErrorPassesThrough(t *testing.T) {
	var calls shipCalls
	root := shipRoot(t, &calls)
	d := NewDispatcher(&Config{Log: quietLogger(), Out: io.Discard})

	res, err := d.Dispatch(context.Background(), root, []string{"move", "2", "--dz", "3"})
	require.Error(t, err)
	assert.Nil(t, res)

	var unknown *resolve.UnknownFlagError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "--dz", unknown.Flag)
}

func TestDispatch_CustomHelpHook(t *testing.T) {
	var calls shipCalls
	root := shipRoot(t, &calls)

	var rendered string
	d := NewDispatcher(&Config{
		Log: quietLogger(),
		Out: io.Discard,
		Help: func(w io.Writer, s *schema.Schema) error {
			rendered = s.Name()
			return nil
		},
	})

	_, err := d.Dispatch(context.Background(), root, []string{"help", "sink"})
	require.NoError(t, err)
	assert.Equal(t, "sink", rendered)
}

func TestMain_ExitCodes(t *testing.T) {
	var calls shipCalls
	root := shipRoot(t, &calls)

	var out, errOut bytes.Buffer
	assert.Equal(t, 0, Main(root, []string{"Fortuna"}, &out, &errOut))
	assert.Empty(t, errOut.String())

	assert.Equal(t, 1, Main(root, []string{"move", "east", "3"}, &out, &errOut))
	assert.Contains(t, errOut.String(), "Error:")

	errOut.Reset()
	assert.Equal(t, 0, Main(root, []string{"quit"}, &out, &errOut), "termination is a clean exit")
	assert.Empty(t, errOut.String())
}
