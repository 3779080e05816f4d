// Package codec provides the type registry that converts command-line tokens
// to typed values and back.
//
// # Overview
//
// Every argument declaration names its element type by a string key. A
// Registry maps those keys to Codec values: a Decode function (token to
// typed value), an Encode function (typed value to canonical token), and an
// optional Check function for structural constraints on decoded values.
// Registration is explicit; there is no global registry. Each command-schema
// tree owns one Registry, so custom types registered for one tree never leak
// into another.
//
// # Built-in Types
//
// NewRegistry pre-loads the intrinsic types:
//
//	string    identity
//	int       strconv integer
//	float     float64
//	bool      true/yes/t/y/1 and false/no/f/n/0, case-insensitive
//	datetime  2006-01-02T15:04:05
//	date      2006-01-02
//	time      15:04:05
//	duration  HH:MM:SS clock form, or Go duration syntax on decode
//
// # Constrained Types
//
// Choice, File, and Folder build codecs with extra structural checks, meant
// to be registered under caller-chosen keys:
//
//	reg := codec.NewRegistry()
//	err := reg.Register("proto", codec.Choice("http", "https"))
//	err = reg.Register("logfile", codec.File(false, ".log", ".txt"))
//
// Structural checks run during the validation phase of resolution, not
// during decode, so a bad value reports as a validation failure against its
// declaration.
package codec
