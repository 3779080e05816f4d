package codec

import "errors"

var (
	// ErrCodecNotFound is returned when a type key is not registered
	ErrCodecNotFound = errors.New("codec not found")

	// ErrCodecExists is returned when registering a type key twice
	ErrCodecExists = errors.New("codec already registered")

	// ErrInvalidCodec is returned when a codec is missing its key or functions
	ErrInvalidCodec = errors.New("invalid codec")
)
