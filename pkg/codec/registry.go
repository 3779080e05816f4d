package codec

import (
	"sort"
	"sync"
)

// Codec converts between command-line tokens and typed values.
type Codec struct {
	// Decode parses a single token into a typed value.
	Decode func(token string) (any, error)

	// Encode renders a typed value as its canonical token.
	Encode func(v any) (string, error)

	// Check validates structural constraints on an already-typed value.
	// Optional; nil means no constraints beyond decoding.
	Check func(v any) error
}

// Registry manages the codecs available to one command-schema tree
type Registry struct {
	mu     sync.RWMutex
	codecs map[string]Codec
}

// NewRegistry creates a registry pre-loaded with the built-in types
func NewRegistry() *Registry {
	r := &Registry{
		codecs: make(map[string]Codec),
	}
	registerBuiltins(r)
	return r
}

// Register adds a codec under a type key
func (r *Registry) Register(key string, c Codec) error {
	if key == "" || c.Decode == nil || c.Encode == nil {
		return ErrInvalidCodec
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.codecs[key]; exists {
		return ErrCodecExists
	}

	r.codecs[key] = c
	return nil
}

// Lookup retrieves a codec by type key
func (r *Registry) Lookup(key string) (Codec, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, exists := r.codecs[key]
	if !exists {
		return Codec{}, ErrCodecNotFound
	}

	return c, nil
}

// Has reports whether a type key is registered
func (r *Registry) Has(key string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.codecs[key]
	return exists
}

// Decode parses a token through the codec registered for key
func (r *Registry) Decode(key, token string) (any, error) {
	c, err := r.Lookup(key)
	if err != nil {
		return nil, err
	}

	return c.Decode(token)
}

// Encode renders a value through the codec registered for key
func (r *Registry) Encode(key string, v any) (string, error) {
	c, err := r.Lookup(key)
	if err != nil {
		return "", err
	}

	return c.Encode(v)
}

// Check runs the structural constraints of the codec registered for key.
// Codecs without constraints accept every value.
func (r *Registry) Check(key string, v any) error {
	c, err := r.Lookup(key)
	if err != nil {
		return err
	}

	if c.Check == nil {
		return nil
	}
	return c.Check(v)
}

// Keys returns all registered type keys in sorted order
func (r *Registry) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]string, 0, len(r.codecs))
	for key := range r.codecs {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	return keys
}

// Count returns the number of registered codecs
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.codecs)
}
