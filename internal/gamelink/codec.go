package gamelink

import (
	"sync"

	"github.com/interverse/verse-go/internal/domain"
)

// EncodeFunc serializes a game object into the flat string map that crosses
// a game link. Encoders choose which fields travel; anything omitted stays
// behind.
type EncodeFunc func(obj interface{}) (map[string]string, error)

// DecodeFunc rebuilds a game object from transferred data. It must return a
// fully built object or an error, never a partial one.
type DecodeFunc func(data map[string]string) (interface{}, error)

type codec struct {
	encode EncodeFunc
	decode DecodeFunc
}

// CodecRegistry maps object type tags to their encode/decode pair. Games
// register a codec per transferable class at startup.
type CodecRegistry struct {
	mu     sync.RWMutex
	codecs map[string]codec
}

// NewCodecRegistry creates an empty registry.
func NewCodecRegistry() *CodecRegistry {
	return &CodecRegistry{
		codecs: make(map[string]codec),
	}
}

// Register binds a type tag to its codec pair, replacing any previous
// binding for the tag.
func (r *CodecRegistry) Register(typeTag string, encode EncodeFunc, decode DecodeFunc) error {
	if typeTag == "" || encode == nil || decode == nil {
		return domain.ErrInvalidInput
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.codecs[typeTag] = codec{encode: encode, decode: decode}
	return nil
}

// Has reports whether a codec is registered for the tag.
func (r *CodecRegistry) Has(typeTag string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.codecs[typeTag]
	return ok
}

func (r *CodecRegistry) get(typeTag string) (codec, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.codecs[typeTag]
	return c, ok
}
