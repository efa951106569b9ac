package eval

import (
	"fmt"

	"github.com/DjordjeVuckovic/trial-score/internal/apperr"
)

// KeyPair is one ground-truth line: the correct model for a segment.
type KeyPair struct {
	Model   string
	Segment string
}

// Key maps each segment to its single correct model.
type Key struct {
	models   map[string]string
	segments []string
}

// NewKey builds a key. A segment listed twice is a DuplicateEntryError.
func NewKey(pairs []KeyPair) (*Key, error) {
	k := &Key{
		models:   make(map[string]string, len(pairs)),
		segments: make([]string, 0, len(pairs)),
	}
	for i, p := range pairs {
		if p.Model == "" || p.Segment == "" {
			return nil, fmt.Errorf("key entry %d: %w", i+1, apperr.NewMalformed(p.Model+" "+p.Segment, "empty model or segment id"))
		}
		if _, dup := k.models[p.Segment]; dup {
			return nil, fmt.Errorf("key entry %d: %w", i+1, apperr.NewDuplicateEntry("", p.Segment))
		}
		k.models[p.Segment] = p.Model
		k.segments = append(k.segments, p.Segment)
	}
	return k, nil
}

// Model returns the correct model for a segment.
func (k *Key) Model(segment string) (string, bool) {
	m, ok := k.models[segment]
	return m, ok
}

func (k *Key) Len() int { return len(k.segments) }

// Segments returns the keyed segments in input order.
func (k *Key) Segments() []string {
	return append([]string(nil), k.segments...)
}
