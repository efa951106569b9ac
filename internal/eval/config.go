package eval

import (
	"fmt"
	"slices"
)

var DefaultKValues = []int{1, 2, 3, 5}

const (
	DefaultRankedDepth = 5
)

type Config struct {
	KValues     []int
	RankedDepth int
}

func DefaultConfig() Config {
	return Config{
		KValues:     DefaultKValues,
		RankedDepth: DefaultRankedDepth,
	}
}

// normalize sorts and de-duplicates K values so correct@K is reported in
// ascending, nested order.
func (c Config) normalize() (Config, error) {
	if len(c.KValues) == 0 {
		c.KValues = DefaultKValues
	}
	ks := slices.Clone(c.KValues)
	for _, k := range ks {
		if k <= 0 {
			return c, fmt.Errorf("k value must be positive, got %d", k)
		}
	}
	slices.Sort(ks)
	c.KValues = slices.Compact(ks)

	if c.RankedDepth <= 0 {
		c.RankedDepth = DefaultRankedDepth
	}
	return c, nil
}
