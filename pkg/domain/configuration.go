package domain

import (
	"slices"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// Configuration is a value snapshot of one branch: state, tapes and heads.
// Two configurations are equal iff all three parts are equal element-wise.
type Configuration struct {
	State string
	Tapes []string
	Heads []int
}

// Snapshot copies live tapes and heads into a Configuration.
func Snapshot(state string, tapes [][]Symbol, heads []int) Configuration {
	c := Configuration{
		State: state,
		Tapes: make([]string, len(tapes)),
		Heads: slices.Clone(heads),
	}
	for i, tape := range tapes {
		c.Tapes[i] = TapeString(tape)
	}
	return c
}

// TapeString renders a tape as a string.
func TapeString(tape []Symbol) string {
	rs := make([]rune, len(tape))
	for i, s := range tape {
		rs[i] = rune(s)
	}
	return string(rs)
}

// Equal reports structural equality.
func (c Configuration) Equal(o Configuration) bool {
	return c.State == o.State &&
		slices.Equal(c.Tapes, o.Tapes) &&
		slices.Equal(c.Heads, o.Heads)
}

// Hash derives a 64-bit digest from every component. Lengths are mixed in so
// that ("ab","c") and ("a","bc") hash apart.
func (c Configuration) Hash() uint64 {
	d := xxhash.New()
	var buf []byte
	buf = strconv.AppendInt(buf, int64(len(c.State)), 10)
	buf = append(buf, ':')
	_, _ = d.Write(buf)
	_, _ = d.WriteString(c.State)
	for _, t := range c.Tapes {
		buf = strconv.AppendInt(buf[:0], int64(len(t)), 10)
		buf = append(buf, ':')
		_, _ = d.Write(buf)
		_, _ = d.WriteString(t)
	}
	for _, h := range c.Heads {
		buf = strconv.AppendInt(buf[:0], int64(h), 10)
		buf = append(buf, ',')
		_, _ = d.Write(buf)
	}
	return d.Sum64()
}

// ConfigurationSet is a hash set of configurations with exact equality on
// collision. The zero value is not usable; call NewConfigurationSet.
type ConfigurationSet struct {
	buckets map[uint64][]Configuration
	size    int
}

// NewConfigurationSet returns an empty set.
func NewConfigurationSet() *ConfigurationSet {
	return &ConfigurationSet{buckets: make(map[uint64][]Configuration)}
}

// Contains reports whether c is in the set.
func (s *ConfigurationSet) Contains(c Configuration) bool {
	for _, o := range s.buckets[c.Hash()] {
		if o.Equal(c) {
			return true
		}
	}
	return false
}

// Add inserts c and reports whether it was absent.
func (s *ConfigurationSet) Add(c Configuration) bool {
	h := c.Hash()
	for _, o := range s.buckets[h] {
		if o.Equal(c) {
			return false
		}
	}
	s.buckets[h] = append(s.buckets[h], c)
	s.size++
	return true
}

// Len returns the number of distinct configurations stored.
func (s *ConfigurationSet) Len() int { return s.size }
