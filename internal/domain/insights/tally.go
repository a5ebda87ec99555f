package insights

import (
	"bytes"
	"encoding/json"
)

// Tally counts occurrences of string keys and remembers the order in which
// each key was first seen. The zero value is ready to use.
type Tally struct {
	keys   []string
	counts map[string]int
}

// Add increments the count for key and returns the new count.
func (t *Tally) Add(key string) int {
	if t.counts == nil {
		t.counts = make(map[string]int)
	}
	if _, seen := t.counts[key]; !seen {
		t.keys = append(t.keys, key)
	}
	t.counts[key]++
	return t.counts[key]
}

// Get returns the count for key, zero when unseen.
func (t *Tally) Get(key string) int {
	return t.counts[key]
}

// Len returns the number of distinct keys.
func (t *Tally) Len() int {
	return len(t.keys)
}

// Keys returns the keys in first-seen order.
func (t *Tally) Keys() []string {
	out := make([]string, len(t.keys))
	copy(out, t.keys)
	return out
}

// Total returns the sum of all counts.
func (t *Tally) Total() int {
	sum := 0
	for _, k := range t.keys {
		sum += t.counts[k]
	}
	return sum
}

// Max returns the key with the highest count. Among equal counts the key
// seen first wins. ok is false for an empty tally.
func (t *Tally) Max() (key string, count int, ok bool) {
	for _, k := range t.keys {
		if c := t.counts[k]; !ok || c > count {
			key, count, ok = k, c, true
		}
	}
	return key, count, ok
}

// MarshalJSON encodes the tally as a JSON object in first-seen key order.
func (t Tally) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range t.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		value, err := json.Marshal(t.counts[k])
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
