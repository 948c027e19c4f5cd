// Package practice holds the interaction logic of a word practice session:
// loading a word, editing a sentence draft, and scoring it.
package practice

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Difficulty is the tier a practice word belongs to. Values other than the
// three known tiers are kept verbatim so they can still be displayed.
type Difficulty string

const (
	Beginner     Difficulty = "Beginner"
	Intermediate Difficulty = "Intermediate"
	Advanced     Difficulty = "Advanced"
)

// Known reports whether d is one of the three defined tiers.
func (d Difficulty) Known() bool {
	switch d {
	case Beginner, Intermediate, Advanced:
		return true
	}
	return false
}

// WordID is an optional word identifier. The zero value is absent.
type WordID struct {
	value int64
	valid bool
}

// NewWordID returns a present identifier.
func NewWordID(v int64) WordID { return WordID{value: v, valid: true} }

// Get returns the identifier and whether it is present.
func (id WordID) Get() (int64, bool) { return id.value, id.valid }

func (id WordID) String() string {
	if !id.valid {
		return "<none>"
	}
	return strconv.FormatInt(id.value, 10)
}

// MarshalJSON encodes an absent identifier as null.
func (id WordID) MarshalJSON() ([]byte, error) {
	if !id.valid {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatInt(id.value, 10)), nil
}

// UnmarshalJSON accepts an integer or null.
func (id *WordID) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		*id = WordID{}
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("word id: %w", err)
	}
	v, err := n.Int64()
	if err != nil {
		f, ferr := n.Float64()
		if ferr != nil || f != float64(int64(f)) {
			return fmt.Errorf("word id %s is not an integer", n)
		}
		v = int64(f)
	}
	*id = NewWordID(v)
	return nil
}

// Word is a vocabulary item presented for practice.
type Word struct {
	ID         WordID     `json:"id"`
	Word       string     `json:"word"`
	Meaning    string     `json:"meaning"`
	Difficulty Difficulty `json:"difficulty"`
}
