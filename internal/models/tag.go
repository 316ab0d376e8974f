package models

import (
	"errors"
	"fmt"
	"strings"
)

// Tag is an exclusive split-accounting category.
type Tag string

const (
	TagPersonal Tag = "PERSONAL"
	TagJoint    Tag = "JOINT"
)

// ErrUnknownTag is returned for any label outside the fixed tag set.
var ErrUnknownTag = errors.New("unknown tag")

// AllTags lists the supported tags in display order.
var AllTags = []Tag{TagPersonal, TagJoint}

// ParseTag converts a case-insensitive label into a Tag.
func ParseTag(s string) (Tag, error) {
	switch Tag(strings.ToUpper(strings.TrimSpace(s))) {
	case TagPersonal:
		return TagPersonal, nil
	case TagJoint:
		return TagJoint, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownTag, s)
	}
}

// Valid reports whether t is one of the supported tags.
func (t Tag) Valid() bool {
	return t == TagPersonal || t == TagJoint
}

// HasTag reports whether the transaction carries tag t.
func (txn *Transaction) HasTag(t Tag) bool {
	for _, existing := range txn.Tags {
		if existing == t {
			return true
		}
	}
	return false
}

// Tag returns the transaction's tag, or "" when untagged.
func (txn *Transaction) Tag() Tag {
	if len(txn.Tags) == 0 {
		return ""
	}
	return txn.Tags[0]
}

// ToggleTag removes t if it is the current tag, otherwise makes t the only tag.
func (txn *Transaction) ToggleTag(t Tag) error {
	if !t.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownTag, string(t))
	}
	if txn.HasTag(t) {
		txn.Tags = []Tag{}
		return nil
	}
	txn.Tags = []Tag{t}
	return nil
}
