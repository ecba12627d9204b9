package model

import (
	"strconv"
	"strings"
)

// IndexDirection is a key sort direction.
type IndexDirection int

const (
	Ascending  IndexDirection = 1
	Descending IndexDirection = -1
)

// PrimaryIndexName is the index every collection carries on _id.
const PrimaryIndexName = "_id_"

// IndexKey is one field of an index key pattern.
type IndexKey struct {
	Field     string
	Direction IndexDirection
}

// Asc is an ascending key on field.
func Asc(field string) IndexKey { return IndexKey{Field: field, Direction: Ascending} }

// Desc is a descending key on field.
func Desc(field string) IndexKey { return IndexKey{Field: field, Direction: Descending} }

// IndexSpec is an ordered key pattern. Key order is significant.
type IndexSpec struct {
	Keys []IndexKey
}

// Index builds a spec from keys in the given order.
func Index(keys ...IndexKey) IndexSpec {
	return IndexSpec{Keys: keys}
}

// Name follows the MongoDB default naming, e.g. "status_1_createdAt_-1".
func (s IndexSpec) Name() string {
	parts := make([]string, 0, len(s.Keys)*2)
	for _, k := range s.Keys {
		parts = append(parts, k.Field, strconv.Itoa(int(k.Direction)))
	}
	return strings.Join(parts, "_")
}

// Compound reports whether the spec spans more than one field.
func (s IndexSpec) Compound() bool {
	return len(s.Keys) > 1
}

// Equal reports whether both specs have the same key pattern.
func (s IndexSpec) Equal(other IndexSpec) bool {
	if len(s.Keys) != len(other.Keys) {
		return false
	}
	for i := range s.Keys {
		if s.Keys[i] != other.Keys[i] {
			return false
		}
	}
	return true
}
