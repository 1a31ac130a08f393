package repository

import (
	"errors"
	"strings"
)

// ErrKeyNotFound is returned by every KV backend when a key holds no value.
var ErrKeyNotFound = errors.New("key not found")

// Keyspace builds storage keys for plan data. A non-empty user id scopes the keys
// to that user.
type Keyspace struct {
	UserID string
	PlanID string
}

func (k Keyspace) key(kind string) string {
	var b strings.Builder
	if k.UserID != "" {
		b.WriteString("u:")
		b.WriteString(k.UserID)
		b.WriteByte(':')
	}
	b.WriteString(kind)
	b.WriteByte(':')
	b.WriteString(k.PlanID)
	return b.String()
}

// Slots is the key holding the date-keyed slot map.
func (k Keyspace) Slots() string { return k.key("slots") }

// Contents is the key holding the content registry.
func (k Keyspace) Contents() string { return k.key("contents") }

// Plan is the key holding plan metadata.
func (k Keyspace) Plan() string { return k.key("plans") }
