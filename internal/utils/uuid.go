// Package utils holds small helpers shared by the stickynotes packages.
package utils

import "github.com/google/uuid"

// IDGenerator produces note identifiers. The registry depends on this
// interface so tests can supply predictable ids.
type IDGenerator interface {
	Generate() string
}

// UUIDGenerator generates time-ordered UUIDv7 strings, so ids sort in
// creation order.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		// entropy failure: fall back to a random v4
		return uuid.NewString()
	}

	return v7.String()
}

// SequenceGenerator returns ids from a fixed list, then ids derived from the
// call count.
type SequenceGenerator struct {
	ids  []string
	next int
}

func NewSequenceGenerator(ids ...string) *SequenceGenerator {
	return &SequenceGenerator{ids: ids}
}

func (g *SequenceGenerator) Generate() string {
	defer func() { g.next++ }()
	if g.next < len(g.ids) {
		return g.ids[g.next]
	}
	return "note-" + uuid.NewSHA1(uuid.NameSpaceOID, []byte{byte(g.next >> 8), byte(g.next)}).String()
}

// Ptr returns a pointer to v. Handy for building patches.
func Ptr[T any](v T) *T {
	return &v
}
