package bookings

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"

	"github.com/speps/go-hashids/v2"
)

const (
	refAlphabet  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	refMinLength = 8
)

// ReferenceGenerator produces short, shareable booking references such as
// "K7QX2M9A". Uniqueness is enforced by the database; callers retry on
// collision.
type ReferenceGenerator struct {
	h *hashids.HashID
}

func NewReferenceGenerator(salt string) (*ReferenceGenerator, error) {
	hd := hashids.NewData()
	hd.Salt = salt
	hd.MinLength = refMinLength
	hd.Alphabet = refAlphabet

	h, err := hashids.NewWithData(hd)
	if err != nil {
		return nil, fmt.Errorf("booking reference generator: %w", err)
	}
	return &ReferenceGenerator{h: h}, nil
}

func (g *ReferenceGenerator) Generate() (string, error) {
	var buf [4]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "", fmt.Errorf("booking reference entropy: %w", err)
	}

	ref, err := g.h.EncodeInt64([]int64{int64(binary.BigEndian.Uint32(buf[:]))})
	if err != nil {
		return "", fmt.Errorf("encode booking reference: %w", err)
	}
	return ref, nil
}
