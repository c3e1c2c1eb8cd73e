package id

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

const rawLen = 16

// Generator produces opaque identifiers for seasons, games, score events and
// notifications.
type Generator interface {
	NewID() (string, error)
}

// RandomGenerator emits 32-char hex ids backed by crypto/rand.
type RandomGenerator struct{}

func NewRandomGenerator() *RandomGenerator {
	return &RandomGenerator{}
}

func (g *RandomGenerator) NewID() (string, error) {
	buf := make([]byte, rawLen)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate id entropy: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
