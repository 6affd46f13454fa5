// Package challenge issues and verifies the arithmetic bot-check presented
// during signup. A challenge is usable once and expires after a fixed TTL.
package challenge

import (
	"context"
	"math/rand/v2"

	"github.com/yukikurage/todo-api/internal/constants"
)

// Challenge is the client-visible part of a bot-check. The answer is kept by the store.
type Challenge struct {
	ID   string
	Num1 int
	Num2 int
}

// Store issues and verifies challenges.
type Store interface {
	// Generate creates a challenge and remembers its answer until it expires.
	Generate(ctx context.Context) (Challenge, error)

	// Verify reports whether answer is correct for a live challenge. A correct
	// answer consumes the challenge; anything else leaves the store unchanged.
	Verify(ctx context.Context, id string, answer int) (bool, error)
}

// operands draws the two factors of a puzzle.
func operands(intn func(int) int) (int, int) {
	num1 := constants.ChallengeOperand1Min + intn(constants.ChallengeOperand1Span)
	num2 := constants.ChallengeOperand2Min + intn(constants.ChallengeOperand2Span)
	return num1, num2
}

func defaultIntN(n int) int {
	return rand.IntN(n)
}
