package game

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
)

const (
	codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	codeLength   = 4

	// maxCodeAttempts bounds the collision-retry loop. 26^4 codes exist,
	// so hitting the bound means the store is nearly saturated or lying.
	maxCodeAttempts = 10
)

// codeExistsFunc answers whether a candidate code is already taken by an
// active room.
type codeExistsFunc func(ctx context.Context, code string) (bool, error)

// generateCode draws codeLength letters independently and uniformly,
// retrying on collision up to maxCodeAttempts before failing with
// ErrDataIntegrity.
func generateCode(ctx context.Context, rng *rand.Rand, exists codeExistsFunc) (string, error) {
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		var sb strings.Builder
		for i := 0; i < codeLength; i++ {
			sb.WriteByte(codeAlphabet[rng.Intn(len(codeAlphabet))])
		}
		code := sb.String()

		taken, err := exists(ctx, code)
		if err != nil {
			return "", fmt.Errorf("check code %s: %w", code, err)
		}
		if !taken {
			return code, nil
		}
	}
	return "", fmt.Errorf("%w: no free room code after %d attempts", ErrDataIntegrity, maxCodeAttempts)
}

// NormalizeCode trims and upper-cases a client-supplied room code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// validateCode rejects codes that cannot possibly match a room.
func validateCode(code string) error {
	if len(code) != codeLength {
		return fmt.Errorf("%w: room code must be %d letters", ErrValidation, codeLength)
	}
	for i := 0; i < len(code); i++ {
		if code[i] < 'A' || code[i] > 'Z' {
			return fmt.Errorf("%w: room code must be letters only", ErrValidation)
		}
	}
	return nil
}
