// Package invites stores team invite codes in a shared key-value store.
package invites

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"github.com/AleksGin/business-manager-ci/internal/entities"
)

// Store is the invite-code registry. Implementations must tolerate
// concurrent issuance; redemption validity is decided by the caller
// against the injected clock, so Get returns expired invites as-is
// when the backend still holds them.
type Store interface {
	Save(ctx context.Context, invite entities.Invite) error
	Get(ctx context.Context, code string) (*entities.Invite, error)
	Invalidate(ctx context.Context, code string) error
}

const codeBytes = 8

// NewCode generates a URL-safe random invite code.
func NewCode() (string, error) {
	buf := make([]byte, codeBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate invite code: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
