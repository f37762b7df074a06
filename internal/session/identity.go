package session

import (
	"context"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/bizledger/internal/common"
)

// Principal is an authenticated user.
type Principal struct {
	ID uuid.UUID
}

// IdentityProvider yields the principal of a request, if any. No principal
// is not an error: the session then works on the local buffer.
type IdentityProvider interface {
	Principal(ctx context.Context) (Principal, bool)
}

// ContextIdentity reads the principal stored by common.WithUserID.
type ContextIdentity struct{}

func (ContextIdentity) Principal(ctx context.Context) (Principal, bool) {
	id, ok := common.UserIDFromContext(ctx)
	if !ok {
		return Principal{}, false
	}
	return Principal{ID: id}, true
}

// Fixed always yields the same principal; uuid.Nil means anonymous.
type Fixed uuid.UUID

func (f Fixed) Principal(context.Context) (Principal, bool) {
	id := uuid.UUID(f)
	if id == uuid.Nil {
		return Principal{}, false
	}
	return Principal{ID: id}, true
}
