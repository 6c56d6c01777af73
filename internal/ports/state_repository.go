package ports

import (
	"context"

	"github.com/dlyog/dl-creator-cli/internal/domain"
)

// ClientState is the non-secret part of the persisted session.
type ClientState struct {
	Profile              *domain.Profile
	ConversationIdentity string
}

type StateRepository interface {
	Load(ctx context.Context) (ClientState, error)
	Save(ctx context.Context, state ClientState) error
}
