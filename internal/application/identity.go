package application

import (
	"github.com/google/uuid"

	"github.com/dlyog/dl-creator-cli/internal/ports"
)

const conversationIdentityPrefix = "user_"

// UUIDIdentity issues conversation identities of the form user_<uuid>.
type UUIDIdentity struct{}

var _ ports.IdentityGenerator = UUIDIdentity{}

func (UUIDIdentity) NewConversationIdentity() string {
	return conversationIdentityPrefix + uuid.NewString()
}
