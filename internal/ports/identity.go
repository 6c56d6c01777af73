package ports

type IdentityGenerator interface {
	NewConversationIdentity() string
}
