package domain

// Persisted client state keys. Logout removes all four.
const (
	KeyCredential           = "token"
	KeyChatCredential       = "jwt"
	KeyProfile              = "user"
	KeyConversationIdentity = "userId"
)

type Profile struct {
	DisplayName string `json:"displayName" toml:"display_name"`
	Email       string `json:"email,omitempty" toml:"email,omitempty"`
}

type Session struct {
	CredentialToken      string
	ConversationIdentity string
	Profile              *Profile
}

func (s Session) Authenticated() bool {
	return s.CredentialToken != ""
}

// Normalize drops the profile when no credential is held.
func (s Session) Normalize() Session {
	if s.CredentialToken == "" {
		s.Profile = nil
	}
	if s.Profile != nil {
		profile := *s.Profile
		s.Profile = &profile
	}
	return s
}
