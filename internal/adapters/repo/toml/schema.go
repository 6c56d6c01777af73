package toml

import "fmt"

const currentSchemaVersion = 1

type fileSchema struct {
	Version              int            `toml:"version"`
	ConversationIdentity string         `toml:"conversation_identity,omitempty"`
	Profile              *profileSchema `toml:"profile,omitempty"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported state schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type profileSchema struct {
	DisplayName string `toml:"display_name"`
	Email       string `toml:"email,omitempty"`
}
