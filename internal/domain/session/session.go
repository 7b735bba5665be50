package session

import (
	"crypto/md5"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
)

// UserType tags the account kind a session belongs to
type UserType string

const (
	UserTypeLegacy    UserType = "legacy"
	UserTypeMojang    UserType = "mojang"
	UserTypeMicrosoft UserType = "msa"
)

// Session is an authenticated (or offline) player session
type Session struct {
	AccessToken    string              `json:"access_token"`
	Name           string              `json:"name"`
	UUID           string              `json:"uuid"`
	UserType       UserType            `json:"user_type"`
	UserProperties map[string][]string `json:"user_properties,omitempty"`
}

// SessionToken returns the legacy combined session token
func (s *Session) SessionToken() string {
	return fmt.Sprintf("token:%s:%s", s.AccessToken, s.UUID)
}

// PropertiesJSON serializes the user properties for argument substitution.
// An empty property set serializes as "{}".
func (s *Session) PropertiesJSON() (string, error) {
	props := s.UserProperties
	if props == nil {
		props = map[string][]string{}
	}
	data, err := sonic.Marshal(props)
	if err != nil {
		return "", fmt.Errorf("failed to serialize user properties: %w", err)
	}
	return string(data), nil
}

// Validate checks the fields required for argument substitution
func (s *Session) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("session player name is required")
	}
	if s.UUID == "" {
		return fmt.Errorf("session player identifier is required")
	}
	return nil
}

// Offline creates a session for unauthenticated play. The player id is the
// name-based (version 3) UUID of "OfflinePlayer:<name>", so it is stable
// across launches.
func Offline(name string) *Session {
	return &Session{
		AccessToken: "0",
		Name:        name,
		UUID:        OfflineUUID(name).String(),
		UserType:    UserTypeLegacy,
	}
}

// OfflineUUID derives the offline player id for name
func OfflineUUID(name string) uuid.UUID {
	sum := md5.Sum([]byte("OfflinePlayer:" + name))
	var id uuid.UUID
	copy(id[:], sum[:])
	id[6] = (id[6] & 0x0f) | 0x30 // version 3
	id[8] = (id[8] & 0x3f) | 0x80 // RFC 4122 variant
	return id
}
