// Package session holds the client-side session state: the current
// credential and user, restorable from persisted bytes so a session
// survives restarts when the user asked to be remembered.
package session

import (
	"encoding/json"
	"fmt"

	"github.com/avoronov/taskgo/internal/models"
)

type Session struct {
	Token string             `json:"token"`
	User  *models.PublicUser `json:"user,omitempty"`
}

func (s Session) Authenticated() bool {
	return s.Token != ""
}

// Restore rebuilds a session from previously stored bytes. It is a
// pure function: no data yields the zero session, corrupt data an
// error, and nothing else is consulted.
func Restore(data []byte) (Session, error) {
	if len(data) == 0 {
		return Session{}, nil
	}

	var s Session
	err := json.Unmarshal(data, &s)
	if err != nil {
		return Session{}, fmt.Errorf("failed to decode session: %w", err)
	}
	return s, nil
}

// Bytes serializes the session for a Store.
func (s Session) Bytes() ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to encode session: %w", err)
	}
	return data, nil
}
