package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"taskmanager/internal/client/api"
)

// Session is the identity the client acts as. It is valid only when both the
// token and the profile are present.
type Session struct {
	Token string
	User  *api.User
}

func (s Session) Valid() bool {
	return s.Token != "" && s.User != nil
}

type Store interface {
	Load() (Session, error)
	Save(Session) error
	Clear() error
}

// fileContents mirrors browser storage: one string value per fixed key, with
// the profile kept as serialized JSON.
type fileContents struct {
	Token string `json:"token,omitempty"`
	User  string `json:"user,omitempty"`
}

type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultPath is ~/.taskctl/session.json.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".taskctl", "session.json"), nil
}

func (s *FileStore) Path() string {
	return s.path
}

// Load returns an empty session when nothing has been saved yet. A profile
// that no longer parses is dropped along with its token.
func (s *FileStore) Load() (Session, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return Session{}, nil
	}
	if err != nil {
		return Session{}, fmt.Errorf("read session: %w", err)
	}

	var contents fileContents
	if err := json.Unmarshal(raw, &contents); err != nil {
		return Session{}, nil
	}
	if contents.Token == "" || contents.User == "" {
		return Session{}, nil
	}

	var user api.User
	if err := json.Unmarshal([]byte(contents.User), &user); err != nil {
		return Session{}, nil
	}
	return Session{Token: contents.Token, User: &user}, nil
}

func (s *FileStore) Save(sess Session) error {
	contents := fileContents{Token: sess.Token}
	if sess.User != nil {
		user, err := json.Marshal(sess.User)
		if err != nil {
			return fmt.Errorf("encode user: %w", err)
		}
		contents.User = string(user)
	}

	raw, err := json.MarshalIndent(contents, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return os.Rename(tmp, s.path)
}

func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// MemoryStore keeps the session for the lifetime of the process.
type MemoryStore struct {
	sess Session
}

func (m *MemoryStore) Load() (Session, error) { return m.sess, nil }

func (m *MemoryStore) Save(sess Session) error {
	m.sess = sess
	return nil
}

func (m *MemoryStore) Clear() error {
	m.sess = Session{}
	return nil
}
