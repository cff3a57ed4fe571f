// Package credstore keeps kubernetes credentials in the system keyring.
package credstore

import (
	"encoding/json"
	"os"
	"path"
	"sort"
	"sync"

	"github.com/99designs/keyring"
	"github.com/AlecAivazis/survey/v2"
	"github.com/pkg/errors"

	"github.com/common-fate/withkube/internal/build"
	"github.com/common-fate/withkube/pkg/config"
	"github.com/common-fate/withkube/pkg/kubeauth"
	"github.com/common-fate/withkube/pkg/testable"
)

// Store reads and writes credentials. The keyring is opened on first use.
type Store struct {
	open func() (keyring.Keyring, error)

	once sync.Once
	mu   sync.Mutex
	ring keyring.Keyring
	err  error
}

// New returns a store backed by the keyring described in cfg.
func New(cfg *config.Config) *Store {
	return &Store{open: func() (keyring.Keyring, error) { return openKeyring(cfg) }}
}

// NewWithKeyring returns a store backed by ring.
func NewWithKeyring(ring keyring.Keyring) *Store {
	return &Store{open: func() (keyring.Keyring, error) { return ring, nil }}
}

func (s *Store) keyring() (keyring.Keyring, error) {
	s.once.Do(func() {
		s.ring, s.err = s.open()
	})
	return s.ring, s.err
}

// Put saves cred, replacing any credential with the same id.
func (s *Store) Put(cred kubeauth.Credential) error {
	if cred.ID == "" {
		return errors.New("credential id is empty")
	}
	ring, err := s.keyring()
	if err != nil {
		return err
	}
	b, err := json.Marshal(cred)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	err = ring.Set(keyring.Item{
		Key:         cred.ID,
		Data:        b,
		Label:       build.BinaryName + " " + string(cred.Kind),
		Description: cred.Description,
	})
	return errors.Wrapf(err, "storing credential %s", cred.ID)
}

// FindByID returns the credential called id. ok is false when there is none.
func (s *Store) FindByID(id string) (*kubeauth.Credential, bool, error) {
	ring, err := s.keyring()
	if err != nil {
		return nil, false, err
	}

	s.mu.Lock()
	item, err := ring.Get(id)
	s.mu.Unlock()
	if err == keyring.ErrKeyNotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrapf(err, "reading credential %s", id)
	}

	var cred kubeauth.Credential
	if err := json.Unmarshal(item.Data, &cred); err != nil {
		return nil, false, errors.Wrapf(err, "decoding credential %s", id)
	}
	return &cred, true, nil
}

// List returns every stored credential, sorted by id.
func (s *Store) List() ([]kubeauth.Credential, error) {
	ring, err := s.keyring()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	keys, err := ring.Keys()
	if err != nil {
		return nil, errors.Wrap(err, "listing credentials")
	}
	creds := []kubeauth.Credential{}
	for _, k := range keys {
		item, err := ring.Get(k)
		if err != nil {
			return nil, errors.Wrapf(err, "reading credential %s", k)
		}
		var cred kubeauth.Credential
		if err := json.Unmarshal(item.Data, &cred); err != nil {
			return nil, errors.Wrapf(err, "decoding credential %s", k)
		}
		creds = append(creds, cred)
	}
	sort.Slice(creds, func(i, j int) bool { return creds[i].ID < creds[j].ID })
	return creds, nil
}

// Remove deletes the credential called id.
func (s *Store) Remove(id string) error {
	ring, err := s.keyring()
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := ring.Get(id); err == keyring.ErrKeyNotFound {
		return &kubeauth.CredentialNotFoundError{ID: id}
	}
	return errors.Wrapf(ring.Remove(id), "removing credential %s", id)
}

func openKeyring(cfg *config.Config) (keyring.Keyring, error) {
	folder, err := config.ConfigFolder()
	if err != nil {
		return nil, err
	}

	name := build.KeyringServiceName()
	c := keyring.Config{
		ServiceName: name,

		// MacOS keychain
		KeychainName:             "login",
		KeychainTrustApplication: true,

		// KDE Wallet
		KWalletAppID:  name,
		KWalletFolder: name,

		// Windows
		WinCredPrefix: name,

		// freedesktop.org's Secret Service
		LibSecretCollectionName: name,

		// Pass (https://www.passwordstore.org/)
		PassPrefix: name,

		// Fallback encrypted file
		FileDir: path.Join(folder, "credentials"),
		FilePasswordFunc: func(s string) (string, error) {
			in := survey.Password{Message: s}
			var out string
			withStdio := survey.WithStdio(os.Stdin, os.Stderr, os.Stderr)
			err := testable.AskOne(&in, &out, withStdio)
			return out, err
		},
	}

	if cfg != nil && cfg.Keyring != nil {
		if cfg.Keyring.Backend != nil {
			c.AllowedBackends = []keyring.BackendType{keyring.BackendType(*cfg.Keyring.Backend)}
		}
		if cfg.Keyring.KeychainName != nil {
			c.KeychainName = *cfg.Keyring.KeychainName
		}
		if cfg.Keyring.FileDir != nil {
			c.FileDir = *cfg.Keyring.FileDir
		}
		if cfg.Keyring.LibSecretCollectionName != nil {
			c.LibSecretCollectionName = *cfg.Keyring.LibSecretCollectionName
		}
	}

	k, err := keyring.Open(c)
	if err != nil {
		return nil, errors.Wrap(err, "opening keyring")
	}

	return k, nil
}
