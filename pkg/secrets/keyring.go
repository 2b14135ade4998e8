// Package secrets stores the daemon's RPC secret using the operating
// system's native keyring service with automatic fallback to file-based
// storage.
package secrets

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/zalando/go-keyring"
)

// Store abstracts secret storage so the daemon can fall back from the
// system keyring to a file when no keyring service is available.
type Store interface {
	GetSecret() (string, error)
	SetSecret() (string, error)
	DeleteSecret() error
}

type Keyring struct {
	AppName  string
	KeyField string
}

var (
	keyringSet    = keyring.Set
	keyringGet    = keyring.Get
	keyringDelete = keyring.Delete
	randRead      = rand.Read
)

func NewKeyring() *Keyring {
	return &Keyring{
		AppName:  "tminus",
		KeyField: "rpc-secret",
	}
}

// SetSecret generates a fresh 32-byte secret, stores its hex encoding in
// the system keyring, and returns it.
func (k *Keyring) SetSecret() (string, error) {
	secret := make([]byte, 32)
	if _, err := randRead(secret); err != nil {
		return "", err
	}
	s := hex.EncodeToString(secret)
	if err := keyringSet(k.AppName, k.KeyField, s); err != nil {
		return "", err
	}
	return s, nil
}

func (k *Keyring) GetSecret() (string, error) {
	return keyringGet(k.AppName, k.KeyField)
}

func (k *Keyring) DeleteSecret() error {
	return keyringDelete(k.AppName, k.KeyField)
}
