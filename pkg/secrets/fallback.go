package secrets

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/spf13/afero"
)

const (
	secretFileName = "rpc.secret"
	secretFileMode = 0600
)

// FileStore provides file-based secret storage as a fallback when the
// system keyring is unavailable. Secrets are stored hex-encoded with
// 0600 permissions.
type FileStore struct {
	fs        afero.Fs
	configDir string
}

// NewFileStore creates a FileStore rooted at the configuration
// directory. Pass afero.NewOsFs() outside of tests.
func NewFileStore(fs afero.Fs, configDir string) *FileStore {
	return &FileStore{
		fs:        fs,
		configDir: configDir,
	}
}

func (f *FileStore) secretPath() string {
	return f.configDir + "/" + secretFileName
}

// SetSecret generates a fresh 32-byte secret and writes its hex encoding
// to the secret file, creating the config directory if needed.
func (f *FileStore) SetSecret() (string, error) {
	if err := f.fs.MkdirAll(f.configDir, 0755); err != nil {
		return "", fmt.Errorf("create config dir: %w", err)
	}

	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return "", fmt.Errorf("generate secret: %w", err)
	}
	s := hex.EncodeToString(secret)

	if err := afero.WriteFile(f.fs, f.secretPath(), []byte(s), secretFileMode); err != nil {
		return "", fmt.Errorf("write secret: %w", err)
	}
	return s, nil
}

// GetSecret reads the stored secret back. Returns an error if the file
// does not exist or holds something other than a 32-byte hex string.
func (f *FileStore) GetSecret() (string, error) {
	data, err := afero.ReadFile(f.fs, f.secretPath())
	if err != nil {
		return "", err
	}
	s := strings.TrimSpace(string(data))
	raw, err := hex.DecodeString(s)
	if err != nil {
		return "", fmt.Errorf("invalid secret format: %w", err)
	}
	if len(raw) != 32 {
		return "", fmt.Errorf("invalid secret length: expected 32, got %d", len(raw))
	}
	return s, nil
}

func (f *FileStore) DeleteSecret() error {
	return f.fs.Remove(f.secretPath())
}
