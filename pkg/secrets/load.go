package secrets

import (
	"os"

	"github.com/spf13/afero"
)

// SecretEnv overrides the stored RPC secret. Useful for containers
// where neither a keyring nor a persistent config dir is available.
const SecretEnv = "TMINUS_RPC_SECRET"

// LoadSecret returns the daemon's RPC secret, creating one on first
// run. Lookup order: environment, system keyring, file fallback.
func LoadSecret(configDir string) (string, error) {
	if s := os.Getenv(SecretEnv); s != "" {
		return s, nil
	}

	kr := NewKeyring()
	if s, err := kr.GetSecret(); err == nil {
		return s, nil
	}
	if s, err := kr.SetSecret(); err == nil {
		return s, nil
	}

	fs := NewFileStore(afero.NewOsFs(), configDir)
	if s, err := fs.GetSecret(); err == nil {
		return s, nil
	}
	return fs.SetSecret()
}
