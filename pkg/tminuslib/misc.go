package tminuslib

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
)

// ConfigDirEnv is the environment variable name used to override the default
// configuration directory.
const ConfigDirEnv = "TMINUS_CONFIG_DIR"

var (
	// ConfigDir is the absolute path to the tminus configuration directory.
	ConfigDir string

	// storeFileName is the absolute path of the countdown database.
	storeFileName string
)

func init() {
	dir := os.Getenv(ConfigDirEnv)
	if dir == "" {
		dir = defaultConfigDir()
	}
	if err := setConfigDir(dir); err != nil {
		panic(err)
	}
}

func defaultConfigDir() string {
	cdr, err := os.UserConfigDir()
	if err != nil {
		panic(err)
	}
	return filepath.Join(cdr, "tminus")
}

func setConfigDir(dir string) error {
	if dir == "" {
		return errors.New("config dir is empty")
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(abs, 0755); err != nil {
		return err
	}
	ConfigDir = abs
	storeFileName = filepath.Join(abs, "countdowns.db")
	return nil
}

// SetConfigDir sets the configuration directory to the specified path,
// creating it if it does not exist.
func SetConfigDir(dir string) error {
	return setConfigDir(dir)
}

// GenHash returns a random 8-byte hex identifier for a new countdown.
func GenHash() string {
	buf := make([]byte, 8)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}
