// conf/utils.go filesystem and secret helpers for the configuration package
package conf

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// GetDefaultConfigPaths returns the list of directories searched for config.yaml,
// in priority order: working directory, then the OS-specific user config dir.
func GetDefaultConfigPaths() ([]string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("error fetching user home directory: %w", err)
	}

	var configPaths []string
	switch runtime.GOOS {
	case "windows":
		configPaths = []string{
			".",
			filepath.Join(homeDir, "AppData", "Roaming", "roamly"),
		}
	default:
		configPaths = []string{
			".",
			filepath.Join(homeDir, ".config", "roamly"),
		}
	}

	return configPaths, nil
}

// GenerateRandomSecret returns a URL-safe random string suitable as a
// session cookie signing key.
func GenerateRandomSecret() string {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		// Fall back to a static value; startup will still work but sessions
		// will not survive restarts.
		return "roamly-insecure-fallback-secret"
	}
	return base64.RawURLEncoding.EncodeToString(bytes)
}
