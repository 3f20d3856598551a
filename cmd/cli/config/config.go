package config

import (
	"os"
	"path/filepath"
)

const (
	defaultAPIURL = "http://localhost:8080"
	tokenFileName = ".taskhub_token"
)

// APIURL returns the base URL for the TaskHub API.
// It can be overridden with the TASKHUB_API_URL environment variable.
func APIURL() string {
	if v := os.Getenv("TASKHUB_API_URL"); v != "" {
		return v
	}
	return defaultAPIURL
}

// ==========================
// Token Storage Helpers
// ==========================

// SaveToken stores the bearer token in the user's home directory.
func SaveToken(token string) error {
	return os.WriteFile(tokenPath(), []byte(token), 0600)
}

// LoadToken returns the stored bearer token. The TASKHUB_TOKEN environment
// variable takes precedence over the token file, which is useful in scripts.
func LoadToken() (string, error) {
	if v := os.Getenv("TASKHUB_TOKEN"); v != "" {
		return v, nil
	}
	data, err := os.ReadFile(tokenPath())
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ClearToken removes the stored token. A missing file is not an error.
func ClearToken() error {
	err := os.Remove(tokenPath())
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func tokenPath() string {
	dir, _ := os.UserHomeDir()
	return filepath.Join(dir, tokenFileName)
}
