package utils

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// BasicAuthCredentials maps user names to bcrypt password hashes.
type BasicAuthCredentials map[string][]byte

// LoadBasicAuthFile reads "username:bcrypt-hash" lines. Empty lines and lines
// starting with '#' are ignored.
func LoadBasicAuthFile(path string) (BasicAuthCredentials, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open basic auth file: %w", err)
	}
	defer f.Close()

	creds := make(BasicAuthCredentials)
	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		user, hash, ok := strings.Cut(text, ":")
		if !ok || user == "" || hash == "" {
			return nil, fmt.Errorf("basic auth file %s line %d: expected username:hash", path, line)
		}
		if _, err = bcrypt.Cost([]byte(hash)); err != nil {
			return nil, fmt.Errorf("basic auth file %s line %d: %w", path, line, err)
		}
		creds[user] = []byte(hash)
	}
	if err = scanner.Err(); err != nil {
		return nil, fmt.Errorf("read basic auth file: %w", err)
	}

	return creds, nil
}

// Verify checks password against the stored hash of user.
func (c BasicAuthCredentials) Verify(user, password string) error {
	hash, ok := c[user]
	if !ok {
		return ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// HashPassword returns a bcrypt hash suitable for a basic auth file.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
