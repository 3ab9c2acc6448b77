// Package secretkey maps profile secret references such as
// "walletwise://personal/session" onto backend entry names.
package secretkey

import (
	"errors"
	"fmt"
	"path"
	"strings"
)

const (
	Scheme    = "walletwise://"
	Namespace = "walletwise"
)

var ErrEmptyKey = errors.New("secret key is empty")

// Entry returns the slash-separated entry name for key. Scheme references
// are placed under the walletwise namespace; plain relative names are kept.
func Entry(key string) (string, error) {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return "", ErrEmptyKey
	}

	name := trimmed
	if rest, ok := strings.CutPrefix(trimmed, Scheme); ok {
		if strings.TrimSpace(rest) == "" {
			return "", fmt.Errorf("invalid secret key %q", key)
		}
		name = Namespace + "/" + rest
	}

	if strings.HasPrefix(name, "/") || strings.Contains(name, `\`) {
		return "", fmt.Errorf("invalid secret key %q", key)
	}
	cleaned := path.Clean(name)
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", fmt.Errorf("invalid secret key %q", key)
	}
	for _, part := range strings.Split(name, "/") {
		if part == ".." {
			return "", fmt.Errorf("invalid secret key %q", key)
		}
	}

	return cleaned, nil
}
