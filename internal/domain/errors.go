package domain

import (
	"errors"
	"fmt"
)

var (
	ErrProfileNotFound            = errors.New("profile not found")
	ErrSecretNotFound             = errors.New("secret not found")
	ErrSnapshotNotFound           = errors.New("snapshot not found")
	ErrExportNotAllowed           = errors.New("export is not available on the current plan")
	ErrAnalyticsNotAllowed        = errors.New("analytics is not available on the current plan")
	ErrCustomCategoriesNotAllowed = errors.New("custom categories are not available on the current plan")
	ErrWalletLimitReached         = errors.New("wallet limit reached")
	ErrUserIDUnknown              = errors.New("account user id unknown")
)

// ConfigError reports a tier that the limit table does not cover.
type ConfigError struct {
	Tier   Tier
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Reason != "" {
		return e.Reason
	}

	return fmt.Sprintf("no limits configured for tier %q", e.Tier)
}
