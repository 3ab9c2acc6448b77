package domain

import (
	"strings"
	"time"
)

type expiryKind int

const (
	expiryNever expiryKind = iota
	expiryAt
	expiryUnparsed
)

// Expiry is the end of a subscription period. The zero value never expires.
type Expiry struct {
	kind expiryKind
	at   time.Time
	raw  string
}

func NeverExpires() Expiry {
	return Expiry{kind: expiryNever}
}

func ExpiresAt(at time.Time) Expiry {
	return Expiry{kind: expiryAt, at: at.UTC()}
}

// UnparsedExpiry keeps an end date the upstream sent but that could not be
// read as a timestamp.
func UnparsedExpiry(raw string) Expiry {
	return Expiry{kind: expiryUnparsed, raw: raw}
}

// ParseExpiry accepts RFC 3339 timestamps and plain YYYY-MM-DD dates (UTC).
// An empty value means the period never expires.
func ParseExpiry(raw string) Expiry {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return NeverExpires()
	}

	at, ok := ParseTimestamp(trimmed)
	if !ok {
		return UnparsedExpiry(raw)
	}

	return ExpiresAt(at)
}

func (e Expiry) Never() bool {
	return e.kind == expiryNever
}

func (e Expiry) Unparsed() bool {
	return e.kind == expiryUnparsed
}

// Time returns the expiry instant when one is known.
func (e Expiry) Time() (time.Time, bool) {
	if e.kind != expiryAt {
		return time.Time{}, false
	}

	return e.at, true
}

func (e Expiry) Raw() string {
	switch e.kind {
	case expiryAt:
		return e.at.Format(time.RFC3339)
	case expiryUnparsed:
		return e.raw
	default:
		return ""
	}
}

// LapsedAt reports whether the expiry instant is strictly before now.
// Never and unparsed expiries are not lapsed.
func (e Expiry) LapsedAt(now time.Time) bool {
	at, ok := e.Time()
	if !ok {
		return false
	}

	return at.Before(now.UTC())
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseTimestamp parses the timestamp shapes the WalletWise API emits.
func ParseTimestamp(raw string) (time.Time, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return time.Time{}, false
	}

	for _, layout := range timestampLayouts {
		parsed, err := time.Parse(layout, trimmed)
		if err == nil {
			return parsed.UTC(), true
		}
	}

	return time.Time{}, false
}
