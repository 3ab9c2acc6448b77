package ports

import (
	"context"

	"github.com/bnema/walletwise-cli/internal/domain"
)

// SubscriptionUpdate is the payload of a subscription:updated push event.
type SubscriptionUpdate struct {
	Tier     domain.Tier
	IsActive bool
}

// SubscriptionEvents delivers push notifications until ctx is done.
type SubscriptionEvents interface {
	Subscribe(ctx context.Context, creds Credentials, userID string, handle func(SubscriptionUpdate) error) error
}
