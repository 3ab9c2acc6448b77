package application

import (
	"time"

	"github.com/bnema/walletwise-cli/internal/domain"
)

type LoginCommand struct {
	ID       domain.ProfileID
	BaseURL  string
	Email    string
	Password string
}

type OverviewQuery struct {
	ID domain.ProfileID
	// Offline skips the API and evaluates the cached snapshot.
	Offline bool
}

type SummaryQuery struct {
	ID        domain.ProfileID
	Range     domain.TimeRange
	WeekStart *time.Weekday
	Offline   bool
}

type CategoriesQuery struct {
	ID domain.ProfileID
	// CustomOnly lists custom categories alone and fails when the plan has
	// no custom categories.
	CustomOnly bool
}
