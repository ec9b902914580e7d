package domain

import "time"

// User mirrors an identity-provider account together with its billing state.
// Authentication itself is delegated; this record only tracks subscription
// and usage-metering fields the service needs locally.
type User struct {
	ID                 string
	ExternalID         string // subject claim from the identity provider
	Email              string
	SubscriptionID     string
	SubscriptionStatus SubscriptionStatus
	SubscriptionPlan   string
	SubscriptionStart  *time.Time
	SubscriptionEnd    *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// CanGenerate reports whether the subscription state allows AI generation.
func (u *User) CanGenerate() bool {
	return u.SubscriptionStatus == SubscriptionActive || u.SubscriptionStatus == SubscriptionTrialing
}

// AIUsage counts the AI generations one user performed in one billing month.
// MonthYear is formatted "2006-01".
type AIUsage struct {
	UserID           string
	MonthYear        string
	GenerationsCount int
}

// CurrentMonth returns the MonthYear key for the given instant.
func CurrentMonth(now time.Time) string {
	return now.UTC().Format("2006-01")
}
