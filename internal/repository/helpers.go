package repository

import (
	"database/sql"
	"time"
)

// Timestamps are stored as RFC 3339 text columns. Subscription windows are
// nullable: a user without a billing period has NULL start and end.

func optionalTime(ns sql.NullString) *time.Time {
	if !ns.Valid || ns.String == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, ns.String)
	if err != nil {
		return nil
	}
	return &t
}

func optionalTimeArg(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(time.RFC3339)
}
