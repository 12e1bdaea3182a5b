package models

import (
	"time"
)

// User is an account holder whose brokerage state gets synced. The Kite
// fields are nil until the user completes the Kite login flow.
type User struct {
	ID              int64      `db:"id" json:"id"`
	Username        string     `db:"username" json:"username"`
	KiteUserID      *string    `db:"kite_user_id" json:"kiteUserId"`
	KiteAccessToken *string    `db:"kite_access_token" json:"-"`
	KiteTokenExpiry *time.Time `db:"kite_token_expiry" json:"kiteTokenExpiry"`
	CreatedAt       time.Time  `db:"created_at" json:"createdAt"`
}

// HasKiteToken reports whether the user holds a usable access token. A token
// without an expiry stays valid until overwritten.
func (u *User) HasKiteToken(now time.Time) bool {
	if u.KiteAccessToken == nil || *u.KiteAccessToken == "" {
		return false
	}
	if u.KiteTokenExpiry == nil {
		return true
	}
	return u.KiteTokenExpiry.After(now)
}
