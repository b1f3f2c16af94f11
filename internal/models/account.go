package models

import "time"

// Account maps to table `accounts`. Accounts are created by the seeder or
// externally; the API only reads them.
type Account struct {
	ID             int64
	Email          string
	PasswordDigest string
	CreatedAt      time.Time
}
