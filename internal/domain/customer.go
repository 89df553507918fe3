package domain

import "time"

// Customer is the buyer record. Email is the natural dedup key: at most
// one row per distinct email, matched case-insensitively.
type Customer struct {
	ID        string
	Name      string
	Email     string
	Phone     *string
	CreatedAt time.Time
}
