package models

import "time"

// Actor roles. The engine trusts role assignment as given by the identity
// layer.
const (
	RoleUser     = "user"
	RoleOfficial = "official"
)

// Profile represents an actor in the marketplace: sellers and buyers share
// the "user" role, processing staff are "official". A profile may only take
// part in payouts and purchases once its wallet address has been verified.
type Profile struct {
	Id             string    `db:"id"`
	Name           string    `db:"name"`
	Email          string    `db:"email"`
	Role           string    `db:"role"`
	WalletAddress  string    `db:"wallet_address"`
	CryptoVerified bool      `db:"is_crypto_verified"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}
