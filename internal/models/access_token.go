package models

import "time"

// AccessToken represents a row of the access_tokens table.
type AccessToken struct {
	AccessTokenID string     `db:"access_token_id"`
	TokenHash     string     `db:"token_hash"`
	EntityType    string     `db:"entity_type"`
	EntityID      string     `db:"entity_id"`
	ExpiresAt     time.Time  `db:"expires_at"`
	UsedAt        *time.Time `db:"used_at"`
	CreatedAt     time.Time  `db:"created_at"`
	CreatedBy     string     `db:"created_by"`
}
