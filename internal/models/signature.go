package models

import "time"

// Signature represents a row of the signatures table.
type Signature struct {
	SignatureID   string    `db:"signature_id"`
	DocumentID    string    `db:"document_id"`
	SignerType    string    `db:"signer_type"`
	SignerName    string    `db:"signer_name"`
	SignerEmail   string    `db:"signer_email"`
	SignatureData string    `db:"signature_data"`
	ContentType   string    `db:"content_type"`
	PayloadDigest string    `db:"payload_digest"`
	SignedAt      time.Time `db:"signed_at"`
	IPAddress     string    `db:"ip_address"`
	UserAgent     string    `db:"user_agent"`
}
