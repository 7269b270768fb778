package domain

import "time"

// SignerType identifies which party a signature belongs to.
type SignerType string

const (
	SignerClient   SignerType = "client"
	SignerSupplier SignerType = "supplier"
)

// Valid reports whether s is a known signer type.
func (s SignerType) Valid() bool {
	return s == SignerClient || s == SignerSupplier
}

// Signature is immutable evidence of assent to a document.
type Signature struct {
	SignatureID   string     `json:"signatureID"`
	DocumentID    string     `json:"documentID"`
	SignerType    SignerType `json:"signerType"`
	SignerName    string     `json:"signerName"`
	SignerEmail   string     `json:"signerEmail,omitempty"`
	SignatureData string     `json:"signatureData"` // data:<mime>;base64,<payload>
	ContentType   string     `json:"contentType"`
	PayloadDigest string     `json:"payloadDigest"`
	SignedAt      time.Time  `json:"signedAt"`
	IPAddress     string     `json:"ipAddress,omitempty"`
	UserAgent     string     `json:"userAgent,omitempty"`
}
