package dto

import (
	"time"

	"github.com/SscSPs/bizdoc_app/internal/core/domain"
)

// SignatureResponse is the owner's view of captured signature evidence.
type SignatureResponse struct {
	SignatureID   string            `json:"signatureID"`
	SignerType    domain.SignerType `json:"signerType"`
	SignerName    string            `json:"signerName"`
	SignerEmail   string            `json:"signerEmail,omitempty"`
	SignatureData string            `json:"signatureData"`
	ContentType   string            `json:"contentType"`
	PayloadDigest string            `json:"payloadDigest"`
	SignedAt      time.Time         `json:"signedAt"`
	IPAddress     string            `json:"ipAddress,omitempty"`
}

// ToSignatureResponses converts signatures for the owner API.
func ToSignatureResponses(sigs []domain.Signature) []SignatureResponse {
	res := make([]SignatureResponse, len(sigs))
	for i, s := range sigs {
		res[i] = SignatureResponse{
			SignatureID:   s.SignatureID,
			SignerType:    s.SignerType,
			SignerName:    s.SignerName,
			SignerEmail:   s.SignerEmail,
			SignatureData: s.SignatureData,
			ContentType:   s.ContentType,
			PayloadDigest: s.PayloadDigest,
			SignedAt:      s.SignedAt,
			IPAddress:     s.IPAddress,
		}
	}
	return res
}
