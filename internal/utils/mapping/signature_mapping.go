package mapping

import (
	"github.com/SscSPs/bizdoc_app/internal/core/domain"
	"github.com/SscSPs/bizdoc_app/internal/models"
)

// ToModelSignature converts a domain Signature to a model Signature
func ToModelSignature(s domain.Signature) models.Signature {
	return models.Signature{
		SignatureID:   s.SignatureID,
		DocumentID:    s.DocumentID,
		SignerType:    string(s.SignerType),
		SignerName:    s.SignerName,
		SignerEmail:   s.SignerEmail,
		SignatureData: s.SignatureData,
		ContentType:   s.ContentType,
		PayloadDigest: s.PayloadDigest,
		SignedAt:      s.SignedAt,
		IPAddress:     s.IPAddress,
		UserAgent:     s.UserAgent,
	}
}

// ToDomainSignature converts a model Signature to a domain Signature
func ToDomainSignature(m models.Signature) domain.Signature {
	return domain.Signature{
		SignatureID:   m.SignatureID,
		DocumentID:    m.DocumentID,
		SignerType:    domain.SignerType(m.SignerType),
		SignerName:    m.SignerName,
		SignerEmail:   m.SignerEmail,
		SignatureData: m.SignatureData,
		ContentType:   m.ContentType,
		PayloadDigest: m.PayloadDigest,
		SignedAt:      m.SignedAt,
		IPAddress:     m.IPAddress,
		UserAgent:     m.UserAgent,
	}
}
