package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"strings"

	"github.com/SscSPs/bizdoc_app/internal/apperrors"
	"github.com/SscSPs/bizdoc_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bizdoc_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bizdoc_app/internal/core/ports/services"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/zeebo/blake3"
)

const defaultSignatureMaxSize = 5 * 1024 * 1024

// signatureContentTypes are the image formats accepted as signatures.
var signatureContentTypes = []string{"image/png", "image/jpeg", "image/gif", "image/webp"}

// signatureService implements the SignatureSvc interface
type signatureService struct {
	BaseService
	sigRepo portsrepo.SignatureRepository
	audit   portssvc.AuditSvc
	maxSize int64
}

// NewSignatureService creates a new signature capture service.
// Decoded payloads larger than maxSize bytes are rejected.
func NewSignatureService(sigRepo portsrepo.SignatureRepository, audit portssvc.AuditSvc, maxSize int64, opts ...ServiceOption) portssvc.SignatureSvc {
	if maxSize <= 0 {
		maxSize = defaultSignatureMaxSize
	}
	svc := &signatureService{
		sigRepo: sigRepo,
		audit:   audit,
		maxSize: maxSize,
	}
	applyOptions(&svc.BaseService, opts)
	return svc
}

var _ portssvc.SignatureSvc = (*signatureService)(nil)

// Normalize decodes a data URI or bare base64 image and re-encodes it as a data URI
// of its sniffed content type. The digest is the BLAKE3 hex of the decoded bytes.
func (s *signatureService) Normalize(payload string) (string, string, string, error) {
	encoded := strings.TrimSpace(payload)
	if encoded == "" {
		return "", "", "", fmt.Errorf("%w: signature is required", apperrors.ErrValidation)
	}

	if strings.HasPrefix(encoded, "data:") {
		comma := strings.IndexByte(encoded, ',')
		if comma < 0 {
			return "", "", "", fmt.Errorf("%w: malformed signature data URI", apperrors.ErrValidation)
		}
		if !strings.HasSuffix(strings.ToLower(encoded[:comma]), ";base64") {
			return "", "", "", fmt.Errorf("%w: signature data URI must be base64 encoded", apperrors.ErrValidation)
		}
		encoded = encoded[comma+1:]
	}

	// Reject oversized payloads before decoding them.
	if int64(base64.StdEncoding.DecodedLen(len(encoded))) > s.maxSize+2 {
		return "", "", "", fmt.Errorf("%w: signature exceeds %d bytes", apperrors.ErrValidation, s.maxSize)
	}

	raw, err := decodeBase64(encoded)
	if err != nil {
		return "", "", "", fmt.Errorf("%w: signature is not valid base64", apperrors.ErrValidation)
	}
	if len(raw) == 0 {
		return "", "", "", fmt.Errorf("%w: signature is empty", apperrors.ErrValidation)
	}
	if int64(len(raw)) > s.maxSize {
		return "", "", "", fmt.Errorf("%w: signature exceeds %d bytes", apperrors.ErrValidation, s.maxSize)
	}

	contentType := ""
	detected := mimetype.Detect(raw)
	for _, allowed := range signatureContentTypes {
		if detected.Is(allowed) {
			contentType = allowed
			break
		}
	}
	if contentType == "" {
		return "", "", "", fmt.Errorf("%w: unsupported signature format %s", apperrors.ErrValidation, detected.String())
	}

	if err := checkNotBlank(raw, contentType); err != nil {
		return "", "", "", err
	}

	sum := blake3.Sum256(raw)
	dataURI := "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(raw)
	return dataURI, contentType, hex.EncodeToString(sum[:]), nil
}

// Capture validates and persists a signature.
func (s *signatureService) Capture(ctx context.Context, in portssvc.CaptureSignatureInput) (*domain.Signature, error) {
	sig, err := s.capture(ctx, in)

	resourceID := in.DocumentID
	var changes *domain.AuditChanges
	if sig != nil {
		resourceID = sig.SignatureID
		changes = &domain.AuditChanges{After: map[string]any{
			"documentID":    sig.DocumentID,
			"signerType":    sig.SignerType,
			"signerName":    sig.SignerName,
			"contentType":   sig.ContentType,
			"payloadDigest": sig.PayloadDigest,
		}}
	}
	recordAudit(ctx, s.audit, auditEntry(domain.AuditActionSign, domain.RoleRecipient, "",
		domain.ResourceSignature, resourceID, changes, err))

	if err != nil {
		return nil, err
	}
	return sig, nil
}

func (s *signatureService) capture(ctx context.Context, in portssvc.CaptureSignatureInput) (*domain.Signature, error) {
	if in.DocumentID == "" {
		return nil, fmt.Errorf("%w: document ID is required", apperrors.ErrValidation)
	}
	if !in.SignerType.Valid() {
		return nil, fmt.Errorf("%w: signer type must be client or supplier", apperrors.ErrValidation)
	}
	name := strings.TrimSpace(in.SignerName)
	if name == "" {
		return nil, fmt.Errorf("%w: signer name is required", apperrors.ErrValidation)
	}

	dataURI, contentType, digest, err := s.Normalize(in.Payload)
	if err != nil {
		return nil, err
	}

	sig := &domain.Signature{
		SignatureID:   uuid.NewString(),
		DocumentID:    in.DocumentID,
		SignerType:    in.SignerType,
		SignerName:    name,
		SignerEmail:   strings.TrimSpace(in.SignerEmail),
		SignatureData: dataURI,
		ContentType:   contentType,
		PayloadDigest: digest,
		SignedAt:      s.Now(),
		IPAddress:     in.Metadata.IPAddress,
		UserAgent:     in.Metadata.UserAgent,
	}

	if err := s.sigRepo.Save(ctx, *sig); err != nil {
		s.LogError(ctx, err, "Failed to save signature",
			slog.String("document_id", in.DocumentID),
			slog.String("signer_type", string(in.SignerType)))
		return nil, fmt.Errorf("failed to save signature: %w", err)
	}

	s.LogInfo(ctx, "Signature captured",
		slog.String("signature_id", sig.SignatureID),
		slog.String("document_id", sig.DocumentID),
		slog.String("payload_digest", sig.PayloadDigest))
	return sig, nil
}

func (s *signatureService) ListByDocument(ctx context.Context, documentID string) ([]domain.Signature, error) {
	sigs, err := s.sigRepo.ListByDocument(ctx, documentID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list signatures", slog.String("document_id", documentID))
		return nil, err
	}
	return sigs, nil
}

func decodeBase64(s string) ([]byte, error) {
	var lastErr error
	for _, enc := range []*base64.Encoding{base64.StdEncoding, base64.RawStdEncoding, base64.URLEncoding, base64.RawURLEncoding} {
		b, err := enc.DecodeString(s)
		if err == nil {
			return b, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

// checkNotBlank rejects images in which every pixel is transparent or white.
// Formats without a registered decoder are accepted as is.
func checkNotBlank(raw []byte, contentType string) error {
	if contentType == "image/webp" {
		return nil
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("%w: signature image cannot be decoded", apperrors.ErrValidation)
	}

	const nearWhite = 0xF000
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, a := img.At(x, y).RGBA()
			if a == 0 {
				continue
			}
			// Colors are alpha-premultiplied.
			floor := uint64(a) * nearWhite / 0xFFFF
			if uint64(r) < floor || uint64(g) < floor || uint64(bl) < floor {
				return nil
			}
		}
	}
	return fmt.Errorf("%w: signature is blank", apperrors.ErrValidation)
}
