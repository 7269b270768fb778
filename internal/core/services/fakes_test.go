package services_test

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/bizdoc_app/internal/apperrors"
	"github.com/SscSPs/bizdoc_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bizdoc_app/internal/core/ports/repositories"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// memStore is an in-memory stand-in for the database. Units of work are
// serialized and rolled back by restoring a snapshot.
type memStore struct {
	mu     sync.Mutex
	docs   map[string]domain.Document
	tokens map[string]domain.AccessToken
	sigs   []domain.Signature
	audits []domain.AuditLogEntry
}

func newMemStore() *memStore {
	return &memStore{
		docs:   map[string]domain.Document{},
		tokens: map[string]domain.AccessToken{},
	}
}

func (m *memStore) provider() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TxManager:     &memTx{store: m},
		DocumentRepo:  &memDocRepo{m},
		TokenRepo:     &memTokenRepo{m},
		SignatureRepo: &memSigRepo{m},
		AuditRepo:     &memAuditRepo{m},
	}
}

func (m *memStore) doc(id string) domain.Document {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.docs[id].Clone()
}

func (m *memStore) put(doc domain.Document) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[doc.DocumentID] = doc.Clone()
}

func (m *memStore) tokenFor(documentID string) (domain.AccessToken, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.tokens {
		if t.EntityID == documentID {
			return t, true
		}
	}
	return domain.AccessToken{}, false
}

func (m *memStore) signatures(documentID string) []domain.Signature {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Signature
	for _, s := range m.sigs {
		if s.DocumentID == documentID {
			out = append(out, s)
		}
	}
	return out
}

type memSnapshot struct {
	docs   map[string]domain.Document
	tokens map[string]domain.AccessToken
	sigs   []domain.Signature
}

func (m *memStore) snapshot() memSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := memSnapshot{docs: map[string]domain.Document{}, tokens: map[string]domain.AccessToken{}}
	for k, v := range m.docs {
		s.docs[k] = v.Clone()
	}
	for k, v := range m.tokens {
		s.tokens[k] = v
	}
	s.sigs = append([]domain.Signature(nil), m.sigs...)
	return s
}

func (m *memStore) restore(s memSnapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs, m.tokens, m.sigs = s.docs, s.tokens, s.sigs
}

type memTxKey struct{}

type memTx struct {
	mu    sync.Mutex
	store *memStore
}

func (t *memTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(memTxKey{}) != nil {
		return fn(ctx)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	snap := t.store.snapshot()
	if err := fn(context.WithValue(ctx, memTxKey{}, true)); err != nil {
		t.store.restore(snap)
		return err
	}
	return nil
}

type memDocRepo struct{ m *memStore }

func (r *memDocRepo) FindDocumentByID(_ context.Context, id string) (*domain.Document, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	d, ok := r.m.docs[id]
	if !ok {
		return nil, fmt.Errorf("%w: document %s", apperrors.ErrNotFound, id)
	}
	c := d.Clone()
	return &c, nil
}

func (r *memDocRepo) ListDocuments(_ context.Context, ownerID string, f domain.DocumentFilter) ([]domain.Document, *string, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []domain.Document
	for _, d := range r.m.docs {
		if d.OwnerID == ownerID && d.Type == f.Type && (f.Status == "" || d.Status == f.Status) {
			out = append(out, d.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil, nil
}

func (r *memDocRepo) FindContractBySourceQuote(_ context.Context, quoteID string) (*domain.Document, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, d := range r.m.docs {
		if d.SourceQuoteID != nil && *d.SourceQuoteID == quoteID {
			c := d.Clone()
			return &c, nil
		}
	}
	return nil, fmt.Errorf("%w: contract for quote %s", apperrors.ErrNotFound, quoteID)
}

func (r *memDocRepo) ListExpiredSentQuotes(_ context.Context, now time.Time, limit int) ([]domain.Document, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []domain.Document
	for _, d := range r.m.docs {
		if d.Type == domain.DocumentTypeQuote && d.Status == domain.StatusSent && d.ExpiresAt != nil && !d.ExpiresAt.After(now) {
			out = append(out, d.Clone())
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *memDocRepo) SaveDocument(_ context.Context, doc domain.Document) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.docs[doc.DocumentID]; ok {
		return fmt.Errorf("%w: document %s", apperrors.ErrDuplicate, doc.DocumentID)
	}
	if doc.SourceQuoteID != nil {
		for _, d := range r.m.docs {
			if d.SourceQuoteID != nil && *d.SourceQuoteID == *doc.SourceQuoteID {
				return fmt.Errorf("%w: document %s", apperrors.ErrDuplicate, doc.DocumentID)
			}
		}
	}
	r.m.docs[doc.DocumentID] = doc.Clone()
	return nil
}

func (r *memDocRepo) conditional(id string, expected domain.DocumentStatus) (domain.Document, error) {
	d, ok := r.m.docs[id]
	if !ok {
		return d, fmt.Errorf("%w: document %s", apperrors.ErrNotFound, id)
	}
	if d.Status != expected {
		return d, apperrors.ErrConflict
	}
	return d, nil
}

func (r *memDocRepo) UpdateDocumentContent(_ context.Context, doc domain.Document, expected domain.DocumentStatus) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, err := r.conditional(doc.DocumentID, expected); err != nil {
		return err
	}
	r.m.docs[doc.DocumentID] = doc.Clone()
	return nil
}

func (r *memDocRepo) UpdateDocumentStatus(_ context.Context, id string, from, to domain.DocumentStatus, by string, at time.Time) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	d, err := r.conditional(id, from)
	if err != nil {
		return err
	}
	d.Status, d.LastUpdatedBy, d.LastUpdatedAt = to, by, at
	r.m.docs[id] = d
	return nil
}

func (r *memDocRepo) DeleteDocument(_ context.Context, id string, expected domain.DocumentStatus) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, err := r.conditional(id, expected); err != nil {
		return err
	}
	delete(r.m.docs, id)
	return nil
}

type memTokenRepo struct{ m *memStore }

func (r *memTokenRepo) Create(_ context.Context, t *domain.AccessToken) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.tokens[t.TokenHash] = *t
	return nil
}

func (r *memTokenRepo) FindByHash(_ context.Context, hash string) (*domain.AccessToken, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	t, ok := r.m.tokens[hash]
	if !ok {
		return nil, apperrors.ErrTokenNotFound
	}
	return &t, nil
}

func (r *memTokenRepo) Consume(_ context.Context, hash string, now time.Time) (bool, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	t, ok := r.m.tokens[hash]
	if !ok || t.UsedAt != nil || !now.Before(t.ExpiresAt) {
		return false, nil
	}
	t.UsedAt = &now
	r.m.tokens[hash] = t
	return true, nil
}

type memSigRepo struct{ m *memStore }

func (r *memSigRepo) Save(_ context.Context, s domain.Signature) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.sigs = append(r.m.sigs, s)
	return nil
}

func (r *memSigRepo) ListByDocument(_ context.Context, id string) ([]domain.Signature, error) {
	return r.m.signatures(id), nil
}

type memAuditRepo struct{ m *memStore }

func (r *memAuditRepo) Create(_ context.Context, e domain.AuditLogEntry) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.audits = append(r.m.audits, e)
	return nil
}

func (r *memAuditRepo) ListForOwner(_ context.Context, ownerID string, f domain.AuditFilter) ([]domain.AuditLogEntry, *string, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []domain.AuditLogEntry
	for _, e := range r.m.audits {
		if e.UserID == ownerID && (f.ResourceType == "" || e.ResourceType == f.ResourceType) {
			out = append(out, e)
		}
	}
	return out, nil, nil
}

// recordingAudit keeps every entry handed to the ledger.
type recordingAudit struct {
	mu      sync.Mutex
	entries []domain.AuditLogEntry
}

func (a *recordingAudit) Record(_ context.Context, e domain.AuditLogEntry) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries = append(a.entries, e)
}

func (a *recordingAudit) List(context.Context, string, domain.AuditFilter) ([]domain.AuditLogEntry, *string, error) {
	return a.all(), nil, nil
}

func (a *recordingAudit) Close(context.Context) error { return nil }

func (a *recordingAudit) all() []domain.AuditLogEntry {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]domain.AuditLogEntry(nil), a.entries...)
}

func (a *recordingAudit) find(action domain.AuditAction, resourceType string) []domain.AuditLogEntry {
	var out []domain.AuditLogEntry
	for _, e := range a.all() {
		if e.Action == action && e.ResourceType == resourceType {
			out = append(out, e)
		}
	}
	return out
}

// MockDispatcher is a mock type for the NotificationDispatcher interface
type MockDispatcher struct {
	mock.Mock
	mu   sync.Mutex
	sent []domain.Notification
}

func (m *MockDispatcher) Dispatch(ctx context.Context, n domain.Notification) error {
	m.mu.Lock()
	m.sent = append(m.sent, n)
	m.mu.Unlock()
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockDispatcher) kinds() []domain.NotificationKind {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.NotificationKind
	for _, n := range m.sent {
		out = append(out, n.Kind)
	}
	return out
}

func (m *MockDispatcher) last() domain.Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sent[len(m.sent)-1]
}

// testClock is a settable clock shared by the services under test.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// signaturePNG returns a small PNG, base64 encoded, with one dark stroke pixel unless blank.
func signaturePNG(t *testing.T, blank bool) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	if !blank {
		for x := 1; x < 7; x++ {
			img.Set(x, 4, color.NRGBA{A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}
