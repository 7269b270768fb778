package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/bizdoc_app/internal/core/domain"
	portssvc "github.com/SscSPs/bizdoc_app/internal/core/ports/services"
	"github.com/SscSPs/bizdoc_app/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// sweepRecorder is a DocumentLifecycleSvc that only expects ExpireDueQuotes.
type sweepRecorder struct {
	mock.Mock
	calls chan time.Time
}

func (m *sweepRecorder) SendDocument(ctx context.Context, docType domain.DocumentType, documentID string, userID string) (*portssvc.SentDocument, error) {
	panic("unexpected call")
}

func (m *sweepRecorder) CompleteContract(ctx context.Context, contractID string, userID string) (*domain.Document, error) {
	panic("unexpected call")
}

func (m *sweepRecorder) RequestPayment(ctx context.Context, contractID string, userID string) error {
	panic("unexpected call")
}

func (m *sweepRecorder) ConvertQuoteToContract(ctx context.Context, quoteID string, userID string) (*domain.Document, error) {
	panic("unexpected call")
}

func (m *sweepRecorder) ExpireDueQuotes(ctx context.Context, now time.Time) (int, error) {
	args := m.Called(ctx, now)
	select {
	case m.calls <- now:
	default:
	}
	return args.Int(0), args.Error(1)
}

var _ portssvc.DocumentLifecycleSvc = (*sweepRecorder)(nil)

func TestExpirySweeper_SweepsUntilCancelled(t *testing.T) {
	clock := newTestClock()
	lifecycle := &sweepRecorder{calls: make(chan time.Time, 16)}
	lifecycle.On("ExpireDueQuotes", mock.Anything, clock.Now()).Return(1, nil)

	sweeper := services.NewExpirySweeper(lifecycle, 10*time.Millisecond, services.WithClock(clock.Now))
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sweeper.Run(ctx)
		close(done)
	}()

	for i := 0; i < 3; i++ {
		select {
		case at := <-lifecycle.calls:
			assert.Equal(t, clock.Now(), at)
		case <-time.After(time.Second):
			t.Fatal("sweeper did not tick")
		}
	}
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop")
	}
}

func TestExpirySweeper_DisabledReturnsImmediately(t *testing.T) {
	lifecycle := &sweepRecorder{calls: make(chan time.Time, 1)}
	done := make(chan struct{})
	go func() {
		services.NewExpirySweeper(lifecycle, 0).Run(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("disabled sweeper kept running")
	}
	lifecycle.AssertNotCalled(t, "ExpireDueQuotes", mock.Anything, mock.Anything)
}
