package observability

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/getsentry/sentry-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/dtroode/authkeeper/internal/testutil"
)

type capturedEvents struct {
	mu     sync.Mutex
	events []*sentry.Event
}

func (c *capturedEvents) all() []*sentry.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*sentry.Event(nil), c.events...)
}

func newTestHub(t *testing.T) (*sentry.Hub, *capturedEvents) {
	t.Helper()

	captured := &capturedEvents{}
	client, err := sentry.NewClient(sentry.ClientOptions{
		BeforeSend: func(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
			captured.mu.Lock()
			captured.events = append(captured.events, event)
			captured.mu.Unlock()
			return nil
		},
	})
	require.NoError(t, err)

	return sentry.NewHub(client, sentry.NewScope()), captured
}

type methodStream struct {
	method string
}

func (s methodStream) Method() string               { return s.method }
func (s methodStream) SetHeader(metadata.MD) error  { return nil }
func (s methodStream) SendHeader(metadata.MD) error { return nil }
func (s methodStream) SetTrailer(metadata.MD) error { return nil }

func TestInitSentry_EmptyDSNIsNoop(t *testing.T) {
	assert.NoError(t, InitSentry("", "test", "dev"))
}

func TestReporter_Report(t *testing.T) {
	t.Parallel()

	hub, captured := newTestHub(t)
	reporter := NewReporter(hub)

	ctx := grpc.NewContextWithServerTransportStream(context.Background(), methodStream{method: "/authkeeper.v1.Auth/Login"})
	reporter.Report(ctx, errors.New("connection refused"))

	events := captured.all()
	require.Len(t, events, 1)
	assert.Equal(t, "/authkeeper.v1.Auth/Login", events[0].Tags["grpc.method"])
	require.NotEmpty(t, events[0].Exception)
	assert.Equal(t, "connection refused", events[0].Exception[0].Value)
}

func TestPanicHandler(t *testing.T) {
	t.Parallel()

	hub, captured := newTestHub(t)
	handle := PanicHandler(NewReporter(hub), testutil.MakeNoopLogger())

	err := handle(context.Background(), "nil map write")

	assert.Equal(t, codes.Internal, status.Code(err))
	events := captured.all()
	require.Len(t, events, 1)
	assert.Contains(t, events[0].Message, "nil map write")
	assert.Equal(t, sentry.LevelFatal, events[0].Level)
}
