package relay

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mikey/phishawk/internal/core"
	"github.com/mikey/phishawk/internal/extractor"
	"github.com/mikey/phishawk/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	gmailLocation = "https://mail.google.com/mail/u/0/#inbox/abc"
	openMessage   = `<h2 class="hP">Verify your account</h2>
		<span class="gD" email="security@paypa1.example">PayPal</span>
		<div class="a3s aiL">Click http://paypa1.example/login now</div>`
)

type staticSource struct {
	location string
	page     string
	err      error
}

func (s *staticSource) Location() string { return s.location }

func (s *staticSource) Load(ctx context.Context) (*goquery.Document, error) {
	if s.err != nil {
		return nil, s.err
	}
	return goquery.NewDocumentFromReader(strings.NewReader(s.page))
}

func newTestHost(t *testing.T, broker *Broker, src *staticSource, allowed []string) *Host {
	t.Helper()
	logger := zap.NewNop()
	ex := extractor.New(extractor.DefaultSelectors(), utils.NewTextProcessor(logger), logger)
	host := NewHost("tab-1", broker, src, ex, allowed, logger)
	require.NoError(t, host.Start())
	t.Cleanup(func() { _ = host.Stop() })
	return host
}

func TestRequestExtraction_Success(t *testing.T) {
	broker := NewBroker(zap.NewNop())
	newTestHost(t, broker, &staticSource{location: gmailLocation, page: openMessage}, []string{"mail.google.com"})

	result, err := broker.RequestExtraction(context.Background(), "tab-1")

	require.NoError(t, err)
	require.True(t, result.Succeeded())
	assert.Equal(t, core.ExtractedEmail{
		Subject:   "Verify your account",
		Sender:    "PayPal <security@paypa1.example>",
		Body:      "Click http://paypa1.example/login now",
		SourceURL: gmailLocation,
	}, *result.Email)
}

func TestRequestExtraction_ExtractionFailuresCrossTheBoundary(t *testing.T) {
	tests := []struct {
		name string
		page string
		want core.FailureReason
	}{
		{name: "list view", page: `<div class="a3s aiL">x</div>`, want: core.NotInMessageView},
		{name: "no body", page: `<h2 class="hP">x</h2>`, want: core.NoContentFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			broker := NewBroker(zap.NewNop())
			newTestHost(t, broker, &staticSource{location: gmailLocation, page: tt.page}, nil)

			result, err := broker.RequestExtraction(context.Background(), "tab-1")

			require.NoError(t, err)
			assert.False(t, result.Succeeded())
			assert.Equal(t, tt.want, result.Failure)
		})
	}
}

func TestRequestExtraction_NoResponder(t *testing.T) {
	t.Run("nothing registered", func(t *testing.T) {
		broker := NewBroker(zap.NewNop())

		_, err := broker.RequestExtraction(context.Background(), "tab-1")

		assert.True(t, core.IsTransportKind(err, core.NoResponder))
	})

	t.Run("page on another host", func(t *testing.T) {
		broker := NewBroker(zap.NewNop())
		newTestHost(t, broker, &staticSource{location: "https://example.com/", page: openMessage}, []string{"mail.google.com"})

		_, err := broker.RequestExtraction(context.Background(), "tab-1")

		assert.True(t, core.IsTransportKind(err, core.NoResponder))
	})

	t.Run("host stopped", func(t *testing.T) {
		broker := NewBroker(zap.NewNop())
		host := newTestHost(t, broker, &staticSource{location: gmailLocation, page: openMessage}, nil)
		require.NoError(t, host.Stop())

		_, err := broker.RequestExtraction(context.Background(), "tab-1")

		assert.True(t, core.IsTransportKind(err, core.NoResponder))
	})
}

func TestRequestExtraction_EmptyResponse(t *testing.T) {
	broker := NewBroker(zap.NewNop())
	newTestHost(t, broker, &staticSource{location: gmailLocation, err: errors.New("page not loaded")}, nil)

	_, err := broker.RequestExtraction(context.Background(), "tab-1")

	assert.True(t, core.IsTransportKind(err, core.EmptyResponse))
}

// scriptedEndpoint answers every envelope with a fixed payload, or none
type scriptedEndpoint struct {
	payload []byte
}

func (e *scriptedEndpoint) deliver(ctx context.Context, env envelope) error {
	go func() {
		if e.payload != nil {
			env.reply <- e.payload
		}
		close(env.reply)
	}()
	return nil
}

func TestRequestExtraction_ReplyShapes(t *testing.T) {
	tests := []struct {
		name    string
		payload []byte
		kind    *core.TransportErrorKind
	}{
		{name: "closed without payload", payload: nil, kind: kindPtr(core.EmptyResponse)},
		{name: "undecodable payload", payload: []byte("not json"), kind: kindPtr(core.EmptyResponse)},
		{name: "unknown error code", payload: []byte(`{"error":"boom"}`), kind: kindPtr(core.EmptyResponse)},
		{name: "email without body", payload: []byte(`{"subject":"s"}`), kind: kindPtr(core.EmptyResponse)},
		{name: "valid email", payload: []byte(`{"subject":"s","sender":"a","body":"b","url":"u"}`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			broker := NewBroker(zap.NewNop())
			broker.register("tab-1", &scriptedEndpoint{payload: tt.payload})

			result, err := broker.RequestExtraction(context.Background(), "tab-1")

			if tt.kind != nil {
				assert.True(t, core.IsTransportKind(err, *tt.kind), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "b", result.Email.Body)
		})
	}
}

// silentEndpoint accepts envelopes and never replies
type silentEndpoint struct{}

func (silentEndpoint) deliver(ctx context.Context, env envelope) error { return nil }

func TestRequestExtraction_ContextCancelled(t *testing.T) {
	broker := NewBroker(zap.NewNop())
	broker.register("tab-1", silentEndpoint{})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := broker.RequestExtraction(ctx, "tab-1")

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestHost_IgnoresUnknownAction(t *testing.T) {
	broker := NewBroker(zap.NewNop())
	host := newTestHost(t, broker, &staticSource{location: gmailLocation, page: openMessage}, nil)

	reply := make(chan []byte, 1)
	require.NoError(t, host.deliver(context.Background(), envelope{payload: []byte(`{"action":"reload"}`), reply: reply}))

	data, ok := <-reply
	assert.False(t, ok)
	assert.Nil(t, data)
}

func TestHost_AllowedHostSubdomain(t *testing.T) {
	host := NewHost("t", NewBroker(zap.NewNop()), &staticSource{}, nil, []string{"Google.com"}, zap.NewNop())

	assert.True(t, host.matches("https://mail.google.com/mail/u/0/"))
	assert.True(t, host.matches("https://google.com/"))
	assert.False(t, host.matches("https://notgoogle.com/"))
	assert.False(t, host.matches("://bad"))
}

func TestEncodeDecodeResult(t *testing.T) {
	email := core.ExtractedEmail{Subject: "s", Sender: "a <b@c>", Body: "body", SourceURL: "https://x"}

	data, err := EncodeResult(core.ExtractionSucceeded(email))
	require.NoError(t, err)
	assert.JSONEq(t, `{"subject":"s","sender":"a <b@c>","body":"body","url":"https://x"}`, string(data))

	data, err = EncodeResult(core.ExtractionFailed(core.NotInMessageView))
	require.NoError(t, err)
	assert.JSONEq(t, `{"error":"not_in_email"}`, string(data))

	result, err := DecodeResult(data)
	require.NoError(t, err)
	assert.Equal(t, core.NotInMessageView, result.Failure)
}

func kindPtr(k core.TransportErrorKind) *core.TransportErrorKind {
	return &k
}
