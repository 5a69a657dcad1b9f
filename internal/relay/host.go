package relay

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/mikey/phishawk/internal/extractor"
	"github.com/mikey/phishawk/internal/ports"
	"go.uber.org/zap"
)

// ErrHostStopped is returned when a request reaches a host that is not running
var ErrHostStopped = errors.New("extraction host is not running")

// Host owns a rendered page and answers extraction requests for it.
// It only attaches to pages whose host matches allowedHosts.
type Host struct {
	target       string
	broker       *Broker
	source       ports.DocumentSource
	extractor    *extractor.Extractor
	allowedHosts []string
	logger       *zap.Logger

	mu      sync.Mutex
	running bool
	inbox   chan envelope
	stopCh  chan struct{}
	done    chan struct{}
	cancel  context.CancelFunc
}

// NewHost creates a new extraction host for target
func NewHost(
	target string,
	broker *Broker,
	source ports.DocumentSource,
	ex *extractor.Extractor,
	allowedHosts []string,
	logger *zap.Logger,
) *Host {
	normalized := make([]string, 0, len(allowedHosts))
	for _, h := range allowedHosts {
		if h = strings.ToLower(strings.TrimSpace(h)); h != "" {
			normalized = append(normalized, h)
		}
	}

	return &Host{
		target:       target,
		broker:       broker,
		source:       source,
		extractor:    ex,
		allowedHosts: normalized,
		logger:       logger,
	}
}

// Start attaches the host to the broker. A page on a host outside the allowed
// list is left unattached, so requests for it find no responder.
func (h *Host) Start() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.running {
		return nil
	}

	location := h.source.Location()
	if !h.matches(location) {
		h.logger.Warn("Page host not matched, extraction host not attached",
			zap.String("target", h.target),
			zap.String("location", location),
			zap.Strings("allowed_hosts", h.allowedHosts))
		return nil
	}

	h.inbox = make(chan envelope)
	h.stopCh = make(chan struct{})
	h.done = make(chan struct{})
	h.running = true

	ctx, cancel := context.WithCancel(context.Background())
	h.cancel = cancel

	go h.serve(ctx, h.inbox, h.stopCh, h.done)
	h.broker.register(h.target, h)

	h.logger.Info("Extraction host attached",
		zap.String("target", h.target),
		zap.String("location", location))
	return nil
}

// Stop detaches the host and waits for the request in progress to finish
func (h *Host) Stop() error {
	h.mu.Lock()
	if !h.running {
		h.mu.Unlock()
		return nil
	}
	h.running = false
	h.broker.unregister(h.target, h)
	close(h.stopCh)
	h.cancel()
	done := h.done
	h.mu.Unlock()

	<-done
	h.logger.Info("Extraction host detached", zap.String("target", h.target))
	return nil
}

func (h *Host) deliver(ctx context.Context, env envelope) error {
	h.mu.Lock()
	running, inbox, stopCh := h.running, h.inbox, h.stopCh
	h.mu.Unlock()

	if !running {
		return ErrHostStopped
	}

	select {
	case inbox <- env:
		return nil
	case <-stopCh:
		return ErrHostStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// serve handles one message at a time until stopped
func (h *Host) serve(ctx context.Context, inbox <-chan envelope, stopCh <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	for {
		select {
		case env := <-inbox:
			h.handle(ctx, env)
		case <-stopCh:
			return
		}
	}
}

// handle answers one envelope. The reply channel is always closed; it carries
// a payload only when the action is known and the page could be read.
func (h *Host) handle(ctx context.Context, env envelope) {
	defer close(env.reply)
	defer func() {
		if r := recover(); r != nil {
			h.logger.Error("Extraction handler panicked",
				zap.String("target", h.target),
				zap.Any("panic", r))
		}
	}()

	var msg Message
	if err := json.Unmarshal(env.payload, &msg); err != nil {
		h.logger.Warn("Ignoring undecodable relay message", zap.Error(err))
		return
	}
	if msg.Action != ActionExtractEmail {
		h.logger.Debug("Ignoring unknown relay action", zap.String("action", msg.Action))
		return
	}

	payload, err := h.extract(ctx)
	if err != nil {
		h.logger.Error("Failed to answer extraction request",
			zap.String("target", h.target),
			zap.Error(err))
		return
	}
	env.reply <- payload
}

func (h *Host) extract(ctx context.Context) ([]byte, error) {
	doc, err := h.source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load page: %w", err)
	}

	result := h.extractor.Extract(doc, h.source.Location())
	if !result.Succeeded() {
		h.logger.Debug("Extraction failed", zap.String("reason", string(result.Failure)))
	}
	return EncodeResult(result)
}

// matches reports whether the page location is on an allowed host
func (h *Host) matches(location string) bool {
	if len(h.allowedHosts) == 0 {
		return true
	}

	u, err := url.Parse(location)
	if err != nil {
		return false
	}
	pageHost := strings.ToLower(u.Hostname())
	for _, allowed := range h.allowedHosts {
		if pageHost == allowed || strings.HasSuffix(pageHost, "."+allowed) {
			return true
		}
	}
	return false
}
