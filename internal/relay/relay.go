// Package relay moves extraction requests between the panel and the host that
// owns the page. Only serialized JSON crosses the boundary in either direction.
package relay

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/mikey/phishawk/internal/core"
	"go.uber.org/zap"
)

// envelope is one request in flight to a host. The host sends at most one
// payload on reply and always closes it.
type envelope struct {
	payload []byte
	reply   chan<- []byte
}

// endpoint is the receiving side of a registered host
type endpoint interface {
	deliver(ctx context.Context, env envelope) error
}

// Broker routes requests to hosts by target name and implements core.Relay
type Broker struct {
	mu     sync.RWMutex
	hosts  map[string]endpoint
	logger *zap.Logger
}

// NewBroker creates a new broker with no hosts attached
func NewBroker(logger *zap.Logger) *Broker {
	return &Broker{
		hosts:  make(map[string]endpoint),
		logger: logger,
	}
}

func (b *Broker) register(target string, ep endpoint) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.hosts[target] = ep
}

func (b *Broker) unregister(target string, ep endpoint) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.hosts[target] == ep {
		delete(b.hosts, target)
	}
}

func (b *Broker) lookup(target string) (endpoint, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	ep, ok := b.hosts[target]
	return ep, ok
}

// RequestExtraction sends one extractEmail request to target and waits for its reply.
// Nothing is retried; a failed attempt must be triggered again by the caller.
func (b *Broker) RequestExtraction(ctx context.Context, target string) (core.ExtractionResult, error) {
	ep, ok := b.lookup(target)
	if !ok {
		return core.ExtractionResult{}, &core.TransportError{Kind: core.NoResponder, Target: target}
	}

	payload, err := json.Marshal(Message{Action: ActionExtractEmail})
	if err != nil {
		return core.ExtractionResult{}, fmt.Errorf("failed to encode relay message: %w", err)
	}

	replyCh := make(chan []byte, 1)
	if err := ep.deliver(ctx, envelope{payload: payload, reply: replyCh}); err != nil {
		return core.ExtractionResult{}, &core.TransportError{Kind: core.NoResponder, Target: target, Err: err}
	}

	select {
	case data, ok := <-replyCh:
		if !ok || len(data) == 0 {
			return core.ExtractionResult{}, &core.TransportError{Kind: core.EmptyResponse, Target: target}
		}
		result, err := DecodeResult(data)
		if err != nil {
			b.logger.Warn("Discarding undecodable extraction reply",
				zap.String("target", target),
				zap.Error(err))
			return core.ExtractionResult{}, &core.TransportError{Kind: core.EmptyResponse, Target: target, Err: err}
		}
		return result, nil
	case <-ctx.Done():
		return core.ExtractionResult{}, fmt.Errorf("waiting for extraction reply from %q: %w", target, ctx.Err())
	}
}
