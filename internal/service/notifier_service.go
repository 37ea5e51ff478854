package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"escrow-ledger-engine/internal/core/ports"

	"github.com/rs/zerolog"
)

// notifyRetryIntervals defines the delivery retry schedule.
var notifyRetryIntervals = []time.Duration{
	15 * time.Second,
	60 * time.Second,
	2 * time.Minute,
	5 * time.Minute,
	10 * time.Minute,
}

// HTTPClient interface for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// notifyEnvelope is the JSON structure POSTed to the notify endpoint.
type notifyEnvelope struct {
	Event     ports.NotifyEvent `json:"event"`
	Signature string            `json:"signature"`
}

// NotifierImpl implements ports.Notifier: signed JSON POSTs to a configured
// endpoint, delivered asynchronously with retries. An empty endpoint
// disables delivery.
type NotifierImpl struct {
	endpoint      string
	signingSecret string
	sigSvc        ports.SignatureService
	httpClient    HTTPClient
	log           zerolog.Logger
}

// NewNotifier creates a new NotifierImpl.
func NewNotifier(endpoint, signingSecret string, sigSvc ports.SignatureService, httpClient HTTPClient, log zerolog.Logger) *NotifierImpl {
	return &NotifierImpl{
		endpoint:      endpoint,
		signingSecret: signingSecret,
		sigSvc:        sigSvc,
		httpClient:    httpClient,
		log:           log,
	}
}

// EnqueueNotify signs the event and fires delivery in the background.
func (s *NotifierImpl) EnqueueNotify(ctx context.Context, event ports.NotifyEvent) error {
	if s.endpoint == "" {
		s.log.Debug().Str("event_type", event.EventType).Msg("notify: no endpoint configured, skipping")
		return nil
	}

	eventBytes, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("notify: marshal event: %w", err)
	}

	envelope := notifyEnvelope{
		Event:     event,
		Signature: s.sigSvc.Sign(s.signingSecret, string(eventBytes)),
	}

	go s.deliverWithRetries(envelope)
	return nil
}

// deliverWithRetries attempts delivery until a 2xx or the schedule runs out.
func (s *NotifierImpl) deliverWithRetries(envelope notifyEnvelope) {
	payloadBytes, err := json.Marshal(envelope)
	if err != nil {
		s.log.Error().Err(err).Str("event_type", envelope.Event.EventType).Msg("notify: failed to marshal envelope")
		return
	}

	for attempt := 0; attempt <= len(notifyRetryIntervals); attempt++ {
		if attempt > 0 {
			time.Sleep(notifyRetryIntervals[attempt-1])
		}

		req, err := http.NewRequest(http.MethodPost, s.endpoint, bytes.NewReader(payloadBytes))
		if err != nil {
			s.log.Error().Err(err).Int("attempt", attempt+1).Msg("notify: failed to create request")
			continue
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := s.httpClient.Do(req)
		if err != nil {
			s.log.Warn().Err(err).Int("attempt", attempt+1).Msg("notify: delivery failed")
			continue
		}
		resp.Body.Close()

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			s.log.Info().
				Str("event_type", envelope.Event.EventType).
				Str("subject_id", envelope.Event.SubjectID).
				Int("attempt", attempt+1).
				Msg("notify: delivered")
			return
		}

		s.log.Warn().Int("attempt", attempt+1).Int("status", resp.StatusCode).Msg("notify: non-2xx response, retrying")
	}

	s.log.Error().Str("event_type", envelope.Event.EventType).Msg("notify: all retry attempts exhausted")
}
