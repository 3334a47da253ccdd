package attribution

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

const defaultEndpoint = "https://www.google-analytics.com/mp/collect"

// GA4Config holds Measurement Protocol credentials. Leave MeasurementID
// empty to record events locally without sending anything.
type GA4Config struct {
	MeasurementID string
	APISecret     string
	Endpoint      string
}

// EventRecord is one attribution event as consumed off the bus.
type EventRecord struct {
	Type       string                 `json:"type"`
	Data       map[string]interface{} `json:"data"`
	RecordedAt time.Time              `json:"recorded_at"`
}

// Exporter consumes dialogue events from the in-process bus and forwards
// them to GA4 via the Measurement Protocol. Every event is also kept in a
// bounded in-memory log for JSON export and inspection.
type Exporter struct {
	pubSub *gochannel.GoChannel
	topic  string
	cfg    GA4Config
	client *http.Client
	logger *log.Logger

	mu       sync.Mutex
	recorded []EventRecord
}

func NewExporter(pubSub *gochannel.GoChannel, topic string, cfg GA4Config, logger *log.Logger) *Exporter {
	if cfg.Endpoint == "" {
		cfg.Endpoint = defaultEndpoint
	}
	return &Exporter{
		pubSub: pubSub,
		topic:  topic,
		cfg:    cfg,
		client: &http.Client{Timeout: 10 * time.Second},
		logger: logger,
	}
}

// Consume subscribes to the attribution topic and processes messages until
// the context is cancelled.
func (e *Exporter) Consume(ctx context.Context) error {
	messages, err := e.pubSub.Subscribe(ctx, e.topic)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			e.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (e *Exporter) processMessage(ctx context.Context, msg *message.Message) {
	var record EventRecord
	if err := json.Unmarshal(msg.Payload, &record); err != nil {
		e.logger.Printf("[ERROR] Failed to unmarshal attribution event: %v", err)
		msg.Ack() // invalid payloads never become valid; don't retry
		return
	}
	record.RecordedAt = time.Now()

	e.mu.Lock()
	e.recorded = append(e.recorded, record)
	if len(e.recorded) > 1000 {
		e.recorded = e.recorded[len(e.recorded)-1000:]
	}
	e.mu.Unlock()

	if e.cfg.MeasurementID != "" {
		if err := e.send(ctx, record); err != nil {
			e.logger.Printf("[WARN] GA4 export failed for %s: %v", record.Type, err)
		}
	}
	msg.Ack()
}

func (e *Exporter) send(ctx context.Context, record EventRecord) error {
	clientID, _ := record.Data["user_id"].(string)
	if clientID == "" {
		clientID, _ = record.Data["session_id"].(string)
	}
	if clientID == "" {
		clientID = "anonymous"
	}

	body := map[string]interface{}{
		"client_id": clientID,
		"events": []map[string]interface{}{
			{
				"name":   strings.ToLower(record.Type),
				"params": record.Data,
			},
		},
	}
	raw, err := json.Marshal(body)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s?measurement_id=%s&api_secret=%s", e.cfg.Endpoint, e.cfg.MeasurementID, e.cfg.APISecret)
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	request.Header.Set("Content-Type", "application/json")

	response, err := e.client.Do(request)
	if err != nil {
		return err
	}
	defer response.Body.Close()
	if response.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %d", response.StatusCode)
	}
	return nil
}

// Recorded returns a copy of the in-memory event log.
func (e *Exporter) Recorded() []EventRecord {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]EventRecord, len(e.recorded))
	copy(out, e.recorded)
	return out
}

// ExportJSON serializes the recorded events, mirroring the offline export
// path used when GA4 credentials are absent.
func (e *Exporter) ExportJSON() ([]byte, error) {
	return json.MarshalIndent(e.Recorded(), "", "  ")
}
