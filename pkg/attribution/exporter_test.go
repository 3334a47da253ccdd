package attribution

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/require"
)

func newTestBus() *gochannel.GoChannel {
	return gochannel.NewGoChannel(gochannel.Config{}, watermill.NewStdLogger(false, false))
}

func publishRecord(t *testing.T, bus *gochannel.GoChannel, topic string, record EventRecord) {
	t.Helper()
	payload, err := json.Marshal(record)
	require.NoError(t, err)
	require.NoError(t, bus.Publish(topic, message.NewMessage(watermill.NewUUID(), payload)))
}

func waitForRecorded(t *testing.T, exporter *Exporter, count int) []EventRecord {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if recorded := exporter.Recorded(); len(recorded) >= count {
			return recorded
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d recorded events", count)
	return nil
}

func TestExporterRecordsEvents(t *testing.T) {
	bus := newTestBus()
	exporter := NewExporter(bus, "ATTRIBUTION_EVENTS", GA4Config{}, log.New(os.Stderr, "", 0))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, exporter.Consume(ctx))

	publishRecord(t, bus, "ATTRIBUTION_EVENTS", EventRecord{
		Type: "RECOMMENDATION_ISSUED",
		Data: map[string]interface{}{"session_id": "s-1", "query": "workspace"},
	})

	recorded := waitForRecorded(t, exporter, 1)
	require.Equal(t, "RECOMMENDATION_ISSUED", recorded[0].Type)
	require.Equal(t, "workspace", recorded[0].Data["query"])
	require.False(t, recorded[0].RecordedAt.IsZero())
}

func TestExporterSkipsMalformedPayloads(t *testing.T) {
	bus := newTestBus()
	exporter := NewExporter(bus, "ATTRIBUTION_EVENTS", GA4Config{}, log.New(os.Stderr, "", 0))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, exporter.Consume(ctx))

	require.NoError(t, bus.Publish("ATTRIBUTION_EVENTS", message.NewMessage(watermill.NewUUID(), []byte("not json"))))
	publishRecord(t, bus, "ATTRIBUTION_EVENTS", EventRecord{Type: "SESSION_STARTED", Data: map[string]interface{}{}})

	recorded := waitForRecorded(t, exporter, 1)
	require.Len(t, recorded, 1)
	require.Equal(t, "SESSION_STARTED", recorded[0].Type)
}

func TestExporterSendsToGA4(t *testing.T) {
	received := make(chan map[string]interface{}, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		received <- body
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	bus := newTestBus()
	exporter := NewExporter(bus, "ATTRIBUTION_EVENTS", GA4Config{
		MeasurementID: "G-TEST",
		APISecret:     "secret",
		Endpoint:      server.URL,
	}, log.New(os.Stderr, "", 0))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, exporter.Consume(ctx))

	publishRecord(t, bus, "ATTRIBUTION_EVENTS", EventRecord{
		Type: "GUARD_VERDICT",
		Data: map[string]interface{}{"user_id": "alice", "status": "clear"},
	})

	select {
	case body := <-received:
		require.Equal(t, "alice", body["client_id"])
		events := body["events"].([]interface{})
		require.Len(t, events, 1)
		event := events[0].(map[string]interface{})
		require.Equal(t, "guard_verdict", event["name"])
	case <-time.After(2 * time.Second):
		t.Fatal("GA4 endpoint was never called")
	}
}

func TestExportJSON(t *testing.T) {
	bus := newTestBus()
	exporter := NewExporter(bus, "ATTRIBUTION_EVENTS", GA4Config{}, log.New(os.Stderr, "", 0))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, exporter.Consume(ctx))

	publishRecord(t, bus, "ATTRIBUTION_EVENTS", EventRecord{Type: "GOAL_RECORDED", Data: map[string]interface{}{"goal_text": "reduce back pain"}})
	waitForRecorded(t, exporter, 1)

	raw, err := exporter.ExportJSON()
	require.NoError(t, err)

	var parsed []EventRecord
	require.NoError(t, json.Unmarshal(raw, &parsed))
	require.Len(t, parsed, 1)
	require.Equal(t, "GOAL_RECORDED", parsed[0].Type)
}
