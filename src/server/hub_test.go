package server

import (
	"encoding/json"
	"net/http"
	"testing"

	"exchange-simulator/src/models"
)

// -----------------------------------------------------------------------------
// Hub State Ownership
// -----------------------------------------------------------------------------

// registerTestClient connects a channel-only client to a running hub loop and
// returns it together with the initial state it was sent. Receiving that
// state synchronizes with the hub goroutine.
func registerTestClient(t *testing.T, s *APIServer) (*Client, *models.MLatestData) {
	t.Helper()

	client := &Client{
		hub:  s,
		send: make(chan *models.MLatestData, 4),
	}
	s.register <- client
	return client, <-client.send
}

// -----------------------------------------------------------------------------

func TestUpdateAllDatasStoresCopy(t *testing.T) {
	s := newTestServer(t)
	go s.handleWebsockets()

	payload := &models.MLatestData{
		Type:      "INITIAL",
		Markets:   s.store.GenerateMarketData(),
		Timestamp: 1,
	}
	s.UpdateAllDatas(payload)

	// The caller keeps full ownership of its payload after publishing.
	if payload.Type != "INITIAL" {
		t.Errorf("caller payload relabeled to %q", payload.Type)
	}
	payload.Timestamp = 999

	_, init := registerTestClient(t, s)
	if init.Timestamp != 1 {
		t.Errorf("stored state shares memory with the caller: ts %d", init.Timestamp)
	}
	if init.Type != "INITIAL" {
		t.Errorf("connect push must be labeled INITIAL, got %q", init.Type)
	}
}

// -----------------------------------------------------------------------------

func TestBroadcastNeverWritesSharedState(t *testing.T) {
	s := newTestServer(t)
	go s.handleWebsockets()

	s.UpdateAllDatas(&models.MLatestData{
		Type:    "INITIAL",
		Markets: s.store.GenerateMarketData(),
	})
	client, init := registerTestClient(t, s)

	payload := &models.MLatestData{
		Type:      "INITIAL",
		Markets:   s.store.GenerateMarketData(),
		Timestamp: 42,
	}
	s.Broadcast(payload)
	msg := <-client.send

	// The caller's payload stays untouched after the broadcast.
	if payload.Type != "INITIAL" {
		t.Errorf("broadcast relabeled the caller's payload to %q", payload.Type)
	}
	if payload.Metrics.ClientCount != 0 {
		t.Errorf("broadcast wrote into the caller's payload: %+v", payload.Metrics)
	}

	// The delivered message is a hub-owned copy, stamped before delivery.
	if msg == payload || msg == init {
		t.Error("client received a shared pointer instead of its own copy")
	}
	if msg.Type != "UPDATE" {
		t.Errorf("expected UPDATE label on broadcast, got %q", msg.Type)
	}
	if msg.Metrics.ClientCount != 1 {
		t.Errorf("expected client count 1, got %d", msg.Metrics.ClientCount)
	}

	// Mutating the delivered copy must not reach the cached state.
	msg.Timestamp = -1
	s.stateMutex.RLock()
	cached := s.latestState.Timestamp
	s.stateMutex.RUnlock()
	if cached != 42 {
		t.Errorf("client copy shares memory with cached state: ts %d", cached)
	}
}

// -----------------------------------------------------------------------------

func TestHealthReportsHubClientCount(t *testing.T) {
	s := newTestServer(t)
	go s.handleWebsockets()

	s.UpdateAllDatas(&models.MLatestData{Type: "INITIAL"})
	registerTestClient(t, s)

	w := doRequest(s, http.MethodGet, "/api/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var health struct {
		Connections int `json:"connections"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &health); err != nil {
		t.Fatalf("bad response: %v", err)
	}
	if health.Connections != 1 {
		t.Errorf("expected 1 connection, got %d", health.Connections)
	}
}
