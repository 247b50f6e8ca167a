package storage

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatal(err)
	}
	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})
	return mr, client
}

// fakeHost answers the host message contract from an in-memory map.
type fakeHost struct {
	mu       sync.Mutex
	data     map[string]json.RawMessage
	messages []string
	reject   bool
}

func newFakeHost(t *testing.T) (*fakeHost, *httptest.Server) {
	h := &fakeHost{data: make(map[string]json.RawMessage)}
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return h, srv
}

func (h *fakeHost) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var msg Message
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.messages = append(h.messages, msg.Type)

	reply := Reply{Success: true}
	switch {
	case h.reject:
		reply = Reply{Success: false, Error: "host busy"}
	case msg.Type == OpPing:
	case msg.Type == OpGet:
		var req GetRequest
		_ = json.Unmarshal(msg.Payload, &req)
		v, ok := h.data[req.Key]
		reply.Data, _ = json.Marshal(GetResponse{Found: ok, Value: v})
	case msg.Type == OpSet:
		var req SetRequest
		_ = json.Unmarshal(msg.Payload, &req)
		h.data[req.Key] = req.Value
	default:
		reply = Reply{Success: false, Error: "unknown operation " + msg.Type}
	}
	_ = json.NewEncoder(w).Encode(reply)
}

// failingMedium fails every write after warm-up.
type failingMedium struct {
	Medium
	err error
}

func (m *failingMedium) Write(ctx context.Context, key, value string) error {
	return m.err
}

var errQuota = errors.New("quota exceeded")
