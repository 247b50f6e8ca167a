package storage

import "encoding/json"

// Operations understood by the host.
const (
	OpPing = "ping"
	OpGet  = "storage.get"
	OpSet  = "storage.set"
)

// Message is the request envelope posted to the host.
type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Reply is the host's answer to a Message.
type Reply struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// GetRequest is the payload of OpGet.
type GetRequest struct {
	Key string `json:"key"`
}

// GetResponse is the data of a successful OpGet reply.
type GetResponse struct {
	Found bool            `json:"found"`
	Value json.RawMessage `json:"value,omitempty"`
}

// SetRequest is the payload of OpSet.
type SetRequest struct {
	Key   string          `json:"key"`
	Value json.RawMessage `json:"value"`
}
