package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
)

// RemoteMessageBackend delegates persistence to the host. It keeps no cache;
// ordering across messages is whatever the host guarantees.
type RemoteMessageBackend struct {
	sender Sender
}

func NewRemoteMessageBackend(sender Sender) *RemoteMessageBackend {
	return &RemoteMessageBackend{sender: sender}
}

func (b *RemoteMessageBackend) Kind() Kind { return KindRemote }

func (b *RemoteMessageBackend) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := b.sender.Send(ctx, OpGet, GetRequest{Key: key})
	if err != nil {
		return nil, false, err
	}

	var resp GetResponse
	if len(data) > 0 {
		if err := json.Unmarshal(data, &resp); err != nil {
			return nil, false, fmt.Errorf("decode %s reply for %q: %w", OpGet, key, err)
		}
	}
	if !resp.Found || len(resp.Value) == 0 || bytes.Equal(resp.Value, []byte("null")) {
		return nil, false, nil
	}
	return resp.Value, true, nil
}

func (b *RemoteMessageBackend) Set(ctx context.Context, key string, value []byte) error {
	if !json.Valid(value) {
		return fmt.Errorf("%w: value for %q is not JSON", ErrCorrupt, key)
	}
	_, err := b.sender.Send(ctx, OpSet, SetRequest{Key: key, Value: value})
	return err
}

// Ping asks the host to acknowledge it is present.
func (b *RemoteMessageBackend) Ping(ctx context.Context) error {
	_, err := b.sender.Send(ctx, OpPing, nil)
	return err
}
