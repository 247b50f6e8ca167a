package org

import "teamprompt/internal/storage"

// StatusResponse tells clients which persistence backend is serving them.
type StatusResponse struct {
	Backend storage.Kind `json:"backend"`
}
