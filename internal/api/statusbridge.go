package api

import (
	"encoding/json"

	"github.com/rawblock/cadastral-engine/internal/adapters"
)

// hubSink is an adapters.StatusSink that records every entry (so the
// finished job's diagnostics survive in auditstore.Store) and also
// broadcasts it over the websocket hub as it arrives, tagged with the
// job id — the bridge between the pipeline's status channel and the
// teacher's Hub.Broadcast transport.
type hubSink struct {
	jobID string
	hub   *Hub
	sink  adapters.StatusSink
}

func newHubSink(jobID string, hub *Hub) *hubSink {
	return &hubSink{jobID: jobID, hub: hub, sink: adapters.NewMemorySink()}
}

type statusMessage struct {
	JobID   string `json:"jobId"`
	Message string `json:"message"`
}

func (h *hubSink) Emit(message string) {
	h.sink.Emit(message)
	if h.hub == nil {
		return
	}
	payload, err := json.Marshal(statusMessage{JobID: h.jobID, Message: message})
	if err != nil {
		return
	}
	h.hub.Broadcast(payload)
}

func (h *hubSink) Entries() []string { return h.sink.Entries() }
func (h *hubSink) Clear()            { h.sink.Clear() }
