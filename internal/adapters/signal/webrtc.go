package signal

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/linkmeet/linkmeet/internal/core"
	"github.com/linkmeet/linkmeet/internal/domain"
)

// handleForward relays offer/answer/ice-candidate to the target
// connection. The payload field is opaque; negotiation semantics belong
// to the two endpoints.
func (ctl *Controller) handleForward(cid core.ConnID, kind string, data []byte) {
	var p struct {
		Type    string          `json:"type"`
		Target  string          `json:"targetConnectionId"`
		RoomID  string          `json:"roomId"`
		Payload json.RawMessage `json:"payload"`
	}
	if err := json.Unmarshal(data, &p); err != nil || p.Target == "" {
		log.Error().Err(err).Str("module", "signal").Str("kind", kind).Msg("bad forward payload")
		ctl.Router.NotifyError(cid, "bad_payload")
		return
	}
	err := ctl.Router.Forward(kind, cid, core.ConnID(p.Target), domain.RoomID(p.RoomID), p.Payload)
	if err != nil {
		ctl.Router.NotifyError(cid, "target_gone")
	}
}

func (ctl *Controller) handleReady(cid core.ConnID, data []byte) {
	var p struct {
		Type   string `json:"type"`
		RoomID string `json:"roomId"`
	}
	if err := json.Unmarshal(data, &p); err != nil || p.RoomID == "" {
		ctl.Router.NotifyError(cid, "bad_payload")
		return
	}
	ctl.Router.Ready(cid, domain.RoomID(p.RoomID))
}
