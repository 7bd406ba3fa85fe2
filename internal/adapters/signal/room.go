package signal

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/linkmeet/linkmeet/internal/core"
	"github.com/linkmeet/linkmeet/internal/domain"
)

func (ctl *Controller) handleRegisterPresence(cid core.ConnID, data []byte) {
	var p struct {
		Type        string `json:"type"`
		UserID      string `json:"userId"`
		DisplayName string `json:"displayName"`
	}
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad register-presence payload")
		ctl.Router.NotifyError(cid, "bad_payload")
		return
	}
	ctl.Router.RegisterPresence(cid, core.MemberInfo{UserID: p.UserID, DisplayName: p.DisplayName})
}

func (ctl *Controller) handleJoin(ctx context.Context, cid core.ConnID, data []byte) {
	var p struct {
		Type        string `json:"type"`
		RoomID      string `json:"roomId"`
		UserID      string `json:"userId"`
		DisplayName string `json:"displayName"`
	}
	if err := json.Unmarshal(data, &p); err != nil || p.RoomID == "" {
		log.Error().Err(err).Str("module", "signal").Msg("bad join payload")
		ctl.Router.NotifyError(cid, "bad_payload")
		return
	}

	info := core.MemberInfo{UserID: p.UserID, DisplayName: p.DisplayName}
	if err := ctl.Router.Join(ctx, cid, domain.RoomID(p.RoomID), info); err != nil {
		ctl.Router.NotifyError(cid, "join_refused")
	}
}

func (ctl *Controller) handleLeave(cid core.ConnID, data []byte) {
	var p struct {
		Type   string `json:"type"`
		RoomID string `json:"roomId"`
	}
	if err := json.Unmarshal(data, &p); err != nil || p.RoomID == "" {
		ctl.Router.NotifyError(cid, "bad_payload")
		return
	}
	ctl.Router.Leave(cid, domain.RoomID(p.RoomID))
}

func (ctl *Controller) handleChat(cid core.ConnID, data []byte) {
	var p struct {
		Type        string `json:"type"`
		RoomID      string `json:"roomId"`
		Content     string `json:"content"`
		DisplayName string `json:"displayName"`
	}
	if err := json.Unmarshal(data, &p); err != nil || p.RoomID == "" || p.Content == "" {
		ctl.Router.NotifyError(cid, "bad_payload")
		return
	}
	ctl.Router.Chat(cid, domain.RoomID(p.RoomID), p.Content, p.DisplayName)
}

func (ctl *Controller) handleTyping(cid core.ConnID, data []byte) {
	var p struct {
		Type        string `json:"type"`
		RoomID      string `json:"roomId"`
		DisplayName string `json:"displayName"`
	}
	if err := json.Unmarshal(data, &p); err != nil || p.RoomID == "" {
		return
	}
	ctl.Router.Typing(cid, domain.RoomID(p.RoomID), p.DisplayName)
}

func (ctl *Controller) handleStopTyping(cid core.ConnID, data []byte) {
	var p struct {
		Type   string `json:"type"`
		RoomID string `json:"roomId"`
	}
	if err := json.Unmarshal(data, &p); err != nil || p.RoomID == "" {
		return
	}
	ctl.Router.StopTyping(cid, domain.RoomID(p.RoomID))
}
