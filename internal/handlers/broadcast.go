package handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/gw-exchange-bot/internal/models"
)

//go:generate mockgen -source=broadcast.go -destination=broadcast_mock_test.go -package=handlers

// Broadcaster queues broadcasts and reports their delivery.
type Broadcaster interface {
	Enqueue(ctx context.Context, text, parseMode string, chatIDs []int64, actor string) (*models.BroadcastMessage, error)
	History(ctx context.Context, id int64) (*models.BroadcastMessage, []models.BroadcastHistory, error)
}

// BroadcastRequest fans a message out to chats
// swagger:model BroadcastRequest
type BroadcastRequest struct {
	// Telegram chat ids
	// required: true
	ChatIDs []int64 `json:"chat_ids"`
	// required: true
	Text string `json:"text"`
	// default: HTML
	ParseMode string `json:"parse_mode,omitempty"`
}

// BroadcastAcceptedResponse acknowledges a queued broadcast
// swagger:model BroadcastAcceptedResponse
type BroadcastAcceptedResponse struct {
	ID     int64  `json:"id"`
	Status string `json:"status"`
}

// BroadcastHistoryResponse is a broadcast and its per-recipient outcome
// swagger:model BroadcastHistoryResponse
type BroadcastHistoryResponse struct {
	Broadcast *models.BroadcastMessage  `json:"broadcast"`
	History   []models.BroadcastHistory `json:"history"`
}

// NewBroadcastHandler returns an HTTP handler queueing a broadcast.
// @Summary Broadcast a message
// @Description Queues a message for a list of chats and returns immediately. Delivery is asynchronous.
// @Tags telegram
// @Accept json
// @Produce json
// @Param request body handlers.BroadcastRequest true "Broadcast"
// @Success 202 {object} handlers.BroadcastAcceptedResponse
// @Failure 400 {object} handlers.ErrorResponse "Invalid broadcast"
// @Router /telegram/messages/broadcast [post]
// @Security BearerAuth
func NewBroadcastHandler(svc Broadcaster, actorGetter ActorGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := requireActor(w, r, actorGetter)
		if !ok {
			return
		}

		var req BroadcastRequest
		if err := decodeBody(r, &req); err != nil {
			writeError(w, err)
			return
		}

		msg, err := svc.Enqueue(r.Context(), req.Text, req.ParseMode, req.ChatIDs, actor)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusAccepted, BroadcastAcceptedResponse{ID: msg.ID, Status: "accepted"})
	}
}

// NewBroadcastHistoryHandler returns an HTTP handler for a broadcast's delivery history.
// @Summary Broadcast delivery history
// @Tags telegram
// @Produce json
// @Param id path int true "Broadcast id"
// @Success 200 {object} handlers.BroadcastHistoryResponse
// @Failure 404 {object} handlers.ErrorResponse "Broadcast not found"
// @Router /telegram/messages/broadcast/{id} [get]
// @Security BearerAuth
func NewBroadcastHistoryHandler(svc Broadcaster) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := int64Param(r, "id")
		if err != nil {
			writeError(w, err)
			return
		}

		msg, history, err := svc.History(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}
		if history == nil {
			history = []models.BroadcastHistory{}
		}
		writeJSON(w, http.StatusOK, BroadcastHistoryResponse{Broadcast: msg, History: history})
	}
}
