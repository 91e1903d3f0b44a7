package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/hari7vansh/swipehire/internal/domain/model"
	pgrepo "github.com/hari7vansh/swipehire/internal/repo/postgres"
	messagessvc "github.com/hari7vansh/swipehire/internal/services/messages"
	"github.com/hari7vansh/swipehire/internal/transport/http/dto"
	httperrors "github.com/hari7vansh/swipehire/internal/transport/http/errors"
)

type MessagesHandler struct {
	service *messagessvc.Service
}

func NewMessagesHandler(service *messagessvc.Service) *MessagesHandler {
	return &MessagesHandler{service: service}
}

func (h *MessagesHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := model.ActorFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "MESSAGE_SERVICE_UNAVAILABLE", "message service is unavailable")
		return
	}

	// An absent match_id degrades to an empty thread, the same way an
	// unknown match does.
	raw := strings.TrimSpace(r.URL.Query().Get("match_id"))
	if raw == "" {
		httperrors.Write(w, http.StatusOK, dto.MessageListResponse{Messages: []dto.MessageResponse{}})
		return
	}
	matchID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || matchID <= 0 {
		writeBadRequest(w, "VALIDATION_ERROR", "match_id must be a positive integer")
		return
	}

	recs, err := h.service.List(r.Context(), actor, matchID)
	if err != nil {
		if errors.Is(err, messagessvc.ErrForbidden) {
			writeForbidden(w, "FORBIDDEN", "not a participant of this match")
			return
		}
		writeInternal(w, "INTERNAL_ERROR", "failed to list messages")
		return
	}

	messages := make([]dto.MessageResponse, 0, len(recs))
	for _, rec := range recs {
		messages = append(messages, mapMessage(rec))
	}
	httperrors.Write(w, http.StatusOK, dto.MessageListResponse{Messages: messages})
}

func (h *MessagesHandler) Post(w http.ResponseWriter, r *http.Request) {
	actor, ok := model.ActorFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "MESSAGE_SERVICE_UNAVAILABLE", "message service is unavailable")
		return
	}

	var req dto.PostMessageRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}
	if req.MatchID <= 0 {
		writeBadRequest(w, "VALIDATION_ERROR", "match_id is required")
		return
	}

	rec, err := h.service.Post(r.Context(), actor, req.MatchID, req.Content)
	if err != nil {
		switch {
		case errors.Is(err, messagessvc.ErrValidation):
			writeBadRequest(w, "VALIDATION_ERROR", "request validation failed")
		case errors.Is(err, messagessvc.ErrMatchNotFound):
			writeNotFound(w, "MATCH_NOT_FOUND", "match not found")
		case errors.Is(err, messagessvc.ErrForbidden):
			writeForbidden(w, "FORBIDDEN", "not a participant of this match")
		case errors.Is(err, messagessvc.ErrMatchInactive):
			httperrors.Write(w, http.StatusConflict, httperrors.APIError{
				Code:    "MATCH_INACTIVE",
				Message: "match is no longer active",
			})
		default:
			writeInternal(w, "INTERNAL_ERROR", "failed to send message")
		}
		return
	}

	httperrors.Write(w, http.StatusCreated, mapMessage(rec))
}

func mapMessage(rec pgrepo.MessageRecord) dto.MessageResponse {
	return dto.MessageResponse{
		ID:              rec.ID,
		MatchID:         rec.MatchID,
		SenderProfileID: rec.SenderProfileID,
		Content:         rec.Content,
		IsRead:          rec.IsRead,
		CreatedAt:       rec.CreatedAt,
	}
}
