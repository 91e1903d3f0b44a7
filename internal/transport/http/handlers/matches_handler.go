package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/hari7vansh/swipehire/internal/domain/model"
	matchessvc "github.com/hari7vansh/swipehire/internal/services/matches"
	"github.com/hari7vansh/swipehire/internal/transport/http/dto"
	httperrors "github.com/hari7vansh/swipehire/internal/transport/http/errors"
)

type MatchesHandler struct {
	service *matchessvc.Service
}

func NewMatchesHandler(service *matchessvc.Service) *MatchesHandler {
	return &MatchesHandler{service: service}
}

func (h *MatchesHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := model.ActorFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "MATCH_SERVICE_UNAVAILABLE", "match service is unavailable")
		return
	}

	recs, err := h.service.List(r.Context(), actor)
	if err != nil {
		writeInternal(w, "INTERNAL_ERROR", "failed to list matches")
		return
	}

	matches := make([]dto.MatchResponse, 0, len(recs))
	for _, rec := range recs {
		matches = append(matches, dto.MatchResponse{
			ID:              rec.ID,
			JobID:           rec.JobID,
			JobTitle:        rec.JobTitle,
			CompanyName:     rec.CompanyName,
			JobSeekerID:     rec.JobSeekerID,
			CandidateName:   rec.CandidateName,
			RecruiterViewed: rec.RecruiterViewed,
			JobSeekerViewed: rec.JobSeekerViewed,
			CreatedAt:       rec.CreatedAt,
		})
	}
	httperrors.Write(w, http.StatusOK, dto.MatchListResponse{Matches: matches})
}

func (h *MatchesHandler) MarkViewed(w http.ResponseWriter, r *http.Request) {
	h.action(w, r, func(ctx context.Context, actor model.Actor, matchID int64) error {
		return h.service.MarkViewed(ctx, actor, matchID)
	})
}

func (h *MatchesHandler) Unmatch(w http.ResponseWriter, r *http.Request) {
	h.action(w, r, func(ctx context.Context, actor model.Actor, matchID int64) error {
		return h.service.Unmatch(ctx, actor, matchID)
	})
}

func (h *MatchesHandler) action(w http.ResponseWriter, r *http.Request, fn func(context.Context, model.Actor, int64) error) {
	actor, ok := model.ActorFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "MATCH_SERVICE_UNAVAILABLE", "match service is unavailable")
		return
	}

	matchID, ok := pathID(r, "id")
	if !ok {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid match id")
		return
	}

	if err := fn(r.Context(), actor, matchID); err != nil {
		switch {
		case errors.Is(err, matchessvc.ErrMatchNotFound):
			writeNotFound(w, "MATCH_NOT_FOUND", "match not found")
		case errors.Is(err, matchessvc.ErrForbidden):
			writeForbidden(w, "FORBIDDEN", "not a participant of this match")
		default:
			writeInternal(w, "INTERNAL_ERROR", "failed to update match")
		}
		return
	}

	httperrors.Write(w, http.StatusOK, dto.MatchActionResponse{OK: true})
}
