package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/hari7vansh/swipehire/internal/domain/enums"
	"github.com/hari7vansh/swipehire/internal/domain/model"
	ratesvc "github.com/hari7vansh/swipehire/internal/services/rate"
	swipesvc "github.com/hari7vansh/swipehire/internal/services/swipes"
	"github.com/hari7vansh/swipehire/internal/transport/http/dto"
	httperrors "github.com/hari7vansh/swipehire/internal/transport/http/errors"
)

type SwipeHandler struct {
	service *swipesvc.Service
}

func NewSwipeHandler(service *swipesvc.Service) *SwipeHandler {
	return &SwipeHandler{service: service}
}

func (h *SwipeHandler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := model.ActorFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "SWIPE_SERVICE_UNAVAILABLE", "swipe service is unavailable")
		return
	}

	var req dto.SwipeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid request body")
		return
	}
	if strings.TrimSpace(req.Direction) == "" {
		writeBadRequest(w, "VALIDATION_ERROR", "direction is required")
		return
	}

	result, err := h.service.Swipe(r.Context(), actor, swipesvc.Input{
		Direction:   enums.SwipeDirection(req.Direction),
		JobID:       req.JobID,
		JobSeekerID: req.JobSeekerID,
	})
	if err != nil {
		switch {
		case errors.Is(err, swipesvc.ErrInvalidDirection):
			writeBadRequest(w, "VALIDATION_ERROR", "direction must be left or right")
		case errors.Is(err, swipesvc.ErrValidation):
			writeBadRequest(w, "VALIDATION_ERROR", "invalid swipe request")
		case errors.Is(err, swipesvc.ErrJobNotFound):
			writeNotFound(w, "JOB_NOT_FOUND", "job not found")
		case errors.Is(err, swipesvc.ErrCandidateNotFound):
			writeNotFound(w, "CANDIDATE_NOT_FOUND", "candidate not found")
		case errors.Is(err, swipesvc.ErrForbidden):
			writeForbidden(w, "FORBIDDEN", "swipe not allowed for this account")
		case errors.Is(err, ratesvc.ErrRateLimited):
			payload := httperrors.RateLimitError{
				Code:    "RATE_LIMITED",
				Message: "too many swipes, slow down",
			}
			var limitErr *ratesvc.LimitError
			if errors.As(err, &limitErr) {
				payload.RetryAfterSec = retryAfterSec(limitErr.RetryAfter)
			}
			httperrors.Write(w, http.StatusTooManyRequests, payload)
		default:
			writeInternal(w, "INTERNAL_ERROR", "failed to process swipe")
		}
		return
	}

	res := dto.SwipeResponse{
		OK:      true,
		Matched: result.Matched,
		Message: "swipe recorded",
	}
	if result.Matched {
		res.MatchID = result.Match.ID
		res.Message = "it's a match"
	}
	httperrors.Write(w, http.StatusOK, res)
}

// retryAfterSec rounds the window remainder up to whole seconds so a
// client never retries before the window actually resets.
func retryAfterSec(d time.Duration) int64 {
	if d <= 0 {
		return 1
	}
	return int64((d + time.Second - 1) / time.Second)
}
