package handlers

import (
	"errors"
	"net/http"

	"github.com/hari7vansh/swipehire/internal/domain/model"
	profilessvc "github.com/hari7vansh/swipehire/internal/services/profiles"
	"github.com/hari7vansh/swipehire/internal/transport/http/dto"
	httperrors "github.com/hari7vansh/swipehire/internal/transport/http/errors"
	pgrepo "github.com/hari7vansh/swipehire/internal/repo/postgres"
)

type ProfileHandler struct {
	service *profilessvc.Service
}

func NewProfileHandler(service *profilessvc.Service) *ProfileHandler {
	return &ProfileHandler{service: service}
}

func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor, ok := model.ActorFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "PROFILE_SERVICE_UNAVAILABLE", "profile service is unavailable")
		return
	}

	profile, err := h.service.Get(r.Context(), actor.UserID)
	if err != nil {
		if errors.Is(err, profilessvc.ErrProfileNotFound) {
			writeNotFound(w, "PROFILE_NOT_FOUND", "profile not found")
			return
		}
		writeInternal(w, "INTERNAL_ERROR", "failed to load profile")
		return
	}

	httperrors.Write(w, http.StatusOK, mapProfile(profile))
}

func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := model.ActorFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "PROFILE_SERVICE_UNAVAILABLE", "profile service is unavailable")
		return
	}

	var req dto.UpdateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	input := profilessvc.UpdateInput{
		Bio:      req.Bio,
		Location: req.Location,
	}
	if req.Recruiter != nil {
		input.Recruiter = &pgrepo.RecruiterProfileRecord{
			CompanyName:        req.Recruiter.CompanyName,
			Position:           req.Recruiter.Position,
			CompanyDescription: req.Recruiter.CompanyDescription,
			CompanyWebsite:     req.Recruiter.CompanyWebsite,
			Industry:           req.Recruiter.Industry,
		}
	}
	if req.JobSeeker != nil {
		input.JobSeeker = &pgrepo.JobSeekerProfileRecord{
			Skills:          req.JobSeeker.Skills,
			ExperienceYears: req.JobSeeker.ExperienceYears,
			Education:       req.JobSeeker.Education,
			DesiredPosition: req.JobSeeker.DesiredPosition,
			DesiredSalary:   req.JobSeeker.DesiredSalary,
		}
	}

	profile, err := h.service.Update(r.Context(), actor, input)
	if err != nil {
		switch {
		case errors.Is(err, profilessvc.ErrValidation):
			writeBadRequest(w, "VALIDATION_ERROR", "request validation failed")
		case errors.Is(err, profilessvc.ErrProfileNotFound):
			writeNotFound(w, "PROFILE_NOT_FOUND", "profile not found")
		default:
			writeInternal(w, "INTERNAL_ERROR", "failed to update profile")
		}
		return
	}

	httperrors.Write(w, http.StatusOK, mapProfile(profile))
}

func mapProfile(profile profilessvc.Profile) dto.ProfileResponse {
	res := dto.ProfileResponse{
		ID:       profile.Base.ID,
		UserID:   profile.Base.UserID,
		Role:     string(profile.Base.Role),
		Bio:      profile.Base.Bio,
		Location: profile.Base.Location,
	}
	if profile.Recruiter != nil {
		res.Recruiter = &dto.RecruiterSection{
			CompanyName:        profile.Recruiter.CompanyName,
			Position:           profile.Recruiter.Position,
			CompanyDescription: profile.Recruiter.CompanyDescription,
			CompanyWebsite:     profile.Recruiter.CompanyWebsite,
			Industry:           profile.Recruiter.Industry,
		}
	}
	if profile.JobSeeker != nil {
		res.JobSeeker = &dto.JobSeekerSection{
			Skills:          profile.JobSeeker.Skills,
			ExperienceYears: profile.JobSeeker.ExperienceYears,
			Education:       profile.JobSeeker.Education,
			DesiredPosition: profile.JobSeeker.DesiredPosition,
			DesiredSalary:   profile.JobSeeker.DesiredSalary,
		}
	}
	return res
}
