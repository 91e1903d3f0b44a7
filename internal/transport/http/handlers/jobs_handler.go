package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/hari7vansh/swipehire/internal/domain/enums"
	"github.com/hari7vansh/swipehire/internal/domain/model"
	pgrepo "github.com/hari7vansh/swipehire/internal/repo/postgres"
	jobssvc "github.com/hari7vansh/swipehire/internal/services/jobs"
	"github.com/hari7vansh/swipehire/internal/transport/http/dto"
	httperrors "github.com/hari7vansh/swipehire/internal/transport/http/errors"
)

type JobsHandler struct {
	service *jobssvc.Service
}

func NewJobsHandler(service *jobssvc.Service) *JobsHandler {
	return &JobsHandler{service: service}
}

func (h *JobsHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := model.ActorFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "JOB_SERVICE_UNAVAILABLE", "job service is unavailable")
		return
	}

	recs, err := h.service.List(r.Context(), actor)
	if err != nil {
		writeInternal(w, "INTERNAL_ERROR", "failed to list jobs")
		return
	}

	jobs := make([]dto.JobResponse, 0, len(recs))
	for _, rec := range recs {
		jobs = append(jobs, mapJob(rec))
	}
	httperrors.Write(w, http.StatusOK, dto.JobListResponse{Jobs: jobs})
}

func (h *JobsHandler) Get(w http.ResponseWriter, r *http.Request) {
	if _, ok := model.ActorFromContext(r.Context()); !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "JOB_SERVICE_UNAVAILABLE", "job service is unavailable")
		return
	}

	jobID, ok := pathID(r, "id")
	if !ok {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid job id")
		return
	}

	rec, err := h.service.Get(r.Context(), jobID)
	if err != nil {
		if errors.Is(err, jobssvc.ErrJobNotFound) {
			writeNotFound(w, "JOB_NOT_FOUND", "job not found")
			return
		}
		writeInternal(w, "INTERNAL_ERROR", "failed to load job")
		return
	}

	httperrors.Write(w, http.StatusOK, mapJob(rec))
}

func (h *JobsHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := model.ActorFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "JOB_SERVICE_UNAVAILABLE", "job service is unavailable")
		return
	}

	var req dto.JobRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	rec, err := h.service.Create(r.Context(), actor, jobInput(req))
	if err != nil {
		handleJobError(w, err, "failed to create job")
		return
	}

	httperrors.Write(w, http.StatusCreated, mapJob(rec))
}

func (h *JobsHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := model.ActorFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "JOB_SERVICE_UNAVAILABLE", "job service is unavailable")
		return
	}

	jobID, ok := pathID(r, "id")
	if !ok {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid job id")
		return
	}

	var req dto.JobRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	rec, err := h.service.Update(r.Context(), actor, jobID, jobInput(req))
	if err != nil {
		handleJobError(w, err, "failed to update job")
		return
	}

	httperrors.Write(w, http.StatusOK, mapJob(rec))
}

func (h *JobsHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	actor, ok := model.ActorFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "JOB_SERVICE_UNAVAILABLE", "job service is unavailable")
		return
	}

	jobID, ok := pathID(r, "id")
	if !ok {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid job id")
		return
	}

	if err := h.service.Deactivate(r.Context(), actor, jobID); err != nil {
		handleJobError(w, err, "failed to deactivate job")
		return
	}

	httperrors.Write(w, http.StatusOK, dto.MatchActionResponse{OK: true})
}

func (h *JobsHandler) Apply(w http.ResponseWriter, r *http.Request) {
	actor, ok := model.ActorFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "JOB_SERVICE_UNAVAILABLE", "job service is unavailable")
		return
	}

	jobID, ok := pathID(r, "id")
	if !ok {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid job id")
		return
	}

	var req dto.ApplyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	rec, created, err := h.service.Apply(r.Context(), actor, jobID, req.CoverLetter)
	if err != nil {
		handleJobError(w, err, "failed to apply")
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	httperrors.Write(w, status, mapApplication(rec))
}

func (h *JobsHandler) ListApplications(w http.ResponseWriter, r *http.Request) {
	actor, ok := model.ActorFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "JOB_SERVICE_UNAVAILABLE", "job service is unavailable")
		return
	}

	recs, err := h.service.ListApplications(r.Context(), actor)
	if err != nil {
		handleJobError(w, err, "failed to list applications")
		return
	}

	applications := make([]dto.ApplicationResponse, 0, len(recs))
	for _, rec := range recs {
		applications = append(applications, mapApplication(rec))
	}
	httperrors.Write(w, http.StatusOK, dto.ApplicationListResponse{Applications: applications})
}

func (h *JobsHandler) UpdateApplication(w http.ResponseWriter, r *http.Request) {
	actor, ok := model.ActorFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "JOB_SERVICE_UNAVAILABLE", "job service is unavailable")
		return
	}

	applicationID, ok := pathID(r, "id")
	if !ok {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid application id")
		return
	}

	var req dto.UpdateApplicationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	rec, err := h.service.SetApplicationStatus(r.Context(), actor, applicationID, enums.ApplicationStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, jobssvc.ErrApplicationNotFound):
			writeNotFound(w, "APPLICATION_NOT_FOUND", "application not found")
		default:
			handleJobError(w, err, "failed to update application")
		}
		return
	}

	httperrors.Write(w, http.StatusOK, mapApplication(rec))
}

func handleJobError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, jobssvc.ErrValidation):
		writeBadRequest(w, "VALIDATION_ERROR", "request validation failed")
	case errors.Is(err, jobssvc.ErrForbidden):
		writeForbidden(w, "FORBIDDEN", "operation not allowed for this account")
	case errors.Is(err, jobssvc.ErrJobNotFound):
		writeNotFound(w, "JOB_NOT_FOUND", "job not found")
	case errors.Is(err, jobssvc.ErrApplicationNotFound):
		writeNotFound(w, "APPLICATION_NOT_FOUND", "application not found")
	default:
		writeInternal(w, "INTERNAL_ERROR", fallback)
	}
}

func jobInput(req dto.JobRequest) jobssvc.CreateInput {
	return jobssvc.CreateInput{
		Title:           req.Title,
		Description:     req.Description,
		Requirements:    req.Requirements,
		Location:        req.Location,
		JobType:         enums.JobType(req.JobType),
		ExperienceLevel: enums.ExperienceLevel(req.ExperienceLevel),
		SalaryMin:       req.SalaryMin,
		SalaryMax:       req.SalaryMax,
		IsRemote:        req.IsRemote,
		SkillsRequired:  req.SkillsRequired,
	}
}

func mapJob(rec pgrepo.JobRecord) dto.JobResponse {
	return dto.JobResponse{
		ID:              rec.ID,
		Title:           rec.Title,
		CompanyName:     rec.CompanyName,
		Description:     rec.Description,
		Requirements:    rec.Requirements,
		Location:        rec.Location,
		JobType:         string(rec.JobType),
		ExperienceLevel: string(rec.ExperienceLevel),
		SalaryMin:       rec.SalaryMin,
		SalaryMax:       rec.SalaryMax,
		IsRemote:        rec.IsRemote,
		SkillsRequired:  rec.SkillsRequired,
		IsActive:        rec.IsActive,
		CreatedAt:       rec.CreatedAt,
	}
}

func mapApplication(rec pgrepo.ApplicationRecord) dto.ApplicationResponse {
	return dto.ApplicationResponse{
		ID:            rec.ID,
		JobID:         rec.JobID,
		JobTitle:      rec.JobTitle,
		CandidateName: rec.CandidateName,
		Status:        string(rec.Status),
		CoverLetter:   rec.CoverLetter,
		CreatedAt:     rec.CreatedAt,
	}
}

func pathID(r *http.Request, name string) (int64, bool) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
