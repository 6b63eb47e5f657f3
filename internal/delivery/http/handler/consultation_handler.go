package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"medichain-service/internal/delivery/dto"
	"medichain-service/internal/domain/entity"
	"medichain-service/internal/usecase"
	"medichain-service/pkg/response"
	"medichain-service/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type ConsultationHandler struct {
	consultationUsecase usecase.ConsultationUsecase
	doctorUsecase       usecase.DoctorUsecase
	validator           *validator.CustomValidator
}

func NewConsultationHandler(
	consultationUsecase usecase.ConsultationUsecase,
	doctorUsecase usecase.DoctorUsecase,
	validator *validator.CustomValidator,
) *ConsultationHandler {
	return &ConsultationHandler{
		consultationUsecase: consultationUsecase,
		doctorUsecase:       doctorUsecase,
		validator:           validator,
	}
}

func (h *ConsultationHandler) CreateConsultation(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateConsultationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	consultation, err := h.consultationUsecase.Create(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		case usecase.ErrAppointmentInPast:
			response.BadRequest(w, "Appointment date must not be in the past")
		case usecase.ErrInvalidWallet:
			response.BadRequest(w, "Wallet address is not a valid account id")
		default:
			response.InternalServerError(w, "Failed to create consultation")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Consultation booked successfully", consultation)
}

func (h *ConsultationHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	consultationID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.BadRequest(w, "Invalid consultation ID")
		return
	}

	var req dto.UpdateConsultationStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	err = h.consultationUsecase.Transition(r.Context(), consultationID, entity.ConsultationStatus(req.Status))
	if err != nil {
		switch err {
		case usecase.ErrConsultationNotFound:
			response.NotFound(w, "Consultation not found")
		case usecase.ErrNotParticipant:
			response.Forbidden(w, "Consultation does not belong to you")
		case usecase.ErrUnauthorizedRole:
			response.Forbidden(w, "Your role is not permitted to perform this transition")
		case usecase.ErrInvalidTransition:
			response.Conflict(w, "Status transition not allowed")
		default:
			response.InternalServerError(w, "Failed to update status")
		}
		return
	}

	response.Success(w, http.StatusOK, "Status updated successfully", nil)
}

func (h *ConsultationHandler) ListConsultations(w http.ResponseWriter, r *http.Request) {
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	consultations, err := h.consultationUsecase.List(r.Context(), offset, limit)
	if err != nil {
		response.InternalServerError(w, "Failed to list consultations")
		return
	}

	response.Success(w, http.StatusOK, "Consultations retrieved", consultations)
}

func (h *ConsultationHandler) GetDoctorStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.consultationUsecase.ComputeStats(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to compute stats")
		return
	}

	response.Success(w, http.StatusOK, "Stats computed", stats)
}

func (h *ConsultationHandler) ListDoctors(w http.ResponseWriter, r *http.Request) {
	specialization := r.URL.Query().Get("specialization")

	doctors, err := h.doctorUsecase.ListDoctors(r.Context(), specialization)
	if err != nil {
		response.InternalServerError(w, "Failed to list doctors")
		return
	}

	response.Success(w, http.StatusOK, "Doctors retrieved", doctors)
}
