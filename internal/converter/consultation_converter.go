package converter

import (
	"medichain-service/internal/delivery/dto"
	"medichain-service/internal/domain/entity"

	"github.com/google/uuid"
)

func ConsultationToResponse(c *entity.Consultation) *dto.ConsultationResponse {
	resp := &dto.ConsultationResponse{
		ID:              c.ID,
		PatientID:       c.PatientID,
		DoctorID:        c.DoctorID,
		AppointmentDate: c.AppointmentDate,
		Notes:           c.Notes,
		Status:          string(c.Status),
		PriceHBAR:       c.PriceHBAR,
		NFTTokenID:      c.NFTTokenID,
		TransactionHash: c.TransactionHash,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}

	if c.Patient.ID != uuid.Nil {
		resp.PatientName = c.Patient.FullName
		resp.PatientWallet = c.Patient.WalletAddress
	}
	if c.Doctor.ID != uuid.Nil {
		resp.DoctorName = c.Doctor.FullName
		resp.Specialization = c.Doctor.Specialization
	}

	return resp
}

func ConsultationsToResponses(consultations []entity.Consultation) []dto.ConsultationResponse {
	responses := make([]dto.ConsultationResponse, 0, len(consultations))
	for i := range consultations {
		responses = append(responses, *ConsultationToResponse(&consultations[i]))
	}
	return responses
}
