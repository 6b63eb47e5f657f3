package converter

import (
	"medichain-service/internal/delivery/dto"
	"medichain-service/internal/domain/entity"
)

func ProfileToResponse(p *entity.Profile) *dto.ProfileResponse {
	return &dto.ProfileResponse{
		ID:             p.ID,
		FullName:       p.FullName,
		Role:           string(p.Role),
		Specialization: p.Specialization,
		WalletAddress:  p.WalletAddress,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func ProfilesToResponses(profiles []entity.Profile) []dto.ProfileResponse {
	responses := make([]dto.ProfileResponse, 0, len(profiles))
	for i := range profiles {
		responses = append(responses, *ProfileToResponse(&profiles[i]))
	}
	return responses
}
