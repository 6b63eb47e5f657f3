package handler

import (
	"net/http"

	"medichain-service/internal/usecase"
	"medichain-service/pkg/response"
)

type SeedHandler struct {
	seedUsecase usecase.SeedUsecase
}

func NewSeedHandler(seedUsecase usecase.SeedUsecase) *SeedHandler {
	return &SeedHandler{seedUsecase: seedUsecase}
}

// SeedDemoDoctors takes no request body; the roster is fixed.
func (h *SeedHandler) SeedDemoDoctors(w http.ResponseWriter, r *http.Request) {
	result, err := h.seedUsecase.SeedDemoDoctors(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to seed doctors")
		return
	}

	response.Success(w, http.StatusOK, result.Message, result)
}
