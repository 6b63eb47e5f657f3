package usecase

import (
	"context"

	"medichain-service/internal/converter"
	"medichain-service/internal/delivery/dto"
	"medichain-service/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type DoctorUsecase interface {
	ListDoctors(ctx context.Context, specialization string) (*dto.DoctorListResponse, error)
}

type doctorUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	profileRepo repository.ProfileRepository
}

func NewDoctorUsecase(db *gorm.DB, log *logrus.Logger, profileRepo repository.ProfileRepository) DoctorUsecase {
	return &doctorUsecase{
		db:          db,
		log:         log,
		profileRepo: profileRepo,
	}
}

// ListDoctors returns the doctor directory, optionally narrowed by
// specialization. The filter is applied per query; nothing is held as
// secondary view state.
func (u *doctorUsecase) ListDoctors(ctx context.Context, specialization string) (*dto.DoctorListResponse, error) {
	doctors, err := u.profileRepo.FindDoctors(u.db.WithContext(ctx), specialization)
	if err != nil {
		u.log.Warnf("Failed to list doctors: %+v", err)
		return nil, err
	}

	return &dto.DoctorListResponse{
		Doctors: converter.ProfilesToResponses(doctors),
		Total:   len(doctors),
	}, nil
}
