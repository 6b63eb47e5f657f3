package usecase

import (
	"context"
	"errors"
	"time"

	"medichain-service/config"
	"medichain-service/internal/converter"
	"medichain-service/internal/delivery/dto"
	"medichain-service/internal/delivery/http/middleware"
	"medichain-service/internal/domain/entity"
	"medichain-service/internal/domain/repository"
	"medichain-service/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrConsultationNotFound = errors.New("consultation not found")
	ErrDoctorNotFound       = errors.New("doctor not found")
	ErrProfileNotFound      = errors.New("profile not found")
	ErrAppointmentInPast    = errors.New("appointment date must not be in the past")
	ErrInvalidTransition    = errors.New("status transition not allowed")
	ErrUnauthorizedRole     = errors.New("role not permitted for this transition")
	ErrNotParticipant       = errors.New("consultation does not belong to you")
	ErrInvalidWallet        = errors.New("wallet address is not a valid account id")
)

type ConsultationUsecase interface {
	Create(ctx context.Context, req *dto.CreateConsultationRequest) (*dto.ConsultationResponse, error)
	Transition(ctx context.Context, consultationID uuid.UUID, target entity.ConsultationStatus) error
	List(ctx context.Context, offset, limit int) (*dto.ConsultationListResponse, error)
	ComputeStats(ctx context.Context) (*dto.DoctorStatsResponse, error)
}

type consultationUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	consultCfg       config.ConsultConfig
	consultationRepo repository.ConsultationRepository
	profileRepo      repository.ProfileRepository
	auditService     service.AuditService
}

func NewConsultationUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	consultCfg config.ConsultConfig,
	consultationRepo repository.ConsultationRepository,
	profileRepo repository.ProfileRepository,
	auditService service.AuditService,
) ConsultationUsecase {
	return &consultationUsecase{
		db:               db,
		log:              log,
		consultCfg:       consultCfg,
		consultationRepo: consultationRepo,
		profileRepo:      profileRepo,
		auditService:     auditService,
	}
}

// Create books a new consultation in pending status.
//
// Flow:
// 1. Reject past appointment dates before any write
// 2. Resolve the doctor profile and check its role
// 3. Insert the consultation at the flat fee
// 4. Attach the wallet address to the patient profile, first-write-wins;
//    a failure here is reported in the response but never fails the booking
func (u *consultationUsecase) Create(ctx context.Context, req *dto.CreateConsultationRequest) (*dto.ConsultationResponse, error) {
	profileID, ok := middleware.GetProfileIDFromContext(ctx)
	if !ok {
		return nil, errors.New("profile not found in context")
	}
	userID, _ := middleware.GetUserIDFromContext(ctx)

	if req.AppointmentDate.Before(time.Now()) {
		return nil, ErrAppointmentInPast
	}

	if !entity.ValidWalletAddress(req.WalletAddress) {
		return nil, ErrInvalidWallet
	}

	doctor, err := u.profileRepo.FindByID(u.db.WithContext(ctx), req.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", req.DoctorID, err)
		return nil, err
	}
	if doctor == nil || !doctor.IsDoctor() {
		return nil, ErrDoctorNotFound
	}

	consultation := &entity.Consultation{
		PatientID:       profileID,
		DoctorID:        doctor.ID,
		AppointmentDate: req.AppointmentDate,
		Notes:           req.Notes,
		Status:          entity.ConsultationStatusPending,
		PriceHBAR:       u.consultCfg.FeeHBAR,
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.consultationRepo.Create(tx, consultation); err != nil {
		u.log.Warnf("Failed to create consultation: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogEvent(ctx, tx, &userID, entity.AuditActionConsultationCreate, entity.JSON{
		"consultation_id": consultation.ID.String(),
		"doctor_id":       doctor.ID.String(),
		"price_hbar":      consultation.PriceHBAR.String(),
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	resp := converter.ConsultationToResponse(consultation)
	resp.DoctorName = doctor.FullName
	resp.Specialization = doctor.Specialization

	// Wallet attachment is a convenience write on top of a committed
	// booking. It only lands while the profile has no wallet yet.
	if _, err := u.profileRepo.SetWalletIfEmpty(u.db.WithContext(ctx), profileID, req.WalletAddress); err != nil {
		u.log.Warnf("Failed to attach wallet to profile %s: %+v", profileID, err)
		resp.WalletWarning = "booking created, but wallet address could not be saved"
	}

	u.log.Infof("Consultation created: id=%s, doctor=%s, fee=%s", consultation.ID, doctor.ID, consultation.PriceHBAR)
	return resp, nil
}

// Transition moves a consultation along the lifecycle edge set. All
// validation failures are detected before the write; the write itself is
// conditional on the expected source status, so two racing transitions
// cannot both succeed.
func (u *consultationUsecase) Transition(ctx context.Context, consultationID uuid.UUID, target entity.ConsultationStatus) error {
	profileID, ok := middleware.GetProfileIDFromContext(ctx)
	if !ok {
		return errors.New("profile not found in context")
	}
	roleStr, _ := middleware.GetRoleFromContext(ctx)
	role := entity.UserRole(roleStr)
	userID, _ := middleware.GetUserIDFromContext(ctx)

	consultation, err := u.consultationRepo.FindByID(u.db.WithContext(ctx), consultationID)
	if err != nil {
		u.log.Warnf("Failed to find consultation %s: %+v", consultationID, err)
		return err
	}
	if consultation == nil {
		return ErrConsultationNotFound
	}

	if consultation.PatientID != profileID && consultation.DoctorID != profileID {
		return ErrNotParticipant
	}

	from := consultation.Status
	if !entity.CanTransition(from, target) {
		return ErrInvalidTransition
	}
	if !entity.TransitionAllowedFor(from, target, role) {
		return ErrUnauthorizedRole
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	rows, err := u.consultationRepo.UpdateStatusIf(tx, consultationID, from, target)
	if err != nil {
		u.log.Warnf("Failed to update consultation %s status: %+v", consultationID, err)
		return err
	}
	if rows == 0 {
		// A concurrent transition changed the status between our read and
		// the conditional write.
		return ErrInvalidTransition
	}

	if err := u.auditService.LogStatusChange(ctx, tx, &userID, auditActionForStatus(target), consultationID.String(), from, target); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	u.log.Infof("Consultation %s: %s -> %s by %s", consultationID, from, target, role)
	return nil
}

// List returns the caller's consultations, as patient or doctor depending
// on their role, ordered by appointment date ascending.
func (u *consultationUsecase) List(ctx context.Context, offset, limit int) (*dto.ConsultationListResponse, error) {
	profileID, ok := middleware.GetProfileIDFromContext(ctx)
	if !ok {
		return nil, errors.New("profile not found in context")
	}
	roleStr, _ := middleware.GetRoleFromContext(ctx)

	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	var consultations []entity.Consultation
	var err error
	if entity.UserRole(roleStr) == entity.RoleDoctor {
		consultations, err = u.consultationRepo.FindByDoctorID(u.db.WithContext(ctx), profileID, offset, limit)
	} else {
		consultations, err = u.consultationRepo.FindByPatientID(u.db.WithContext(ctx), profileID, offset, limit)
	}
	if err != nil {
		u.log.Warnf("Failed to list consultations for %s: %+v", profileID, err)
		return nil, err
	}

	return &dto.ConsultationListResponse{
		Consultations: converter.ConsultationsToResponses(consultations),
		Total:         len(consultations),
	}, nil
}

// ComputeStats derives the doctor dashboard aggregate from the full
// consultation set scoped to the calling doctor. Nothing is cached; a
// slightly stale read is acceptable for a display figure.
func (u *consultationUsecase) ComputeStats(ctx context.Context) (*dto.DoctorStatsResponse, error) {
	profileID, ok := middleware.GetProfileIDFromContext(ctx)
	if !ok {
		return nil, errors.New("profile not found in context")
	}

	consultations, err := u.consultationRepo.FindAllByDoctorID(u.db.WithContext(ctx), profileID)
	if err != nil {
		u.log.Warnf("Failed to load consultations for doctor %s: %+v", profileID, err)
		return nil, err
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	tomorrow := today.Add(24 * time.Hour)

	stats := &dto.DoctorStatsResponse{}
	patients := make(map[uuid.UUID]struct{})

	for i := range consultations {
		c := &consultations[i]
		patients[c.PatientID] = struct{}{}

		appt := c.AppointmentDate.UTC()
		if c.Status == entity.ConsultationStatusPending && !appt.Before(today) && appt.Before(tomorrow) {
			stats.UpcomingToday++
		}
		if c.Status == entity.ConsultationStatusCompleted {
			stats.Completed++
			stats.Earnings = stats.Earnings.Add(c.PriceHBAR)
		}
	}
	stats.TotalPatients = len(patients)

	return stats, nil
}

func auditActionForStatus(target entity.ConsultationStatus) string {
	switch target {
	case entity.ConsultationStatusConfirmed:
		return entity.AuditActionConsultationConfirm
	case entity.ConsultationStatusCompleted:
		return entity.AuditActionConsultationComplete
	default:
		return entity.AuditActionConsultationCancel
	}
}
