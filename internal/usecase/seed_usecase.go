package usecase

import (
	"context"
	"fmt"

	"medichain-service/internal/delivery/dto"
	"medichain-service/internal/domain/entity"
	"medichain-service/internal/domain/repository"
	"medichain-service/internal/service"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// seedDoctor is one roster entry. The roster is fixed and baked into the
// binary; seeding takes no user input.
type seedDoctor struct {
	Email          string
	Password       string
	FullName       string
	Specialization string
}

const seedDoctorPassword = "Doctor123!"

var demoDoctors = []seedDoctor{
	{Email: "sarah.johnson@medchain.com", Password: seedDoctorPassword, FullName: "Dr. Sarah Johnson", Specialization: "Cardiology"},
	{Email: "michael.chen@medchain.com", Password: seedDoctorPassword, FullName: "Dr. Michael Chen", Specialization: "Dermatology"},
	{Email: "emily.rodriguez@medchain.com", Password: seedDoctorPassword, FullName: "Dr. Emily Rodriguez", Specialization: "Pediatrics"},
	{Email: "james.williams@medchain.com", Password: seedDoctorPassword, FullName: "Dr. James Williams", Specialization: "Orthopedics"},
	{Email: "aisha.patel@medchain.com", Password: seedDoctorPassword, FullName: "Dr. Aisha Patel", Specialization: "Neurology"},
	{Email: "david.kim@medchain.com", Password: seedDoctorPassword, FullName: "Dr. David Kim", Specialization: "Gastroenterology"},
	{Email: "maria.garcia@medchain.com", Password: seedDoctorPassword, FullName: "Dr. Maria Garcia", Specialization: "Oncology"},
	{Email: "robert.brown@medchain.com", Password: seedDoctorPassword, FullName: "Dr. Robert Brown", Specialization: "Psychiatry"},
	{Email: "lisa.anderson@medchain.com", Password: seedDoctorPassword, FullName: "Dr. Lisa Anderson", Specialization: "Endocrinology"},
	{Email: "ahmed.hassan@medchain.com", Password: seedDoctorPassword, FullName: "Dr. Ahmed Hassan", Specialization: "Pulmonology"},
	{Email: "jennifer.lee@medchain.com", Password: seedDoctorPassword, FullName: "Dr. Jennifer Lee", Specialization: "Ophthalmology"},
	{Email: "carlos.martinez@medchain.com", Password: seedDoctorPassword, FullName: "Dr. Carlos Martinez", Specialization: "Urology"},
	{Email: "priya.sharma@medchain.com", Password: seedDoctorPassword, FullName: "Dr. Priya Sharma", Specialization: "Gynecology"},
	{Email: "thomas.wilson@medchain.com", Password: seedDoctorPassword, FullName: "Dr. Thomas Wilson", Specialization: "ENT"},
	{Email: "fatima.abbas@medchain.com", Password: seedDoctorPassword, FullName: "Dr. Fatima Abbas", Specialization: "Rheumatology"},
	{Email: "john.taylor@medchain.com", Password: seedDoctorPassword, FullName: "Dr. John Taylor", Specialization: "Nephrology"},
	{Email: "sophie.zhang@medchain.com", Password: seedDoctorPassword, FullName: "Dr. Sophie Zhang", Specialization: "Hematology"},
	{Email: "marcus.johnson@medchain.com", Password: seedDoctorPassword, FullName: "Dr. Marcus Johnson", Specialization: "Radiology"},
	{Email: "nina.gupta@medchain.com", Password: seedDoctorPassword, FullName: "Dr. Nina Gupta", Specialization: "Anesthesiology"},
	{Email: "peter.oconnor@medchain.com", Password: seedDoctorPassword, FullName: "Dr. Peter O'Connor", Specialization: "Emergency Medicine"},
	{Email: "rachel.kim@medchain.com", Password: seedDoctorPassword, FullName: "Dr. Rachel Kim", Specialization: "Infectious Disease"},
	{Email: "mohammed.ali@medchain.com", Password: seedDoctorPassword, FullName: "Dr. Mohammed Ali", Specialization: "General Surgery"},
	{Email: "catherine.white@medchain.com", Password: seedDoctorPassword, FullName: "Dr. Catherine White", Specialization: "Family Medicine"},
	{Email: "daniel.park@medchain.com", Password: seedDoctorPassword, FullName: "Dr. Daniel Park", Specialization: "Physical Medicine"},
}

type SeedUsecase interface {
	SeedDemoDoctors(ctx context.Context) (*dto.SeedResponse, error)
}

type seedUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	userRepo     repository.UserRepository
	profileRepo  repository.ProfileRepository
	auditService service.AuditService
}

func NewSeedUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	profileRepo repository.ProfileRepository,
	auditService service.AuditService,
) SeedUsecase {
	return &seedUsecase{
		db:           db,
		log:          log,
		userRepo:     userRepo,
		profileRepo:  profileRepo,
		auditService: auditService,
	}
}

// SeedDemoDoctors provisions the demo roster. Each entry is processed
// independently: entries already present count as existing, a duplicate
// registration surfacing from the store is folded into existing as well,
// and any other failure is collected without aborting the batch. Re-running
// after a partial failure converges toward all-present.
func (u *seedUsecase) SeedDemoDoctors(ctx context.Context) (*dto.SeedResponse, error) {
	results := dto.SeedResults{Errors: []string{}}

	for _, doctor := range demoDoctors {
		outcome, err := u.seedOne(ctx, doctor)
		if err != nil {
			u.log.Warnf("Failed to seed %s: %+v", doctor.FullName, err)
			results.Errors = append(results.Errors, fmt.Sprintf("%s: %v", doctor.FullName, err))
			continue
		}
		if outcome == seedOutcomeCreated {
			results.Created++
		} else {
			results.Existing++
		}
	}

	if err := u.auditService.LogEvent(ctx, u.db.WithContext(ctx), nil, entity.AuditActionSeedRun, entity.JSON{
		"created":  results.Created,
		"existing": results.Existing,
		"errors":   len(results.Errors),
	}); err != nil {
		u.log.Warnf("Failed to audit seed run: %+v", err)
	}

	u.log.Infof("Doctor seeding complete: created=%d, existing=%d, errors=%d", results.Created, results.Existing, len(results.Errors))
	return &dto.SeedResponse{
		Message: fmt.Sprintf("Seeding complete: %d created, %d already existed", results.Created, results.Existing),
		Results: results,
	}, nil
}

type seedOutcome int

const (
	seedOutcomeCreated seedOutcome = iota
	seedOutcomeExisting
)

func (u *seedUsecase) seedOne(ctx context.Context, doctor seedDoctor) (seedOutcome, error) {
	existing, err := u.profileRepo.FindByFullName(u.db.WithContext(ctx), doctor.FullName)
	if err != nil {
		return 0, err
	}
	if existing != nil {
		return seedOutcomeExisting, nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(doctor.Password), bcrypt.DefaultCost)
	if err != nil {
		return 0, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	user := &entity.User{
		Email:    doctor.Email,
		Password: string(hashedPassword),
	}

	if err := u.userRepo.Create(tx, user); err != nil {
		// Email already registered through another path counts as existing,
		// not as a seeding failure.
		if isUniqueViolation(err) {
			return seedOutcomeExisting, nil
		}
		return 0, err
	}

	profile := &entity.Profile{
		UserID:         user.ID,
		FullName:       doctor.FullName,
		Role:           entity.RoleDoctor,
		Specialization: doctor.Specialization,
	}

	if err := u.profileRepo.Create(tx, profile); err != nil {
		// A concurrent seeder can win the race between our existence check
		// and this insert; the unique index on full_name turns that into a
		// duplicate-key error we treat as existing.
		if isUniqueViolation(err) {
			return seedOutcomeExisting, nil
		}
		return 0, err
	}

	if err := tx.Commit().Error; err != nil {
		return 0, err
	}

	u.log.Infof("Created doctor: %s (%s)", doctor.FullName, doctor.Specialization)
	return seedOutcomeCreated, nil
}
