package patient

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"

	"github.com/parsianclinic/postop-api/internal/instructions"
	"github.com/parsianclinic/postop-api/internal/model"
	"github.com/parsianclinic/postop-api/internal/repository"
	"github.com/parsianclinic/postop-api/pkg/security"
)

type PatientService interface {
	Create(ctx context.Context, patient *model.Patient, plainSecret string) (*model.Patient, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Patient, error)
	Update(ctx context.Context, patient *model.Patient, plainSecret *string) (*model.Patient, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filters *model.PatientFilters) ([]*model.Patient, error)
	CareInstructions(ctx context.Context, id uuid.UUID) (*model.CareInstructions, error)
}

type Service struct {
	repo       repository.PatientRepository
	outboxRepo repository.OutboxRepository
	defaults   instructions.Catalog
	hasher     security.PasswordHasher
	instrCache *cache.Cache
	logger     *zerolog.Logger
}

// NewService builds the patient record service. The defaults catalog is
// fixed at construction: substituting a different table is a matter of
// passing another catalog, never of mutating shared state.
func NewService(
	repo repository.PatientRepository,
	outboxRepo repository.OutboxRepository,
	defaults instructions.Catalog,
	hasher security.PasswordHasher,
	instrCache *cache.Cache,
	logger *zerolog.Logger,
) *Service {
	return &Service{
		repo:       repo,
		outboxRepo: outboxRepo,
		defaults:   defaults,
		hasher:     hasher,
		instrCache: instrCache,
		logger:     logger,
	}
}

// Create persists a new patient record. Default instruction text for the
// record's surgery type is filled into blank fields here, before the
// single insert, so a record is never observable half-filled. This is
// the only code path that applies defaults.
func (s *Service) Create(ctx context.Context, patient *model.Patient, plainSecret string) (*model.Patient, error) {
	if patient.NationalID == "" {
		return nil, model.ErrMissingNationalID
	}

	patient.ID = uuid.New()
	patient.IsActive = true

	if plainSecret != "" {
		hash, err := s.hasher.Hash(plainSecret)
		if err != nil {
			return nil, fmt.Errorf("failed to hash credential secret: %w", err)
		}
		patient.CredentialSecret = hash
	}

	s.defaults.Apply(patient)

	if err := s.repo.Create(ctx, patient); err != nil {
		return nil, err
	}

	s.emitEvent(ctx, model.EventPatientCreated, patient)
	return patient, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Patient, error) {
	return s.repo.Get(ctx, id)
}

// Update writes the given record verbatim. Instruction defaults are
// never re-applied, even when the surgery type changed.
func (s *Service) Update(ctx context.Context, patient *model.Patient, plainSecret *string) (*model.Patient, error) {
	if plainSecret != nil {
		hash, err := s.hasher.Hash(*plainSecret)
		if err != nil {
			return nil, fmt.Errorf("failed to hash credential secret: %w", err)
		}
		patient.CredentialSecret = hash
	}

	if err := s.repo.Update(ctx, patient); err != nil {
		return nil, err
	}

	s.instrCache.Delete(patient.ID.String())
	s.emitEvent(ctx, model.EventPatientUpdated, patient)
	return patient, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.instrCache.Delete(id.String())
	s.emitEvent(ctx, model.EventPatientDeleted, &model.Patient{Base: model.Base{ID: id}})
	return nil
}

func (s *Service) List(ctx context.Context, filters *model.PatientFilters) ([]*model.Patient, error) {
	if filters == nil {
		filters = &model.PatientFilters{}
	}
	return s.repo.List(ctx, filters)
}

// CareInstructions returns the patient-facing instruction set,
// read-through cached. Cache entries are dropped on update and delete.
func (s *Service) CareInstructions(ctx context.Context, id uuid.UUID) (*model.CareInstructions, error) {
	if cached, ok := s.instrCache.Get(id.String()); ok {
		return cached.(*model.CareInstructions), nil
	}

	patient, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	instr := &model.CareInstructions{
		SurgeryType:             patient.SurgeryType,
		AttendingDoctor:         patient.AttendingDoctor,
		WarningSigns:            patient.WarningSigns,
		MedicationInstructions:  patient.MedicationInstructions,
		NextVisit:               patient.NextVisit,
		OutpatientServices:      patient.OutpatientServices,
		SelfCareRecommendations: patient.SelfCareRecommendations,
		Nutrition:               patient.Nutrition,
	}
	s.instrCache.SetDefault(id.String(), instr)
	return instr, nil
}

// emitEvent writes an outbox row for the lifecycle event. Publishing is
// best effort relative to the record change: a failed write is logged,
// not surfaced to the caller.
func (s *Service) emitEvent(ctx context.Context, eventType string, patient *model.Patient) {
	payload, err := json.Marshal(patient)
	if err != nil {
		s.logger.Error().Err(err).Str("event_type", eventType).Msg("failed to marshal patient for event")
		return
	}
	if err := s.outboxRepo.Create(ctx, &model.OutboxEvent{
		EventType: eventType,
		Payload:   payload,
	}); err != nil {
		s.logger.Error().Err(err).Str("event_type", eventType).Msg("failed to create outbox event")
	}
}
