package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/parsianclinic/postop-api/internal/model"
)

// All repository interfaces in one file
type (
	// PatientRepository persists patient records. The storage layer owns
	// the uniqueness of national_id and phone_number: concurrent creates
	// with a colliding identity yield exactly one success and one
	// ErrDuplicateIdentity.
	PatientRepository interface {
		Create(ctx context.Context, patient *model.Patient) error
		Get(ctx context.Context, id uuid.UUID) (*model.Patient, error)
		// GetByIdentity is a joint exact match on both identity fields
		// against a single active record.
		GetByIdentity(ctx context.Context, nationalID, phoneNumber string) (*model.Patient, error)
		Update(ctx context.Context, patient *model.Patient) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context, filters *model.PatientFilters) ([]*model.Patient, error)
	}

	OutboxRepository interface {
		Create(ctx context.Context, event *model.OutboxEvent) error
		GetPendingEvents(ctx context.Context, limit int) ([]*model.OutboxEvent, error)
		UpdateStatus(ctx context.Context, id uuid.UUID, status model.OutboxStatus, errMsg *string) error
	}
)
