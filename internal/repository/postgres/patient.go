package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/parsianclinic/postop-api/internal/model"
	"github.com/parsianclinic/postop-api/internal/repository"
)

// uniqueViolation is the postgres error code raised when an insert or
// update collides with a unique index.
const uniqueViolation = "23505"

type patientRepository struct {
	db *sqlx.DB
}

func NewPatientRepository(db *sqlx.DB) repository.PatientRepository {
	return &patientRepository{db: db}
}

func (r *patientRepository) Create(ctx context.Context, patient *model.Patient) error {
	query := `
		INSERT INTO patients (
			id, national_id, phone_number, first_name, last_name, age,
			medication_tracking_code, surgery_type, attending_doctor,
			warning_signs, medication_instructions, next_visit,
			outpatient_services, self_care_recommendations, nutrition,
			is_active, is_admin, credential_secret, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15, $16, $17, $18, $19, $20
		)
	`
	patient.CreatedAt = time.Now()
	patient.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		patient.ID,
		patient.NationalID,
		patient.PhoneNumber,
		patient.FirstName,
		patient.LastName,
		patient.Age,
		patient.MedicationTrackingCode,
		patient.SurgeryType,
		patient.AttendingDoctor,
		patient.WarningSigns,
		patient.MedicationInstructions,
		patient.NextVisit,
		patient.OutpatientServices,
		patient.SelfCareRecommendations,
		patient.Nutrition,
		patient.IsActive,
		patient.IsAdmin,
		patient.CredentialSecret,
		patient.CreatedAt,
		patient.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return model.ErrDuplicateIdentity
		}
		return fmt.Errorf("failed to create patient: %w", err)
	}
	return nil
}

func (r *patientRepository) Get(ctx context.Context, id uuid.UUID) (*model.Patient, error) {
	query := `SELECT * FROM patients WHERE id = $1`
	var patient model.Patient
	err := r.db.GetContext(ctx, &patient, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrPatientNotFound
		}
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	return &patient, nil
}

func (r *patientRepository) GetByIdentity(ctx context.Context, nationalID, phoneNumber string) (*model.Patient, error) {
	query := `
		SELECT * FROM patients
		WHERE national_id = $1 AND phone_number = $2 AND is_active
	`
	var patient model.Patient
	err := r.db.GetContext(ctx, &patient, query, nationalID, phoneNumber)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrPatientNotFound
		}
		return nil, fmt.Errorf("failed to get patient by identity: %w", err)
	}
	return &patient, nil
}

func (r *patientRepository) Update(ctx context.Context, patient *model.Patient) error {
	query := `
		UPDATE patients SET
			phone_number = $1, first_name = $2, last_name = $3, age = $4,
			medication_tracking_code = $5, surgery_type = $6,
			attending_doctor = $7, warning_signs = $8,
			medication_instructions = $9, next_visit = $10,
			outpatient_services = $11, self_care_recommendations = $12,
			nutrition = $13, is_active = $14, is_admin = $15,
			credential_secret = $16, updated_at = $17
		WHERE id = $18
	`
	patient.UpdatedAt = time.Now()

	res, err := r.db.ExecContext(ctx, query,
		patient.PhoneNumber,
		patient.FirstName,
		patient.LastName,
		patient.Age,
		patient.MedicationTrackingCode,
		patient.SurgeryType,
		patient.AttendingDoctor,
		patient.WarningSigns,
		patient.MedicationInstructions,
		patient.NextVisit,
		patient.OutpatientServices,
		patient.SelfCareRecommendations,
		patient.Nutrition,
		patient.IsActive,
		patient.IsAdmin,
		patient.CredentialSecret,
		patient.UpdatedAt,
		patient.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return model.ErrDuplicateIdentity
		}
		return fmt.Errorf("failed to update patient: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update patient: %w", err)
	}
	if rows == 0 {
		return model.ErrPatientNotFound
	}
	return nil
}

func (r *patientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM patients WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete patient: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete patient: %w", err)
	}
	if rows == 0 {
		return model.ErrPatientNotFound
	}
	return nil
}

func (r *patientRepository) List(ctx context.Context, filters *model.PatientFilters) ([]*model.Patient, error) {
	var (
		conds []string
		args  []interface{}
	)
	if filters.SurgeryType != "" {
		args = append(args, filters.SurgeryType)
		conds = append(conds, fmt.Sprintf("surgery_type = $%d", len(args)))
	}
	if filters.AttendingDoctor != "" {
		args = append(args, filters.AttendingDoctor)
		conds = append(conds, fmt.Sprintf("attending_doctor = $%d", len(args)))
	}
	if filters.SearchTerm != "" {
		args = append(args, "%"+filters.SearchTerm+"%")
		conds = append(conds, fmt.Sprintf("(national_id LIKE $%d OR phone_number LIKE $%d)", len(args), len(args)))
	}

	query := `SELECT * FROM patients`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC"

	filters.Normalize()
	args = append(args, filters.PageSize)
	query += fmt.Sprintf(" LIMIT $%d", len(args))
	args = append(args, (filters.Page-1)*filters.PageSize)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	var patients []*model.Patient
	if err := r.db.SelectContext(ctx, &patients, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	return patients, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
