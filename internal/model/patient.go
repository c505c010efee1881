package model

import (
	"errors"
)

// SurgeryType classifies the operation a patient underwent. The set is
// open ended: unrecognized codes are stored as-is and simply have no
// default instruction text.
type SurgeryType string

const (
	SurgeryIntertrochanteric SurgeryType = "intertro"
	SurgeryBrain             SurgeryType = "brain"
)

// Doctor identifies an attending doctor.
type Doctor string

const (
	DoctorZandi Doctor = "dr_zandi"
)

var (
	ErrDuplicateIdentity  = errors.New("national id or phone number already registered")
	ErrMissingNationalID  = errors.New("national id is required")
	ErrPatientNotFound    = errors.New("patient not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Patient is the sole persisted entity: one row per patient, keyed for
// authentication by the (national_id, phone_number) identity pair.
type Patient struct {
	Base
	NationalID             string      `db:"national_id" json:"national_id"`
	PhoneNumber            string      `db:"phone_number" json:"phone_number"`
	FirstName              string      `db:"first_name" json:"first_name,omitempty"`
	LastName               string      `db:"last_name" json:"last_name,omitempty"`
	Age                    *int        `db:"age" json:"age,omitempty"`
	MedicationTrackingCode *int        `db:"medication_tracking_code" json:"medication_tracking_code,omitempty"`
	SurgeryType            SurgeryType `db:"surgery_type" json:"surgery_type,omitempty"`
	AttendingDoctor        Doctor      `db:"attending_doctor" json:"attending_doctor,omitempty"`

	WarningSigns            string `db:"warning_signs" json:"warning_signs"`
	MedicationInstructions  string `db:"medication_instructions" json:"medication_instructions"`
	NextVisit               string `db:"next_visit" json:"next_visit"`
	OutpatientServices      string `db:"outpatient_services" json:"outpatient_services"`
	SelfCareRecommendations string `db:"self_care_recommendations" json:"self_care_recommendations"`
	Nutrition               string `db:"nutrition" json:"nutrition"`

	IsActive         bool   `db:"is_active" json:"is_active"`
	IsAdmin          bool   `db:"is_admin" json:"is_admin"`
	CredentialSecret string `db:"credential_secret" json:"-"`
}

// CareInstructions is the patient-facing projection of the six
// instruction fields.
type CareInstructions struct {
	SurgeryType             SurgeryType `json:"surgery_type,omitempty"`
	AttendingDoctor         Doctor      `json:"attending_doctor,omitempty"`
	WarningSigns            string      `json:"warning_signs"`
	MedicationInstructions  string      `json:"medication_instructions"`
	NextVisit               string      `json:"next_visit"`
	OutpatientServices      string      `json:"outpatient_services"`
	SelfCareRecommendations string      `json:"self_care_recommendations"`
	Nutrition               string      `json:"nutrition"`
}

type CreatePatientRequest struct {
	NationalID             string `json:"national_id" binding:"required"`
	PhoneNumber            string `json:"phone_number" binding:"required"`
	FirstName              string `json:"first_name"`
	LastName               string `json:"last_name"`
	Age                    *int   `json:"age"`
	MedicationTrackingCode *int   `json:"medication_tracking_code"`
	SurgeryType            string `json:"surgery_type"`
	AttendingDoctor        string `json:"attending_doctor"`

	WarningSigns            string `json:"warning_signs"`
	MedicationInstructions  string `json:"medication_instructions"`
	NextVisit               string `json:"next_visit"`
	OutpatientServices      string `json:"outpatient_services"`
	SelfCareRecommendations string `json:"self_care_recommendations"`
	Nutrition               string `json:"nutrition"`

	IsAdmin          bool   `json:"is_admin"`
	CredentialSecret string `json:"credential_secret"`
}

// UpdatePatientRequest carries pointer fields so the handler can tell
// "not sent" from "set to zero value". Supplied fields are written
// verbatim: updates never re-apply instruction defaults.
type UpdatePatientRequest struct {
	PhoneNumber            *string `json:"phone_number"`
	FirstName              *string `json:"first_name"`
	LastName               *string `json:"last_name"`
	Age                    *int    `json:"age"`
	MedicationTrackingCode *int    `json:"medication_tracking_code"`
	SurgeryType            *string `json:"surgery_type"`
	AttendingDoctor        *string `json:"attending_doctor"`

	WarningSigns            *string `json:"warning_signs"`
	MedicationInstructions  *string `json:"medication_instructions"`
	NextVisit               *string `json:"next_visit"`
	OutpatientServices      *string `json:"outpatient_services"`
	SelfCareRecommendations *string `json:"self_care_recommendations"`
	Nutrition               *string `json:"nutrition"`

	IsActive         *bool   `json:"is_active"`
	IsAdmin          *bool   `json:"is_admin"`
	CredentialSecret *string `json:"credential_secret"`
}

// PatientFilters mirrors the back-office list view: filter by surgery
// type and attending doctor, search over the identity columns.
type PatientFilters struct {
	SurgeryType     string `form:"surgery_type"`
	AttendingDoctor string `form:"attending_doctor"`
	SearchTerm      string `form:"search"`
	Pagination
}
