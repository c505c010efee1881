package patient

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parsianclinic/postop-api/internal/model"
)

// stubService lets each test script the service layer.
type stubService struct {
	createFn func(ctx context.Context, p *model.Patient, secret string) (*model.Patient, error)
	getFn    func(ctx context.Context, id uuid.UUID) (*model.Patient, error)
	updateFn func(ctx context.Context, p *model.Patient, secret *string) (*model.Patient, error)
	deleteFn func(ctx context.Context, id uuid.UUID) error
	listFn   func(ctx context.Context, f *model.PatientFilters) ([]*model.Patient, error)
	instrFn  func(ctx context.Context, id uuid.UUID) (*model.CareInstructions, error)
}

func (s *stubService) Create(ctx context.Context, p *model.Patient, secret string) (*model.Patient, error) {
	return s.createFn(ctx, p, secret)
}

func (s *stubService) Get(ctx context.Context, id uuid.UUID) (*model.Patient, error) {
	return s.getFn(ctx, id)
}

func (s *stubService) Update(ctx context.Context, p *model.Patient, secret *string) (*model.Patient, error) {
	return s.updateFn(ctx, p, secret)
}

func (s *stubService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.deleteFn(ctx, id)
}

func (s *stubService) List(ctx context.Context, f *model.PatientFilters) ([]*model.Patient, error) {
	return s.listFn(ctx, f)
}

func (s *stubService) CareInstructions(ctx context.Context, id uuid.UUID) (*model.CareInstructions, error) {
	return s.instrFn(ctx, id)
}

func newAdminRouter(svc *stubService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(svc).RegisterAdminRoutes(r.Group("/api/v1"))
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreatePatient(t *testing.T) {
	svc := &stubService{
		createFn: func(_ context.Context, p *model.Patient, secret string) (*model.Patient, error) {
			assert.Equal(t, "0012345678", p.NationalID)
			assert.Equal(t, model.SurgeryBrain, p.SurgeryType)
			assert.Empty(t, secret)
			p.ID = uuid.New()
			return p, nil
		},
	}
	r := newAdminRouter(svc)

	w := doJSON(t, r, http.MethodPost, "/api/v1/patients", gin.H{
		"national_id":  "0012345678",
		"phone_number": "09120000000",
		"surgery_type": "brain",
	})

	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Status string        `json:"status"`
		Data   model.Patient `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, "0012345678", resp.Data.NationalID)
}

func TestCreatePatientMissingIdentityFields(t *testing.T) {
	r := newAdminRouter(&stubService{})

	w := doJSON(t, r, http.MethodPost, "/api/v1/patients", gin.H{
		"first_name": "Sara",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreatePatientDuplicateIdentity(t *testing.T) {
	svc := &stubService{
		createFn: func(_ context.Context, _ *model.Patient, _ string) (*model.Patient, error) {
			return nil, model.ErrDuplicateIdentity
		},
	}
	r := newAdminRouter(svc)

	w := doJSON(t, r, http.MethodPost, "/api/v1/patients", gin.H{
		"national_id":  "0012345678",
		"phone_number": "09120000000",
	})

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestGetPatientNotFound(t *testing.T) {
	svc := &stubService{
		getFn: func(_ context.Context, _ uuid.UUID) (*model.Patient, error) {
			return nil, model.ErrPatientNotFound
		},
	}
	r := newAdminRouter(svc)

	w := doJSON(t, r, http.MethodGet, "/api/v1/patients/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetPatientInvalidID(t *testing.T) {
	r := newAdminRouter(&stubService{})

	w := doJSON(t, r, http.MethodGet, "/api/v1/patients/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdatePatientAppliesOnlySentFields(t *testing.T) {
	existing := &model.Patient{
		Base:         model.Base{ID: uuid.New()},
		NationalID:   "0012345678",
		PhoneNumber:  "09120000000",
		FirstName:    "Sara",
		WarningSigns: "original warning",
		IsActive:     true,
	}
	var updated *model.Patient
	svc := &stubService{
		getFn: func(_ context.Context, id uuid.UUID) (*model.Patient, error) {
			require.Equal(t, existing.ID, id)
			cp := *existing
			return &cp, nil
		},
		updateFn: func(_ context.Context, p *model.Patient, secret *string) (*model.Patient, error) {
			assert.Nil(t, secret)
			updated = p
			return p, nil
		},
	}
	r := newAdminRouter(svc)

	w := doJSON(t, r, http.MethodPut, "/api/v1/patients/"+existing.ID.String(), gin.H{
		"first_name": "Mina",
	})

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, updated)
	assert.Equal(t, "Mina", updated.FirstName)
	// Fields absent from the request keep their stored values.
	assert.Equal(t, "original warning", updated.WarningSigns)
	assert.Equal(t, "09120000000", updated.PhoneNumber)
	assert.True(t, updated.IsActive)
}

func TestListPatientsPassesFilters(t *testing.T) {
	svc := &stubService{
		listFn: func(_ context.Context, f *model.PatientFilters) ([]*model.Patient, error) {
			assert.Equal(t, "brain", f.SurgeryType)
			assert.Equal(t, "dr_zandi", f.AttendingDoctor)
			assert.Equal(t, "0912", f.SearchTerm)
			return []*model.Patient{}, nil
		},
	}
	r := newAdminRouter(svc)

	w := doJSON(t, r, http.MethodGet,
		"/api/v1/patients?surgery_type=brain&attending_doctor=dr_zandi&search=0912", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDeletePatient(t *testing.T) {
	id := uuid.New()
	svc := &stubService{
		deleteFn: func(_ context.Context, got uuid.UUID) error {
			assert.Equal(t, id, got)
			return nil
		},
	}
	r := newAdminRouter(svc)

	w := doJSON(t, r, http.MethodDelete, "/api/v1/patients/"+id.String(), nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMyCareInstructions(t *testing.T) {
	gin.SetMode(gin.TestMode)
	userID := uuid.New()

	svc := &stubService{
		instrFn: func(_ context.Context, id uuid.UUID) (*model.CareInstructions, error) {
			require.Equal(t, userID, id)
			return &model.CareInstructions{
				SurgeryType:  model.SurgeryBrain,
				WarningSigns: "Dizziness, severe headache, nausea",
			}, nil
		},
	}

	r := gin.New()
	grp := r.Group("/api/v1")
	grp.Use(func(c *gin.Context) { c.Set("user_id", userID) })
	NewHandler(svc).RegisterPatientRoutes(grp)

	w := doJSON(t, r, http.MethodGet, "/api/v1/me/instructions", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data model.CareInstructions `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Dizziness, severe headache, nausea", resp.Data.WarningSigns)
}

func TestMyCareInstructionsUnauthenticated(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(&stubService{}).RegisterPatientRoutes(r.Group("/api/v1"))

	w := doJSON(t, r, http.MethodGet, "/api/v1/me/instructions", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
