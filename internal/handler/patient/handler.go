package patient

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/parsianclinic/postop-api/internal/handler"
	"github.com/parsianclinic/postop-api/internal/middleware"
	"github.com/parsianclinic/postop-api/internal/model"
	"github.com/parsianclinic/postop-api/internal/service/patient"
)

type Handler struct {
	svc patient.PatientService
}

func NewHandler(svc patient.PatientService) *Handler {
	return &Handler{svc: svc}
}

// RegisterAdminRoutes mounts the back-office CRUD surface. The caller
// wraps the group with authentication and the admin check.
func (h *Handler) RegisterAdminRoutes(r *gin.RouterGroup) {
	patients := r.Group("/patients")
	{
		patients.POST("", h.CreatePatient)
		patients.GET("", h.ListPatients)
		patients.GET("/:id", h.GetPatient)
		patients.PUT("/:id", h.UpdatePatient)
		patients.DELETE("/:id", h.DeletePatient)
	}
}

// RegisterPatientRoutes mounts the patient-facing surface. The caller
// wraps the group with authentication.
func (h *Handler) RegisterPatientRoutes(r *gin.RouterGroup) {
	r.GET("/me/instructions", h.MyCareInstructions)
}

func (h *Handler) CreatePatient(c *gin.Context) {
	var req model.CreatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	p := &model.Patient{
		NationalID:              req.NationalID,
		PhoneNumber:             req.PhoneNumber,
		FirstName:               req.FirstName,
		LastName:                req.LastName,
		Age:                     req.Age,
		MedicationTrackingCode:  req.MedicationTrackingCode,
		SurgeryType:             model.SurgeryType(req.SurgeryType),
		AttendingDoctor:         model.Doctor(req.AttendingDoctor),
		WarningSigns:            req.WarningSigns,
		MedicationInstructions:  req.MedicationInstructions,
		NextVisit:               req.NextVisit,
		OutpatientServices:      req.OutpatientServices,
		SelfCareRecommendations: req.SelfCareRecommendations,
		Nutrition:               req.Nutrition,
		IsAdmin:                 req.IsAdmin,
	}

	p, err := h.svc.Create(c.Request.Context(), p, req.CredentialSecret)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(p))
}

func (h *Handler) GetPatient(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid patient ID"))
		return
	}

	p, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(p))
}

func (h *Handler) UpdatePatient(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid patient ID"))
		return
	}

	var req model.UpdatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	p, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	applyUpdate(p, &req)

	p, err = h.svc.Update(c.Request.Context(), p, req.CredentialSecret)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(p))
}

func (h *Handler) DeletePatient(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid patient ID"))
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse("patient deleted"))
}

func (h *Handler) ListPatients(c *gin.Context) {
	var filters model.PatientFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	patients, err := h.svc.List(c.Request.Context(), &filters)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(patients))
}

// MyCareInstructions returns the instruction fields of the
// authenticated patient.
func (h *Handler) MyCareInstructions(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("unauthorized"))
		return
	}

	instr, err := h.svc.CareInstructions(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(instr))
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrMissingNationalID):
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
	case errors.Is(err, model.ErrDuplicateIdentity):
		c.JSON(http.StatusConflict, handler.NewErrorResponse(err.Error()))
	case errors.Is(err, model.ErrPatientNotFound):
		c.JSON(http.StatusNotFound, handler.NewErrorResponse(err.Error()))
	default:
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("internal server error"))
	}
}

func applyUpdate(p *model.Patient, req *model.UpdatePatientRequest) {
	if req.PhoneNumber != nil {
		p.PhoneNumber = *req.PhoneNumber
	}
	if req.FirstName != nil {
		p.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		p.LastName = *req.LastName
	}
	if req.Age != nil {
		p.Age = req.Age
	}
	if req.MedicationTrackingCode != nil {
		p.MedicationTrackingCode = req.MedicationTrackingCode
	}
	if req.SurgeryType != nil {
		p.SurgeryType = model.SurgeryType(*req.SurgeryType)
	}
	if req.AttendingDoctor != nil {
		p.AttendingDoctor = model.Doctor(*req.AttendingDoctor)
	}
	if req.WarningSigns != nil {
		p.WarningSigns = *req.WarningSigns
	}
	if req.MedicationInstructions != nil {
		p.MedicationInstructions = *req.MedicationInstructions
	}
	if req.NextVisit != nil {
		p.NextVisit = *req.NextVisit
	}
	if req.OutpatientServices != nil {
		p.OutpatientServices = *req.OutpatientServices
	}
	if req.SelfCareRecommendations != nil {
		p.SelfCareRecommendations = *req.SelfCareRecommendations
	}
	if req.Nutrition != nil {
		p.Nutrition = *req.Nutrition
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}
	if req.IsAdmin != nil {
		p.IsAdmin = *req.IsAdmin
	}
}
