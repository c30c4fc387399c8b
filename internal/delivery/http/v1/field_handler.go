package v1

import (
	"net/http"

	"go-candidate-admin/internal/delivery/http/response"
	"go-candidate-admin/internal/domain"
	"go-candidate-admin/internal/usecase"
	"go-candidate-admin/pkg/apperror"
	"go-candidate-admin/pkg/validation"

	"github.com/gin-gonic/gin"
)

// FieldCheck is the result of validating one form field.
type FieldCheck struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

type Availability struct {
	Exists bool `json:"exists"`
}

type FieldHandler struct {
	candidateUC domain.CandidateUsecase
	healthUC    usecase.HealthUsecase
}

func NewFieldHandler(r *gin.RouterGroup, candidateUC domain.CandidateUsecase, healthUC usecase.HealthUsecase) {
	h := &FieldHandler{candidateUC: candidateUC, healthUC: healthUC}

	r.GET("/health", h.Health)
	r.GET("/validate", h.Validate)
	r.GET("/check-email/:email", h.CheckEmail)
	r.GET("/check-phone/:phone", h.CheckPhone)
}

// Health godoc
// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  response.Response{data=map[string]string}
// @Router       /health [get]
func (h *FieldHandler) Health(c *gin.Context) {
	response.Success(c, http.StatusOK, "System operational", h.healthUC.Check(c.Request.Context()))
}

// Validate godoc
// @Summary      Validate one field
// @Description  Runs the form rule for a single field, used for feedback while typing
// @Tags         candidates
// @Produce      json
// @Param        field  query  string  true  "Field key, e.g. phoneNumber or resume"
// @Param        value  query  string  false "Raw value, the file name for resume"
// @Success      200  {object}  response.Response{data=FieldCheck}
// @Failure      400  {object}  response.Response
// @Router       /validate [get]
func (h *FieldHandler) Validate(c *gin.Context) {
	key := c.Query("field")
	f, ok := domain.ParseField(key)
	if !ok {
		_ = c.Error(apperror.BadRequest("Unknown field: " + key))
		return
	}
	response.Success(c, http.StatusOK, "Validated", FieldCheck{
		Field: key,
		Error: validation.Validate(f, c.Query("value")),
	})
}

// CheckEmail godoc
// @Summary      Check email availability
// @Tags         candidates
// @Produce      json
// @Param        email  path  string  true  "Email address"
// @Success      200  {object}  response.Response{data=Availability}
// @Failure      502  {object}  response.Response
// @Router       /check-email/{email} [get]
func (h *FieldHandler) CheckEmail(c *gin.Context) {
	exists, err := h.candidateUC.CheckEmailAvailability(c.Request.Context(), c.Param("email"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Email checked", Availability{Exists: exists})
}

// CheckPhone godoc
// @Summary      Check phone number availability
// @Tags         candidates
// @Produce      json
// @Param        phone  path  string  true  "10 digit phone number"
// @Success      200  {object}  response.Response{data=Availability}
// @Failure      502  {object}  response.Response
// @Router       /check-phone/{phone} [get]
func (h *FieldHandler) CheckPhone(c *gin.Context) {
	exists, err := h.candidateUC.CheckPhoneAvailability(c.Request.Context(), c.Param("phone"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Phone number checked", Availability{Exists: exists})
}
