package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/qs3c/agedcare_server/internal/api/middleware"
	"github.com/qs3c/agedcare_server/internal/model"
	"github.com/qs3c/agedcare_server/internal/model/dto"
	"github.com/qs3c/agedcare_server/internal/pkg/response"
	"github.com/qs3c/agedcare_server/internal/service"
)

type EnrollmentHandler struct {
	enrollmentService *service.EnrollmentService
}

func NewEnrollmentHandler(enrollmentService *service.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{
		enrollmentService: enrollmentService,
	}
}

// Enroll 开户：校验卡信息、收取首期费用并创建订阅
// POST /api/v1/enroll
func (h *EnrollmentHandler) Enroll(c *gin.Context) {
	email, ok := middleware.GetUserEmail(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	var req dto.EnrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	sub, err := h.enrollmentService.Enroll(c.Request.Context(), email, service.EnrollRequest{
		PaymentMethod:    req.PaymentMethod,
		Card:             req.Details,
		SubscriptionPlan: model.PlanTier(req.SubscriptionPlan),
		Caregivers:       req.Caregivers,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, dto.NewSubscriptionView(sub))
}
