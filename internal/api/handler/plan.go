package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/qs3c/agedcare_server/internal/model"
	"github.com/qs3c/agedcare_server/internal/model/dto"
	"github.com/qs3c/agedcare_server/internal/pkg/response"
	"github.com/qs3c/agedcare_server/internal/service"
)

type PlanHandler struct {
	planService *service.PlanService
}

func NewPlanHandler(planService *service.PlanService) *PlanHandler {
	return &PlanHandler{
		planService: planService,
	}
}

// List 套餐列表
// GET /api/v1/plans
func (h *PlanHandler) List(c *gin.Context) {
	plans := h.planService.List()

	items := make([]*dto.PlanItem, 0, len(plans))
	for _, p := range plans {
		items = append(items, dto.NewPlanItem(p))
	}

	response.Success(c, items)
}

// Quote 套餐报价
// GET /api/v1/plans/:tier/quote?caregivers=2
func (h *PlanHandler) Quote(c *gin.Context) {
	tier, err := strconv.Atoi(c.Param("tier"))
	if err != nil {
		response.ParamError(c, "invalid plan tier")
		return
	}

	caregivers, err := strconv.Atoi(c.DefaultQuery("caregivers", "0"))
	if err != nil {
		response.ParamError(c, "invalid caregivers")
		return
	}

	q, err := h.planService.Quote(model.PlanTier(tier), caregivers)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, &dto.QuoteResponse{
		Plan:            dto.NewPlanItem(q.Plan),
		Caregivers:      q.Caregivers,
		CaregiverCost:   q.CaregiverCost.StringFixed(2),
		Total:           q.Total.StringFixed(2),
		NextPaymentDate: q.NextPaymentDate,
	})
}
