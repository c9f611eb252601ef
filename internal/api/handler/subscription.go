package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/qs3c/agedcare_server/internal/api/middleware"
	"github.com/qs3c/agedcare_server/internal/model"
	"github.com/qs3c/agedcare_server/internal/model/dto"
	"github.com/qs3c/agedcare_server/internal/pkg/response"
	"github.com/qs3c/agedcare_server/internal/service"
)

type SubscriptionHandler struct {
	subscriptionService *service.SubscriptionService
}

func NewSubscriptionHandler(subscriptionService *service.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{
		subscriptionService: subscriptionService,
	}
}

// loadController 加载当前用户的订阅，失败时已写入响应
func loadController(c *gin.Context, subs *service.SubscriptionService) (*service.SubscriptionController, bool) {
	email, ok := middleware.GetUserEmail(c)
	if !ok {
		response.AuthError(c, "")
		return nil, false
	}

	ctrl := subs.Controller(email)
	if ctrl.FetchSubscription(c.Request.Context()) == nil {
		if err := ctrl.Err(); err != nil {
			writeError(c, err)
		} else {
			writeError(c, service.ErrNoSubscription)
		}
		return nil, false
	}
	return ctrl, true
}

// Get 获取当前订阅
// GET /api/v1/subscription
func (h *SubscriptionHandler) Get(c *gin.Context) {
	ctrl, ok := loadController(c, h.subscriptionService)
	if !ok {
		return
	}

	response.Success(c, dto.NewSubscriptionView(ctrl.Subscription()))
}

// Create 创建订阅，覆盖已有订阅
// POST /api/v1/subscription
func (h *SubscriptionHandler) Create(c *gin.Context) {
	email, ok := middleware.GetUserEmail(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	var req dto.CreateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	ctrl := h.subscriptionService.Controller(email)
	ok = ctrl.AddSubscription(c.Request.Context(), service.NewSubscriptionRequest{
		PaymentMethod:    req.PaymentMethod,
		CardName:         req.CardName,
		CardNumber:       req.CardNumber,
		ExpiryDate:       req.ExpiryDate,
		CVV:              req.CVV,
		SubscriptionPlan: model.PlanTier(req.SubscriptionPlan),
	})
	if !ok {
		writeError(c, ctrl.Err())
		return
	}

	response.Success(c, dto.NewSubscriptionView(ctrl.Subscription()))
}

// ToggleAutoPayment 切换自动续费
// PUT /api/v1/subscription/auto-payment
func (h *SubscriptionHandler) ToggleAutoPayment(c *gin.Context) {
	ctrl, ok := loadController(c, h.subscriptionService)
	if !ok {
		return
	}

	if !ctrl.ToggleAutoPayment(c.Request.Context()) {
		writeError(c, ctrl.Err())
		return
	}

	response.Success(c, &dto.AutoPaymentResponse{
		AutoPayment: ctrl.Subscription().AutoPayment,
	})
}
