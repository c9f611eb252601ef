package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/qs3c/agedcare_server/internal/model/dto"
	"github.com/qs3c/agedcare_server/internal/pkg/response"
	"github.com/qs3c/agedcare_server/internal/service"
)

type WalletHandler struct {
	subscriptionService *service.SubscriptionService
}

func NewWalletHandler(subscriptionService *service.SubscriptionService) *WalletHandler {
	return &WalletHandler{
		subscriptionService: subscriptionService,
	}
}

// Get 钱包概览
// GET /api/v1/wallet
func (h *WalletHandler) Get(c *gin.Context) {
	ctrl, ok := loadController(c, h.subscriptionService)
	if !ok {
		return
	}

	response.Success(c, dto.NewWalletResponse(ctrl.Subscription()))
}

// TopUp 钱包充值
// POST /api/v1/wallet/top-up
func (h *WalletHandler) TopUp(c *gin.Context) {
	var req dto.TopUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	ctrl, ok := loadController(c, h.subscriptionService)
	if !ok {
		return
	}

	if !ctrl.TopUpWallet(c.Request.Context(), req.Amount, req.PaymentMethod, req.Details) {
		writeError(c, ctrl.Err())
		return
	}

	response.Success(c, dto.NewWalletResponse(ctrl.Subscription()))
}

// Pay 使用钱包余额支付
// POST /api/v1/wallet/payments
func (h *WalletHandler) Pay(c *gin.Context) {
	var req dto.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	ctrl, ok := loadController(c, h.subscriptionService)
	if !ok {
		return
	}

	if !ctrl.MakePayment(c.Request.Context(), req.Amount, req.Description, req.Recipient) {
		writeError(c, ctrl.Err())
		return
	}

	response.Success(c, dto.NewWalletResponse(ctrl.Subscription()))
}

// Transactions 交易记录，limit=0 返回全部
// GET /api/v1/wallet/transactions?limit=20
func (h *WalletHandler) Transactions(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 0 {
		response.ParamError(c, "limit must be a non-negative integer")
		return
	}

	ctrl, ok := loadController(c, h.subscriptionService)
	if !ok {
		return
	}

	response.Success(c, dto.NewTransactionListResponse(ctrl.TransactionHistory(limit)))
}
