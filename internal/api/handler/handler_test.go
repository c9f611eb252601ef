package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/qs3c/agedcare_server/config"
	"github.com/qs3c/agedcare_server/internal/api/middleware"
	"github.com/qs3c/agedcare_server/internal/pkg/docstore"
	"github.com/qs3c/agedcare_server/internal/pkg/payment"
	"github.com/qs3c/agedcare_server/internal/pkg/response"
	"github.com/qs3c/agedcare_server/internal/repository"
	"github.com/qs3c/agedcare_server/internal/service"
	"github.com/qs3c/agedcare_server/internal/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// testContext 各 handler 测试共享的依赖
type testContext struct {
	Config        *config.Config
	Docs          *docstore.MemoryStore
	Subscriptions *service.SubscriptionService
	Plans         *service.PlanService
	ChargeErr     error
}

func newTestContext(t *testing.T) *testContext {
	t.Helper()

	ctx := &testContext{
		Config: testutil.TestConfig(),
		Docs:   docstore.NewMemoryStore(),
	}

	// 通过闭包读取 ChargeErr，测试中可随时切换结果
	processor := payment.ProcessorFunc(func(context.Context, decimal.Decimal, string) error {
		return ctx.ChargeErr
	})

	ctx.Subscriptions = service.NewSubscriptionService(
		repository.NewSubscriptionRepository(ctx.Docs),
		processor,
		ctx.Config,
		service.WithClock(testutil.FixedClock),
	)
	ctx.Plans = service.NewPlanService(ctx.Config, testutil.FixedClock)
	return ctx
}

func mockAuth(email string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserEmailKey, email)
		c.Next()
	}
}

func performRequest(r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		jsonBytes, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(jsonBytes)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	return resp
}

func dataMap(t *testing.T, resp response.Response) map[string]interface{} {
	t.Helper()
	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok, "data should be an object, got %T", resp.Data)
	return data
}
