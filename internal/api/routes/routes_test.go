package routes_test

import (
	"net/http"
	"testing"

	"asset-management-backend/internal/api/middleware"
	"asset-management-backend/internal/api/routes"
	"asset-management-backend/internal/notify"
	"asset-management-backend/internal/testutils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// The database is never reached by these requests
func newRouter() *testutils.HTTPTestSuite {
	gin.SetMode(gin.TestMode)
	cfg := testutils.TestConfig()
	return &testutils.HTTPTestSuite{Router: routes.SetupRoutes(nil, cfg, notify.NewHub(cfg.AllowedOrigins))}
}

func TestSetupRoutes_UnknownEndpoint(t *testing.T) {
	recorder := newRouter().MakeRequestWithHeaders(http.MethodGet, "/api/v1/nothing", nil,
		map[string]string{middleware.RequestIDHeader: "req-42"})

	var body map[string]interface{}
	testutils.AssertJSONResponse(t, recorder, http.StatusNotFound, &body)
	assert.Equal(t, "req-42", body["request_id"])
	assert.Equal(t, "req-42", recorder.Header().Get(middleware.RequestIDHeader))
}

func TestSetupRoutes_EmptyMovementRejected(t *testing.T) {
	recorder := newRouter().MakeRequest(http.MethodPost, "/api/v1/movements", map[string]interface{}{
		"asset_ids":   []string{},
		"destination": map[string]interface{}{"kind": "ESTOQUE"},
		"reason":      "Devolução",
	})

	testutils.AssertErrorResponse(t, recorder, http.StatusBadRequest, "at least one asset")
}

func TestSetupRoutes_Liveness(t *testing.T) {
	suite := &testutils.HTTPTestSuite{Router: routes.SetupHealthRoutes(nil)}

	recorder := suite.MakeRequest(http.MethodGet, "/health/live", nil)

	assert.Equal(t, http.StatusOK, recorder.Code)
}
