package handlers_test

import (
	"net/http"
	"testing"

	"asset-management-backend/internal/api/handlers"
	"asset-management-backend/internal/testutils"

	"github.com/stretchr/testify/assert"
)

func TestHealthHandler_Live(t *testing.T) {
	httpSuite := testutils.SetupHTTPTest()
	httpSuite.Router.GET("/health/live", handlers.NewHealthHandler(nil).Live)

	recorder := httpSuite.MakeRequest(http.MethodGet, "/health/live", nil)

	var response map[string]interface{}
	testutils.AssertJSONResponse(t, recorder, http.StatusOK, &response)
	assert.Equal(t, true, response["alive"])
}
