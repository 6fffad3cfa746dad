package reference

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/apconnect/directory-api/internal/model"
	apperrors "github.com/apconnect/directory-api/pkg/errors"
)

type stubService struct {
	states []*model.State
	err    error
}

func (s stubService) ListConditions(context.Context) ([]*model.Condition, error) {
	return nil, s.err
}

func (s stubService) ListStates(context.Context) ([]*model.State, error) {
	return s.states, s.err
}

func get(svc stubService, path string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(svc).RegisterRoutes(r.Group("/api/v1"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestListStates(t *testing.T) {
	w := get(stubService{states: []*model.State{{Code: "NSW", Name: "New South Wales", DisplayOrder: 1}}}, "/api/v1/reference/states")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"NSW"`)
}

func TestListConditionsFailure(t *testing.T) {
	w := get(stubService{err: apperrors.Internal("failed to fetch conditions", errors.New("boom"))}, "/api/v1/reference/conditions")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "failed to fetch conditions")
}
