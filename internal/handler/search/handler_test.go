package search

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/apconnect/directory-api/internal/model"
	apperrors "github.com/apconnect/directory-api/pkg/errors"
)

type mockService struct{ mock.Mock }

func (m *mockService) SearchPractitioners(ctx context.Context, f model.SearchFilters) ([]*model.ActivePractitioner, error) {
	args := m.Called(ctx, f)
	out, _ := args.Get(0).([]*model.ActivePractitioner)
	return out, args.Error(1)
}

func (m *mockService) GetPractitionerBySlug(ctx context.Context, slug string) (*model.PractitionerDetails, error) {
	args := m.Called(ctx, slug)
	out, _ := args.Get(0).(*model.PractitionerDetails)
	return out, args.Error(1)
}

func newRouter(svc *mockService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(svc).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func TestSearchBindsCheckboxes(t *testing.T) {
	svc := new(mockService)
	svc.On("SearchPractitioners", mock.Anything, model.SearchFilters{
		State:         "VIC",
		Condition:     "ptsd",
		AcceptingOnly: true,
		PITrainedOnly: true,
		Query:         "smith",
	}).Return([]*model.ActivePractitioner{{Slug: "jane-smith"}}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/search?state=VIC&condition=ptsd&accepting=on&piTrained=true&q=smith", nil)
	newRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"slug":"jane-smith"`)
	svc.AssertExpectations(t)
}

func TestSearchEmptyResultIsArray(t *testing.T) {
	svc := new(mockService)
	svc.On("SearchPractitioners", mock.Anything, model.SearchFilters{}).Return([]*model.ActivePractitioner{}, nil)

	w := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/search", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"success","data":[]}`, w.Body.String())
}

func TestGetBySlugNotFound(t *testing.T) {
	svc := new(mockService)
	svc.On("GetPractitionerBySlug", mock.Anything, "nobody").Return(nil, apperrors.NotFound("practitioner", nil))

	w := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/practitioner/nobody", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"status":"error","message":"practitioner not found"}`, w.Body.String())
}
