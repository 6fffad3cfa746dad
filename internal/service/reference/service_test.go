package reference

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/apconnect/directory-api/internal/model"
	apperrors "github.com/apconnect/directory-api/pkg/errors"
)

type mockReferenceRepo struct {
	mock.Mock
}

func (m *mockReferenceRepo) ListConditions(ctx context.Context) ([]*model.Condition, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.([]*model.Condition), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockReferenceRepo) ListStates(ctx context.Context) ([]*model.State, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.([]*model.State), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestListConditionsCached(t *testing.T) {
	repo := new(mockReferenceRepo)
	conditions := []*model.Condition{{ID: "TRD", Name: "Treatment-resistant depression"}}
	repo.On("ListConditions", mock.Anything).Return(conditions, nil).Once()

	svc := NewService(repo, time.Minute)
	first, err := svc.ListConditions(context.Background())
	require.NoError(t, err)
	second, err := svc.ListConditions(context.Background())
	require.NoError(t, err)

	assert.Equal(t, conditions, first)
	assert.Equal(t, first, second)
	repo.AssertNumberOfCalls(t, "ListConditions", 1)
}

func TestListStatesReloadsAfterTTL(t *testing.T) {
	repo := new(mockReferenceRepo)
	states := []*model.State{{Code: "NSW", Name: "New South Wales", DisplayOrder: 1}}
	repo.On("ListStates", mock.Anything).Return(states, nil).Twice()

	svc := NewService(repo, 10*time.Millisecond)
	_, err := svc.ListStates(context.Background())
	require.NoError(t, err)
	time.Sleep(30 * time.Millisecond)
	_, err = svc.ListStates(context.Background())
	require.NoError(t, err)

	repo.AssertExpectations(t)
}

func TestListStatesErrorNotCached(t *testing.T) {
	repo := new(mockReferenceRepo)
	repo.On("ListStates", mock.Anything).Return(nil, errors.New("db down")).Once()
	repo.On("ListStates", mock.Anything).Return([]*model.State{}, nil).Once()

	svc := NewService(repo, time.Minute)
	_, err := svc.ListStates(context.Background())
	assert.True(t, apperrors.Is(err, apperrors.ErrInternal))

	_, err = svc.ListStates(context.Background())
	assert.NoError(t, err)
	repo.AssertExpectations(t)
}
