package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"panda-server/internal/lifecycle"
	"panda-server/internal/models"
	"panda-server/internal/repository"
	"panda-server/internal/validation"
)

const appointmentID = "01542f70-929f-4c9a-b4fa-e672310d7e78"

func validAppointment() validation.Record {
	return validation.Record{
		"patient":    "1953262716",
		"status":     "active",
		"time":       "2025-06-04T16:30:00+01:00",
		"duration":   "1h",
		"clinician":  "Bethany Rice-Hammond",
		"department": "oncology",
		"postcode":   "IM2N 4LG",
		"id":         appointmentID,
	}
}

func storedAppointment(status models.AppointmentStatus) *models.Appointment {
	a := validAppointment().Appointment()
	a.Status = status
	return a
}

func newAppointmentService(repo repository.AppointmentRepository) *AppointmentService {
	return NewAppointmentService(repo, zap.NewNop())
}

func TestAppointmentService_CreateSuccess(t *testing.T) {
	repo := new(MockAppointmentRepository)
	repo.On("GetByID", mock.Anything, appointmentID).Return(nil, nil)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*models.Appointment")).Return(true, nil)

	res := newAppointmentService(repo).Create(context.Background(), validAppointment())

	require.Equal(t, KindSuccess, res.Kind)
	require.NotNil(t, res.Message)
	assert.Equal(t, models.KeyNewAppointmentAdded, res.Message.Key)
	assert.Equal(t, appointmentID, res.Message.Params["id"])
	assert.Equal(t, "2025-06-04T16:30:00+01:00", res.Data.(*models.Appointment).Time)
	repo.AssertExpectations(t)
}

func TestAppointmentService_CreateValidationErrorSkipsRepository(t *testing.T) {
	repo := new(MockAppointmentRepository)
	record := validAppointment()
	record["status"] = "invalid_status"

	res := newAppointmentService(repo).Create(context.Background(), record)

	assert.Equal(t, KindValidationError, res.Kind)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, models.KeyInvalidStatus, res.Errors[0].Key)
	repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAppointmentService_CreateDatabaseError(t *testing.T) {
	repo := new(MockAppointmentRepository)
	repo.On("GetByID", mock.Anything, appointmentID).Return(nil, nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(false, nil)

	res := newAppointmentService(repo).Create(context.Background(), validAppointment())

	assert.Equal(t, KindDatabaseError, res.Kind)
	assert.True(t, models.HasKey(res.Errors, models.KeyCouldNotCreateAppointment))
}

func TestAppointmentService_CreateLookupFailure(t *testing.T) {
	repo := new(MockAppointmentRepository)
	repo.On("GetByID", mock.Anything, appointmentID).Return(nil, errors.New("connection reset"))

	res := newAppointmentService(repo).Create(context.Background(), validAppointment())

	assert.Equal(t, KindDatabaseError, res.Kind)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAppointmentService_CreateDuplicateActive(t *testing.T) {
	repo := new(MockAppointmentRepository)
	repo.On("GetByID", mock.Anything, appointmentID).Return(storedAppointment(models.StatusActive), nil)

	res := newAppointmentService(repo).Create(context.Background(), validAppointment())

	assert.Equal(t, KindBusinessError, res.Kind)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, models.KeyCouldNotCreateAppointment, res.Errors[0].Key)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAppointmentService_CancelledAppointmentCannotBeRecreated(t *testing.T) {
	repo := new(MockAppointmentRepository)
	repo.On("GetByID", mock.Anything, appointmentID).Return(storedAppointment(models.StatusCancelled), nil)

	res := newAppointmentService(repo).Create(context.Background(), validAppointment())

	assert.Equal(t, KindBusinessError, res.Kind)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, models.KeyCouldNotUpdateAppointment, res.Errors[0].Key)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "UpdateByID", mock.Anything, mock.Anything, mock.Anything)
}

func TestAppointmentService_UpdateSuccess(t *testing.T) {
	repo := new(MockAppointmentRepository)
	record := validAppointment()
	record["status"] = "attended"
	repo.On("GetByID", mock.Anything, appointmentID).Return(storedAppointment(models.StatusActive), nil)
	repo.On("UpdateByID", mock.Anything, appointmentID, record.Appointment().Changes()).Return(true, nil)

	res := newAppointmentService(repo).Update(context.Background(), appointmentID, record)

	require.Equal(t, KindSuccess, res.Kind)
	assert.Equal(t, models.KeyAppointmentUpdated, res.Message.Key)
	assert.Equal(t, models.StatusAttended, res.Data.(*models.Appointment).Status)
	repo.AssertExpectations(t)
}

func TestAppointmentService_UpdateCancelledIsRefusedWithoutWriting(t *testing.T) {
	for _, status := range []models.AppointmentStatus{models.StatusActive, models.StatusCancelled} {
		t.Run(string(status), func(t *testing.T) {
			repo := new(MockAppointmentRepository)
			repo.On("GetByID", mock.Anything, appointmentID).Return(storedAppointment(models.StatusCancelled), nil)
			record := validAppointment()
			record["status"] = string(status)

			res := newAppointmentService(repo).Update(context.Background(), appointmentID, record)

			assert.Equal(t, KindBusinessError, res.Kind)
			require.Len(t, res.Errors, 1)
			assert.Equal(t, models.KeyCouldNotUpdateAppointment, res.Errors[0].Key)
			repo.AssertNotCalled(t, "UpdateByID", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestAppointmentService_UpdateMissing(t *testing.T) {
	repo := new(MockAppointmentRepository)
	repo.On("GetByID", mock.Anything, appointmentID).Return(nil, nil)

	res := newAppointmentService(repo).Update(context.Background(), appointmentID, validAppointment())

	assert.Equal(t, KindNotFound, res.Kind)
	assert.True(t, models.HasKey(res.Errors, models.KeyAppointmentNotFound))
	repo.AssertNotCalled(t, "UpdateByID", mock.Anything, mock.Anything, mock.Anything)
}

func TestAppointmentService_UpdateValidationError(t *testing.T) {
	repo := new(MockAppointmentRepository)
	record := validAppointment()
	record["duration"] = "60minutes"

	res := newAppointmentService(repo).Update(context.Background(), appointmentID, record)

	assert.Equal(t, KindValidationError, res.Kind)
	repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestAppointmentService_GetSuccess(t *testing.T) {
	repo := new(MockAppointmentRepository)
	repo.On("GetByID", mock.Anything, appointmentID).Return(storedAppointment(models.StatusActive), nil)

	res := newAppointmentService(repo).Get(context.Background(), appointmentID)

	require.Equal(t, KindSuccess, res.Kind)
	assert.Equal(t, appointmentID, res.Data.(*models.Appointment).ID)
}

func TestAppointmentService_GetNotFound(t *testing.T) {
	repo := new(MockAppointmentRepository)
	repo.On("GetByID", mock.Anything, appointmentID).Return(nil, nil)

	res := newAppointmentService(repo).Get(context.Background(), appointmentID)

	assert.Equal(t, KindNotFound, res.Kind)
	assert.True(t, models.HasKey(res.Errors, models.KeyAppointmentNotFound))
}

func TestAppointmentService_DeleteCancels(t *testing.T) {
	repo := new(MockAppointmentRepository)
	repo.On("UpdateByID", mock.Anything, appointmentID, lifecycle.CancelChanges()).Return(true, nil)

	res := newAppointmentService(repo).Delete(context.Background(), appointmentID)

	require.Equal(t, KindSuccess, res.Kind)
	assert.Equal(t, models.KeyAppointmentCancelled, res.Message.Key)
	assert.Equal(t, appointmentID, res.Message.Params["id"])
	repo.AssertNotCalled(t, "DeleteByID", mock.Anything, mock.Anything)
}

func TestAppointmentService_DeleteNotFound(t *testing.T) {
	repo := new(MockAppointmentRepository)
	repo.On("UpdateByID", mock.Anything, appointmentID, lifecycle.CancelChanges()).Return(false, nil)

	res := newAppointmentService(repo).Delete(context.Background(), appointmentID)

	assert.Equal(t, KindNotFound, res.Kind)
	assert.True(t, models.HasKey(res.Errors, models.KeyAppointmentNotFound))
}

func TestAppointmentService_CancellationIsIdempotent(t *testing.T) {
	ctx := context.Background()
	svc := newAppointmentService(repository.NewMemoryAppointmentRepository())
	require.Equal(t, KindSuccess, svc.Create(ctx, validAppointment()).Kind)

	first := svc.Delete(ctx, appointmentID)
	second := svc.Delete(ctx, appointmentID)

	assert.Equal(t, KindSuccess, first.Kind)
	assert.Equal(t, KindSuccess, second.Kind)

	got := svc.Get(ctx, appointmentID)
	require.Equal(t, KindSuccess, got.Kind)
	assert.Equal(t, models.StatusCancelled, got.Data.(*models.Appointment).Status)

	// Frozen from here on.
	assert.Equal(t, KindBusinessError, svc.Update(ctx, appointmentID, validAppointment()).Kind)
	assert.Equal(t, KindBusinessError, svc.Create(ctx, validAppointment()).Kind)
	assert.Equal(t, models.StatusCancelled, svc.Get(ctx, appointmentID).Data.(*models.Appointment).Status)
}

func TestAppointmentService_MutableStatesAreMutuallyReachable(t *testing.T) {
	ctx := context.Background()
	svc := newAppointmentService(repository.NewMemoryAppointmentRepository())
	require.Equal(t, KindSuccess, svc.Create(ctx, validAppointment()).Kind)

	for _, status := range []string{"attended", "missed", "active", "missed", "attended", "active"} {
		record := validAppointment()
		record["status"] = status
		require.Equal(t, KindSuccess, svc.Update(ctx, appointmentID, record).Kind, status)
	}
}

func TestAppointmentService_List(t *testing.T) {
	repo := new(MockAppointmentRepository)
	repo.On("List", mock.Anything).Return([]models.Appointment{*storedAppointment(models.StatusActive), *storedAppointment(models.StatusMissed)}, nil).Once()

	res := newAppointmentService(repo).List(context.Background())

	require.Equal(t, KindSuccess, res.Kind)
	assert.Len(t, res.Data, 2)
	require.NotNil(t, res.Message)
	assert.Equal(t, models.KeyAppointmentsFetched, res.Message.Key)
	repo.AssertNumberOfCalls(t, "List", 1)
}

func TestAppointmentService_ListDatabaseError(t *testing.T) {
	repo := new(MockAppointmentRepository)
	repo.On("List", mock.Anything).Return(nil, errors.New("boom"))

	res := newAppointmentService(repo).List(context.Background())

	assert.Equal(t, KindDatabaseError, res.Kind)
	assert.True(t, models.HasKey(res.Errors, models.KeyCouldNotReadRecords))
}
