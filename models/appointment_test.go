package models

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransitionTableExhaustive(t *testing.T) {
	all := []AppointmentStatus{
		StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled, StatusRescheduled,
	}
	allowed := map[[2]AppointmentStatus]bool{
		{StatusPending, StatusConfirmed}:     true,
		{StatusPending, StatusCancelled}:     true,
		{StatusConfirmed, StatusCompleted}:   true,
		{StatusConfirmed, StatusCancelled}:   true,
		{StatusConfirmed, StatusRescheduled}: true,
		{StatusRescheduled, StatusConfirmed}: true,
	}

	for _, from := range all {
		for _, to := range all {
			a := Appointment{Status: from}
			err := a.Transition(to, RoleAdmin, "lý do")
			if allowed[[2]AppointmentStatus{from, to}] {
				// confirmed -> completed is doctor-only, retry as doctor
				if err != nil {
					var unauthorized *UnauthorizedTransitionError
					require.ErrorAs(t, err, &unauthorized)
					a = Appointment{Status: from}
					require.NoError(t, a.Transition(to, RoleDoctor, "lý do"))
				}
				continue
			}
			var invalid *InvalidTransitionError
			require.ErrorAs(t, err, &invalid, "transition %s -> %s must be rejected", from, to)
			assert.Equal(t, string(from), invalid.From)
			assert.Equal(t, string(to), invalid.To)
			assert.Equal(t, from, a.Status, "failed transition must leave status unchanged")
		}
	}
}

func TestCancelRequiresReason(t *testing.T) {
	for _, reason := range []string{"", "   ", "\t\n"} {
		a := Appointment{Status: StatusPending}
		err := a.Transition(StatusCancelled, RoleDoctor, reason)
		require.ErrorIs(t, err, ErrMissingReason)
		assert.Equal(t, StatusPending, a.Status)
		assert.Empty(t, a.CancellationReason)
	}
}

func TestDoctorCancelsPendingAppointment(t *testing.T) {
	a := Appointment{Status: StatusPending}
	require.NoError(t, a.Transition(StatusCancelled, RoleDoctor, "Bác sĩ nghỉ phép"))
	assert.Equal(t, StatusCancelled, a.Status)
	assert.Equal(t, "Bác sĩ nghỉ phép", a.CancellationReason)
}

func TestCancellationReasonTrimmed(t *testing.T) {
	a := Appointment{Status: StatusConfirmed}
	require.NoError(t, a.Transition(StatusCancelled, RoleAdmin, "  bận đột xuất  "))
	assert.Equal(t, "bận đột xuất", a.CancellationReason)
}

func TestPatientMayNotConfirm(t *testing.T) {
	a := Appointment{Status: StatusPending}
	err := a.Transition(StatusConfirmed, RoleUser, "")
	var unauthorized *UnauthorizedTransitionError
	require.ErrorAs(t, err, &unauthorized)
	assert.Equal(t, StatusPending, a.Status)
}

func TestOnlyDoctorCompletes(t *testing.T) {
	a := Appointment{Status: StatusConfirmed}
	err := a.Transition(StatusCompleted, RoleAdmin, "")
	var unauthorized *UnauthorizedTransitionError
	require.ErrorAs(t, err, &unauthorized)

	a = Appointment{Status: StatusConfirmed}
	require.NoError(t, a.Transition(StatusCompleted, RoleDoctor, ""))
	assert.Equal(t, StatusCompleted, a.Status)
}

func TestRescheduleSetsNewDate(t *testing.T) {
	newDate := time.Now().Add(48 * time.Hour)
	a := Appointment{Status: StatusConfirmed, AppointmentDate: time.Now()}
	require.NoError(t, a.Reschedule(newDate, RoleDoctor))
	assert.Equal(t, StatusRescheduled, a.Status)
	assert.True(t, a.AppointmentDate.Equal(newDate))

	// patient accepts the proposed date
	require.NoError(t, a.Transition(StatusConfirmed, RoleUser, ""))
	assert.Equal(t, StatusConfirmed, a.Status)
}

func TestRescheduleRequiresDate(t *testing.T) {
	a := Appointment{Status: StatusConfirmed}
	err := a.Reschedule(time.Time{}, RoleAdmin)
	require.True(t, errors.Is(err, ErrMissingDate))
	assert.Equal(t, StatusConfirmed, a.Status)
}

func TestTerminalStates(t *testing.T) {
	assert.True(t, StatusCompleted.Terminal())
	assert.True(t, StatusCancelled.Terminal())
	assert.False(t, StatusPending.Terminal())
	assert.False(t, StatusConfirmed.Terminal())
	assert.False(t, StatusRescheduled.Terminal())
}

func TestStatusLabels(t *testing.T) {
	assert.Equal(t, "Chờ xác nhận", StatusPending.Label())
	assert.Equal(t, "Đã xác nhận", StatusConfirmed.Label())
	assert.Equal(t, "Hoàn thành", StatusCompleted.Label())
	assert.Equal(t, "Đã hủy", StatusCancelled.Label())
	assert.Equal(t, "Đã dời lịch", StatusRescheduled.Label())
}
