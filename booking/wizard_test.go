package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medibook/medibook-api/models"
)

type fakeCatalog struct {
	clinics     []models.Clinic
	specialties map[uint][]models.Specialty
	doctors     map[[2]uint][]models.Doctor
}

func (f *fakeCatalog) ListClinics(ctx context.Context) ([]models.Clinic, error) {
	return f.clinics, nil
}

func (f *fakeCatalog) ListSpecialtiesByClinic(ctx context.Context, clinicID uint) ([]models.Specialty, error) {
	return f.specialties[clinicID], nil
}

func (f *fakeCatalog) ListDoctorsBySpecialty(ctx context.Context, clinicID, specialtyID uint) ([]models.Doctor, error) {
	return f.doctors[[2]uint{clinicID, specialtyID}], nil
}

type fakeBooker struct {
	submitted []Form
	err       error
}

func (f *fakeBooker) CreateAppointment(ctx context.Context, form Form) error {
	if f.err != nil {
		return f.err
	}
	f.submitted = append(f.submitted, form)
	return nil
}

func newTestCatalog() *fakeCatalog {
	return &fakeCatalog{
		clinics: []models.Clinic{{ID: 1, Name: "Phòng khám Đa khoa Sài Gòn"}, {ID: 2, Name: "Phòng khám Hòa Bình"}},
		specialties: map[uint][]models.Specialty{
			1: {{ID: 10, Name: "Tim mạch"}, {ID: 11, Name: "Da liễu"}},
			2: {{ID: 12, Name: "Nhi khoa"}},
		},
		doctors: map[[2]uint][]models.Doctor{
			{1, 10}: {
				{ID: 100, FullName: "BS. Trần Văn An", Status: models.DoctorActive},
				{ID: 101, FullName: "BS. Lê Thị Bình", Status: models.DoctorPending},
			},
			{1, 11}: {
				{ID: 102, FullName: "BS. Phạm Minh Châu", Status: models.DoctorActive},
			},
		},
	}
}

// advance drives the wizard through clinic -> specialty -> doctor.
func advance(t *testing.T, w *Wizard, clinicID, specialtyID, doctorID uint) {
	t.Helper()
	ctx := context.Background()

	tok := w.SelectClinic(clinicID)
	specialties, err := w.FetchSpecialties(ctx, tok)
	require.NoError(t, err)
	require.True(t, w.ApplySpecialties(tok, specialties))

	tok, err = w.SelectSpecialty(specialtyID)
	require.NoError(t, err)
	doctors, err := w.FetchDoctors(ctx, tok)
	require.NoError(t, err)
	require.True(t, w.ApplyDoctors(tok, doctors))

	require.NoError(t, w.SelectDoctor(doctorID))
}

func TestValidateReportsMissingFields(t *testing.T) {
	res := Validate(Form{})
	assert.False(t, res.Valid)
	assert.ElementsMatch(t, []string{FieldClinic, FieldSpecialty, FieldDoctor, FieldReason}, res.MissingFields)

	// reason missing even when the whole chain is resolved
	res = Validate(Form{ClinicID: 1, SpecialtyID: 10, DoctorID: 100})
	assert.False(t, res.Valid)
	assert.Equal(t, []string{FieldReason}, res.MissingFields)

	res = Validate(Form{ClinicID: 1, SpecialtyID: 10, DoctorID: 100, Reason: "   "})
	assert.False(t, res.Valid)
	assert.Contains(t, res.MissingFields, FieldReason)

	res = Validate(Form{ClinicID: 1, SpecialtyID: 10, DoctorID: 100, Reason: "Khám tổng quát"})
	assert.True(t, res.Valid)
	assert.Empty(t, res.MissingFields)
}

func TestSelectClinicResetsDownstream(t *testing.T) {
	w := NewWizard(newTestCatalog(), &fakeBooker{})
	advance(t, w, 1, 10, 100)
	require.Equal(t, uint(100), w.Form().DoctorID)

	w.SelectClinic(2)
	form := w.Form()
	assert.Equal(t, uint(2), form.ClinicID)
	assert.Zero(t, form.SpecialtyID)
	assert.Zero(t, form.DoctorID)
	assert.Empty(t, w.Specialties())
	assert.Empty(t, w.Doctors())
}

func TestSelectSpecialtyClearsDoctor(t *testing.T) {
	w := NewWizard(newTestCatalog(), &fakeBooker{})
	advance(t, w, 1, 10, 100)

	// choosing another specialty clears the doctor bound to the old one
	tok, err := w.SelectSpecialty(11)
	require.NoError(t, err)
	assert.Zero(t, w.Form().DoctorID)

	doctors, err := w.FetchDoctors(context.Background(), tok)
	require.NoError(t, err)
	require.True(t, w.ApplyDoctors(tok, doctors))
	require.NoError(t, w.SelectDoctor(102))
}

func TestStepOrderEnforced(t *testing.T) {
	w := NewWizard(newTestCatalog(), &fakeBooker{})

	_, err := w.SelectSpecialty(10)
	var order *StepOrderError
	require.ErrorAs(t, err, &order)

	err = w.SelectDoctor(100)
	require.ErrorAs(t, err, &order)

	require.Error(t, w.Next())
}

func TestSpecialtyMustBelongToClinic(t *testing.T) {
	w := NewWizard(newTestCatalog(), &fakeBooker{})
	ctx := context.Background()

	tok := w.SelectClinic(2)
	specialties, err := w.FetchSpecialties(ctx, tok)
	require.NoError(t, err)
	require.True(t, w.ApplySpecialties(tok, specialties))

	// specialty 10 belongs to clinic 1, not clinic 2
	_, err = w.SelectSpecialty(10)
	var sel *SelectionError
	require.ErrorAs(t, err, &sel)
	assert.Zero(t, w.Form().SpecialtyID)
}

func TestPendingDoctorsFilteredOut(t *testing.T) {
	w := NewWizard(newTestCatalog(), &fakeBooker{})
	ctx := context.Background()

	tok := w.SelectClinic(1)
	specialties, _ := w.FetchSpecialties(ctx, tok)
	require.True(t, w.ApplySpecialties(tok, specialties))
	tok, err := w.SelectSpecialty(10)
	require.NoError(t, err)
	doctors, _ := w.FetchDoctors(ctx, tok)
	require.True(t, w.ApplyDoctors(tok, doctors))

	require.Len(t, w.Doctors(), 1, "pending doctor must not be selectable")
	var sel *SelectionError
	require.ErrorAs(t, w.SelectDoctor(101), &sel)
}

func TestStaleFetchDiscarded(t *testing.T) {
	w := NewWizard(newTestCatalog(), &fakeBooker{})
	ctx := context.Background()

	// fetch for clinic 1 is still in flight when clinic 2 is chosen
	staleTok := w.SelectClinic(1)
	staleSpecialties, err := w.FetchSpecialties(ctx, staleTok)
	require.NoError(t, err)

	freshTok := w.SelectClinic(2)
	freshSpecialties, err := w.FetchSpecialties(ctx, freshTok)
	require.NoError(t, err)
	require.True(t, w.ApplySpecialties(freshTok, freshSpecialties))

	// the late result from the superseded clinic must be dropped
	assert.False(t, w.ApplySpecialties(staleTok, staleSpecialties))
	require.Len(t, w.Specialties(), 1)
	assert.Equal(t, "Nhi khoa", w.Specialties()[0].Name)
}

func TestBackPreservesEnteredValues(t *testing.T) {
	w := NewWizard(newTestCatalog(), &fakeBooker{})
	advance(t, w, 1, 10, 100)
	require.NoError(t, w.Next())
	w.SetSchedule(time.Now().Add(24*time.Hour), "Đau ngực", "ghi chú")

	w.Back()
	assert.Equal(t, 1, w.Phase())
	form := w.Form()
	assert.Equal(t, uint(100), form.DoctorID)
	assert.Equal(t, "Đau ngực", form.Reason)
	assert.Equal(t, "ghi chú", form.Notes)
}

func TestSubmitHappyPath(t *testing.T) {
	booker := &fakeBooker{}
	w := NewWizard(newTestCatalog(), booker)
	advance(t, w, 1, 10, 100)
	require.NoError(t, w.Next())
	w.SetSchedule(time.Now().Add(24*time.Hour), "Khám tổng quát", "")

	require.NoError(t, w.Submit(context.Background()))
	require.Len(t, booker.submitted, 1)
	payload := booker.submitted[0]
	assert.Equal(t, uint(1), payload.ClinicID)
	assert.Equal(t, uint(10), payload.SpecialtyID)
	assert.Equal(t, uint(100), payload.DoctorID)
	assert.Equal(t, "Khám tổng quát", payload.Reason)

	// success resets to the initial empty state
	assert.Equal(t, Form{}, w.Form())
	assert.Equal(t, 1, w.Phase())
	assert.Empty(t, w.Doctors())
}

func TestSubmitRefusedWithoutReason(t *testing.T) {
	booker := &fakeBooker{}
	w := NewWizard(newTestCatalog(), booker)
	advance(t, w, 1, 10, 100)

	err := w.Submit(context.Background())
	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Contains(t, validation.MissingFields, FieldReason)
	assert.Empty(t, booker.submitted, "validation failures must not reach the collaborator")
}

func TestSubmitFailurePreservesForm(t *testing.T) {
	serverErr := errors.New("Bác sĩ đã kín lịch")
	booker := &fakeBooker{err: serverErr}
	w := NewWizard(newTestCatalog(), booker)
	advance(t, w, 1, 10, 100)
	require.NoError(t, w.Next())
	w.SetSchedule(time.Now().Add(24*time.Hour), "Khám tổng quát", "")

	err := w.Submit(context.Background())
	require.ErrorIs(t, err, serverErr)
	assert.Equal(t, "Khám tổng quát", w.Form().Reason)
	assert.Equal(t, uint(100), w.Form().DoctorID)
	assert.Equal(t, 2, w.Phase())
}

func TestCheckConstraints(t *testing.T) {
	now := time.Now()
	long := make([]rune, MaxReasonLength+1)
	for i := range long {
		long[i] = 'a'
	}

	errs := CheckConstraints(Form{Reason: string(long), AppointmentDate: now.Add(-time.Hour)}, now)
	require.Len(t, errs, 2)

	errs = CheckConstraints(Form{Reason: "ok", AppointmentDate: now.Add(time.Hour)}, now)
	assert.Empty(t, errs)
}
