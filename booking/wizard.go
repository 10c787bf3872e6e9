package booking

import (
	"context"
	"time"

	"github.com/medibook/medibook-api/models"
)

// Catalog is the directory collaborator the wizard consults while the
// patient narrows down a (clinic, specialty, doctor) tuple. Doctor lists
// must contain bookable doctors only; the wizard filters again on apply.
type Catalog interface {
	ListClinics(ctx context.Context) ([]models.Clinic, error)
	ListSpecialtiesByClinic(ctx context.Context, clinicID uint) ([]models.Specialty, error)
	ListDoctorsBySpecialty(ctx context.Context, clinicID, specialtyID uint) ([]models.Doctor, error)
}

// Booker submits the finished appointment request. A returned error carries
// the server's message and leaves the form untouched.
type Booker interface {
	CreateAppointment(ctx context.Context, form Form) error
}

// FetchToken ties an in-flight catalog fetch to the selection that
// triggered it. Results are applied only while the token is still current,
// which guards against out-of-order responses from superseded selections.
type FetchToken struct {
	gen         uint64
	clinicID    uint
	specialtyID uint
}

// Wizard sequences the two-phase booking form. Phase one resolves
// clinic -> specialty -> doctor in strict order; changing an upstream field
// always clears every downstream selection. Phase two collects the date,
// reason and notes. Navigating backward preserves entered values.
type Wizard struct {
	catalog Catalog
	booker  Booker

	form  Form
	phase int
	gen   uint64

	clinics     []models.Clinic
	specialties []models.Specialty
	doctors     []models.Doctor
}

func NewWizard(catalog Catalog, booker Booker) *Wizard {
	return &Wizard{catalog: catalog, booker: booker, phase: 1}
}

// Form returns a copy of the current form state.
func (w *Wizard) Form() Form { return w.form }

// Phase returns 1 while the clinic/specialty/doctor chain is being
// resolved and 2 once the schedule details are being entered.
func (w *Wizard) Phase() int { return w.phase }

// Clinics returns the most recently applied clinic list.
func (w *Wizard) Clinics() []models.Clinic { return w.clinics }

// Specialties returns the specialties scoped to the selected clinic.
func (w *Wizard) Specialties() []models.Specialty { return w.specialties }

// Doctors returns the bookable doctors scoped to the selected specialty.
func (w *Wizard) Doctors() []models.Doctor { return w.doctors }

// LoadClinics fetches the clinic list that seeds the first step.
func (w *Wizard) LoadClinics(ctx context.Context) error {
	clinics, err := w.catalog.ListClinics(ctx)
	if err != nil {
		return err
	}
	w.clinics = clinics
	return nil
}

// SelectClinic records the clinic choice, clears the specialty and doctor
// selections and invalidates every fetch issued for the previous clinic.
// The returned token must accompany the matching ApplySpecialties call.
func (w *Wizard) SelectClinic(clinicID uint) FetchToken {
	w.form.ClinicID = clinicID
	w.form.SpecialtyID = 0
	w.form.DoctorID = 0
	w.specialties = nil
	w.doctors = nil
	w.gen++
	return FetchToken{gen: w.gen, clinicID: clinicID}
}

// FetchSpecialties resolves the specialty list for the selection the token
// was issued for.
func (w *Wizard) FetchSpecialties(ctx context.Context, tok FetchToken) ([]models.Specialty, error) {
	return w.catalog.ListSpecialtiesByClinic(ctx, tok.clinicID)
}

// ApplySpecialties installs a fetched specialty list. It reports false and
// discards the result when the originating selection is no longer current.
func (w *Wizard) ApplySpecialties(tok FetchToken, specialties []models.Specialty) bool {
	if tok.gen != w.gen || tok.clinicID != w.form.ClinicID {
		return false
	}
	w.specialties = specialties
	return true
}

// SelectSpecialty records the specialty choice and clears the doctor
// selection. The specialty must belong to the selected clinic's list.
func (w *Wizard) SelectSpecialty(specialtyID uint) (FetchToken, error) {
	if w.form.ClinicID == 0 {
		return FetchToken{}, &StepOrderError{Step: FieldSpecialty, Requires: FieldClinic}
	}
	if !w.specialtyLoaded(specialtyID) {
		return FetchToken{}, &SelectionError{Field: FieldSpecialty, ID: specialtyID}
	}
	w.form.SpecialtyID = specialtyID
	w.form.DoctorID = 0
	w.doctors = nil
	w.gen++
	return FetchToken{gen: w.gen, clinicID: w.form.ClinicID, specialtyID: specialtyID}, nil
}

// FetchDoctors resolves the doctor list for the selection the token was
// issued for.
func (w *Wizard) FetchDoctors(ctx context.Context, tok FetchToken) ([]models.Doctor, error) {
	return w.catalog.ListDoctorsBySpecialty(ctx, tok.clinicID, tok.specialtyID)
}

// ApplyDoctors installs a fetched doctor list, keeping bookable doctors
// only. Stale results are discarded.
func (w *Wizard) ApplyDoctors(tok FetchToken, doctors []models.Doctor) bool {
	if tok.gen != w.gen || tok.clinicID != w.form.ClinicID || tok.specialtyID != w.form.SpecialtyID {
		return false
	}
	bookable := make([]models.Doctor, 0, len(doctors))
	for _, d := range doctors {
		if d.Bookable() {
			bookable = append(bookable, d)
		}
	}
	w.doctors = bookable
	return true
}

// SelectDoctor records the doctor choice. The doctor must be in the list
// loaded for the current (clinic, specialty) selection.
func (w *Wizard) SelectDoctor(doctorID uint) error {
	if w.form.SpecialtyID == 0 {
		return &StepOrderError{Step: FieldDoctor, Requires: FieldSpecialty}
	}
	for _, d := range w.doctors {
		if d.ID == doctorID {
			w.form.DoctorID = doctorID
			return nil
		}
	}
	return &SelectionError{Field: FieldDoctor, ID: doctorID}
}

// Next advances to phase two once the clinic/specialty/doctor chain is
// complete.
func (w *Wizard) Next() error {
	if w.form.ClinicID == 0 || w.form.SpecialtyID == 0 || w.form.DoctorID == 0 {
		return &StepOrderError{Step: "schedule", Requires: FieldDoctor}
	}
	w.phase = 2
	return nil
}

// Back returns to phase one, preserving every entered value.
func (w *Wizard) Back() {
	w.phase = 1
}

// SetSchedule records the phase-two fields.
func (w *Wizard) SetSchedule(date time.Time, reason, notes string) {
	w.form.AppointmentDate = date
	w.form.Reason = reason
	w.form.Notes = notes
}

// Submit validates the form locally and delegates to the booking
// collaborator. Validation failures never reach the network. Success
// resets the wizard to an empty phase-one form; failure preserves the
// entered values so the patient can correct and retry.
func (w *Wizard) Submit(ctx context.Context) error {
	if res := Validate(w.form); !res.Valid {
		return &ValidationError{MissingFields: res.MissingFields}
	}
	if errs := CheckConstraints(w.form, time.Now()); len(errs) > 0 {
		return &ConstraintError{Fields: errs}
	}
	if err := w.booker.CreateAppointment(ctx, w.form); err != nil {
		return err
	}
	w.Reset()
	return nil
}

// Reset clears the wizard back to its initial empty state.
func (w *Wizard) Reset() {
	w.form = Form{}
	w.phase = 1
	w.specialties = nil
	w.doctors = nil
	w.gen++
}

func (w *Wizard) specialtyLoaded(specialtyID uint) bool {
	for _, s := range w.specialties {
		if s.ID == specialtyID {
			return true
		}
	}
	return false
}
