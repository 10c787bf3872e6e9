package controllers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/medibook/medibook-api/catalog"
	"github.com/medibook/medibook-api/utils"
)

// Catalog is the cached clinic/specialty/doctor directory. Wired in main.
var Catalog *catalog.Service

// ListClinics returns every clinic with its specialties, seeding the first
// step of the booking flow.
func ListClinics(c *fiber.Ctx) error {
	clinics, err := Catalog.ListClinics(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch clinics",
			Error:   err.Error(),
		})
	}
	return c.JSON(clinics)
}

// ListClinicSpecialties returns the specialties offered by a clinic.
func ListClinicSpecialties(c *fiber.Ctx) error {
	clinicID, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid clinic ID",
		})
	}

	specialties, err := Catalog.ListSpecialtiesByClinic(c.Context(), uint(clinicID))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Clinic not found",
			Error:   err.Error(),
		})
	}
	return c.JSON(specialties)
}

// ListSpecialtyDoctors returns the active doctors practicing a specialty
// at a clinic. Pending and rejected doctors are never included.
func ListSpecialtyDoctors(c *fiber.Ctx) error {
	clinicID, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid clinic ID",
		})
	}
	specialtyID, err := strconv.ParseUint(c.Params("specialtyId"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid specialty ID",
		})
	}

	doctors, err := Catalog.ListDoctorsBySpecialty(c.Context(), uint(clinicID), uint(specialtyID))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch doctors",
			Error:   err.Error(),
		})
	}
	return c.JSON(doctors)
}
