// Package catalog serves the read-heavy clinic/specialty/doctor directory
// behind a redis cache. It is the server-side implementation of the
// directory contract the booking flow consults.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/medibook/medibook-api/booking"
	"github.com/medibook/medibook-api/logger"
	"github.com/medibook/medibook-api/models"
)

const cacheTTL = 5 * time.Minute

type Service struct {
	db    *gorm.DB
	cache *redis.Client
}

var _ booking.Catalog = (*Service)(nil)

func NewService(db *gorm.DB, cache *redis.Client) *Service {
	return &Service{db: db, cache: cache}
}

// ListClinics returns every clinic with its specialties preloaded.
func (s *Service) ListClinics(ctx context.Context) ([]models.Clinic, error) {
	key := "catalog:clinics"
	var clinics []models.Clinic
	if s.fromCache(ctx, key, &clinics) {
		return clinics, nil
	}
	if err := s.db.WithContext(ctx).Preload("Specialties").Find(&clinics).Error; err != nil {
		return nil, err
	}
	s.toCache(ctx, key, clinics)
	return clinics, nil
}

// ListSpecialtiesByClinic returns the specialties currently associated
// with the clinic.
func (s *Service) ListSpecialtiesByClinic(ctx context.Context, clinicID uint) ([]models.Specialty, error) {
	key := fmt.Sprintf("catalog:clinic:%d:specialties", clinicID)
	var specialties []models.Specialty
	if s.fromCache(ctx, key, &specialties) {
		return specialties, nil
	}
	var clinic models.Clinic
	if err := s.db.WithContext(ctx).Preload("Specialties").First(&clinic, clinicID).Error; err != nil {
		return nil, err
	}
	specialties = clinic.Specialties
	s.toCache(ctx, key, specialties)
	return specialties, nil
}

// ListDoctorsBySpecialty returns the active doctors practicing the
// specialty at the clinic. Pending and rejected doctors never appear here.
func (s *Service) ListDoctorsBySpecialty(ctx context.Context, clinicID, specialtyID uint) ([]models.Doctor, error) {
	key := fmt.Sprintf("catalog:clinic:%d:specialty:%d:doctors", clinicID, specialtyID)
	var doctors []models.Doctor
	if s.fromCache(ctx, key, &doctors) {
		return doctors, nil
	}
	err := s.db.WithContext(ctx).
		Preload("Specialty").
		Where("clinic_id = ? AND specialty_id = ? AND status = ?", clinicID, specialtyID, models.DoctorActive).
		Find(&doctors).Error
	if err != nil {
		return nil, err
	}
	s.toCache(ctx, key, doctors)
	return doctors, nil
}

// InvalidateDoctors drops the cached doctor list for a (clinic, specialty)
// pair. Called after an approval decision changes who is bookable.
func (s *Service) InvalidateDoctors(ctx context.Context, clinicID, specialtyID uint) {
	if s.cache == nil {
		return
	}
	key := fmt.Sprintf("catalog:clinic:%d:specialty:%d:doctors", clinicID, specialtyID)
	if err := s.cache.Del(ctx, key).Err(); err != nil {
		logger.Log.Warn("failed to invalidate doctor cache", zap.String("key", key), zap.Error(err))
	}
}

func (s *Service) fromCache(ctx context.Context, key string, dest any) bool {
	if s.cache == nil {
		return false
	}
	raw, err := s.cache.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		logger.Log.Warn("corrupt cache entry", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (s *Service) toCache(ctx context.Context, key string, value any) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, raw, cacheTTL).Err(); err != nil {
		logger.Log.Warn("failed to cache catalog entry", zap.String("key", key), zap.Error(err))
	}
}
