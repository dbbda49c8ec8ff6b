// internal/services/appointment_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/makaohomes/makao-backend/internal/database"
	"github.com/makaohomes/makao-backend/internal/models"
	"github.com/makaohomes/makao-backend/internal/utils"
)

// AppointmentService covers both office appointments and on-site viewings;
// the two share the same booking workflow.
type AppointmentService struct {
	db *gorm.DB
}

type CreateBookingRequest struct {
	PropertyID uuid.UUID  `json:"property_id" validate:"required"`
	AgentID    *uuid.UUID `json:"agent_id,omitempty"`
	Date       string     `json:"date" validate:"required,datetime=2006-01-02"`
	TimeSlot   string     `json:"time_slot" validate:"required,max=50"`
	Notes      string     `json:"notes,omitempty" validate:"max=1000"`
}

type UpdateBookingRequest struct {
	Status   *models.AppointmentStatus `json:"status,omitempty"`
	Date     *string                   `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	TimeSlot *string                   `json:"time_slot,omitempty"`
	AgentID  *uuid.UUID                `json:"agent_id,omitempty"`
	Notes    *string                   `json:"notes,omitempty"`
}

func NewAppointmentService(db *gorm.DB) *AppointmentService {
	return &AppointmentService{db: db}
}

func (s *AppointmentService) parseBookingDate(raw string) (time.Time, error) {
	date, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format, expected YYYY-MM-DD: %w", err)
	}
	return date, nil
}

func (s *AppointmentService) checkProperty(propertyID uuid.UUID) error {
	var property models.Property
	if err := s.db.First(&property, "id = ?", propertyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("property not found")
		}
		return fmt.Errorf("database error: %w", err)
	}
	return nil
}

// CreateAppointment books an office appointment; new bookings always
// start pending.
func (s *AppointmentService) CreateAppointment(userID uuid.UUID, req *CreateBookingRequest) (*models.Appointment, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if err := s.checkProperty(req.PropertyID); err != nil {
		return nil, err
	}

	date, err := s.parseBookingDate(req.Date)
	if err != nil {
		return nil, err
	}

	appointment := &models.Appointment{
		UserID:     userID,
		PropertyID: req.PropertyID,
		AgentID:    req.AgentID,
		Date:       date,
		TimeSlot:   req.TimeSlot,
		Notes:      req.Notes,
		Status:     models.AppointmentStatusPending,
	}

	if err := s.db.Create(appointment).Error; err != nil {
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}
	return appointment, nil
}

func (s *AppointmentService) CreateViewing(userID uuid.UUID, req *CreateBookingRequest) (*models.Viewing, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if err := s.checkProperty(req.PropertyID); err != nil {
		return nil, err
	}

	date, err := s.parseBookingDate(req.Date)
	if err != nil {
		return nil, err
	}

	viewing := &models.Viewing{
		UserID:     userID,
		PropertyID: req.PropertyID,
		AgentID:    req.AgentID,
		Date:       date,
		TimeSlot:   req.TimeSlot,
		Notes:      req.Notes,
		Status:     models.AppointmentStatusPending,
	}

	if err := s.db.Create(viewing).Error; err != nil {
		return nil, fmt.Errorf("failed to create viewing: %w", err)
	}
	return viewing, nil
}

func (s *AppointmentService) ListAppointments(params utils.PaginationParams, userID *uuid.UUID, status string) ([]models.Appointment, int64, error) {
	query := s.db.Model(&models.Appointment{}).Preload("Property").Preload("User")
	if userID != nil {
		query = query.Where("user_id = ?", *userID)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count appointments: %w", err)
	}

	query = utils.ApplySort(query, params, []string{"date", "created_at", "status"})
	query = utils.ApplyPagination(query, params)

	var appointments []models.Appointment
	if err := query.Find(&appointments).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch appointments: %w", err)
	}
	return appointments, total, nil
}

func (s *AppointmentService) ListViewings(params utils.PaginationParams, userID *uuid.UUID, status string) ([]models.Viewing, int64, error) {
	query := s.db.Model(&models.Viewing{}).Preload("Property").Preload("User")
	if userID != nil {
		query = query.Where("user_id = ?", *userID)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count viewings: %w", err)
	}

	query = utils.ApplySort(query, params, []string{"date", "created_at", "status"})
	query = utils.ApplyPagination(query, params)

	var viewings []models.Viewing
	if err := query.Find(&viewings).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch viewings: %w", err)
	}
	return viewings, total, nil
}

func (s *AppointmentService) GetAppointment(id uuid.UUID) (*models.Appointment, error) {
	var appointment models.Appointment
	if err := s.db.Preload("Property").Preload("User").First(&appointment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &appointment, nil
}

func (s *AppointmentService) GetViewing(id uuid.UUID) (*models.Viewing, error) {
	var viewing models.Viewing
	if err := s.db.Preload("Property").Preload("User").First(&viewing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &viewing, nil
}

func (s *AppointmentService) bookingUpdates(current models.AppointmentStatus, req *UpdateBookingRequest) (map[string]interface{}, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	updates := make(map[string]interface{})
	if req.Status != nil {
		if !req.Status.Valid() {
			return nil, fmt.Errorf("invalid booking status: %s", *req.Status)
		}
		if !current.CanTransition(*req.Status) {
			return nil, fmt.Errorf("%w: %s -> %s", ErrIllegalStatusTransition, current, *req.Status)
		}
		updates["status"] = *req.Status
	}
	if req.Date != nil {
		date, err := s.parseBookingDate(*req.Date)
		if err != nil {
			return nil, err
		}
		updates["date"] = date
	}
	if req.TimeSlot != nil {
		updates["time_slot"] = *req.TimeSlot
	}
	if req.AgentID != nil {
		updates["agent_id"] = *req.AgentID
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}
	return updates, nil
}

func (s *AppointmentService) UpdateAppointment(id uuid.UUID, req *UpdateBookingRequest) (*models.Appointment, error) {
	var missing bool
	err := database.WithTransaction(s.db, func(tx *gorm.DB) error {
		var appointment models.Appointment
		if err := tx.First(&appointment, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				missing = true
				return nil
			}
			return fmt.Errorf("database error: %w", err)
		}

		updates, err := s.bookingUpdates(appointment.Status, req)
		if err != nil {
			return err
		}
		if len(updates) == 0 {
			return nil
		}
		return tx.Model(&appointment).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}
	if missing {
		return nil, nil
	}
	return s.GetAppointment(id)
}

func (s *AppointmentService) UpdateViewing(id uuid.UUID, req *UpdateBookingRequest) (*models.Viewing, error) {
	var missing bool
	err := database.WithTransaction(s.db, func(tx *gorm.DB) error {
		var viewing models.Viewing
		if err := tx.First(&viewing, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				missing = true
				return nil
			}
			return fmt.Errorf("database error: %w", err)
		}

		updates, err := s.bookingUpdates(viewing.Status, req)
		if err != nil {
			return err
		}
		if len(updates) == 0 {
			return nil
		}
		return tx.Model(&viewing).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}
	if missing {
		return nil, nil
	}
	return s.GetViewing(id)
}

func (s *AppointmentService) DeleteAppointment(id uuid.UUID) (bool, error) {
	result := s.db.Delete(&models.Appointment{}, "id = ?", id)
	if result.Error != nil {
		return false, fmt.Errorf("failed to delete appointment: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (s *AppointmentService) DeleteViewing(id uuid.UUID) (bool, error) {
	result := s.db.Delete(&models.Viewing{}, "id = ?", id)
	if result.Error != nil {
		return false, fmt.Errorf("failed to delete viewing: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}
