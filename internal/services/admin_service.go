// internal/services/admin_service.go
package services

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/makaohomes/makao-backend/internal/models"
)

type AdminService struct {
	db *gorm.DB
}

type DashboardStats struct {
	TotalProperties     int64 `json:"total_properties"`
	AvailableProperties int64 `json:"available_properties"`
	SoldProperties      int64 `json:"sold_properties"`
	FeaturedProperties  int64 `json:"featured_properties"`
	TotalUsers          int64 `json:"total_users"`
	NewInquiries        int64 `json:"new_inquiries"`
	PendingReviews      int64 `json:"pending_reviews"`
	PendingAppointments int64 `json:"pending_appointments"`
	PendingViewings     int64 `json:"pending_viewings"`
	PublishedPages      int64 `json:"published_pages"`
	PublishedPosts      int64 `json:"published_posts"`
}

func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{db: db}
}

// GetDashboardStats aggregates the counters shown on the admin landing
// screen.
func (s *AdminService) GetDashboardStats() (*DashboardStats, error) {
	stats := &DashboardStats{}

	counts := []struct {
		dest  *int64
		query *gorm.DB
	}{
		{&stats.TotalProperties, s.db.Model(&models.Property{})},
		{&stats.AvailableProperties, s.db.Model(&models.Property{}).Where("status = ?", models.PropertyStatusAvailable)},
		{&stats.SoldProperties, s.db.Model(&models.Property{}).Where("status = ?", models.PropertyStatusSold)},
		{&stats.FeaturedProperties, s.db.Model(&models.Property{}).Where("featured = ?", true)},
		{&stats.TotalUsers, s.db.Model(&models.User{})},
		{&stats.NewInquiries, s.db.Model(&models.Inquiry{}).Where("status = ?", models.InquiryStatusNew)},
		{&stats.PendingReviews, s.db.Model(&models.Review{}).Where("status = ?", models.ReviewStatusPending)},
		{&stats.PendingAppointments, s.db.Model(&models.Appointment{}).Where("status = ?", models.AppointmentStatusPending)},
		{&stats.PendingViewings, s.db.Model(&models.Viewing{}).Where("status = ?", models.AppointmentStatusPending)},
		{&stats.PublishedPages, s.db.Model(&models.Page{}).Where("status = ?", models.PageStatusPublished)},
		{&stats.PublishedPosts, s.db.Model(&models.BlogPost{}).Where("status = ?", models.BlogStatusPublished)},
	}

	for _, c := range counts {
		if err := c.query.Count(c.dest).Error; err != nil {
			return nil, fmt.Errorf("failed to collect dashboard stats: %w", err)
		}
	}

	return stats, nil
}

// ListActivityLogs returns the newest audit entries for the admin
// activity screen.
func (s *AdminService) ListActivityLogs(limit int) ([]models.ActivityLog, error) {
	if limit < 1 || limit > 200 {
		limit = 50
	}

	var logs []models.ActivityLog
	if err := s.db.Preload("User").Order("created_at DESC").Limit(limit).Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch activity logs: %w", err)
	}
	return logs, nil
}
