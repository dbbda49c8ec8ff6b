// internal/models/workflow_test.go
package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInquiryTransitions(t *testing.T) {
	assert.True(t, InquiryStatusNew.CanTransition(InquiryStatusInProgress))
	assert.True(t, InquiryStatusNew.CanTransition(InquiryStatusSpam))
	assert.True(t, InquiryStatusInProgress.CanTransition(InquiryStatusConverted))

	// Terminal states only allow staying put.
	assert.False(t, InquiryStatusClosed.CanTransition(InquiryStatusNew))
	assert.False(t, InquiryStatusConverted.CanTransition(InquiryStatusInProgress))
	assert.True(t, InquiryStatusClosed.CanTransition(InquiryStatusClosed))

	assert.False(t, InquiryStatusNew.CanTransition(InquiryStatusConverted))
}

func TestAppointmentTransitions(t *testing.T) {
	assert.True(t, AppointmentStatusPending.CanTransition(AppointmentStatusConfirmed))
	assert.True(t, AppointmentStatusConfirmed.CanTransition(AppointmentStatusNoShow))
	assert.False(t, AppointmentStatusPending.CanTransition(AppointmentStatusCompleted))
	assert.False(t, AppointmentStatusCancelled.CanTransition(AppointmentStatusConfirmed))
	assert.True(t, AppointmentStatusPending.CanTransition(AppointmentStatusPending))
}

func TestReviewTransitions(t *testing.T) {
	assert.True(t, ReviewStatusPending.CanTransition(ReviewStatusApproved))
	// Moderation decisions stay reversible.
	assert.True(t, ReviewStatusApproved.CanTransition(ReviewStatusRejected))
	assert.True(t, ReviewStatusRejected.CanTransition(ReviewStatusApproved))
	assert.False(t, ReviewStatusApproved.CanTransition(ReviewStatusPending))
}

func TestBlogAndPageTransitions(t *testing.T) {
	assert.True(t, BlogStatusDraft.CanTransition(BlogStatusPublished))
	assert.True(t, BlogStatusPublished.CanTransition(BlogStatusDraft))
	assert.True(t, BlogStatusArchived.CanTransition(BlogStatusDraft))
	assert.False(t, BlogStatusArchived.CanTransition(BlogStatusPublished))

	assert.True(t, PageStatusDraft.CanTransition(PageStatusPublished))
	assert.False(t, PageStatusArchived.CanTransition(PageStatusPublished))
}

func TestStatusValid(t *testing.T) {
	assert.True(t, InquiryStatusNew.Valid())
	assert.False(t, InquiryStatus("bogus").Valid())
	assert.True(t, AppointmentStatusNoShow.Valid())
	assert.False(t, AppointmentStatus("").Valid())
	assert.True(t, PageStatusArchived.Valid())
	assert.False(t, ReviewStatus("flagged").Valid())
}

func TestCanonicalRole(t *testing.T) {
	assert.Equal(t, UserRoleRegistered, CanonicalRole("client"))
	assert.Equal(t, UserRoleRegistered, CanonicalRole("USER"))
	assert.Equal(t, UserRoleRegistered, CanonicalRole("member"))
	assert.Equal(t, UserRoleAgent, CanonicalRole("realtor"))
	assert.Equal(t, UserRoleAgent, CanonicalRole("agent"))
	assert.Equal(t, UserRoleAdmin, CanonicalRole("super_admin"))
	assert.Equal(t, UserRoleRegistered, CanonicalRole("unknown-thing"))
}
