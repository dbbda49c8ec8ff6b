// internal/models/workflow.go
package models

// Allowed status transitions per workflow entity. A status write is
// checked against these tables inside the same transaction that performs
// it; a same-state write is always allowed so admin retries stay
// idempotent.

var inquiryTransitions = map[InquiryStatus][]InquiryStatus{
	InquiryStatusNew:        {InquiryStatusInProgress, InquiryStatusClosed, InquiryStatusSpam},
	InquiryStatusInProgress: {InquiryStatusClosed, InquiryStatusConverted, InquiryStatusSpam},
	InquiryStatusClosed:     {},
	InquiryStatusConverted:  {},
	InquiryStatusSpam:       {},
}

var appointmentTransitions = map[AppointmentStatus][]AppointmentStatus{
	AppointmentStatusPending:   {AppointmentStatusConfirmed, AppointmentStatusCancelled},
	AppointmentStatusConfirmed: {AppointmentStatusCompleted, AppointmentStatusCancelled, AppointmentStatusNoShow},
	AppointmentStatusCompleted: {},
	AppointmentStatusCancelled: {},
	AppointmentStatusNoShow:    {},
}

var reviewTransitions = map[ReviewStatus][]ReviewStatus{
	ReviewStatusPending:  {ReviewStatusApproved, ReviewStatusRejected},
	ReviewStatusApproved: {ReviewStatusRejected},
	ReviewStatusRejected: {ReviewStatusApproved},
}

var blogTransitions = map[BlogStatus][]BlogStatus{
	BlogStatusDraft:     {BlogStatusPublished, BlogStatusArchived},
	BlogStatusPublished: {BlogStatusArchived, BlogStatusDraft},
	BlogStatusArchived:  {BlogStatusDraft},
}

var pageTransitions = map[PageStatus][]PageStatus{
	PageStatusDraft:     {PageStatusPublished, PageStatusArchived},
	PageStatusPublished: {PageStatusArchived, PageStatusDraft},
	PageStatusArchived:  {PageStatusDraft},
}

func contains[T comparable](set []T, v T) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func (s InquiryStatus) CanTransition(next InquiryStatus) bool {
	return s == next || contains(inquiryTransitions[s], next)
}

func (s AppointmentStatus) CanTransition(next AppointmentStatus) bool {
	return s == next || contains(appointmentTransitions[s], next)
}

func (s ReviewStatus) CanTransition(next ReviewStatus) bool {
	return s == next || contains(reviewTransitions[s], next)
}

func (s BlogStatus) CanTransition(next BlogStatus) bool {
	return s == next || contains(blogTransitions[s], next)
}

func (s PageStatus) CanTransition(next PageStatus) bool {
	return s == next || contains(pageTransitions[s], next)
}

func (s InquiryStatus) Valid() bool {
	_, ok := inquiryTransitions[s]
	return ok
}

func (s AppointmentStatus) Valid() bool {
	_, ok := appointmentTransitions[s]
	return ok
}

func (s ReviewStatus) Valid() bool {
	_, ok := reviewTransitions[s]
	return ok
}

func (s BlogStatus) Valid() bool {
	_, ok := blogTransitions[s]
	return ok
}

func (s PageStatus) Valid() bool {
	_, ok := pageTransitions[s]
	return ok
}
