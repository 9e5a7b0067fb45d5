// Package services defines the business logic of the back office: lead
// intake, visit booking, the property catalog served to the assistant, the
// assistant configuration and admin authentication. This file centralizes
// common service-level error values so that they can be consistently returned
// by service methods and checked by callers.
//
// These errors are intended for internal use by the service layer; translation
// into user-facing messages or HTTP status codes is performed at the
// handler layer.
package services

import "errors"

// Lead-related errors.
var (
	// ErrPhoneRequired is returned when an upsert or booking request arrives
	// without the phone number that keys every lead.
	ErrPhoneRequired = errors.New("phone is required")

	// ErrLeadNotFound indicates that the referenced lead does not exist.
	ErrLeadNotFound = errors.New("lead not found")

	// ErrLeadHasVisits is returned when deleting a lead that still has visit
	// slots pointing at it. The admin must release the visits first.
	ErrLeadHasVisits = errors.New("lead has booked visits")
)

// Booking and slot errors.
var (
	// ErrSlotRequired is returned when a booking request omits the slot ID.
	ErrSlotRequired = errors.New("slot id is required")

	// ErrSlotNotFound indicates that the referenced visit slot does not exist.
	ErrSlotNotFound = errors.New("slot not found")

	// ErrSlotTaken is returned when the slot was claimed by another caller
	// first (or was already booked). The caller should offer another slot.
	ErrSlotTaken = errors.New("slot no longer available")

	// ErrSlotBooked is returned when the admin tries to delete a slot that
	// has already been booked.
	ErrSlotBooked = errors.New("slot is booked and cannot be deleted")

	// ErrSlotInPast is returned when the admin creates availability at a time
	// that has already passed.
	ErrSlotInPast = errors.New("slot date must be in the future")
)

// Property errors.
var (
	// ErrPropertyNotFound indicates that the referenced property does not exist.
	ErrPropertyNotFound = errors.New("property not found")

	// ErrInvalidProperty is wrapped by the field-specific validation messages
	// of PropertyService so handlers can map the whole family to 400.
	ErrInvalidProperty = errors.New("invalid property")
)

// Auth errors.
var (
	// ErrInvalidCredentials is returned for unknown emails and wrong
	// passwords alike; login never reveals which one failed.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNotAdmin is returned when an authenticated user lacks the ADMIN role.
	ErrNotAdmin = errors.New("admin role required")
)
