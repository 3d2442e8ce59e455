package domain

import "time"

type BookingStatus string

const (
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

func ParseBookingStatus(s string) (BookingStatus, bool) {
	switch BookingStatus(s) {
	case BookingConfirmed, BookingCancelled:
		return BookingStatus(s), true
	default:
		return "", false
	}
}

// Booking records the single successful claim of a slot. It is created
// only after the slot's available -> booked transition won, never before.
type Booking struct {
	ID        string        `json:"id"`
	SlotID    string        `json:"slot_id"`
	MentorID  string        `json:"mentor_id"`
	UserID    string        `json:"user_id"`
	Note      string        `json:"note"`
	UploadID  *string       `json:"upload_id,omitempty"`
	Status    BookingStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
}

type ClaimReq struct {
	SlotID   string `json:"slot_id" validate:"required,max=80"`
	Note     string `json:"note" validate:"max=500"`
	UploadID string `json:"upload_id,omitempty" validate:"omitempty,max=80"`
}

// MentorBooking is the mentor-facing projection of a booking, joined
// with claimant display data and the claimed interval.
type MentorBooking struct {
	Booking
	UserDisplayName string    `json:"user_display_name"`
	UserEmail       string    `json:"user_email"`
	SlotStartAt     time.Time `json:"slot_start_at"`
	SlotEndAt       time.Time `json:"slot_end_at"`
	UploadURL       *string   `json:"upload_url,omitempty"`
}
