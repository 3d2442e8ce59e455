package domain

import "time"

type SlotStatus string

const (
	SlotAvailable SlotStatus = "available"
	SlotBooked    SlotStatus = "booked"
	SlotCancelled SlotStatus = "cancelled"
)

func ParseSlotStatus(s string) (SlotStatus, bool) {
	switch SlotStatus(s) {
	case SlotAvailable, SlotBooked, SlotCancelled:
		return SlotStatus(s), true
	default:
		return "", false
	}
}

// Slot is a mentor-published bookable time interval. Its status only
// ever moves through the slot store's conditional transitions:
// available -> booked (claim) or available -> cancelled (owner cancel).
type Slot struct {
	ID        string     `json:"id"`
	MentorID  string     `json:"mentor_id"`
	StartAt   time.Time  `json:"start_at"`
	EndAt     time.Time  `json:"end_at"`
	Status    SlotStatus `json:"status"`
	Note      string     `json:"note"`
	CreatedAt time.Time  `json:"created_at"`
}

type SlotCreateReq struct {
	Date         string `json:"date" validate:"required,max=20"`
	Time         string `json:"time" validate:"required,max=20"`
	DurationMins int    `json:"duration_mins" validate:"required,min=15,max=480"`
	Note         string `json:"note" validate:"max=80"`
}
