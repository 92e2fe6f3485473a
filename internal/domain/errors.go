package domain

import "errors"

var (
	ErrDateInPast    = errors.New("domain: date is in the past")
	ErrDayBlackedOut = errors.New("domain: no appointments on this weekday")
	ErrDayFull       = errors.New("domain: day is fully booked")
	ErrUnknownSlot   = errors.New("domain: time is not one of the available slots")
	ErrSlotTaken     = errors.New("domain: slot is already taken")
)
