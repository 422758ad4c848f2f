package validator

import (
	"fmt"
	"regexp"
	"time"

	reservationserrors "bistro/internal/reservations/errors"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

var (
	dateRegex  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	clockRegex = regexp.MustCompile(`^\d{2}:\d{2}$`)
)

// Slot is a validated reservation slot. Date and Time keep the canonical string
// form used for storage; At is the same instant in the restaurant's location.
type Slot struct {
	Date string
	Time string
	At   time.Time
}

// SlotError is a rejected slot. Message is safe to show to guests; Err is one of
// the slot sentinels in the reservations errors package.
type SlotError struct {
	Err     error
	Message string
}

func (e *SlotError) Error() string {
	return e.Message
}

func (e *SlotError) Unwrap() error {
	return e.Err
}

// BusinessHours holds the inclusive booking window in minutes after midnight.
type BusinessHours struct {
	Opening        int
	WeekdayClosing int
	SundayClosing  int
}

func DefaultBusinessHours() BusinessHours {
	return BusinessHours{
		Opening:        17 * 60,
		WeekdayClosing: 23 * 60,
		SundayClosing:  21 * 60,
	}
}

// ParseBusinessHours builds BusinessHours from HH:MM strings.
func ParseBusinessHours(opening, weekdayClosing, sundayClosing string) (BusinessHours, error) {
	var hours BusinessHours
	var err error

	if hours.Opening, err = parseClock(opening); err != nil {
		return BusinessHours{}, fmt.Errorf("opening time: %w", err)
	}
	if hours.WeekdayClosing, err = parseClock(weekdayClosing); err != nil {
		return BusinessHours{}, fmt.Errorf("weekday closing time: %w", err)
	}
	if hours.SundayClosing, err = parseClock(sundayClosing); err != nil {
		return BusinessHours{}, fmt.Errorf("sunday closing time: %w", err)
	}
	return hours, nil
}

func parseClock(value string) (int, error) {
	if !clockRegex.MatchString(value) {
		return 0, fmt.Errorf("%q is not HH:MM", value)
	}
	t, err := time.Parse(ClockLayout, value)
	if err != nil {
		return 0, fmt.Errorf("%q is not HH:MM: %w", value, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

func formatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

type SlotValidator struct {
	hours    BusinessHours
	location *time.Location
	now      func() time.Time
}

// NewSlotValidator returns a validator interpreting slots in loc. A nil loc means
// time.Local and a nil now means time.Now.
func NewSlotValidator(hours BusinessHours, loc *time.Location, now func() time.Time) *SlotValidator {
	if loc == nil {
		loc = time.Local
	}
	if now == nil {
		now = time.Now
	}
	return &SlotValidator{
		hours:    hours,
		location: loc,
		now:      now,
	}
}

// Validate checks format, 30-minute granularity, that the slot is not in the past
// and that it falls inside the day's business hours. The first failing rule wins.
func (v *SlotValidator) Validate(date, clock string) (Slot, error) {
	if !dateRegex.MatchString(date) || !clockRegex.MatchString(clock) {
		return Slot{}, formatError()
	}

	at, err := time.ParseInLocation(DateLayout+" "+ClockLayout, date+" "+clock, v.location)
	if err != nil {
		return Slot{}, formatError()
	}

	if at.Minute() != 0 && at.Minute() != 30 {
		return Slot{}, &SlotError{
			Err:     reservationserrors.ErrGranularity,
			Message: "Time must be in 30-minute increments.",
		}
	}

	if at.Before(v.now()) {
		return Slot{}, &SlotError{
			Err:     reservationserrors.ErrPastSlot,
			Message: "Requested time is in the past.",
		}
	}

	minutes := at.Hour()*60 + at.Minute()
	if at.Weekday() == time.Sunday {
		if minutes < v.hours.Opening || minutes > v.hours.SundayClosing {
			return Slot{}, v.hoursError("Sunday", v.hours.SundayClosing)
		}
	} else if minutes < v.hours.Opening || minutes > v.hours.WeekdayClosing {
		return Slot{}, v.hoursError("Mon–Sat", v.hours.WeekdayClosing)
	}

	return Slot{
		Date: at.Format(DateLayout),
		Time: at.Format(ClockLayout),
		At:   at,
	}, nil
}

// ValidateDate checks a YYYY-MM-DD calendar date, as used by the listing filter.
func (v *SlotValidator) ValidateDate(date string) error {
	if !dateRegex.MatchString(date) {
		return formatError()
	}
	if _, err := time.ParseInLocation(DateLayout, date, v.location); err != nil {
		return formatError()
	}
	return nil
}

func (v *SlotValidator) hoursError(days string, closing int) *SlotError {
	return &SlotError{
		Err: reservationserrors.ErrOutsideHours,
		Message: fmt.Sprintf("Outside %s business hours (%s–%s).",
			days, formatClock(v.hours.Opening), formatClock(closing)),
	}
}

func formatError() *SlotError {
	return &SlotError{
		Err:     reservationserrors.ErrInvalidFormat,
		Message: "Invalid date or time format. Expected YYYY-MM-DD and HH:MM (24h).",
	}
}
