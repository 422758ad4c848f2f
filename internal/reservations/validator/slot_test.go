package validator

import (
	"errors"
	"testing"
	"time"

	reservationserrors "bistro/internal/reservations/errors"
)

// 2050-06-15 is a Wednesday; every 2099 date below is in the future.
func fixedNow() time.Time {
	return time.Date(2050, 6, 15, 12, 0, 0, 0, time.UTC)
}

func newTestSlotValidator() *SlotValidator {
	return NewSlotValidator(DefaultBusinessHours(), time.UTC, fixedNow)
}

func TestSlotValidator_Validate(t *testing.T) {
	v := newTestSlotValidator()

	tests := []struct {
		name    string
		date    string
		clock   string
		wantErr error
		wantMsg string
	}{
		{
			name:  "thursday evening on the half hour",
			date:  "2099-01-01",
			clock: "18:30",
		},
		{
			name:  "weekday opening bound",
			date:  "2099-01-01",
			clock: "17:00",
		},
		{
			name:  "weekday closing bound",
			date:  "2099-01-01",
			clock: "23:00",
		},
		{
			name:  "saturday late",
			date:  "2099-01-03",
			clock: "22:30",
		},
		{
			name:  "sunday closing bound",
			date:  "2099-01-04",
			clock: "21:00",
		},
		{
			name:    "quarter past is rejected",
			date:    "2099-01-01",
			clock:   "18:45",
			wantErr: reservationserrors.ErrGranularity,
			wantMsg: "Time must be in 30-minute increments.",
		},
		{
			name:    "sunday after close",
			date:    "2099-01-04",
			clock:   "22:00",
			wantErr: reservationserrors.ErrOutsideHours,
			wantMsg: "Outside Sunday business hours (17:00–21:00).",
		},
		{
			name:    "weekday before opening",
			date:    "2099-01-01",
			clock:   "16:30",
			wantErr: reservationserrors.ErrOutsideHours,
			wantMsg: "Outside Mon–Sat business hours (17:00–23:00).",
		},
		{
			name:    "weekday after close",
			date:    "2099-01-01",
			clock:   "23:30",
			wantErr: reservationserrors.ErrOutsideHours,
		},
		{
			name:    "past date",
			date:    "2000-01-01",
			clock:   "18:00",
			wantErr: reservationserrors.ErrPastSlot,
			wantMsg: "Requested time is in the past.",
		},
		{
			name:    "past check runs before hours check",
			date:    "2000-01-01",
			clock:   "03:00",
			wantErr: reservationserrors.ErrPastSlot,
		},
		{
			name:    "granularity check runs before past check",
			date:    "2000-01-01",
			clock:   "18:10",
			wantErr: reservationserrors.ErrGranularity,
		},
		{
			name:    "slashes in date",
			date:    "2099/01/01",
			clock:   "18:30",
			wantErr: reservationserrors.ErrInvalidFormat,
			wantMsg: "Invalid date or time format. Expected YYYY-MM-DD and HH:MM (24h).",
		},
		{
			name:    "single digit hour",
			date:    "2099-01-01",
			clock:   "8:30",
			wantErr: reservationserrors.ErrInvalidFormat,
		},
		{
			name:    "impossible calendar date",
			date:    "2099-02-30",
			clock:   "18:30",
			wantErr: reservationserrors.ErrInvalidFormat,
		},
		{
			name:    "hour 24",
			date:    "2099-01-01",
			clock:   "24:00",
			wantErr: reservationserrors.ErrInvalidFormat,
		},
		{
			name:    "seconds not accepted",
			date:    "2099-01-01",
			clock:   "18:30:00",
			wantErr: reservationserrors.ErrInvalidFormat,
		},
		{
			name:    "empty input",
			date:    "",
			clock:   "",
			wantErr: reservationserrors.ErrInvalidFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slot, err := v.Validate(tt.date, tt.clock)

			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("expected valid slot, got error: %v", err)
				}
				if slot.Date != tt.date || slot.Time != tt.clock {
					t.Errorf("expected slot %s %s, got %s %s", tt.date, tt.clock, slot.Date, slot.Time)
				}
				return
			}

			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if tt.wantMsg != "" && err.Error() != tt.wantMsg {
				t.Errorf("expected message %q, got %q", tt.wantMsg, err.Error())
			}
		})
	}
}

func TestSlotValidator_AnyOffGridMinuteIsRejected(t *testing.T) {
	v := newTestSlotValidator()

	for minute := 0; minute < 60; minute++ {
		clock := time.Date(2099, 1, 1, 18, minute, 0, 0, time.UTC).Format(ClockLayout)
		_, err := v.Validate("2099-01-01", clock)

		onGrid := minute == 0 || minute == 30
		if onGrid && err != nil {
			t.Errorf("%s: expected valid, got %v", clock, err)
		}
		if !onGrid && !errors.Is(err, reservationserrors.ErrGranularity) {
			t.Errorf("%s: expected granularity error, got %v", clock, err)
		}
	}
}

func TestSlotValidator_PastIsStrict(t *testing.T) {
	now := time.Date(2099, 1, 1, 18, 0, 0, 0, time.UTC)
	v := NewSlotValidator(DefaultBusinessHours(), time.UTC, func() time.Time { return now })

	if _, err := v.Validate("2099-01-01", "18:00"); err != nil {
		t.Errorf("slot equal to now should be accepted, got %v", err)
	}

	now = now.Add(time.Second)
	if _, err := v.Validate("2099-01-01", "18:00"); !errors.Is(err, reservationserrors.ErrPastSlot) {
		t.Errorf("slot one second ago should be in the past, got %v", err)
	}
}

func TestSlotValidator_UsesRestaurantLocation(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	now := time.Date(2099, 1, 1, 16, 15, 0, 0, time.UTC)
	v := NewSlotValidator(DefaultBusinessHours(), loc, func() time.Time { return now })

	// 18:00 local is 16:00 UTC, already gone.
	if _, err := v.Validate("2099-01-01", "18:00"); !errors.Is(err, reservationserrors.ErrPastSlot) {
		t.Errorf("expected past error, got %v", err)
	}

	slot, err := v.Validate("2099-01-01", "18:30")
	if err != nil {
		t.Fatalf("expected valid slot, got %v", err)
	}
	if slot.At.Location() != loc {
		t.Errorf("expected slot in restaurant location, got %v", slot.At.Location())
	}
}

func TestSlotValidator_CustomHours(t *testing.T) {
	hours, err := ParseBusinessHours("12:00", "22:00", "15:30")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v := NewSlotValidator(hours, time.UTC, fixedNow)

	if _, err := v.Validate("2099-01-04", "15:30"); err != nil {
		t.Errorf("expected valid Sunday slot, got %v", err)
	}

	_, err = v.Validate("2099-01-04", "16:00")
	if err == nil || err.Error() != "Outside Sunday business hours (12:00–15:30)." {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestParseBusinessHours_Invalid(t *testing.T) {
	cases := [][3]string{
		{"5pm", "23:00", "21:00"},
		{"17:00", "25:00", "21:00"},
		{"17:00", "23:00", ""},
	}
	for _, c := range cases {
		if _, err := ParseBusinessHours(c[0], c[1], c[2]); err == nil {
			t.Errorf("ParseBusinessHours(%q, %q, %q) expected error", c[0], c[1], c[2])
		}
	}
}

func TestSlotValidator_ValidateDate(t *testing.T) {
	v := newTestSlotValidator()

	if err := v.ValidateDate("2099-01-01"); err != nil {
		t.Errorf("expected valid date, got %v", err)
	}
	for _, bad := range []string{"2099-1-1", "01/01/2099", "2099-13-01", "tomorrow"} {
		if err := v.ValidateDate(bad); !errors.Is(err, reservationserrors.ErrInvalidFormat) {
			t.Errorf("ValidateDate(%q) expected format error, got %v", bad, err)
		}
	}
}
