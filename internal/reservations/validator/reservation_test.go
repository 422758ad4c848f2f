package validator

import (
	"errors"
	"strings"
	"testing"

	"bistro/pkg/logger"
	"bistro/pkg/model"
)

func validRequest() *model.ReservationRequest {
	return &model.ReservationRequest{
		Name:      "Ada Lovelace",
		Email:     "ada@example.com",
		PartySize: 4,
		Date:      "2099-01-01",
		Time:      "18:30",
	}
}

func TestReservationValidator_Validate(t *testing.T) {
	v := NewReservationValidator(logger.Discard())

	longNotes := strings.Repeat("x", 501)
	longPhone := strings.Repeat("1", 41)

	tests := []struct {
		name      string
		mutate    func(r *model.ReservationRequest)
		wantField string
	}{
		{name: "valid request", mutate: func(r *model.ReservationRequest) {}},
		{name: "missing name", mutate: func(r *model.ReservationRequest) { r.Name = "" }, wantField: "name"},
		{name: "name too short", mutate: func(r *model.ReservationRequest) { r.Name = "A" }, wantField: "name"},
		{name: "name too long", mutate: func(r *model.ReservationRequest) { r.Name = strings.Repeat("a", 81) }, wantField: "name"},
		{name: "bad email", mutate: func(r *model.ReservationRequest) { r.Email = "not-an-email" }, wantField: "email"},
		{name: "party of zero", mutate: func(r *model.ReservationRequest) { r.PartySize = 0 }, wantField: "party_size"},
		{name: "party of thirteen", mutate: func(r *model.ReservationRequest) { r.PartySize = 13 }, wantField: "party_size"},
		{name: "party of twelve", mutate: func(r *model.ReservationRequest) { r.PartySize = 12 }},
		{name: "phone too long", mutate: func(r *model.ReservationRequest) { r.Phone = &longPhone }, wantField: "phone"},
		{name: "special requests too long", mutate: func(r *model.ReservationRequest) { r.SpecialRequests = &longNotes }, wantField: "special_requests"},
		{name: "missing date", mutate: func(r *model.ReservationRequest) { r.Date = "" }, wantField: "date"},
		{name: "missing time", mutate: func(r *model.ReservationRequest) { r.Time = "" }, wantField: "time"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			err := v.Validate(req)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}

			var verrs ValidationErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("expected ValidationErrors, got %T: %v", err, err)
			}
			if _, ok := verrs.Details()[tt.wantField]; !ok {
				t.Errorf("expected error on field %q, got %v", tt.wantField, verrs.Details())
			}
		})
	}
}

func TestReservationValidator_Messages(t *testing.T) {
	v := NewReservationValidator(logger.Discard())

	req := validRequest()
	req.Name = ""
	req.PartySize = 20

	err := v.Validate(req)
	var verrs ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected ValidationErrors, got %v", err)
	}

	details := verrs.Details()
	if details["name"] != "name is required" {
		t.Errorf("unexpected name message: %v", details["name"])
	}
	if details["party_size"] != "party_size must be at most 12" {
		t.Errorf("unexpected party_size message: %v", details["party_size"])
	}
}
