package model

import "time"

const (
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

// Reservation is a confirmed or cancelled booking of one table for one slot.
// Date is YYYY-MM-DD and Time is HH:MM (24h) in the restaurant's time zone.
type Reservation struct {
	ID          string    `json:"id" bson:"_id"`
	Name        string    `json:"name" bson:"name"`
	Email       string    `json:"email" bson:"email"`
	Phone       *string   `json:"phone" bson:"phone,omitempty"`
	PartySize   int       `json:"party_size" bson:"party_size"`
	Date        string    `json:"date" bson:"date"`
	Time        string    `json:"time" bson:"time"`
	TableNumber int       `json:"table_number" bson:"table_number"`
	Status      string    `json:"status" bson:"status"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}

func (r *Reservation) IsActive() bool {
	return r.Status == StatusConfirmed
}

type ReservationRequest struct {
	Name            string  `json:"name" validate:"required,min=2,max=80"`
	Email           string  `json:"email" validate:"required,email,max=120"`
	Phone           *string `json:"phone,omitempty" validate:"omitempty,max=40"`
	PartySize       int     `json:"party_size" validate:"required,min=1,max=12"`
	Date            string  `json:"date" validate:"required"`
	Time            string  `json:"time" validate:"required"`
	SpecialRequests *string `json:"special_requests,omitempty" validate:"omitempty,max=500"`
}

type ReservationConfirmation struct {
	ID          string `json:"id"`
	Status      string `json:"status"`
	TableNumber int    `json:"table_number"`
	Message     string `json:"message"`
}
