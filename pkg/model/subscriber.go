package model

import "time"

type Subscriber struct {
	ID        string    `json:"id" bson:"_id"`
	Email     string    `json:"email" bson:"email"`
	Consent   bool      `json:"consent" bson:"consent"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// SubscribeRequest carries a newsletter sign-up. A missing consent means yes.
type SubscribeRequest struct {
	Email   string `json:"email" validate:"required,email,max=120"`
	Consent *bool  `json:"consent,omitempty"`
}

func (r *SubscribeRequest) ConsentGiven() bool {
	return r.Consent == nil || *r.Consent
}
