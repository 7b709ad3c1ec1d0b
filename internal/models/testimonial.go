package models

import "time"

// Testimonial is a visitor-facing review shown on the public site.
type Testimonial struct {
	ID        int64     `bson:"_id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Position  string    `bson:"position,omitempty" json:"position,omitempty"`
	Message   string    `bson:"message" json:"message"`
	Rating    int       `bson:"rating" json:"rating"`
	Avatar    string    `bson:"avatar,omitempty" json:"avatar,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
