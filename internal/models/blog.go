package models

import "time"

// Blog is a published article; also served under the /news alias.
type Blog struct {
	ID          int64     `bson:"_id" json:"id"`
	Title       string    `bson:"title" json:"title"`
	Content     string    `bson:"content" json:"content"`
	Excerpt     string    `bson:"excerpt,omitempty" json:"excerpt,omitempty"`
	Category    string    `bson:"category,omitempty" json:"category,omitempty"`
	ReadTime    int       `bson:"read_time" json:"read_time"`
	Author      string    `bson:"author,omitempty" json:"author,omitempty"`
	Image       string    `bson:"image,omitempty" json:"image,omitempty"`
	PublishedAt time.Time `bson:"published_at" json:"published_at"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}
