package model

import "time"

type Comment struct {
	ID          string    `json:"id"`
	OfferID     string    `json:"offerId"`
	AuthorID    string    `json:"userId"`
	Text        string    `json:"text"`
	Rating      int       `json:"rating"`
	PublishedAt time.Time `json:"date"`
	CreatedAt   time.Time `json:"-"`
}
