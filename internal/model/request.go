package model

import (
	"fmt"
	"net/mail"
	"slices"
	"strings"
	"time"
)

type RegisterRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Type      string `json:"type"`
	AvatarURL string `json:"avatarUrl"`
}

func (r *RegisterRequest) Validate() []FieldError {
	var fields []FieldError

	name := strings.TrimSpace(r.Name)
	if len(name) < 1 || len(name) > 15 {
		fields = append(fields, FieldError{Field: "name", Message: "name must be 1-15 characters"})
	}
	if _, err := mail.ParseAddress(strings.TrimSpace(r.Email)); err != nil {
		fields = append(fields, FieldError{Field: "email", Message: "email must be a valid address"})
	}
	if r.Password != "" && (len(r.Password) < 6 || len(r.Password) > 12) {
		fields = append(fields, FieldError{Field: "password", Message: "password must be 6-12 characters"})
	}
	if r.Type != "" && r.Type != UserTypeStandart && r.Type != UserTypePro {
		fields = append(fields, FieldError{Field: "type", Message: "type must be standart or pro"})
	}

	return fields
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() []FieldError {
	var fields []FieldError

	if strings.TrimSpace(r.Email) == "" {
		fields = append(fields, FieldError{Field: "email", Message: "email is required"})
	}
	if r.Password == "" {
		fields = append(fields, FieldError{Field: "password", Message: "password is required"})
	}

	return fields
}

// OfferPayload is the body of both offer creation and full update.
type OfferPayload struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	PublishedAt time.Time   `json:"date"`
	City        string      `json:"city"`
	PreviewURL  string      `json:"preview"`
	ImageURLs   []string    `json:"images"`
	IsPremium   bool        `json:"isPremium"`
	IsFavourite bool        `json:"isFavourite"`
	HousingType string      `json:"housingType"`
	RoomCount   int         `json:"roomCount"`
	GuestCount  int         `json:"guestCount"`
	Cost        int         `json:"cost"`
	Facilities  []string    `json:"facilities"`
	Coordinates Coordinates `json:"coordinates"`
}

func (r *OfferPayload) Validate() []FieldError {
	var fields []FieldError

	if l := len(strings.TrimSpace(r.Title)); l < 10 || l > 100 {
		fields = append(fields, FieldError{Field: "title", Message: "title must be 10-100 characters"})
	}
	if l := len(strings.TrimSpace(r.Description)); l < 20 || l > 1024 {
		fields = append(fields, FieldError{Field: "description", Message: "description must be 20-1024 characters"})
	}
	if !slices.Contains(Cities, r.City) {
		fields = append(fields, FieldError{Field: "city", Message: fmt.Sprintf("city must be one of: %s", strings.Join(Cities, ", "))})
	}
	if !slices.Contains(HousingTypes, r.HousingType) {
		fields = append(fields, FieldError{Field: "housingType", Message: fmt.Sprintf("housingType must be one of: %s", strings.Join(HousingTypes, ", "))})
	}
	if r.RoomCount < 1 || r.RoomCount > 8 {
		fields = append(fields, FieldError{Field: "roomCount", Message: "roomCount must be between 1 and 8"})
	}
	if r.GuestCount < 1 || r.GuestCount > 10 {
		fields = append(fields, FieldError{Field: "guestCount", Message: "guestCount must be between 1 and 10"})
	}
	if r.Cost < 100 || r.Cost > 100000 {
		fields = append(fields, FieldError{Field: "cost", Message: "cost must be between 100 and 100000"})
	}
	for _, facility := range r.Facilities {
		if !slices.Contains(Facilities, facility) {
			fields = append(fields, FieldError{Field: "facilities", Message: fmt.Sprintf("unknown facility %q", facility)})
			break
		}
	}

	return fields
}

type CreateCommentRequest struct {
	OfferID     string    `json:"offerId"`
	Text        string    `json:"text"`
	Rating      int       `json:"rating"`
	PublishedAt time.Time `json:"date"`
}

func (r *CreateCommentRequest) Validate() []FieldError {
	var fields []FieldError

	if l := len(strings.TrimSpace(r.Text)); l < 5 || l > 1024 {
		fields = append(fields, FieldError{Field: "text", Message: "text must be 5-1024 characters"})
	}
	if strings.TrimSpace(r.OfferID) == "" {
		fields = append(fields, FieldError{Field: "offerId", Message: "offerId is required"})
	}
	if r.Rating < 1 || r.Rating > 5 {
		fields = append(fields, FieldError{Field: "rating", Message: "rating must be between 1 and 5"})
	}

	return fields
}
