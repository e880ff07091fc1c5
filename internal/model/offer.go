package model

import "time"

const (
	CityEkaterinburg = "Ekaterinburg"
	CityTyumen       = "Tyumen"
	CityTambov       = "Tambov"
	CityMagadan      = "Magadan"
	CityVorkuta      = "Vorkuta"
	CityMoscow       = "Moscow"
)

const (
	HousingApartment = "apartment"
	HousingHouse     = "house"
	HousingRoom      = "room"
	HousingHotel     = "hotel"
)

var Cities = []string{
	CityEkaterinburg, CityTyumen, CityTambov, CityMagadan, CityVorkuta, CityMoscow,
}

var HousingTypes = []string{HousingApartment, HousingHouse, HousingRoom, HousingHotel}

var Facilities = []string{
	"Breakfast",
	"Air conditioning",
	"Laptop friendly workspace",
	"Baby seat",
	"Washer",
	"Towels",
	"Fridge",
}

type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type Offer struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	PublishedAt time.Time   `json:"date"`
	City        string      `json:"city"`
	PreviewURL  string      `json:"preview"`
	ImageURLs   []string    `json:"images"`
	IsPremium   bool        `json:"isPremium"`
	IsFavourite bool        `json:"isFavourite"`
	Rating      float64     `json:"rating"`
	HousingType string      `json:"housingType"`
	RoomCount   int         `json:"roomCount"`
	GuestCount  int         `json:"guestCount"`
	Cost        int         `json:"cost"`
	Facilities  []string    `json:"facilities"`
	AuthorID    string      `json:"authorId"`
	Coordinates Coordinates `json:"coordinates"`

	// Running aggregates maintained by comment creation; monotonically
	// non-decreasing, never recomputed from comment rows.
	CommentsCount       int `json:"commentsCount"`
	CommentsTotalRating int `json:"commentsTotalRating"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
