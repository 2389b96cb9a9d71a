// Package entity defines the domain entities for the property feature.
package entity

import "time"

// Gender restricts who a listing accepts.
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderAny    Gender = "Any"
	GenderFamily Gender = "Family"
)

// ParseGender maps free text onto a known restriction, defaulting to GenderAny.
func ParseGender(s string) Gender {
	switch Gender(s) {
	case GenderMale, GenderFemale, GenderFamily:
		return Gender(s)
	default:
		return GenderAny
	}
}

// RoomDetail holds the pricing and size of one room or unit category of a listing.
// Price and Deposit are stored formatted; the other fields keep client text.
type RoomDetail struct {
	Price     string `json:"price,omitempty"`
	Deposit   string `json:"deposit,omitempty"`
	Beds      string `json:"beds,omitempty"`
	Baths     string `json:"baths,omitempty"`
	BathType  string `json:"bathType,omitempty"`
	Kitchen   string `json:"kitchen,omitempty"`
	Area      string `json:"area,omitempty"`
	MaxGuests string `json:"maxGuests,omitempty"`
}

// IsZero reports whether no field of the slot was resolved.
func (d RoomDetail) IsZero() bool {
	return d == RoomDetail{}
}

// Property is a rental or homestay listing owned by a single user.
type Property struct {
	// ID is assigned by the storage backend on creation.
	ID string

	// UserID references the owner. It never changes after creation.
	UserID string

	// Type is free text such as "PG", "Flat" or "1BHK, 2BHK".
	Type string

	Title       string
	Location    string
	Description string

	// Price is the canonical headline price, e.g. "₹15,000/month".
	Price string
	// Deposit is formatted without a unit, or empty.
	Deposit string

	Beds       int
	Baths      int
	SqFt       string
	MaxGuests  int
	Gender     Gender
	Furnishing string

	Phone    string
	Whatsapp string
	GmapLink string

	Amenities []string
	Images    []string
	Verified  bool

	AvailabilityStatus string
	AvailableFrom      string
	AvailableTo        string

	PGTypes        []string
	RentHouseTypes []string
	FlatTypes      []string
	TotalBathrooms int
	CommonKitchens int

	// Rooms maps a canonical category name to its resolved slot.
	Rooms map[string]RoomDetail

	// Details keeps the nested per-type object exactly as the client sent it.
	Details map[string]any

	CreatedAt time.Time
	UpdatedAt time.Time
}

// OwnedBy reports whether userID owns the listing.
func (p *Property) OwnedBy(userID string) bool {
	return p != nil && userID != "" && p.UserID == userID
}
