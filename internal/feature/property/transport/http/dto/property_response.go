// Package dto defines the JSON shapes of the property endpoints.
package dto

import (
	"time"

	"rentease_backend/internal/feature/property/domain/entity"
)

// PropertyResponse is the JSON view of a listing read by the static frontend.
type PropertyResponse struct {
	ID                 string                       `json:"_id"`
	UserID             string                       `json:"userId"`
	Type               string                       `json:"type"`
	Title              string                       `json:"title"`
	Location           string                       `json:"location"`
	Price              string                       `json:"price"`
	Deposit            string                       `json:"deposit"`
	Description        string                       `json:"description"`
	Beds               int                          `json:"beds"`
	Baths              int                          `json:"baths"`
	SqFt               string                       `json:"sqFt"`
	MaxGuests          int                          `json:"maxGuests"`
	Gender             string                       `json:"gender"`
	Furnishing         string                       `json:"furnishing"`
	Phone              string                       `json:"phone"`
	Whatsapp           string                       `json:"whatsapp"`
	GmapLink           string                       `json:"gmapLink"`
	Amenities          []string                     `json:"amenities"`
	Images             []string                     `json:"images"`
	Verified           bool                         `json:"verified"`
	AvailabilityStatus string                       `json:"availabilityStatus"`
	AvailableFrom      string                       `json:"availableFrom,omitempty"`
	AvailableTo        string                       `json:"availableTo,omitempty"`
	PGTypes            []string                     `json:"pgTypes"`
	RentHouseTypes     []string                     `json:"rentHouseTypes"`
	FlatTypes          []string                     `json:"flatTypes"`
	TotalBathrooms     int                          `json:"totalBathrooms"`
	CommonKitchens     int                          `json:"commonKitchens"`
	Rooms              map[string]entity.RoomDetail `json:"rooms"`
	Details            map[string]any               `json:"details"`
	CreatedAt          time.Time                    `json:"createdAt"`
	UpdatedAt          time.Time                    `json:"updatedAt"`
}

// ListResponse wraps a list of listings.
type ListResponse struct {
	Properties []PropertyResponse `json:"properties"`
}

// ItemResponse wraps a single listing.
type ItemResponse struct {
	Property PropertyResponse `json:"property"`
}

// MutationResponse acknowledges a create or update.
type MutationResponse struct {
	Message  string           `json:"message"`
	Property PropertyResponse `json:"property"`
}

// FromEntity converts a listing to its JSON view, never emitting null lists or maps.
func FromEntity(p *entity.Property) PropertyResponse {
	return PropertyResponse{
		ID:                 p.ID,
		UserID:             p.UserID,
		Type:               p.Type,
		Title:              p.Title,
		Location:           p.Location,
		Price:              p.Price,
		Deposit:            p.Deposit,
		Description:        p.Description,
		Beds:               p.Beds,
		Baths:              p.Baths,
		SqFt:               p.SqFt,
		MaxGuests:          p.MaxGuests,
		Gender:             string(p.Gender),
		Furnishing:         p.Furnishing,
		Phone:              p.Phone,
		Whatsapp:           p.Whatsapp,
		GmapLink:           p.GmapLink,
		Amenities:          nonNil(p.Amenities),
		Images:             nonNil(p.Images),
		Verified:           p.Verified,
		AvailabilityStatus: p.AvailabilityStatus,
		AvailableFrom:      p.AvailableFrom,
		AvailableTo:        p.AvailableTo,
		PGTypes:            nonNil(p.PGTypes),
		RentHouseTypes:     nonNil(p.RentHouseTypes),
		FlatTypes:          nonNil(p.FlatTypes),
		TotalBathrooms:     p.TotalBathrooms,
		CommonKitchens:     p.CommonKitchens,
		Rooms:              nonNilMap(p.Rooms),
		Details:            nonNilMap(p.Details),
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}

// FromEntities converts a slice of listings.
func FromEntities(ps []entity.Property) ListResponse {
	out := make([]PropertyResponse, 0, len(ps))
	for i := range ps {
		out = append(out, FromEntity(&ps[i]))
	}
	return ListResponse{Properties: out}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func nonNilMap[V any](m map[string]V) map[string]V {
	if m == nil {
		return map[string]V{}
	}
	return m
}
