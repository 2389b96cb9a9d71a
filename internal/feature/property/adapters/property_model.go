package adapters

import (
	"time"

	"gorm.io/datatypes"

	"rentease_backend/internal/feature/property/domain/entity"
)

// PropertyModel is the GORM model for the properties table.
type PropertyModel struct {
	ID                 string `gorm:"primaryKey;size:36"`
	UserID             string `gorm:"size:36;index;not null"`
	Type               string `gorm:"size:64"`
	Title              string `gorm:"size:255;not null"`
	Location           string `gorm:"size:255;not null"`
	Description        string `gorm:"type:text"`
	Price              string `gorm:"size:64;not null"`
	Deposit            string `gorm:"size:64"`
	Beds               int
	Baths              int
	SqFt               string `gorm:"size:32"`
	MaxGuests          int
	Gender             string `gorm:"size:16;default:Any"`
	Furnishing         string `gorm:"size:64"`
	Phone              string `gorm:"size:32"`
	Whatsapp           string `gorm:"size:32"`
	GmapLink           string `gorm:"size:1024"`
	Amenities          datatypes.JSONSlice[string]
	Images             datatypes.JSONSlice[string]
	Verified           bool `gorm:"not null;default:false"`
	AvailabilityStatus string `gorm:"size:64"`
	AvailableFrom      string `gorm:"size:64"`
	AvailableTo        string `gorm:"size:64"`
	PGTypes            datatypes.JSONSlice[string] `gorm:"column:pg_types"`
	RentHouseTypes     datatypes.JSONSlice[string]
	FlatTypes          datatypes.JSONSlice[string]
	TotalBathrooms     int
	CommonKitchens     int
	Rooms              datatypes.JSONType[map[string]entity.RoomDetail]
	Details            datatypes.JSONMap
	CreatedAt          time.Time `gorm:"index"`
	UpdatedAt          time.Time
}

// TableName returns the table name for GORM.
func (PropertyModel) TableName() string {
	return "properties"
}

// ToEntity converts the GORM model to a domain entity.
func (m *PropertyModel) ToEntity() *entity.Property {
	p := &entity.Property{
		ID:                 m.ID,
		UserID:             m.UserID,
		Type:               m.Type,
		Title:              m.Title,
		Location:           m.Location,
		Description:        m.Description,
		Price:              m.Price,
		Deposit:            m.Deposit,
		Beds:               m.Beds,
		Baths:              m.Baths,
		SqFt:               m.SqFt,
		MaxGuests:          m.MaxGuests,
		Gender:             entity.ParseGender(m.Gender),
		Furnishing:         m.Furnishing,
		Phone:              m.Phone,
		Whatsapp:           m.Whatsapp,
		GmapLink:           m.GmapLink,
		Amenities:          nonNil(m.Amenities),
		Images:             nonNil(m.Images),
		Verified:           m.Verified,
		AvailabilityStatus: m.AvailabilityStatus,
		AvailableFrom:      m.AvailableFrom,
		AvailableTo:        m.AvailableTo,
		PGTypes:            m.PGTypes,
		RentHouseTypes:     m.RentHouseTypes,
		FlatTypes:          m.FlatTypes,
		TotalBathrooms:     m.TotalBathrooms,
		CommonKitchens:     m.CommonKitchens,
		Rooms:              m.Rooms.Data(),
		Details:            map[string]any(m.Details),
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
	if p.Rooms == nil {
		p.Rooms = map[string]entity.RoomDetail{}
	}
	if p.Details == nil {
		p.Details = map[string]any{}
	}
	return p
}

// PropertyModelFromEntity converts a domain entity to a GORM model.
func PropertyModelFromEntity(p *entity.Property) *PropertyModel {
	return &PropertyModel{
		ID:                 p.ID,
		UserID:             p.UserID,
		Type:               p.Type,
		Title:              p.Title,
		Location:           p.Location,
		Description:        p.Description,
		Price:              p.Price,
		Deposit:            p.Deposit,
		Beds:               p.Beds,
		Baths:              p.Baths,
		SqFt:               p.SqFt,
		MaxGuests:          p.MaxGuests,
		Gender:             string(p.Gender),
		Furnishing:         p.Furnishing,
		Phone:              p.Phone,
		Whatsapp:           p.Whatsapp,
		GmapLink:           p.GmapLink,
		Amenities:          datatypes.NewJSONSlice(nonNil(p.Amenities)),
		Images:             datatypes.NewJSONSlice(nonNil(p.Images)),
		Verified:           p.Verified,
		AvailabilityStatus: p.AvailabilityStatus,
		AvailableFrom:      p.AvailableFrom,
		AvailableTo:        p.AvailableTo,
		PGTypes:            datatypes.NewJSONSlice(p.PGTypes),
		RentHouseTypes:     datatypes.NewJSONSlice(p.RentHouseTypes),
		FlatTypes:          datatypes.NewJSONSlice(p.FlatTypes),
		TotalBathrooms:     p.TotalBathrooms,
		CommonKitchens:     p.CommonKitchens,
		Rooms:              datatypes.NewJSONType(p.Rooms),
		Details:            datatypes.JSONMap(p.Details),
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}
