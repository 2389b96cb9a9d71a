package usecase

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"

	"rentease_backend/internal/feature/property/domain/entity"
	"rentease_backend/internal/feature/property/domain/price"
)

const (
	defaultSqFt         = "0"
	defaultFurnishing   = "Unfurnished"
	defaultAvailability = "Available Now"
)

// Per-slot field names as they appear in suffixed keys ("price_2BHK") and nested details.
const (
	fieldPrice     = "price"
	fieldDeposit   = "deposit"
	fieldBeds      = "beds"
	fieldBaths     = "baths"
	fieldBathType  = "bathType"
	fieldKitchen   = "kitchen"
	fieldArea      = "area"
	fieldMaxGuests = "maxGuests"
)

var slotFields = []string{
	fieldPrice, fieldDeposit, fieldBeds, fieldBaths,
	fieldBathType, fieldKitchen, fieldArea, fieldMaxGuests,
}

// fieldAliases lists legacy names accepted for a slot field.
var fieldAliases = map[string][]string{
	fieldKitchen: {"kitchenType", "kitchens"},
	fieldArea:    {"sqFt"},
}

// Submission carries the raw fields of a listing form.
// Repeated keys keep every value in submission order.
type Submission struct {
	Fields map[string][]string
}

// NewSubmission builds a Submission from single-valued fields.
func NewSubmission(fields map[string]string) Submission {
	s := Submission{Fields: make(map[string][]string, len(fields))}
	for k, v := range fields {
		s.Fields[k] = []string{v}
	}
	return s
}

// Get returns the first non-blank value of key, trimmed.
func (s Submission) Get(key string) string {
	for _, v := range s.Fields[key] {
		if t := strings.TrimSpace(v); t != "" {
			return t
		}
	}
	return ""
}

// Has reports whether key was submitted at all, even blank.
func (s Submission) Has(key string) bool {
	_, ok := s.Fields[key]
	return ok
}

// List splits every value of the given keys on commas, dropping blanks.
func (s Submission) List(keys ...string) []string {
	out := []string{}
	for _, key := range keys {
		for _, v := range s.Fields[key] {
			for _, part := range strings.Split(v, ",") {
				if t := strings.TrimSpace(part); t != "" {
					out = append(out, t)
				}
			}
		}
	}
	return out
}

// listingInput is a Submission with its nested details decoded once.
type listingInput struct {
	sub     Submission
	details map[string]any
}

// parseDetails decodes the nested per-type object. Malformed JSON counts as absent.
func parseDetails(raw string) map[string]any {
	out := map[string]any{}
	if strings.TrimSpace(raw) == "" {
		return out
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil || out == nil {
		return map[string]any{}
	}
	return out
}

// scalar renders a decoded JSON scalar as trimmed text.
func scalar(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

func (in listingInput) suffixed(category, field string) string {
	return in.sub.Get(field + "_" + category)
}

func (in listingInput) nested(category, field string) string {
	entry, ok := in.details[category].(map[string]any)
	if !ok {
		return ""
	}
	return scalar(entry[field])
}

// legacy resolves a field through category aliases and then field aliases.
func (in listingInput) legacy(c entity.Category, field string) string {
	for _, alias := range c.Aliases {
		if v := in.suffixed(alias, field); v != "" {
			return v
		}
		if v := in.nested(alias, field); v != "" {
			return v
		}
	}
	names := append([]string{c.Name}, c.Aliases...)
	for _, fa := range fieldAliases[field] {
		for _, name := range names {
			if v := in.suffixed(name, fa); v != "" {
				return v
			}
			if v := in.nested(name, fa); v != "" {
				return v
			}
		}
	}
	return ""
}

// resolve picks a slot field: suffixed key, then nested details, then legacy aliases.
func (in listingInput) resolve(c entity.Category, field string) string {
	if v := in.suffixed(c.Name, field); v != "" {
		return v
	}
	if v := in.nested(c.Name, field); v != "" {
		return v
	}
	return in.legacy(c, field)
}

// suffixedPrice looks for a slot price in form keys only.
func (in listingInput) suffixedPrice(c entity.Category) string {
	if v := in.suffixed(c.Name, fieldPrice); v != "" {
		return v
	}
	for _, alias := range c.Aliases {
		if v := in.suffixed(alias, fieldPrice); v != "" {
			return v
		}
	}
	return ""
}

// nestedPrice looks for a slot price in nested details only.
func (in listingInput) nestedPrice(c entity.Category) string {
	if v := in.nested(c.Name, fieldPrice); v != "" {
		return v
	}
	for _, alias := range c.Aliases {
		if v := in.nested(alias, fieldPrice); v != "" {
			return v
		}
	}
	return ""
}

// otherNestedPrice returns the first price among details entries that are not
// known categories, by sorted key. Those entries never become room slots.
func (in listingInput) otherNestedPrice() string {
	known := map[string]bool{}
	for _, c := range entity.Categories {
		known[c.Name] = true
		for _, a := range c.Aliases {
			known[a] = true
		}
	}
	var names []string
	for name := range in.details {
		if !known[name] {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	for _, name := range names {
		if v := in.nested(name, fieldPrice); v != "" {
			return v
		}
	}
	return ""
}

// slotUnit picks the price unit of a room slot.
func slotUnit(kind entity.CategoryKind, stay bool) string {
	switch kind {
	case entity.KindBed:
		return price.UnitBed
	case entity.KindRK, entity.KindRoom:
		return price.UnitMonth
	default:
		return price.ListingUnit(stay)
	}
}

// toInt parses a leading integer the lenient way: "3 beds" is 3, junk is 0.
func toInt(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}

// Normalize converts a submission into a listing without identity, owner,
// images or timestamps. It is deterministic for a given submission.
func Normalize(sub Submission) (*entity.Property, error) {
	in := listingInput{sub: sub, details: parseDetails(sub.Get("details"))}
	listingType := sub.Get("type")
	cats := entity.Categories

	raw := make(map[string]map[string]string, len(cats))
	guests := sub.Get(fieldMaxGuests) != ""
	for _, c := range cats {
		fields := map[string]string{}
		for _, f := range slotFields {
			if v := in.resolve(c, f); v != "" {
				fields[f] = v
			}
		}
		if len(fields) == 0 {
			continue
		}
		raw[c.Name] = fields
		if fields[fieldMaxGuests] != "" {
			guests = true
		}
	}
	stay := price.IsStayType(listingType) || guests

	headline := sub.Get(fieldPrice)
	for _, c := range cats {
		if headline != "" {
			break
		}
		headline = in.suffixedPrice(c)
	}
	for _, c := range cats {
		if headline != "" {
			break
		}
		headline = in.nestedPrice(c)
	}
	if headline == "" {
		headline = in.otherNestedPrice()
	}

	title := sub.Get("title")
	location := sub.Get("location")
	if title == "" || location == "" || headline == "" {
		return nil, ErrMissingRequiredFields
	}

	amounts := []string{headline, sub.Get(fieldDeposit)}
	for _, fields := range raw {
		amounts = append(amounts, fields[fieldPrice], fields[fieldDeposit])
	}
	for _, a := range amounts {
		if _, err := price.CheckAmount(a); err != nil {
			return nil, ErrPriceTooLarge
		}
	}

	rooms := make(map[string]entity.RoomDetail, len(raw))
	for _, c := range cats {
		fields, ok := raw[c.Name]
		if !ok {
			continue
		}
		rooms[c.Name] = entity.RoomDetail{
			Price:     price.Format(fields[fieldPrice], slotUnit(c.Kind, stay)),
			Deposit:   price.Format(fields[fieldDeposit], price.UnitNone),
			Beds:      fields[fieldBeds],
			Baths:     fields[fieldBaths],
			BathType:  fields[fieldBathType],
			Kitchen:   fields[fieldKitchen],
			Area:      fields[fieldArea],
			MaxGuests: fields[fieldMaxGuests],
		}
	}

	phone := sub.Get("phone")
	whatsapp := sub.Get("whatsapp")
	if whatsapp == "" {
		whatsapp = phone
	}
	sqFt := sub.Get("sqFt")
	if sqFt == "" {
		sqFt = defaultSqFt
	}
	furnishing := sub.Get("furnishing")
	if furnishing == "" {
		furnishing = defaultFurnishing
	}
	availability := sub.Get("availabilityStatus")
	if availability == "" {
		availability = defaultAvailability
	}

	return &entity.Property{
		Type:               listingType,
		Title:              title,
		Location:           location,
		Description:        sub.Get("description"),
		Price:              price.Format(headline, price.ListingUnit(stay)),
		Deposit:            price.Format(sub.Get(fieldDeposit), price.UnitNone),
		Beds:               toInt(sub.Get(fieldBeds)),
		Baths:              toInt(sub.Get(fieldBaths)),
		SqFt:               sqFt,
		MaxGuests:          toInt(sub.Get(fieldMaxGuests)),
		Gender:             entity.ParseGender(sub.Get("gender")),
		Furnishing:         furnishing,
		Phone:              phone,
		Whatsapp:           whatsapp,
		GmapLink:           sub.Get("gmapLink"),
		Amenities:          sub.List("amenities", "amenities[]"),
		Images:             []string{},
		AvailabilityStatus: availability,
		AvailableFrom:      sub.Get("availableFrom"),
		AvailableTo:        sub.Get("availableTo"),
		PGTypes:            sub.List("pgTypes", "pgTypes[]"),
		RentHouseTypes:     sub.List("rentHouseTypes", "rentHouseTypes[]"),
		FlatTypes:          sub.List("flatTypes", "flatTypes[]"),
		TotalBathrooms:     toInt(sub.Get("totalBathrooms")),
		CommonKitchens:     toInt(sub.Get("commonKitchens")),
		Rooms:              rooms,
		Details:            in.details,
	}, nil
}
