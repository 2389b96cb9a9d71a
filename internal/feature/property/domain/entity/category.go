package entity

// CategoryKind groups room categories that share a billing unit.
type CategoryKind string

const (
	// KindBHK is a bedroom-hall-kitchen unit, billed per day for stays.
	KindBHK CategoryKind = "bhk"
	// KindBed is a paying-guest bed, billed per bed.
	KindBed CategoryKind = "bed"
	// KindRK is a room-kitchen flat, billed per month.
	KindRK CategoryKind = "rk"
	// KindRoom is a rent-house room, billed per month.
	KindRoom CategoryKind = "room"
)

// Category is a known room or unit category.
type Category struct {
	Name    string
	Kind    CategoryKind
	Aliases []string
}

// Categories lists the known categories in canonical order.
var Categories = []Category{
	{Name: "1BHK", Kind: KindBHK, Aliases: []string{"1BedroomKitchen"}},
	{Name: "2BHK", Kind: KindBHK, Aliases: []string{"2BedroomKitchen"}},
	{Name: "3BHK", Kind: KindBHK, Aliases: []string{"3BedroomKitchen"}},
	{Name: "Single Bed", Kind: KindBed},
	{Name: "Double Bed", Kind: KindBed},
	{Name: "Triple Bed", Kind: KindBed},
	{Name: "1RK", Kind: KindRK},
	{Name: "2RK", Kind: KindRK},
	{Name: "3RK", Kind: KindRK},
	{Name: "Single Room", Kind: KindRoom},
	{Name: "Double Room", Kind: KindRoom},
	{Name: "Triple Room", Kind: KindRoom},
}

// LookupCategory finds a known category by canonical name or alias.
func LookupCategory(name string) (Category, bool) {
	for _, c := range Categories {
		if c.Name == name {
			return c, true
		}
		for _, a := range c.Aliases {
			if a == name {
				return c, true
			}
		}
	}
	return Category{}, false
}
