package models

// Column names of the vehicle listings table.
const (
	ColPrice           = "price"
	ColModelYear       = "model_year"
	ColModel           = "model"
	ColCondition       = "condition"
	ColCylinders       = "cylinders"
	ColFuel            = "fuel"
	ColOdometer        = "odometer"
	ColTransmission    = "transmission"
	ColType            = "type"
	ColPaintColor      = "paint_color"
	ColIs4WD           = "is_4wd"
	ColDatePosted      = "date_posted"
	ColDaysListed      = "days_listed"
	ColManufacturer    = "manufacturer"
	ColTypeCapitalized = "type_capitalized"
)

// UnknownManufacturer is assigned when a listing's model is empty or blank.
const UnknownManufacturer = "Unknown"

// Listing is one row of the vehicle listings dataset. Nullable columns are pointers.
type Listing struct {
	Price        float64  `json:"price"`
	ModelYear    *int     `json:"model_year"`
	Model        string   `json:"model"`
	Condition    string   `json:"condition"`
	Cylinders    *int     `json:"cylinders"`
	Fuel         string   `json:"fuel"`
	Odometer     *float64 `json:"odometer"`
	Transmission string   `json:"transmission"`
	Type         string   `json:"type"`
	PaintColor   string   `json:"paint_color"`
	Is4WD        *bool    `json:"is_4wd"`
	DatePosted   string   `json:"date_posted"`
	DaysListed   *int     `json:"days_listed"`

	// Derived by the preparer unless the source already carries them.
	Manufacturer    string `json:"manufacturer"`
	TypeCapitalized string `json:"type_capitalized"`
}

// Complete reports whether none of the given columns is missing for the listing.
// Empty text cells count as missing; columns the listing does not model are ignored.
func (l *Listing) Complete(columns []string) bool {
	for _, c := range columns {
		if l.missing(c) {
			return false
		}
	}
	return true
}

func (l *Listing) missing(column string) bool {
	switch column {
	case ColModelYear:
		return l.ModelYear == nil
	case ColCylinders:
		return l.Cylinders == nil
	case ColOdometer:
		return l.Odometer == nil
	case ColIs4WD:
		return l.Is4WD == nil
	case ColDaysListed:
		return l.DaysListed == nil
	case ColModel:
		return l.Model == ""
	case ColCondition:
		return l.Condition == ""
	case ColFuel:
		return l.Fuel == ""
	case ColTransmission:
		return l.Transmission == ""
	case ColType:
		return l.Type == ""
	case ColPaintColor:
		return l.PaintColor == ""
	case ColDatePosted:
		return l.DatePosted == ""
	case ColManufacturer:
		return l.Manufacturer == ""
	case ColTypeCapitalized:
		return l.TypeCapitalized == ""
	}
	return false
}

// Dataset is a loaded table of listings together with the columns the source exposed.
// A prepared Dataset is never mutated; share it by pointer.
type Dataset struct {
	Columns  []string  `json:"columns"`
	Listings []Listing `json:"listings"`
}

// HasColumn reports whether the source exposed the named column.
func (d *Dataset) HasColumn(name string) bool {
	for _, c := range d.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Len returns the number of listings.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Listings)
}
