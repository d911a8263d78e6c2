package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// BoatTypes is the closed set of vessel categories a listing may use.
var BoatTypes = []string{"sailboat", "motorboat", "yacht", "catamaran", "jetski", "pontoon"}

func IsValidBoatType(t string) bool {
	for _, bt := range BoatTypes {
		if bt == t {
			return true
		}
	}
	return false
}

type Boat struct {
	gorm.Model
	HostID      uint           `json:"hostID" gorm:"not null;index"`
	Name        string         `json:"name"`
	Description string         `json:"description" gorm:"type:text"`
	Images      datatypes.JSON `json:"images"` // ordered array of URLs

	// Location
	AddressLine1 string  `json:"addressLine1"`
	City         string  `json:"city" gorm:"index"`
	State        string  `json:"state"`
	Country      string  `json:"country" gorm:"index"`
	Lat          float64 `json:"lat"`
	Lng          float64 `json:"lng"`

	// Pricing
	PricePerHour float64 `json:"pricePerHour" gorm:"check:price_per_hour >= 0"`
	PricePerDay  float64 `json:"pricePerDay" gorm:"check:price_per_day >= 0"`
	PricingType  string  `json:"pricingType" gorm:"type:varchar(20);default:'hourly'"` // hourly, daily

	Capacity  int            `json:"capacity" gorm:"check:capacity >= 1"`
	BoatType  string         `json:"boatType" gorm:"type:varchar(20);index"`
	Amenities datatypes.JSON `json:"amenities" gorm:"type:jsonb"`

	// Specifications
	LengthMeters float64 `json:"lengthMeters"`
	BeamMeters   float64 `json:"beamMeters"`
	DraftMeters  float64 `json:"draftMeters"`
	Year         int     `json:"year"`
	Brand        string  `json:"brand"`
	ModelName    string  `json:"model" gorm:"column:model_name"`
	Engine       string  `json:"engine"`
	FuelType     string  `json:"fuelType"`

	// Denormalized host snapshot, cached at listing creation. Stale after a
	// host profile update until the host edits the listing (known trade-off).
	HostName         string  `json:"hostName"`
	HostRating       float32 `json:"hostRating"`
	HostResponseTime string  `json:"hostResponseTime"`

	Rating      float32 `json:"rating" gorm:"index"`
	ReviewCount int     `json:"reviewCount"`

	// Availability
	IsAvailable   *bool          `json:"isAvailable" gorm:"default:true;index"`
	AvailableFrom *time.Time     `json:"availableFrom"`
	AvailableTo   *time.Time     `json:"availableTo"`
	BlockedDates  datatypes.JSON `json:"blockedDates"` // array of ISO dates

	Rules string `json:"rules" gorm:"type:text"`

	// Safety equipment
	LifeJackets      bool `json:"lifeJackets" gorm:"default:true"`
	FireExtinguisher bool `json:"fireExtinguisher" gorm:"default:false"`
	FirstAidKit      bool `json:"firstAidKit" gorm:"default:false"`
	Flares           bool `json:"flares" gorm:"default:false"`

	CancellationPolicy string `json:"cancellationPolicy" gorm:"type:varchar(20);default:'flexible'"`
	MinRentalHours     int    `json:"minRentalHours" gorm:"default:1"`
	MaxRentalHours     int    `json:"maxRentalHours" gorm:"default:12"`

	BookingCount int        `json:"bookingCount" gorm:"index"`
	LastBookedAt *time.Time `json:"lastBookedAt"`

	Host     User      `json:"host" gorm:"foreignKey:HostID;references:ID"`
	Reviews  []Review  `json:"reviews"`
	Bookings []Booking `json:"bookings"`
}

// Custom JSON marshaling to convert jsonb columns to arrays and to avoid
// circular host references
func (b *Boat) MarshalJSON() ([]byte, error) {
	type Alias Boat
	aux := &struct {
		Images       []string `json:"images"`
		Amenities    []string `json:"amenities"`
		BlockedDates []string `json:"blockedDates"`
		Host         *User    `json:"host,omitempty"`
		*Alias
	}{
		Images:       []string{},
		Amenities:    []string{},
		BlockedDates: []string{},
		Alias:        (*Alias)(b),
	}

	if b.Images != nil {
		var images []string
		if err := json.Unmarshal(b.Images, &images); err == nil {
			aux.Images = images
		}
	}
	if b.Amenities != nil {
		var amenities []string
		if err := json.Unmarshal(b.Amenities, &amenities); err == nil {
			aux.Amenities = amenities
		}
	}
	if b.BlockedDates != nil {
		var blocked []string
		if err := json.Unmarshal(b.BlockedDates, &blocked); err == nil {
			aux.BlockedDates = blocked
		}
	}

	if b.Host.ID > 0 {
		hostCopy := b.Host
		hostCopy.Boats = nil
		aux.Host = &hostCopy
	}

	return json.Marshal(aux)
}
