package venue

type CreateVenueRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description" binding:"required"`
	Location    string   `json:"location" binding:"required"`
	Capacity    int      `json:"capacity" binding:"min=1"`
	PricePerDay *float64 `json:"pricePerDay" binding:"required,min=0"`
	Amenities   []string `json:"amenities" binding:"required"`
	Image       string   `json:"image" binding:"omitempty,url"`
}

// UpdateAvailabilityRequest replaces the blocked-date list wholesale.
type UpdateAvailabilityRequest struct {
	UnavailableDates []string `json:"unavailableDates" binding:"required,dive,isodate"`
}
