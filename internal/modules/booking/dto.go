package booking

// CreateBookingRequest is the booking form. VenueName is accepted for older
// clients but ignored; the catalog name is stored instead.
type CreateBookingRequest struct {
	VenueID      int64    `json:"venueId" binding:"required,gt=0"`
	VenueName    string   `json:"venueName"`
	CustomerName string   `json:"customerName" binding:"required,notblank"`
	Email        string   `json:"email" binding:"required,email"`
	Phone        string   `json:"phone" binding:"required,notblank"`
	Date         string   `json:"date" binding:"required,bookingdate"`
	EventType    string   `json:"eventType" binding:"required,notblank"`
	TotalAmount  *float64 `json:"totalAmount" binding:"required,min=0"`
}
