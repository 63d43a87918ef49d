package dto

// Trips are not stored anywhere. Each response is derived on the fly from a
// booking request joined with its best-effort tour catalog match.

type TripSummary struct {
	BookingID     string  `json:"booking_id"`
	BookingCode   string  `json:"booking_code"`
	Destination   string  `json:"destination"`
	Country       string  `json:"country"`
	StartDate     string  `json:"start_date"`
	EndDate       string  `json:"end_date"`
	DurationDays  int     `json:"duration_days"`
	TravelerCount int     `json:"traveler_count"`
	TotalAmount   float64 `json:"total_amount"`
	Currency      string  `json:"currency"`
	Status        string  `json:"status"`
	ImageURL      string  `json:"image_url"`
}

type ItineraryItem struct {
	Day   int    `json:"day"`
	Title string `json:"title"`
}

type TripDetail struct {
	TripSummary
	BookingStatus string          `json:"booking_status"`
	Itinerary     []ItineraryItem `json:"itinerary"`
}

type GetTripsResponse struct {
	Trips []TripSummary `json:"trips"`
}
