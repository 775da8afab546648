package models

// Destination is a tourism region grouping hotels and attractions.
type Destination struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Region      string `json:"region"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url,omitempty"`
}

// Hotel belongs to a destination; price is per night per room.
type Hotel struct {
	ID            int64   `json:"id"`
	DestinationID int64   `json:"destination_id"`
	Name          string  `json:"name"`
	Address       string  `json:"address"`
	PricePerNight float64 `json:"price_per_night"`
	RoomsTotal    int     `json:"rooms_total"`
	Description   string  `json:"description,omitempty"`
}

// Attraction belongs to a destination; entry fee is per person.
type Attraction struct {
	ID            int64   `json:"id"`
	DestinationID int64   `json:"destination_id"`
	Name          string  `json:"name"`
	Location      string  `json:"location"`
	EntryFee      float64 `json:"entry_fee"`
	OpenHours     string  `json:"open_hours,omitempty"`
	Description   string  `json:"description,omitempty"`
}

// Review is a user rating for a hotel.
type Review struct {
	ID        int64  `json:"id"`
	HotelID   int64  `json:"hotel_id"`
	UserID    int64  `json:"user_id"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
	CreatedAt string `json:"created_at,omitempty"`
}
