package jobs

import (
	"time"

	"github.com/google/uuid"
)

// CargoType is the shipment mode.
type CargoType string

const (
	CargoAir        CargoType = "air"
	CargoDoorToDoor CargoType = "door_to_door"
	CargoLand       CargoType = "land"
	CargoSea        CargoType = "sea"
)

// Valid reports whether c is a known cargo type.
func (c CargoType) Valid() bool {
	switch c {
	case CargoAir, CargoDoorToDoor, CargoLand, CargoSea:
		return true
	}
	return false
}

// Job is a cargo shipment record. TrackingCode is assigned at creation and
// never changes afterwards.
type Job struct {
	ID               uuid.UUID `json:"id"`
	CargoType        CargoType `json:"cargo_type"`
	ReceiverName     string    `json:"receiver_name"`
	ContactNumber    string    `json:"contact_number"`
	Email            string    `json:"email"`
	RecipientAddress string    `json:"recipient_address"`
	RecipientCountry string    `json:"recipient_country"`
	Commodity        string    `json:"commodity"`
	NumberOfPackages int       `json:"number_of_packages"`
	Weight           float64   `json:"weight"`
	Volume           float64   `json:"volume"`
	Origin           string    `json:"origin"`
	Destination      string    `json:"destination"`
	CargoRefNumber   string    `json:"cargo_ref_number"`
	TrackingCode     string    `json:"tracking_id"`
	CollectionDate   time.Time `json:"collection_date"`
	TimeOfDeparture  string    `json:"time_of_departure"` // HH:MM
	TimeOfArrival    string    `json:"time_of_arrival"`   // HH:MM
	CreatedAt        time.Time `json:"created_at"`
}

// StatusUpdate is one timeline entry for a job. The status date/time pair is
// caller-supplied (the event time), CreatedAt is when we recorded it.
type StatusUpdate struct {
	ID            uuid.UUID `json:"id"`
	JobID         uuid.UUID `json:"job_id"`
	StatusContent string    `json:"status_content"`
	StatusDate    time.Time `json:"status_date"`
	StatusTime    string    `json:"status_time"` // HH:MM
	CreatedAt     time.Time `json:"created_at"`
}
