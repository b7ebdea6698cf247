package enquiry

import (
	"time"

	"github.com/google/uuid"
)

// ServiceType of a contact-form enquiry.
type ServiceType string

const (
	ServiceLocalMove         ServiceType = "localMove"
	ServiceInternationalMove ServiceType = "internationalMove"
	ServiceCarExport         ServiceType = "carExport"
	ServiceStorageServices   ServiceType = "storageServices"
	ServiceLogistics         ServiceType = "logistics"
)

// serviceTypeLabels maps service types to their human-readable form for emails.
var serviceTypeLabels = map[ServiceType]string{
	ServiceLocalMove:         "Local Move",
	ServiceInternationalMove: "International Move",
	ServiceCarExport:         "Car Export",
	ServiceStorageServices:   "Storage Services",
	ServiceLogistics:         "Logistics",
}

// Valid reports whether s is one of the allowed service types.
func (s ServiceType) Valid() bool {
	_, ok := serviceTypeLabels[s]
	return ok
}

// Label returns the human-readable name; unknown types fall back to the raw value.
func (s ServiceType) Label() string {
	if l, ok := serviceTypeLabels[s]; ok {
		return l
	}
	return string(s)
}

// Enquiry is a contact-form submission.
type Enquiry struct {
	ID           uuid.UUID   `json:"id"`
	FullName     string      `json:"full_name"`
	PhoneNumber  string      `json:"phone_number"`
	Email        string      `json:"email"`
	ServiceType  ServiceType `json:"service_type"`
	Message      string      `json:"message"`
	RefererURL   string      `json:"referer_url"`
	SubmittedURL string      `json:"submitted_url"`
	CreatedAt    time.Time   `json:"created_at"`
}
