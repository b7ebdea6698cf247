package mailer

import (
	"fmt"
	"strings"
	"time"
)

// EnquiryDetails carries the fields rendered into enquiry emails.
type EnquiryDetails struct {
	FullName     string
	PhoneNumber  string
	Email        string
	ServiceType  string // human-readable label
	Message      string
	RefererURL   string
	SubmittedURL string
	SubmittedAt  time.Time
}

const (
	otpSubject          = "Your OTP for Password Reset"
	trackingSubject     = "Your Shipment Tracking Code"
	confirmationSubject = "Thank You for Your Enquiry"
)

func otpBody(code string, window time.Duration) string {
	return fmt.Sprintf("Your OTP is %s. It is valid for %d minutes.", code, int(window.Minutes()))
}

func trackingBody(receiverName, trackingCode, publicURL string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Dear %s,\n\n", receiverName)
	fmt.Fprintf(&b, "Your shipment has been registered. Your tracking code is %s.\n\n", trackingCode)
	fmt.Fprintf(&b, "Track your shipment at %s/track/%s\n\n", strings.TrimRight(publicURL, "/"), trackingCode)
	b.WriteString("Best regards,\nAl Amein Movers Team\n")
	return b.String()
}

func enquiryNotificationSubject(fullName string) string {
	return fmt.Sprintf("New Enquiry from %s", fullName)
}

func enquiryNotificationBody(d EnquiryDetails) string {
	var b strings.Builder
	b.WriteString("New enquiry received:\n")
	fmt.Fprintf(&b, "Name: %s\n", d.FullName)
	fmt.Fprintf(&b, "Phone: %s\n", d.PhoneNumber)
	fmt.Fprintf(&b, "Email: %s\n", d.Email)
	fmt.Fprintf(&b, "Service Type: %s\n", d.ServiceType)
	fmt.Fprintf(&b, "Message: %s\n", d.Message)
	fmt.Fprintf(&b, "Referer URL: %s\n", d.RefererURL)
	fmt.Fprintf(&b, "Submitted URL: %s\n", d.SubmittedURL)
	fmt.Fprintf(&b, "Submission Time: %s\n", d.SubmittedAt.Format("2006-01-02 15:04:05 MST"))
	return b.String()
}

func enquiryConfirmationBody(d EnquiryDetails) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Dear %s,\n\n", d.FullName)
	b.WriteString("Thank you for submitting your enquiry with Al Amein Movers. We have received your request and will get back to you soon.\n\n")
	b.WriteString("Your Enquiry Details:\n")
	fmt.Fprintf(&b, "Name: %s\n", d.FullName)
	fmt.Fprintf(&b, "Phone: %s\n", d.PhoneNumber)
	fmt.Fprintf(&b, "Email: %s\n", d.Email)
	fmt.Fprintf(&b, "Service Type: %s\n", d.ServiceType)
	fmt.Fprintf(&b, "Message: %s\n", d.Message)
	fmt.Fprintf(&b, "Submission Time: %s\n\n", d.SubmittedAt.Format("2006-01-02 15:04:05 MST"))
	b.WriteString("Best regards,\nAl Amein Movers Team\n")
	return b.String()
}
