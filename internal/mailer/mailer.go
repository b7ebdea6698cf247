// Outbound email over SMTP. Every send returns an explicit Result so callers
// can log failures and stay best-effort without blanket error suppression.
package mailer

import (
	"fmt"
	"time"

	"gopkg.in/gomail.v2"

	"github.com/marketbytes-devops/alameinmovers/internal/config"
)

// Result reports the outcome of a single dispatch attempt.
type Result struct {
	Sent   bool
	Reason string // set when Sent is false
}

func sent() Result { return Result{Sent: true} }

func failed(err error) Result {
	if err == nil {
		return Result{Sent: false, Reason: "unknown"}
	}
	return Result{Sent: false, Reason: err.Error()}
}

// Mailer sends transactional mail through a single SMTP relay.
type Mailer struct {
	dialer       *gomail.Dialer
	from         string
	contactEmail string
	bccEmail     string
	publicURL    string
}

func New(cfg config.Mail, publicURL string) *Mailer {
	m := &Mailer{
		from:         cfg.FromAddress,
		contactEmail: cfg.ContactEmail,
		bccEmail:     cfg.BCCEmail,
		publicURL:    publicURL,
	}
	if cfg.Host != "" {
		m.dialer = gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	}
	return m
}

func (m *Mailer) send(msg *gomail.Message) Result {
	if m.dialer == nil {
		return failed(fmt.Errorf("smtp is not configured"))
	}
	if err := m.dialer.DialAndSend(msg); err != nil {
		return failed(err)
	}
	return sent()
}

// SendPasswordResetOTP emails the reset code with its validity window.
func (m *Mailer) SendPasswordResetOTP(to, code string, window time.Duration) Result {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", otpSubject)
	msg.SetBody("text/plain", otpBody(code, window))
	return m.send(msg)
}

// SendTrackingCode emails the customer the tracking code and lookup link for a new job.
func (m *Mailer) SendTrackingCode(to, receiverName, trackingCode string) Result {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", trackingSubject)
	msg.SetBody("text/plain", trackingBody(receiverName, trackingCode, m.publicURL))
	return m.send(msg)
}

// SendEnquiryNotification emails the office about a new enquiry (BCC when configured).
func (m *Mailer) SendEnquiryNotification(d EnquiryDetails) Result {
	if m.contactEmail == "" {
		return failed(fmt.Errorf("CONTACT_EMAIL is not configured"))
	}
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", m.contactEmail)
	if m.bccEmail != "" {
		msg.SetHeader("Bcc", m.bccEmail)
	}
	msg.SetHeader("Subject", enquiryNotificationSubject(d.FullName))
	msg.SetBody("text/plain", enquiryNotificationBody(d))
	return m.send(msg)
}

// SendEnquiryConfirmation emails the customer that their enquiry was received.
func (m *Mailer) SendEnquiryConfirmation(d EnquiryDetails) Result {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", d.Email)
	msg.SetHeader("Subject", confirmationSubject)
	msg.SetBody("text/plain", enquiryConfirmationBody(d))
	return m.send(msg)
}
