// Enquiry endpoints: public contact-form intake gated by reCAPTCHA, and
// dashboard list/delete operations.
package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/marketbytes-devops/alameinmovers/internal/enquiry"
	"github.com/marketbytes-devops/alameinmovers/internal/mailer"
	"github.com/marketbytes-devops/alameinmovers/internal/recaptcha"
	"github.com/marketbytes-devops/alameinmovers/internal/response"
)

type EnquiryStore interface {
	Create(ctx context.Context, e *enquiry.Enquiry) (*enquiry.Enquiry, error)
	List(ctx context.Context, startDate, endDate *time.Time) ([]*enquiry.Enquiry, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteAll(ctx context.Context) (int64, error)
}

// CaptchaVerifier decides whether a submission came from a human.
type CaptchaVerifier interface {
	Verify(ctx context.Context, token, remoteIP string) error
}

// EnquiryNotifier sends the two enquiry emails. Both are best-effort once the
// record is stored.
type EnquiryNotifier interface {
	SendEnquiryNotification(d mailer.EnquiryDetails) mailer.Result
	SendEnquiryConfirmation(d mailer.EnquiryDetails) mailer.Result
}

// --- POST /enquiries (public) ---

type CreateEnquiryRequest struct {
	FullName       string `json:"full_name" binding:"required"`
	PhoneNumber    string `json:"phone_number" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	ServiceType    string `json:"service_type" binding:"required"`
	Message        string `json:"message" binding:"required"`
	RefererURL     string `json:"referer_url"`
	SubmittedURL   string `json:"submitted_url"`
	RecaptchaToken string `json:"recaptcha_token"`
}

func CreateEnquiry(store EnquiryStore, verifier CaptchaVerifier, notifier EnquiryNotifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateEnquiryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, http.StatusBadRequest, err.Error())
			return
		}
		serviceType := enquiry.ServiceType(req.ServiceType)
		if !serviceType.Valid() {
			response.Error(c, http.StatusBadRequest, "unknown service_type")
			return
		}

		ctx, cancel := reqContext(c)
		defer cancel()

		if verifier != nil {
			err := verifier.Verify(ctx, req.RecaptchaToken, c.ClientIP())
			if errors.Is(err, recaptcha.ErrVerificationFailed) {
				response.Error(c, http.StatusBadRequest, "recaptcha verification failed")
				return
			}
			if err != nil {
				log.Printf("[enquiry] recaptcha: %v", err)
				response.Error(c, http.StatusServiceUnavailable, "could not verify the request, try again later")
				return
			}
		}

		created, err := store.Create(ctx, &enquiry.Enquiry{
			FullName:     req.FullName,
			PhoneNumber:  req.PhoneNumber,
			Email:        req.Email,
			ServiceType:  serviceType,
			Message:      req.Message,
			RefererURL:   req.RefererURL,
			SubmittedURL: req.SubmittedURL,
		})
		if err != nil {
			log.Printf("[enquiry] create: %v", err)
			response.Error(c, http.StatusInternalServerError, "internal error")
			return
		}

		if notifier != nil {
			d := mailer.EnquiryDetails{
				FullName:     created.FullName,
				PhoneNumber:  created.PhoneNumber,
				Email:        created.Email,
				ServiceType:  created.ServiceType.Label(),
				Message:      created.Message,
				RefererURL:   created.RefererURL,
				SubmittedURL: created.SubmittedURL,
				SubmittedAt:  created.CreatedAt,
			}
			if res := notifier.SendEnquiryNotification(d); !res.Sent {
				log.Printf("[enquiry] notification email not sent: %s", res.Reason)
			}
			if res := notifier.SendEnquiryConfirmation(d); !res.Sent {
				log.Printf("[enquiry] confirmation email not sent: %s", res.Reason)
			}
		}

		response.Success(c, http.StatusCreated, response.MsgCreated, created)
	}
}

// --- GET /enquiries ---

// ListEnquiries supports an optional inclusive date range via
// ?start_date=YYYY-MM-DD&end_date=YYYY-MM-DD. Both must be present together.
func ListEnquiries(store EnquiryStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var startDate, endDate *time.Time
		rawStart, rawEnd := c.Query("start_date"), c.Query("end_date")
		if (rawStart == "") != (rawEnd == "") {
			response.Error(c, http.StatusBadRequest, "start_date and end_date must be given together")
			return
		}
		if rawStart != "" {
			s, err := time.Parse(dateLayout, rawStart)
			if err != nil {
				response.Error(c, http.StatusBadRequest, "start_date must be YYYY-MM-DD")
				return
			}
			e, err := time.Parse(dateLayout, rawEnd)
			if err != nil {
				response.Error(c, http.StatusBadRequest, "end_date must be YYYY-MM-DD")
				return
			}
			if e.Before(s) {
				response.Error(c, http.StatusBadRequest, "end_date is before start_date")
				return
			}
			startDate, endDate = &s, &e
		}

		ctx, cancel := reqContext(c)
		defer cancel()

		list, err := store.List(ctx, startDate, endDate)
		if err != nil {
			log.Printf("[enquiry] list: %v", err)
			response.Error(c, http.StatusInternalServerError, "internal error")
			return
		}
		if list == nil {
			list = []*enquiry.Enquiry{}
		}
		response.Success(c, http.StatusOK, response.MsgSuccess, list)
	}
}

// --- DELETE /enquiries/:id ---

func DeleteEnquiry(store EnquiryStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			response.Error(c, http.StatusBadRequest, "invalid enquiry id")
			return
		}

		ctx, cancel := reqContext(c)
		defer cancel()

		err = store.Delete(ctx, id)
		if errors.Is(err, enquiry.ErrNotFound) {
			response.Error(c, http.StatusNotFound, err.Error())
			return
		}
		if err != nil {
			log.Printf("[enquiry] delete: %v", err)
			response.Error(c, http.StatusInternalServerError, "internal error")
			return
		}
		response.Success(c, http.StatusOK, response.MsgDeleted, nil)
	}
}

// --- DELETE /enquiries ---

func DeleteAllEnquiries(store EnquiryStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := reqContext(c)
		defer cancel()

		n, err := store.DeleteAll(ctx)
		if err != nil {
			log.Printf("[enquiry] delete all: %v", err)
			response.Error(c, http.StatusInternalServerError, "internal error")
			return
		}
		response.Success(c, http.StatusOK, response.MsgDeleted, gin.H{"deleted": n})
	}
}
