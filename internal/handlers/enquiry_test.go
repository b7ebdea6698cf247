package handlers

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marketbytes-devops/alameinmovers/internal/enquiry"
	"github.com/marketbytes-devops/alameinmovers/internal/mailer"
	"github.com/marketbytes-devops/alameinmovers/internal/recaptcha"
)

type fakeEnquiryStore struct {
	items     []*enquiry.Enquiry
	createErr error
}

func (f *fakeEnquiryStore) Create(_ context.Context, e *enquiry.Enquiry) (*enquiry.Enquiry, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	out := *e
	out.ID = uuid.New()
	out.CreatedAt = time.Now()
	f.items = append(f.items, &out)
	return &out, nil
}

func (f *fakeEnquiryStore) List(_ context.Context, _, _ *time.Time) ([]*enquiry.Enquiry, error) {
	return f.items, nil
}

func (f *fakeEnquiryStore) Delete(_ context.Context, id uuid.UUID) error {
	for i, e := range f.items {
		if e.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return enquiry.ErrNotFound
}

func (f *fakeEnquiryStore) DeleteAll(_ context.Context) (int64, error) {
	n := int64(len(f.items))
	f.items = nil
	return n, nil
}

type fakeVerifier struct {
	err   error
	token string
	calls int
}

func (f *fakeVerifier) Verify(_ context.Context, token, _ string) error {
	f.calls++
	f.token = token
	return f.err
}

type fakeEnquiryNotifier struct {
	notifications, confirmations int
	last                         mailer.EnquiryDetails
}

func (f *fakeEnquiryNotifier) SendEnquiryNotification(d mailer.EnquiryDetails) mailer.Result {
	f.notifications++
	f.last = d
	return mailer.Result{Sent: true}
}

func (f *fakeEnquiryNotifier) SendEnquiryConfirmation(d mailer.EnquiryDetails) mailer.Result {
	f.confirmations++
	return mailer.Result{Sent: true}
}

func newEnquiryRouter(store *fakeEnquiryStore, verifier *fakeVerifier, notifier *fakeEnquiryNotifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/enquiries", CreateEnquiry(store, verifier, notifier))
	r.GET("/enquiries", ListEnquiries(store))
	r.DELETE("/enquiries/:id", DeleteEnquiry(store))
	r.DELETE("/enquiries", DeleteAllEnquiries(store))
	return r
}

func validEnquiryPayload() map[string]any {
	return map[string]any{
		"full_name":       "Layla Mansour",
		"phone_number":    "+201001234567",
		"email":           "layla@example.com",
		"service_type":    "internationalMove",
		"message":         "Moving a 3-bedroom apartment from Cairo to Riyadh in October.",
		"referer_url":     "https://google.com",
		"submitted_url":   "https://alameinmovers.com/contact",
		"recaptcha_token": "tok-123",
	}
}

func TestCreateEnquiryStoresAndEmails(t *testing.T) {
	store := &fakeEnquiryStore{}
	verifier := &fakeVerifier{}
	notifier := &fakeEnquiryNotifier{}
	r := newEnquiryRouter(store, verifier, notifier)

	w, envelope := doJSON(t, r, http.MethodPost, "/enquiries", validEnquiryPayload())

	require.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, store.items, 1)
	assert.Equal(t, 1, verifier.calls)
	assert.Equal(t, "tok-123", verifier.token)
	assert.Equal(t, 1, notifier.notifications)
	assert.Equal(t, 1, notifier.confirmations)
	// emails carry the human-readable service label
	assert.Equal(t, "International Move", notifier.last.ServiceType)
	assert.Equal(t, "internationalMove", envelope.Data.(map[string]any)["service_type"])
}

func TestCreateEnquiryUnknownServiceType(t *testing.T) {
	store := &fakeEnquiryStore{}
	r := newEnquiryRouter(store, &fakeVerifier{}, &fakeEnquiryNotifier{})
	payload := validEnquiryPayload()
	payload["service_type"] = "spaceTravel"

	w, _ := doJSON(t, r, http.MethodPost, "/enquiries", payload)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, store.items)
}

func TestCreateEnquiryCaptchaRejected(t *testing.T) {
	store := &fakeEnquiryStore{}
	verifier := &fakeVerifier{err: recaptcha.ErrVerificationFailed}
	notifier := &fakeEnquiryNotifier{}
	r := newEnquiryRouter(store, verifier, notifier)

	w, _ := doJSON(t, r, http.MethodPost, "/enquiries", validEnquiryPayload())

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, store.items)
	assert.Zero(t, notifier.notifications)
}

func TestCreateEnquiryCaptchaUnavailable(t *testing.T) {
	store := &fakeEnquiryStore{}
	verifier := &fakeVerifier{err: recaptcha.ErrUnavailable}
	r := newEnquiryRouter(store, verifier, &fakeEnquiryNotifier{})

	w, _ := doJSON(t, r, http.MethodPost, "/enquiries", validEnquiryPayload())

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Empty(t, store.items)
}

func TestCreateEnquiryStoredEvenIfWrappedUnavailable(t *testing.T) {
	store := &fakeEnquiryStore{}
	verifier := &fakeVerifier{err: errors.New("boom")}
	r := newEnquiryRouter(store, verifier, &fakeEnquiryNotifier{})

	w, _ := doJSON(t, r, http.MethodPost, "/enquiries", validEnquiryPayload())

	// unknown verifier errors fail closed
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Empty(t, store.items)
}

func TestListEnquiriesDateRangeValidation(t *testing.T) {
	r := newEnquiryRouter(&fakeEnquiryStore{}, &fakeVerifier{}, &fakeEnquiryNotifier{})

	w, _ := doJSON(t, r, http.MethodGet, "/enquiries?start_date=2026-01-01", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = doJSON(t, r, http.MethodGet, "/enquiries?start_date=2026-02-01&end_date=2026-01-01", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = doJSON(t, r, http.MethodGet, "/enquiries?start_date=2026-01-01&end_date=2026-01-31", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDeleteEnquiryAndDeleteAll(t *testing.T) {
	store := &fakeEnquiryStore{}
	r := newEnquiryRouter(store, &fakeVerifier{}, &fakeEnquiryNotifier{})

	for i := 0; i < 3; i++ {
		w, _ := doJSON(t, r, http.MethodPost, "/enquiries", validEnquiryPayload())
		require.Equal(t, http.StatusCreated, w.Code)
	}

	id := store.items[0].ID.String()
	w, _ := doJSON(t, r, http.MethodDelete, "/enquiries/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, store.items, 2)

	w, envelope := doJSON(t, r, http.MethodDelete, "/enquiries", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(2), envelope.Data.(map[string]any)["deleted"])
	assert.Empty(t, store.items)
}
