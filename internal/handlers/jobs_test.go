package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marketbytes-devops/alameinmovers/internal/jobs"
	"github.com/marketbytes-devops/alameinmovers/internal/mailer"
	"github.com/marketbytes-devops/alameinmovers/internal/response"
)

type fakeJobStore struct {
	byID      map[uuid.UUID]*jobs.Job
	byCode    map[string]*jobs.Job
	statuses  []*jobs.StatusUpdate
	createErr error
}

func newFakeJobStore() *fakeJobStore {
	return &fakeJobStore{
		byID:   map[uuid.UUID]*jobs.Job{},
		byCode: map[string]*jobs.Job{},
	}
}

func (f *fakeJobStore) Create(_ context.Context, j *jobs.Job) (*jobs.Job, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	out := *j
	out.ID = uuid.New()
	out.TrackingCode = "allm483920"
	out.CreatedAt = time.Now()
	f.byID[out.ID] = &out
	f.byCode[out.TrackingCode] = &out
	return &out, nil
}

func (f *fakeJobStore) FindByID(_ context.Context, id uuid.UUID) (*jobs.Job, error) {
	j, ok := f.byID[id]
	if !ok {
		return nil, jobs.ErrNotFound
	}
	return j, nil
}

func (f *fakeJobStore) FindByTrackingCode(_ context.Context, code string) (*jobs.Job, error) {
	j, ok := f.byCode[code]
	if !ok {
		return nil, jobs.ErrNotFound
	}
	return j, nil
}

func (f *fakeJobStore) List(_ context.Context) ([]*jobs.Job, error) {
	var out []*jobs.Job
	for _, j := range f.byID {
		out = append(out, j)
	}
	return out, nil
}

func (f *fakeJobStore) Update(_ context.Context, id uuid.UUID, u jobs.UpdateFields) (*jobs.Job, error) {
	j, ok := f.byID[id]
	if !ok {
		return nil, jobs.ErrNotFound
	}
	if u.ReceiverName != nil {
		j.ReceiverName = *u.ReceiverName
	}
	return j, nil
}

func (f *fakeJobStore) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.byID[id]; !ok {
		return jobs.ErrNotFound
	}
	delete(f.byID, id)
	kept := f.statuses[:0]
	for _, s := range f.statuses {
		if s.JobID != id {
			kept = append(kept, s)
		}
	}
	f.statuses = kept
	return nil
}

func (f *fakeJobStore) CreateStatus(_ context.Context, s *jobs.StatusUpdate) (*jobs.StatusUpdate, error) {
	if _, ok := f.byID[s.JobID]; !ok {
		return nil, jobs.ErrNotFound
	}
	out := *s
	out.ID = uuid.New()
	out.CreatedAt = time.Now()
	f.statuses = append(f.statuses, &out)
	return &out, nil
}

func (f *fakeJobStore) ListStatus(_ context.Context, jobID *uuid.UUID) ([]*jobs.StatusUpdate, error) {
	var out []*jobs.StatusUpdate
	for _, s := range f.statuses {
		if jobID == nil || s.JobID == *jobID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeJobStore) DeleteStatus(_ context.Context, id uuid.UUID) error {
	for i, s := range f.statuses {
		if s.ID == id {
			f.statuses = append(f.statuses[:i], f.statuses[i+1:]...)
			return nil
		}
	}
	return jobs.ErrNotFound
}

type fakeTrackingNotifier struct {
	to, name, code string
	calls          int
	result         mailer.Result
}

func (f *fakeTrackingNotifier) SendTrackingCode(to, receiverName, trackingCode string) mailer.Result {
	f.calls++
	f.to, f.name, f.code = to, receiverName, trackingCode
	if f.result == (mailer.Result{}) {
		return mailer.Result{Sent: true}
	}
	return f.result
}

func newJobsRouter(store *fakeJobStore, notifier *fakeTrackingNotifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/jobs", CreateJob(store, notifier))
	r.GET("/jobs", ListJobs(store))
	r.GET("/jobs/:id", GetJob(store))
	r.PATCH("/jobs/:id", UpdateJob(store))
	r.DELETE("/jobs/:id", DeleteJob(store))
	r.POST("/status-updates", CreateStatusUpdate(store))
	r.GET("/status-updates", ListStatusUpdates(store))
	r.DELETE("/status-updates/:id", DeleteStatusUpdate(store))
	r.GET("/track/:code", TrackShipment(store))
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) (*httptest.ResponseRecorder, response.Body) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var envelope response.Body
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	return w, envelope
}

func validJobPayload() map[string]any {
	return map[string]any{
		"cargo_type":         "sea",
		"receiver_name":      "Fatima Hassan",
		"contact_number":     "+971501234567",
		"email":              "fatima@example.com",
		"recipient_address":  "12 Marina Walk",
		"recipient_country":  "AE",
		"commodity":          "Household goods",
		"number_of_packages": 14,
		"weight":             320.5,
		"volume":             12.8,
		"origin":             "Alexandria",
		"destination":        "Dubai",
		"cargo_ref_number":   "REF-2026-0042",
		"collection_date":    "2026-09-01",
		"time_of_departure":  "09:00",
		"time_of_arrival":    "18:45",
	}
}

func TestCreateJobAssignsCodeAndNotifies(t *testing.T) {
	store := newFakeJobStore()
	notifier := &fakeTrackingNotifier{}
	r := newJobsRouter(store, notifier)

	w, envelope := doJSON(t, r, http.MethodPost, "/jobs", validJobPayload())

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, response.MsgCreated, envelope.Message)

	data, ok := envelope.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "allm483920", data["tracking_id"])

	assert.Equal(t, 1, notifier.calls)
	assert.Equal(t, "fatima@example.com", notifier.to)
	assert.Equal(t, "Fatima Hassan", notifier.name)
	assert.Equal(t, "allm483920", notifier.code)
}

func TestCreateJobMailFailureStillCreated(t *testing.T) {
	store := newFakeJobStore()
	notifier := &fakeTrackingNotifier{result: mailer.Result{Sent: false, Reason: "smtp down"}}
	r := newJobsRouter(store, notifier)

	w, _ := doJSON(t, r, http.MethodPost, "/jobs", validJobPayload())

	require.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, store.byID, 1)
}

func TestCreateJobRejectsUnknownCargoType(t *testing.T) {
	r := newJobsRouter(newFakeJobStore(), &fakeTrackingNotifier{})
	payload := validJobPayload()
	payload["cargo_type"] = "teleport"

	w, _ := doJSON(t, r, http.MethodPost, "/jobs", payload)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateJobRejectsBadDateAndTime(t *testing.T) {
	r := newJobsRouter(newFakeJobStore(), &fakeTrackingNotifier{})

	payload := validJobPayload()
	payload["collection_date"] = "01/09/2026"
	w, _ := doJSON(t, r, http.MethodPost, "/jobs", payload)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	payload = validJobPayload()
	payload["time_of_arrival"] = "25:99"
	w, _ = doJSON(t, r, http.MethodPost, "/jobs", payload)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateJobRefNumberConflict(t *testing.T) {
	store := newFakeJobStore()
	store.createErr = jobs.ErrRefCodeTaken
	r := newJobsRouter(store, &fakeTrackingNotifier{})

	w, envelope := doJSON(t, r, http.MethodPost, "/jobs", validJobPayload())

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, envelope.Message, "cargo reference number")
}

func TestGetJobNotFound(t *testing.T) {
	r := newJobsRouter(newFakeJobStore(), &fakeTrackingNotifier{})
	w, _ := doJSON(t, r, http.MethodGet, "/jobs/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateJobInvalidID(t *testing.T) {
	r := newJobsRouter(newFakeJobStore(), &fakeTrackingNotifier{})
	w, _ := doJSON(t, r, http.MethodPatch, "/jobs/not-a-uuid", map[string]any{"receiver_name": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateJobChangesFields(t *testing.T) {
	store := newFakeJobStore()
	r := newJobsRouter(store, &fakeTrackingNotifier{})
	_, envelope := doJSON(t, r, http.MethodPost, "/jobs", validJobPayload())
	id := envelope.Data.(map[string]any)["id"].(string)

	w, envelope := doJSON(t, r, http.MethodPatch, "/jobs/"+id, map[string]any{"receiver_name": "Omar Khalil"})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Omar Khalil", envelope.Data.(map[string]any)["receiver_name"])
}

func TestTrackShipmentReturnsJobAndTimeline(t *testing.T) {
	store := newFakeJobStore()
	r := newJobsRouter(store, &fakeTrackingNotifier{})
	_, envelope := doJSON(t, r, http.MethodPost, "/jobs", validJobPayload())
	id := uuid.MustParse(envelope.Data.(map[string]any)["id"].(string))

	_, _ = store.CreateStatus(context.Background(), &jobs.StatusUpdate{
		JobID:         id,
		StatusContent: "Departed Alexandria port",
		StatusDate:    time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC),
		StatusTime:    "10:15",
	})

	w, envelope := doJSON(t, r, http.MethodGet, "/track/allm483920", nil)

	require.Equal(t, http.StatusOK, w.Code)
	data := envelope.Data.(map[string]any)
	assert.Equal(t, "allm483920", data["job"].(map[string]any)["tracking_id"])
	assert.Len(t, data["status_updates"].([]any), 1)
}

func TestTrackShipmentUnknownCode(t *testing.T) {
	r := newJobsRouter(newFakeJobStore(), &fakeTrackingNotifier{})
	w, _ := doJSON(t, r, http.MethodGet, "/track/allm000000", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateStatusUpdateUnknownJob(t *testing.T) {
	r := newJobsRouter(newFakeJobStore(), &fakeTrackingNotifier{})
	w, envelope := doJSON(t, r, http.MethodPost, "/status-updates", map[string]any{
		"job":            uuid.NewString(),
		"status_content": "Customs cleared",
		"status_date":    "2026-09-03",
		"status_time":    "14:30",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, envelope.Message, "job does not exist")
}

func TestListStatusUpdatesFiltersByJob(t *testing.T) {
	store := newFakeJobStore()
	r := newJobsRouter(store, &fakeTrackingNotifier{})
	_, envelope := doJSON(t, r, http.MethodPost, "/jobs", validJobPayload())
	id := envelope.Data.(map[string]any)["id"].(string)

	w, _ := doJSON(t, r, http.MethodPost, "/status-updates", map[string]any{
		"job":            id,
		"status_content": "Loaded onto vessel",
		"status_date":    "2026-09-02",
		"status_time":    "08:00",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w, envelope = doJSON(t, r, http.MethodGet, "/status-updates?job_id="+id, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, envelope.Data.([]any), 1)

	w, envelope = doJSON(t, r, http.MethodGet, "/status-updates?job_id="+uuid.NewString(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, envelope.Data)

	w, _ = doJSON(t, r, http.MethodGet, "/status-updates?job_id=bogus", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteJobThenGone(t *testing.T) {
	store := newFakeJobStore()
	r := newJobsRouter(store, &fakeTrackingNotifier{})
	_, envelope := doJSON(t, r, http.MethodPost, "/jobs", validJobPayload())
	id := envelope.Data.(map[string]any)["id"].(string)

	w, _ := doJSON(t, r, http.MethodPost, "/status-updates", map[string]any{
		"job":            id,
		"status_content": "Departed origin port",
		"status_date":    "2026-09-02",
		"status_time":    "08:00",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w, _ = doJSON(t, r, http.MethodDelete, "/jobs/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// The timeline goes with the job.
	w, envelope = doJSON(t, r, http.MethodGet, "/status-updates?job_id="+id, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, envelope.Data)

	w, _ = doJSON(t, r, http.MethodDelete, "/jobs/"+id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
