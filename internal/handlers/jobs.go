// Job endpoints: CRUD for the dashboard plus the public tracking lookup.
package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/marketbytes-devops/alameinmovers/internal/jobs"
	"github.com/marketbytes-devops/alameinmovers/internal/mailer"
	"github.com/marketbytes-devops/alameinmovers/internal/response"
)

const dateLayout = "2006-01-02"

// JobStore is the persistence surface the job handlers need; *jobs.Repo satisfies it.
type JobStore interface {
	Create(ctx context.Context, j *jobs.Job) (*jobs.Job, error)
	FindByID(ctx context.Context, id uuid.UUID) (*jobs.Job, error)
	FindByTrackingCode(ctx context.Context, code string) (*jobs.Job, error)
	List(ctx context.Context) ([]*jobs.Job, error)
	Update(ctx context.Context, id uuid.UUID, u jobs.UpdateFields) (*jobs.Job, error)
	Delete(ctx context.Context, id uuid.UUID) error
	CreateStatus(ctx context.Context, s *jobs.StatusUpdate) (*jobs.StatusUpdate, error)
	ListStatus(ctx context.Context, jobID *uuid.UUID) ([]*jobs.StatusUpdate, error)
	DeleteStatus(ctx context.Context, id uuid.UUID) error
}

// TrackingNotifier emails the customer their tracking code. Best-effort:
// failures are logged, never returned to the client.
type TrackingNotifier interface {
	SendTrackingCode(to, receiverName, trackingCode string) mailer.Result
}

// --- POST /jobs ---

type CreateJobRequest struct {
	CargoType        string  `json:"cargo_type" binding:"required"`
	ReceiverName     string  `json:"receiver_name" binding:"required"`
	ContactNumber    string  `json:"contact_number" binding:"required"`
	Email            string  `json:"email" binding:"required,email"`
	RecipientAddress string  `json:"recipient_address" binding:"required"`
	RecipientCountry string  `json:"recipient_country" binding:"required"`
	Commodity        string  `json:"commodity" binding:"required"`
	NumberOfPackages int     `json:"number_of_packages" binding:"required,gt=0"`
	Weight           float64 `json:"weight" binding:"required,gt=0"`
	Volume           float64 `json:"volume" binding:"required,gt=0"`
	Origin           string  `json:"origin" binding:"required"`
	Destination      string  `json:"destination" binding:"required"`
	CargoRefNumber   string  `json:"cargo_ref_number" binding:"required"`
	CollectionDate   string  `json:"collection_date" binding:"required"`
	TimeOfDeparture  string  `json:"time_of_departure" binding:"required"`
	TimeOfArrival    string  `json:"time_of_arrival" binding:"required"`
}

func CreateJob(store JobStore, notifier TrackingNotifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateJobRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, http.StatusBadRequest, err.Error())
			return
		}
		cargoType := jobs.CargoType(req.CargoType)
		if !cargoType.Valid() {
			response.Error(c, http.StatusBadRequest, "cargo_type must be one of: air, door_to_door, land, sea")
			return
		}
		collectionDate, err := time.Parse(dateLayout, req.CollectionDate)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "collection_date must be YYYY-MM-DD")
			return
		}
		if !validClockTime(req.TimeOfDeparture) || !validClockTime(req.TimeOfArrival) {
			response.Error(c, http.StatusBadRequest, "time_of_departure and time_of_arrival must be HH:MM")
			return
		}

		ctx, cancel := reqContext(c)
		defer cancel()

		created, err := store.Create(ctx, &jobs.Job{
			CargoType:        cargoType,
			ReceiverName:     req.ReceiverName,
			ContactNumber:    req.ContactNumber,
			Email:            req.Email,
			RecipientAddress: req.RecipientAddress,
			RecipientCountry: req.RecipientCountry,
			Commodity:        req.Commodity,
			NumberOfPackages: req.NumberOfPackages,
			Weight:           req.Weight,
			Volume:           req.Volume,
			Origin:           req.Origin,
			Destination:      req.Destination,
			CargoRefNumber:   req.CargoRefNumber,
			CollectionDate:   collectionDate,
			TimeOfDeparture:  req.TimeOfDeparture,
			TimeOfArrival:    req.TimeOfArrival,
		})
		if errors.Is(err, jobs.ErrRefCodeTaken) {
			response.Error(c, http.StatusConflict, err.Error())
			return
		}
		if err != nil {
			log.Printf("[jobs] create: %v", err)
			response.Error(c, http.StatusInternalServerError, "internal error")
			return
		}

		if notifier != nil {
			if res := notifier.SendTrackingCode(created.Email, created.ReceiverName, created.TrackingCode); !res.Sent {
				log.Printf("[jobs] tracking email for %s not sent: %s", created.TrackingCode, res.Reason)
			}
		}

		response.Success(c, http.StatusCreated, response.MsgCreated, created)
	}
}

// --- GET /jobs ---

func ListJobs(store JobStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := reqContext(c)
		defer cancel()

		list, err := store.List(ctx)
		if err != nil {
			log.Printf("[jobs] list: %v", err)
			response.Error(c, http.StatusInternalServerError, "internal error")
			return
		}
		if list == nil {
			list = []*jobs.Job{}
		}
		response.Success(c, http.StatusOK, response.MsgSuccess, list)
	}
}

// --- GET /jobs/:id ---

func GetJob(store JobStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			response.Error(c, http.StatusBadRequest, "invalid job id")
			return
		}

		ctx, cancel := reqContext(c)
		defer cancel()

		j, err := store.FindByID(ctx, id)
		if errors.Is(err, jobs.ErrNotFound) {
			response.Error(c, http.StatusNotFound, err.Error())
			return
		}
		if err != nil {
			log.Printf("[jobs] get: %v", err)
			response.Error(c, http.StatusInternalServerError, "internal error")
			return
		}
		response.Success(c, http.StatusOK, response.MsgSuccess, j)
	}
}

// --- PATCH /jobs/:id ---

type UpdateJobRequest struct {
	CargoType        *string  `json:"cargo_type"`
	ReceiverName     *string  `json:"receiver_name"`
	ContactNumber    *string  `json:"contact_number"`
	Email            *string  `json:"email" binding:"omitempty,email"`
	RecipientAddress *string  `json:"recipient_address"`
	RecipientCountry *string  `json:"recipient_country"`
	Commodity        *string  `json:"commodity"`
	NumberOfPackages *int     `json:"number_of_packages" binding:"omitempty,gt=0"`
	Weight           *float64 `json:"weight" binding:"omitempty,gt=0"`
	Volume           *float64 `json:"volume" binding:"omitempty,gt=0"`
	Origin           *string  `json:"origin"`
	Destination      *string  `json:"destination"`
	CollectionDate   *string  `json:"collection_date"`
	TimeOfDeparture  *string  `json:"time_of_departure"`
	TimeOfArrival    *string  `json:"time_of_arrival"`
}

func UpdateJob(store JobStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			response.Error(c, http.StatusBadRequest, "invalid job id")
			return
		}
		var req UpdateJobRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, http.StatusBadRequest, err.Error())
			return
		}

		u := jobs.UpdateFields{
			ReceiverName:     req.ReceiverName,
			ContactNumber:    req.ContactNumber,
			Email:            req.Email,
			RecipientAddress: req.RecipientAddress,
			RecipientCountry: req.RecipientCountry,
			Commodity:        req.Commodity,
			NumberOfPackages: req.NumberOfPackages,
			Weight:           req.Weight,
			Volume:           req.Volume,
			Origin:           req.Origin,
			Destination:      req.Destination,
			TimeOfDeparture:  req.TimeOfDeparture,
			TimeOfArrival:    req.TimeOfArrival,
		}
		if req.CargoType != nil {
			ct := jobs.CargoType(*req.CargoType)
			if !ct.Valid() {
				response.Error(c, http.StatusBadRequest, "cargo_type must be one of: air, door_to_door, land, sea")
				return
			}
			u.CargoType = &ct
		}
		if req.CollectionDate != nil {
			d, err := time.Parse(dateLayout, *req.CollectionDate)
			if err != nil {
				response.Error(c, http.StatusBadRequest, "collection_date must be YYYY-MM-DD")
				return
			}
			u.CollectionDate = &d
		}
		if (req.TimeOfDeparture != nil && !validClockTime(*req.TimeOfDeparture)) ||
			(req.TimeOfArrival != nil && !validClockTime(*req.TimeOfArrival)) {
			response.Error(c, http.StatusBadRequest, "time_of_departure and time_of_arrival must be HH:MM")
			return
		}

		ctx, cancel := reqContext(c)
		defer cancel()

		j, err := store.Update(ctx, id, u)
		if errors.Is(err, jobs.ErrNotFound) {
			response.Error(c, http.StatusNotFound, err.Error())
			return
		}
		if err != nil {
			log.Printf("[jobs] update: %v", err)
			response.Error(c, http.StatusInternalServerError, "internal error")
			return
		}
		response.Success(c, http.StatusOK, response.MsgSuccess, j)
	}
}

// --- DELETE /jobs/:id ---

func DeleteJob(store JobStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			response.Error(c, http.StatusBadRequest, "invalid job id")
			return
		}

		ctx, cancel := reqContext(c)
		defer cancel()

		err = store.Delete(ctx, id)
		if errors.Is(err, jobs.ErrNotFound) {
			response.Error(c, http.StatusNotFound, err.Error())
			return
		}
		if err != nil {
			log.Printf("[jobs] delete: %v", err)
			response.Error(c, http.StatusInternalServerError, "internal error")
			return
		}
		response.Success(c, http.StatusOK, response.MsgDeleted, nil)
	}
}

// --- GET /track/:code (public) ---

type TrackResponse struct {
	Job           *jobs.Job            `json:"job"`
	StatusUpdates []*jobs.StatusUpdate `json:"status_updates"`
}

func TrackShipment(store JobStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		code := c.Param("code")
		if code == "" {
			response.Error(c, http.StatusBadRequest, "tracking code is required")
			return
		}

		ctx, cancel := reqContext(c)
		defer cancel()

		j, err := store.FindByTrackingCode(ctx, code)
		if errors.Is(err, jobs.ErrNotFound) {
			response.Error(c, http.StatusNotFound, "no shipment with this tracking code")
			return
		}
		if err != nil {
			log.Printf("[jobs] track: %v", err)
			response.Error(c, http.StatusInternalServerError, "internal error")
			return
		}
		updates, err := store.ListStatus(ctx, &j.ID)
		if err != nil {
			log.Printf("[jobs] track statuses: %v", err)
			response.Error(c, http.StatusInternalServerError, "internal error")
			return
		}
		if updates == nil {
			updates = []*jobs.StatusUpdate{}
		}
		response.Success(c, http.StatusOK, response.MsgSuccess, TrackResponse{Job: j, StatusUpdates: updates})
	}
}

// validClockTime accepts 24-hour HH:MM.
func validClockTime(s string) bool {
	_, err := time.Parse("15:04", s)
	return err == nil
}
