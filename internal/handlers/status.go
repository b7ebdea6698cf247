package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/marketbytes-devops/alameinmovers/internal/jobs"
	"github.com/marketbytes-devops/alameinmovers/internal/response"
)

type CreateStatusRequest struct {
	JobID         string `json:"job" binding:"required"`
	StatusContent string `json:"status_content" binding:"required"`
	StatusDate    string `json:"status_date" binding:"required"`
	StatusTime    string `json:"status_time" binding:"required"`
}

func CreateStatusUpdate(store JobStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, http.StatusBadRequest, err.Error())
			return
		}
		jobID, err := uuid.Parse(req.JobID)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "invalid job id")
			return
		}
		statusDate, err := time.Parse(dateLayout, req.StatusDate)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "status_date must be YYYY-MM-DD")
			return
		}
		if !validClockTime(req.StatusTime) {
			response.Error(c, http.StatusBadRequest, "status_time must be HH:MM")
			return
		}

		ctx, cancel := reqContext(c)
		defer cancel()

		created, err := store.CreateStatus(ctx, &jobs.StatusUpdate{
			JobID:         jobID,
			StatusContent: req.StatusContent,
			StatusDate:    statusDate,
			StatusTime:    req.StatusTime,
		})
		if errors.Is(err, jobs.ErrNotFound) {
			response.Error(c, http.StatusBadRequest, "job does not exist")
			return
		}
		if err != nil {
			log.Printf("[status] create: %v", err)
			response.Error(c, http.StatusInternalServerError, "internal error")
			return
		}
		response.Success(c, http.StatusCreated, response.MsgCreated, created)
	}
}

// ListStatusUpdates returns every status row, newest first. Pass ?job_id=<uuid>
// to narrow to a single job's timeline.
func ListStatusUpdates(store JobStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var jobID *uuid.UUID
		if raw := c.Query("job_id"); raw != "" {
			id, err := uuid.Parse(raw)
			if err != nil {
				response.Error(c, http.StatusBadRequest, "invalid job id")
				return
			}
			jobID = &id
		}

		ctx, cancel := reqContext(c)
		defer cancel()

		list, err := store.ListStatus(ctx, jobID)
		if err != nil {
			log.Printf("[status] list: %v", err)
			response.Error(c, http.StatusInternalServerError, "internal error")
			return
		}
		if list == nil {
			list = []*jobs.StatusUpdate{}
		}
		response.Success(c, http.StatusOK, response.MsgSuccess, list)
	}
}

func DeleteStatusUpdate(store JobStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			response.Error(c, http.StatusBadRequest, "invalid status update id")
			return
		}

		ctx, cancel := reqContext(c)
		defer cancel()

		err = store.DeleteStatus(ctx, id)
		if errors.Is(err, jobs.ErrNotFound) {
			response.Error(c, http.StatusNotFound, err.Error())
			return
		}
		if err != nil {
			log.Printf("[status] delete: %v", err)
			response.Error(c, http.StatusInternalServerError, "internal error")
			return
		}
		response.Success(c, http.StatusOK, response.MsgDeleted, nil)
	}
}
