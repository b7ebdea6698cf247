package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/marketbytes-devops/alameinmovers/internal/response"
)

// Health returns 200 in the unified envelope (status, message, data).
func Health(c *gin.Context) {
	response.Success(c, http.StatusOK, "ok", nil)
}

// StatusCodeItem pairs an HTTP code with the message the API uses for it.
type StatusCodeItem struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

var statusCodesList = []StatusCodeItem{
	{http.StatusOK, "success"},
	{http.StatusCreated, "created"},
	{http.StatusBadRequest, "bad request"},
	{http.StatusUnauthorized, "unauthorized"},
	{http.StatusForbidden, "forbidden"},
	{http.StatusNotFound, "not found"},
	{http.StatusConflict, "conflict"},
	{http.StatusTooManyRequests, "too many requests"},
	{http.StatusInternalServerError, "internal server error"},
	{http.StatusServiceUnavailable, "service unavailable"},
}

// StatusCodes lists every status code the API responds with (GET /status-codes).
func StatusCodes(c *gin.Context) {
	response.Success(c, http.StatusOK, response.MsgSuccess, statusCodesList)
}
