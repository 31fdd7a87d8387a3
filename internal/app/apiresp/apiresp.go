// Package apiresp writes the portal's uniform response envelope. Every
// endpoint, success or failure, answers with {data, error, status, meta}
// so clients never branch on response shape.
package apiresp

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
)

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type Meta struct {
	RequestID string `json:"request_id,omitempty"`
}

type Envelope struct {
	Data   interface{}   `json:"data,omitempty"`
	Error  *ErrorPayload `json:"error,omitempty"`
	Status int           `json:"status"`
	Meta   Meta          `json:"meta"`
}

func WriteData(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	write(w, r, status, data, "")
}

func WriteError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	write(w, r, status, nil, msg)
}

// WriteErrorData reports a failure that still carries a payload, such as
// a booking conflict answered with the refreshed availability.
func WriteErrorData(w http.ResponseWriter, r *http.Request, status int, msg string, data interface{}) {
	write(w, r, status, data, msg)
}

func write(w http.ResponseWriter, r *http.Request, status int, data interface{}, errMsg string) {
	res := Envelope{
		Status: status,
		Meta: Meta{
			RequestID: middleware.GetReqID(r.Context()),
		},
	}
	if status >= 400 {
		if errMsg == "" {
			errMsg = http.StatusText(status)
		}
		res.Error = &ErrorPayload{
			Code:    codeFromStatus(status),
			Message: errMsg,
		}
	}
	res.Data = data

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(res)
}

func codeFromStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "invalid_request"
	case http.StatusUnauthorized:
		return "unauthorized"
	case http.StatusForbidden:
		return "forbidden"
	case http.StatusNotFound:
		return "not_found"
	case http.StatusConflict:
		return "conflict"
	case http.StatusUnprocessableEntity:
		return "unprocessable_entity"
	case http.StatusTooManyRequests:
		return "rate_limited"
	case http.StatusBadGateway:
		return "upstream_error"
	case http.StatusInternalServerError:
		return "internal_error"
	default:
		if status >= 200 && status < 300 {
			return ""
		}
		return "error"
	}
}
