package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
)

var (
	// ErrNotFound means the registry has no case for the given id or code.
	ErrNotFound = errors.New("case not found in registry")
	// ErrSlotTaken means someone else booked the slot first.
	ErrSlotTaken = errors.New("appointment slot already taken")
)

// CaseRecord is the registry's flat wire shape for a trámite. Optional
// stages stay as pointers so an unreached stage serializes as absent
// rather than as a zero value.
type CaseRecord struct {
	TramiteID            string   `json:"tramiteId"`
	Nombre               string   `json:"nombre"`
	ApellidoPaterno      string   `json:"apellidoPaterno"`
	ApellidoMaterno      string   `json:"apellidoMaterno"`
	FechaNacimiento      string   `json:"fechaNacimiento"`
	CURP                 string   `json:"curp"`
	Email                string   `json:"email"`
	Telefono             string   `json:"telefono"`
	Direccion            string   `json:"direccion"`
	LicenseType          string   `json:"licenseType,omitempty"`
	CurrentStep          int      `json:"currentStep"`
	Status               string   `json:"status"`
	ExamPassed           *bool    `json:"examPassed,omitempty"`
	ExamScore            *int     `json:"examScore,omitempty"`
	AppointmentDate      string   `json:"appointmentDate,omitempty"`
	AppointmentTime      string   `json:"appointmentTime,omitempty"`
	AppointmentCode      string   `json:"appointmentCode,omitempty"`
	SimulatorPassed      *bool    `json:"simulatorPassed,omitempty"`
	SimulatorScore       *int     `json:"simulatorScore,omitempty"`
	SimulatorFeedback    []string `json:"simulatorFeedback,omitempty"`
	SimulatorCompletedAt string   `json:"simulatorCompletedAt,omitempty"`
	CreatedAt            string   `json:"createdAt"`
	UpdatedAt            string   `json:"updatedAt"`
}

// Slot is one bookable simulator slot.
type Slot struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

type bookSlotRequest struct {
	TramiteID string `json:"tramiteId"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Code      string `json:"code"`
}

func (c *Client) CreateCase(ctx context.Context, rec CaseRecord) (*CaseRecord, error) {
	res := c.Request(ctx, "/tramites", RequestOptions{
		Method: http.MethodPost,
		Body:   rec,
		Pool:   PoolCitizen,
	})
	return decodeCase(res)
}

func (c *Client) GetCase(ctx context.Context, tramiteID string, pool Pool) (*CaseRecord, error) {
	res := c.Request(ctx, "/tramites/"+url.PathEscape(tramiteID), RequestOptions{Pool: pool})
	return decodeCase(res)
}

func (c *Client) ListCases(ctx context.Context) ([]CaseRecord, error) {
	res := c.Request(ctx, "/tramites", RequestOptions{Pool: PoolAdmin})
	if !res.OK() {
		return nil, resultError(res)
	}
	var out []CaseRecord
	if err := json.Unmarshal(res.Data, &out); err != nil {
		return nil, fmt.Errorf("decode case list: %w", err)
	}
	return out, nil
}

func (c *Client) UpdateCase(ctx context.Context, tramiteID string, rec CaseRecord, pool Pool) (*CaseRecord, error) {
	res := c.Request(ctx, "/tramites/"+url.PathEscape(tramiteID), RequestOptions{
		Method: http.MethodPut,
		Body:   rec,
		Pool:   pool,
	})
	return decodeCase(res)
}

// SearchCase looks a case up by trámite id or by appointment code.
func (c *Client) SearchCase(ctx context.Context, query string) (*CaseRecord, error) {
	res := c.Request(ctx, "/tramites/buscar?q="+url.QueryEscape(query), RequestOptions{Pool: PoolPublic})
	return decodeCase(res)
}

func (c *Client) Availability(ctx context.Context) ([]Slot, error) {
	res := c.Request(ctx, "/citas/disponibilidad", RequestOptions{Pool: PoolCitizen})
	if !res.OK() {
		return nil, resultError(res)
	}
	var out []Slot
	if err := json.Unmarshal(res.Data, &out); err != nil {
		return nil, fmt.Errorf("decode availability: %w", err)
	}
	return out, nil
}

// BookSlot reserves a slot for the case. A 409 from the registry means
// the slot went to someone else between the availability fetch and this
// call.
func (c *Client) BookSlot(ctx context.Context, tramiteID, date, timeSlot, code string) (*CaseRecord, error) {
	res := c.Request(ctx, "/citas", RequestOptions{
		Method: http.MethodPost,
		Body:   bookSlotRequest{TramiteID: tramiteID, Date: date, Time: timeSlot, Code: code},
		Pool:   PoolCitizen,
	})
	if res.Status == http.StatusConflict {
		return nil, ErrSlotTaken
	}
	return decodeCase(res)
}

func decodeCase(res Result) (*CaseRecord, error) {
	if res.Status == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if !res.OK() {
		return nil, resultError(res)
	}
	var rec CaseRecord
	if err := json.Unmarshal(res.Data, &rec); err != nil {
		return nil, fmt.Errorf("decode case record: %w", err)
	}
	return &rec, nil
}

func resultError(res Result) error {
	if res.Status == 0 {
		return fmt.Errorf("registry call failed: %s", res.Error)
	}
	return fmt.Errorf("registry error (status %d): %s", res.Status, res.Error)
}
