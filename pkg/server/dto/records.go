package dto

import (
	"errors"
	"strings"

	"github.com/nodelens/nodelens/pkg/types"
)

// UpsertRecordRequest is the body of PUT /api/v1/records. Properties accept
// strings, numbers, booleans, and lists of strings; unsupported value shapes
// are dropped during decoding.
type UpsertRecordRequest struct {
	Uuid       string                 `json:"uuid,omitempty"`
	Labels     []string               `json:"labels" binding:"required"`
	Properties map[string]interface{} `json:"properties"`
}

// Validate performs validation on UpsertRecordRequest
func (r *UpsertRecordRequest) Validate() error {
	if len(r.Labels) == 0 {
		return errors.New("labels cannot be empty")
	}
	for _, label := range r.Labels {
		if strings.TrimSpace(label) == "" {
			return errors.New("labels cannot contain blank entries")
		}
	}
	return nil
}

// ToRecord converts the request into a store record.
func (r *UpsertRecordRequest) ToRecord() *types.Record {
	return &types.Record{
		Uuid:       r.Uuid,
		Labels:     r.Labels,
		Properties: types.DecodeProperties(r.Properties),
	}
}

// RecordResponse is the public form of a stored record.
type RecordResponse struct {
	Uuid       string           `json:"uuid"`
	Labels     []string         `json:"labels"`
	Properties types.Properties `json:"properties"`
}

// FromRecord projects a record into its response form.
func FromRecord(record *types.Record) *RecordResponse {
	return &RecordResponse{
		Uuid:       record.Uuid,
		Labels:     record.Labels,
		Properties: record.Properties,
	}
}

// UpsertRecordResponse acknowledges a write.
type UpsertRecordResponse struct {
	Uuid string `json:"uuid"`
}

// LabelsResponse lists the distinct labels in the store.
type LabelsResponse struct {
	Labels []string `json:"labels"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the signed bearer token.
type LoginResponse struct {
	Token string `json:"token"`
}
