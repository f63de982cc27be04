// TasteMatch - Restaurant Discovery and Hybrid Recommendations
// Copyright 2026 TasteMatch contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tastematch/tastematch

// Package models defines the wire types shared by all HTTP endpoints.
package models

import (
	"time"
)

// APIResponse is the standardized response wrapper used by every endpoint.
//
// Status field values:
//   - "success": Request completed, see Data
//   - "error": Request failed, see Error
//
// Example successful response:
//
//	{
//	  "status": "success",
//	  "data": {"recommendations": [...]},
//	  "metadata": {"timestamp": "2026-09-01T12:00:00Z", "query_time_ms": 4}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata carries per-response observability fields.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
	RequestID   string    `json:"request_id,omitempty"`
}

// APIError is the structured error payload.
//
// Common error codes:
//   - VALIDATION_ERROR: invalid input parameters
//   - NOT_FOUND: resource doesn't exist
//   - TRAINING_ERROR: model rebuild failed
//   - INTERNAL_ERROR: unexpected server failure
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// RecommendationsData is the payload of the recommendations endpoint.
type RecommendationsData struct {
	Recommendations interface{} `json:"recommendations"`
	Count           int         `json:"count"`
}

// HealthData is the payload of the health endpoint.
type HealthData struct {
	Status      string `json:"status"`
	Version     string `json:"version"`
	Trained     bool   `json:"trained"`
	Restaurants int    `json:"restaurants"`
}
