package api

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Fallback messages shown when the backend gives no usable detail.
const (
	MsgLogin             = "Login failed"
	MsgUserAchievements  = "Failed to fetch achievements"
	MsgCatalog           = "Failed to fetch all achievements"
	MsgUsers             = "Failed to fetch users"
	MsgUpdateAchievement = "Failed to update achievement"
	MsgDeleteUser        = "Failed to delete user"
	MsgStatistics        = "Failed to fetch statistics"
	MsgUserStatistics    = "Failed to fetch user statistics"
	MsgHealth            = "Backend is not reachable"
)

// Error is the uniform failure of a backend call. Its message is meant for the user as-is.
type Error struct {
	// Fallback message of the operation
	Op     string
	Status int
	// Backend-reported detail, empty for network and decode failures
	Detail string
	Err    error
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return e.Detail
	}

	return e.Op
}

func (e *Error) Unwrap() error {
	return e.Err
}

// errorBody is the backend error shape. Validation failures carry a list instead of a string.
type errorBody struct {
	Detail json.RawMessage `json:"detail"`
}

func detailFromBody(body []byte) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil || len(eb.Detail) == 0 {
		return ""
	}

	var detail string
	if err := json.Unmarshal(eb.Detail, &detail); err != nil {
		return ""
	}

	return strings.TrimSpace(detail)
}

func newStatusError(op string, status int, body []byte) *Error {
	return &Error{
		Op:     op,
		Status: status,
		Detail: detailFromBody(body),
		Err:    fmt.Errorf("unexpected status %d", status),
	}
}
