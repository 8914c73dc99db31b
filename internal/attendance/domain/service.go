package domain

import (
	"context"
	"errors"
)

type RecordAttendanceRequest struct {
	MemberID string
	// Date defaults to today when empty; format YYYY-MM-DD.
	Date  string
	Site  string
	Shift string
}

type ListAttendanceRequest struct {
	MemberID string
	Date     string
	Site     string
	Limit    int
}

type ListAttendanceResponse struct {
	Attendances []Attendance `json:"attendances"`
	Total       int64        `json:"total"`
}

type DailySummary struct {
	Date    string       `json:"date"`
	Present int64        `json:"present"`
	Groups  []GroupCount `json:"groups"`
}

type Service interface {
	Record(ctx context.Context, req RecordAttendanceRequest) (Attendance, error)
	List(ctx context.Context, req ListAttendanceRequest) (ListAttendanceResponse, error)
	Today(ctx context.Context) (DailySummary, error)
}

var (
	ErrInvalidID      = errors.New("invalid_id")
	ErrInvalidDate    = errors.New("invalid_date")
	ErrInvalidSite    = errors.New("invalid_site")
	ErrMemberInactive = errors.New("member_inactive")
)
