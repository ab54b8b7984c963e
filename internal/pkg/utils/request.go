package utils

import (
	"medibook-service/internal/pkg/constvars"
	"medibook-service/internal/pkg/dto/requests"
	"medibook-service/internal/pkg/exceptions"
	"net/http"
	"strconv"
	"time"
)

func BuildPaginationRequest(r *http.Request) *requests.Pagination {
	pageStr := r.URL.Query().Get("page")
	pageSizeStr := r.URL.Query().Get("page_size")

	page, err := strconv.Atoi(pageStr)
	if err != nil || page <= 0 {
		page = 1
	}

	pageSize, err := strconv.Atoi(pageSizeStr)
	if err != nil || pageSize <= 0 {
		pageSize = 20
	}

	return &requests.Pagination{
		Page:     page,
		PageSize: pageSize,
	}
}

// BuildAppointmentListFilter reads status/from/to query parameters.
// from and to are RFC 3339 instants; malformed values are a validation error.
func BuildAppointmentListFilter(r *http.Request) (*requests.AppointmentListFilter, error) {
	filter := &requests.AppointmentListFilter{
		Status: r.URL.Query().Get("status"),
	}

	if fromStr := r.URL.Query().Get("from"); fromStr != "" {
		from, err := time.Parse(time.RFC3339, fromStr)
		if err != nil {
			return nil, exceptions.ErrCannotParseDate(err)
		}
		filter.From = &from
	}
	if toStr := r.URL.Query().Get("to"); toStr != "" {
		to, err := time.Parse(time.RFC3339, toStr)
		if err != nil {
			return nil, exceptions.ErrCannotParseDate(err)
		}
		filter.To = &to
	}

	return filter, nil
}

// ParseDateParam parses a YYYY-MM-DD query parameter into a calendar date
// anchored at midnight in the supplied location.
func ParseDateParam(r *http.Request, param string, loc *time.Location) (time.Time, error) {
	dateStr := r.URL.Query().Get(param)
	if dateStr == "" {
		return time.Time{}, exceptions.ErrCannotParseDate(nil)
	}
	parsed, err := time.ParseInLocation(constvars.DateFormatYYYYMMDD, dateStr, loc)
	if err != nil {
		return time.Time{}, exceptions.ErrCannotParseDate(err)
	}
	return parsed, nil
}
