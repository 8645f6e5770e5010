package dto

import (
	"strconv"

	"github.com/orderhub/backend/pkg/response"
)

const (
	DefaultTake = 10
	MaxTake     = 100
)

// Pagination is the envelope metadata returned alongside every list
type Pagination struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	TotalPages int   `json:"totalPages"`
}

// NewPagination derives page arithmetic from offset parameters
func NewPagination(total int64, skip, take int) Pagination {
	totalPages := int((total + int64(take) - 1) / int64(take))
	return Pagination{
		Total:      total,
		Page:       skip/take + 1,
		PageSize:   take,
		TotalPages: totalPages,
	}
}

// ParsePagination validates and coerces skip/take query parameters. Empty
// strings fall back to defaults; invalid values are reported per field.
func ParsePagination(skipStr, takeStr string) (skip, take int, errs []response.FieldError) {
	skip = 0
	take = DefaultTake

	if skipStr != "" {
		v, err := strconv.Atoi(skipStr)
		if err != nil || v < 0 {
			errs = append(errs, response.FieldError{Field: "skip", Message: "skip must be a non-negative integer"})
		} else {
			skip = v
		}
	}

	if takeStr != "" {
		v, err := strconv.Atoi(takeStr)
		if err != nil || v < 1 || v > MaxTake {
			errs = append(errs, response.FieldError{Field: "take", Message: "take must be an integer between 1 and 100"})
		} else {
			take = v
		}
	}

	return skip, take, errs
}
