package listing

import (
	"strconv"
	"strings"
)

// ItemsPerPage is the fixed page size of the employee table.
const ItemsPerPage = 10

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

type SortKey string

const (
	SortNone       SortKey = ""
	SortID         SortKey = "id"
	SortFirstName  SortKey = "firstName"
	SortEmail      SortKey = "email"
	SortPosition   SortKey = "position"
	SortDepartment SortKey = "department"
)

var sortKeys = map[string]SortKey{
	"id":         SortID,
	"firstname":  SortFirstName,
	"first_name": SortFirstName,
	"email":      SortEmail,
	"position":   SortPosition,
	"department": SortDepartment,
}

// ParseSortKey maps user input to a known key. Unknown input yields SortNone.
func ParseSortKey(s string) SortKey {
	return sortKeys[strings.ToLower(strings.TrimSpace(s))]
}

// ParseSortDirection defaults to ascending for anything but "desc".
func ParseSortDirection(s string) SortDirection {
	if strings.EqualFold(strings.TrimSpace(s), string(SortDesc)) {
		return SortDesc
	}
	return SortAsc
}

// ParsePage returns the page number carried by s, or 1 when s is not a positive integer.
func ParsePage(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// Params describes one view of the employee table.
type Params struct {
	Query      string
	Department string
	Position   string
	SortKey    SortKey
	SortDir    SortDirection
	Page       int
}

func DefaultParams() Params {
	return Params{SortDir: SortAsc, Page: 1}
}
