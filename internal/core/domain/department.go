package domain

import (
	"errors"
	"regexp"
	"strings"
)

var (
	ErrBrandRequired     = errors.New("brand id is required")
	ErrInvalidDepartment = errors.New("invalid department code (lowercase letters, digits and dashes, 2-32 chars)")
)

var departmentRegex = regexp.MustCompile(`^[a-z][a-z0-9-]{1,31}$`)

const (
	DeptMarketing  = "marketing"
	DeptSales      = "sales"
	DeptAccounts   = "accounts"
	DeptOperations = "operations"
	DeptHR         = "hr"
	DeptLeadership = "leadership"
)

type DepartmentInfo struct {
	Code string `json:"code"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// KnownDepartments is the default department set every brand starts with.
// Brands may use other codes as long as they are valid slugs.
var KnownDepartments = []DepartmentInfo{
	{Code: DeptMarketing, Name: "Marketing", Icon: "megaphone"},
	{Code: DeptSales, Name: "Sales", Icon: "trending-up"},
	{Code: DeptAccounts, Name: "Accounts", Icon: "wallet"},
	{Code: DeptOperations, Name: "Operations", Icon: "settings"},
	{Code: DeptHR, Name: "HR", Icon: "users"},
	{Code: DeptLeadership, Name: "Leadership", Icon: "crown"},
}

func NormalizeDepartment(code string) (string, error) {
	code = strings.ToLower(strings.TrimSpace(code))
	if !departmentRegex.MatchString(code) {
		return "", ErrInvalidDepartment
	}
	return code, nil
}

func LookupDepartment(code string) DepartmentInfo {
	for _, d := range KnownDepartments {
		if d.Code == code {
			return d
		}
	}
	name := strings.ReplaceAll(code, "-", " ")
	if name != "" {
		name = strings.ToUpper(name[:1]) + name[1:]
	}
	return DepartmentInfo{Code: code, Name: name, Icon: "folder"}
}

// DepartmentConfig is everything one department of one brand tracks.
type DepartmentConfig struct {
	BrandID        string           `json:"brand_id"`
	Code           string           `json:"code"`
	Name           string           `json:"name"`
	Icon           string           `json:"icon"`
	VictoryTargets []*VictoryTarget `json:"victory_targets"`
	PowerMoves     []*PowerMove     `json:"power_moves"`
	Tasks          []*Task          `json:"tasks"`
	Commitments    []*Commitment    `json:"commitments"`
}

// ListFilter narrows brand-scoped listings. Empty fields match everything;
// Departments, when non-nil, restricts results to that set.
type ListFilter struct {
	BrandID     string
	Department  string
	OwnerID     string
	Departments []string
}

func (f ListFilter) Matches(brandID, department, ownerID string) bool {
	if f.BrandID != "" && f.BrandID != brandID {
		return false
	}
	if f.Department != "" && f.Department != department {
		return false
	}
	if f.OwnerID != "" && f.OwnerID != ownerID {
		return false
	}
	if f.Departments != nil {
		for _, d := range f.Departments {
			if d == department {
				return true
			}
		}
		return false
	}
	return true
}
