package parse

import (
	"regexp"
	"strings"
	"time"

	"airline-ops-backend/internal/access"
	"airline-ops-backend/internal/domain"
)

// DateLayout is the wire and storage format for calendar dates.
const DateLayout = "2006-01-02"

var (
	idRe       = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]{0,31}$`)
	usernameRe = regexp.MustCompile(`^[A-Za-z0-9_.-]{3,64}$`)
	roleIDRes  = map[access.Role]*regexp.Regexp{
		access.RoleTechnician: regexp.MustCompile(`^T\d{3,}$`),
		access.RolePilot:      regexp.MustCompile(`^P\d{3,}$`),
		access.RoleCustomer:   regexp.MustCompile(`^\d+$`),
	}
)

// ID validates a record identifier such as a flight instance, plane or repair code.
func ID(field, raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", domain.ValidationError{Field: field, Msg: "must not be empty"}
	}
	if !idRe.MatchString(s) {
		return "", domain.ValidationError{Field: field, Msg: "must be 1-32 letters, digits, '-' or '_'"}
	}
	return s, nil
}

// Date validates a YYYY-MM-DD calendar date.
func Date(field, raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", domain.ValidationError{Field: field, Msg: "must not be empty"}
	}
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return "", domain.ValidationError{Field: field, Msg: "must be a date in YYYY-MM-DD form", Err: err}
	}
	return d.Format(DateLayout), nil
}

// DateRange validates an inclusive from/to pair.
func DateRange(rawFrom, rawTo string) (string, string, error) {
	from, err := Date("from", rawFrom)
	if err != nil {
		return "", "", err
	}
	to, err := Date("to", rawTo)
	if err != nil {
		return "", "", err
	}
	if from > to {
		return "", "", domain.ValidationError{Field: "to", Msg: "must not be before from"}
	}
	return from, to, nil
}

// Username validates an account name.
func Username(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if !usernameRe.MatchString(s) {
		return "", domain.ValidationError{Field: "username", Msg: "must be 3-64 letters, digits, '.', '-' or '_'"}
	}
	return s, nil
}

// Password enforces the minimum password length.
func Password(raw string) error {
	if len(raw) < 8 {
		return domain.ValidationError{Field: "password", Msg: "must be at least 8 characters"}
	}
	return nil
}

// Role parses an account role at the account-creation boundary.
func Role(raw string) (access.Role, error) {
	r, err := access.ParseRole(raw)
	if err != nil {
		return "", domain.ValidationError{Field: "role", Msg: "must be one of Management, Customer, Pilot, Technician", Err: err}
	}
	return r, nil
}

// RoleID validates a role-scoped identifier (T001, P001, 42) for the given role.
func RoleID(field string, role access.Role, raw string) (string, error) {
	s := strings.TrimSpace(raw)
	re, ok := roleIDRes[role]
	if !ok || !re.MatchString(s) {
		return "", domain.ValidationError{Field: field, Msg: "not a valid " + strings.ToLower(string(role)) + " id"}
	}
	return s, nil
}
