package entity

import (
	"fmt"
	"strconv"
	"strings"
)

// CheckStatus is the final status of a single validation check.
type CheckStatus int

const (
	CheckStatusOK CheckStatus = iota
	CheckStatusError
	CheckStatusNone
)

var checkStatusNames = map[CheckStatus]string{
	CheckStatusOK:    "OK",
	CheckStatusError: "ERROR",
	CheckStatusNone:  "NONE",
}

// Valid reports whether s is one of the known statuses.
func (s CheckStatus) Valid() bool {
	_, ok := checkStatusNames[s]
	return ok
}

func (s CheckStatus) String() string {
	if name, ok := checkStatusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("CheckStatus(%d)", int(s))
}

// ParseCheckStatus accepts either the status name (case-insensitive) or its numeric value.
func ParseCheckStatus(value string) (CheckStatus, error) {
	value = strings.TrimSpace(value)
	for status, name := range checkStatusNames {
		if strings.EqualFold(name, value) {
			return status, nil
		}
	}
	n, err := strconv.Atoi(value)
	if err == nil && CheckStatus(n).Valid() {
		return CheckStatus(n), nil
	}
	return 0, fmt.Errorf("invalid check status %q: expected OK, ERROR or NONE", value)
}

// ValidationRecord is the outcome of one validation for one namespace.
// Records are never modified after they are appended to a ResultDump.
type ValidationRecord struct {
	Namespace string      `yaml:"namespace" json:"namespace"`
	Status    CheckStatus `yaml:"status" json:"status"`
	Message   string      `yaml:"message" json:"message"`
}
