package entity

// ResultStatus is the outcome of a connectivity check.
type ResultStatus string

const (
	ResultSuccess ResultStatus = "SUCCESS"
	ResultFail    ResultStatus = "FAIL"
)

// Error codes reported by storage connectivity checks.
const (
	ErrorCodeStorageConnection = "ENVCH-1569"
	ErrorCodeStorageAuth       = "ENVCH-1570"
)

// ConnectivityResult is what check-storage reports back.
type ConnectivityResult struct {
	Status    ResultStatus `json:"status"`
	Message   string       `json:"message"`
	Details   string       `json:"details,omitempty"`
	ErrorCode string       `json:"error_code,omitempty"`
}
