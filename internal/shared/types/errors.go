package types

import "errors"

var (
	ErrMissingNamespace   = errors.New("can't write validation result record - namespace is empty")
	ErrMissingStatus      = errors.New("can't write validation result record - status is not a valid check status")
	ErrResultDumpNotFound = errors.New("result dump file not found")
	ErrBucketUnavailable  = errors.New("unexpected error when trying to check S3 bucket existence")
	ErrInvalidConfig      = errors.New("invalid storage configuration")
	ErrUnknownStatus      = errors.New("unknown check status")
)
