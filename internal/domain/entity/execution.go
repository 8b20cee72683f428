package entity

// NullSegment is the placeholder notebooks write when scope or env was not set.
const NullSegment = "null"

// ExecutionData represents the metadata of an executed notebook needed to place
// its reports in the bucket.
type ExecutionData struct {
	Initiator  string `json:"initiator"`
	LastRun    int64  `json:"last_run"` // epoch milliseconds
	Scope      string `json:"scope"`
	Env        string `json:"env"`
	ReportName string `json:"report_name"`
	S3Link     string `json:"s3_link,omitempty"`
}

// UploadResult identifies an uploaded object.
type UploadResult struct {
	Key string `json:"key"`
	URL string `json:"url"`
}
