package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/diillson/envcheck-reports/internal/domain/entity"
)

const dateLayout = "2006-01-02"

// DateFromUnix formats unix seconds as a UTC calendar date.
func DateFromUnix(seconds int64) string {
	return time.Unix(seconds, 0).UTC().Format(dateLayout)
}

// ReportKey builds {cloud}/{initiator}/{date}/{scope_}{env_}{report}_{timestamp}.zip.
// LastRun is in milliseconds; the date is derived from its whole seconds.
func ReportKey(cloud string, data entity.ExecutionData) string {
	return fmt.Sprintf("%s/%s/%s/%s%s%s_%d.zip",
		cloud,
		data.Initiator,
		DateFromUnix(data.LastRun/1000),
		optionalSegment(data.Scope),
		optionalSegment(data.Env),
		data.ReportName,
		data.LastRun,
	)
}

// BulkTableKey builds {cloud}/{initiator}/{date}/{bulk}Table_{timestamp}Table.html.
func BulkTableKey(cloud, initiator, bulkName string, unixSeconds int64) string {
	return fmt.Sprintf("%s/%s/%s/%sTable_%dTable.html",
		cloud, initiator, DateFromUnix(unixSeconds), bulkName, unixSeconds)
}

// LegacyReportKey builds reports/{initiator}/{report}_{timestamp}.zip.
func LegacyReportKey(initiator, reportName string, timestamp int64) string {
	return fmt.Sprintf("reports/%s/%s_%d.zip", initiator, strings.ToLower(reportName), timestamp)
}

// ReportURL is where an uploaded object can be downloaded from (auth required).
func ReportURL(serverURL, bucket, key string) string {
	return fmt.Sprintf("%s/%s/%s", strings.TrimRight(serverURL, "/"), bucket, key)
}

func optionalSegment(v string) string {
	if v == entity.NullSegment || v == "" {
		return ""
	}
	return v + "_"
}
