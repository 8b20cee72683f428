package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/diillson/envcheck-reports/internal/domain/entity"
)

func TestReportKey(t *testing.T) {
	tests := []struct {
		name string
		data entity.ExecutionData
		want string
	}{
		{
			name: "scope and env",
			data: entity.ExecutionData{Initiator: "jenkins", LastRun: 1700000000123, Scope: "full", Env: "prod", ReportName: "Kafka"},
			want: "dev-cloud/jenkins/2023-11-14/full_prod_Kafka_1700000000123.zip",
		},
		{
			name: "null scope",
			data: entity.ExecutionData{Initiator: "jenkins", LastRun: 1700000000123, Scope: "null", Env: "prod", ReportName: "Kafka"},
			want: "dev-cloud/jenkins/2023-11-14/prod_Kafka_1700000000123.zip",
		},
		{
			name: "null scope and env",
			data: entity.ExecutionData{Initiator: "cron", LastRun: 1700000000123, Scope: "null", Env: "null", ReportName: "Kafka"},
			want: "dev-cloud/cron/2023-11-14/Kafka_1700000000123.zip",
		},
		{
			name: "date is utc",
			data: entity.ExecutionData{Initiator: "cron", LastRun: 1700006399999, Scope: "null", Env: "null", ReportName: "Kafka"},
			want: "dev-cloud/cron/2023-11-14/Kafka_1700006399999.zip",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ReportKey("dev-cloud", tt.data)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, ReportKey("dev-cloud", tt.data), "key must be deterministic")
		})
	}
}

func TestBulkTableKey(t *testing.T) {
	assert.Equal(t,
		"dev-cloud/envchecker/2023-11-14/nightlyTable_1700000000Table.html",
		BulkTableKey("dev-cloud", "envchecker", "nightly", 1700000000))
}

func TestLegacyReportKey(t *testing.T) {
	assert.Equal(t, "reports/jenkins/kafka_health_1700000000123.zip",
		LegacyReportKey("jenkins", "Kafka_Health", 1700000000123))
}

func TestReportURL(t *testing.T) {
	assert.Equal(t, "https://minio.local/reports/a/b.zip", ReportURL("https://minio.local/", "reports", "a/b.zip"))
	assert.Equal(t, "https://minio.local/reports/a/b.zip", ReportURL("https://minio.local", "reports", "a/b.zip"))
}

func TestDateFromUnix(t *testing.T) {
	assert.Equal(t, "1970-01-01", DateFromUnix(0))
	assert.Equal(t, "2024-02-29", DateFromUnix(1709164800))
}
