package usecase

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diillson/envcheck-reports/internal/domain/entity"
	"github.com/diillson/envcheck-reports/internal/shared/types"
)

const testBucket = "envchecker-reports"

func testConfig(outDir string) *types.Config {
	cfg := &types.Config{
		Storage: types.StorageConfig{
			ServerURL: "https://s3.local",
			AccessKey: "user",
			SecretKey: "secret",
			Bucket:    testBucket,
		},
		CloudName:      "cloud",
		ExpirationDays: 14,
		OutputDir:      outDir,
	}
	cfg.ApplyDefaults()
	return cfg
}

type uploadFixture struct {
	uc       *UploadUseCase
	storage  *fakeStorage
	archive  *fakeArchive
	notebook *fakeNotebook
	metrics  *fakeMetrics
	console  *fakeConsole
}

func newUploadFixture(t *testing.T) *uploadFixture {
	t.Helper()
	f := &uploadFixture{
		storage:  newFakeStorage(),
		archive:  &fakeArchive{},
		notebook: &fakeNotebook{},
		metrics:  newFakeMetrics(),
		console:  &fakeConsole{},
	}
	f.uc = NewUploadUseCase(f.storage, f.archive, f.notebook, f.metrics, f.console, testConfig(t.TempDir()))
	ids := 0
	f.uc.newID = func() string {
		ids++
		return "rule-" + strconv.Itoa(ids)
	}
	f.uc.now = func() time.Time { return time.Unix(1609459200, 0) }
	return f
}

func (f *uploadFixture) rulesFor(prefix string) []entity.LifecycleRule {
	var out []entity.LifecycleRule
	for _, rule := range f.storage.rules[testBucket] {
		if rule.Prefix == prefix {
			out = append(out, rule)
		}
	}
	return out
}

func (f *uploadFixture) logged(level, substr string) bool {
	for _, msg := range f.console.messages {
		if strings.HasPrefix(msg, level+": ") && strings.Contains(msg, substr) {
			return true
		}
	}
	return false
}

func TestEnsureBucketIsIdempotent(t *testing.T) {
	ctx := context.Background()
	f := newUploadFixture(t)

	require.NoError(t, f.uc.EnsureBucket(ctx))
	require.NoError(t, f.uc.EnsureBucket(ctx))

	assert.True(t, f.storage.buckets[testBucket])
	rules := f.rulesFor("cloud/")
	require.Len(t, rules, 1)
	assert.Equal(t, 14, rules[0].ExpirationDays)
	assert.True(t, rules[0].Enabled)
	assert.Equal(t, 1, f.storage.puts)
	assert.Equal(t, 1, f.metrics.lifecycle["created"])
	assert.Equal(t, 1, f.metrics.lifecycle["unchanged"])
}

func TestEnsureBucketUpdatesExpirationDays(t *testing.T) {
	f := newUploadFixture(t)
	f.storage.buckets[testBucket] = true
	f.storage.rules[testBucket] = []entity.LifecycleRule{
		{ID: "foreign", Prefix: "other/", ExpirationDays: 90, Enabled: true},
		{ID: "old", Prefix: "cloud/", ExpirationDays: 7, Enabled: true},
	}

	require.NoError(t, f.uc.EnsureBucket(context.Background()))

	rules := f.storage.rules[testBucket]
	require.Len(t, rules, 2)
	assert.Equal(t, "foreign", rules[0].ID)
	assert.Equal(t, 90, rules[0].ExpirationDays)
	assert.Equal(t, "old", rules[1].ID)
	assert.Equal(t, 14, rules[1].ExpirationDays)
	assert.Equal(t, 1, f.metrics.lifecycle["updated"])
	assert.True(t, f.logged("debug", "Updating S3 bucket expiration days for directory cloud/: 14"))
}

func TestEnsureBucketAddsRuleNextToForeignRules(t *testing.T) {
	f := newUploadFixture(t)
	f.storage.buckets[testBucket] = true
	f.storage.rules[testBucket] = []entity.LifecycleRule{
		{ID: "foreign", Prefix: "other/", ExpirationDays: 90, Enabled: true},
	}

	require.NoError(t, f.uc.EnsureBucket(context.Background()))

	rules := f.storage.rules[testBucket]
	require.Len(t, rules, 2)
	assert.Equal(t, "other/", rules[0].Prefix)
	assert.Equal(t, "cloud/", rules[1].Prefix)
	assert.Equal(t, 1, f.metrics.lifecycle["created"])
}

func TestEnsureBucketFailures(t *testing.T) {
	t.Run("head error", func(t *testing.T) {
		f := newUploadFixture(t)
		f.storage.headErr = errors.New("403 Forbidden")
		err := f.uc.EnsureBucket(context.Background())
		require.Error(t, err)
		assert.ErrorIs(t, err, types.ErrBucketUnavailable)
		assert.Contains(t, err.Error(), "403 Forbidden")
	})

	t.Run("create error", func(t *testing.T) {
		f := newUploadFixture(t)
		f.storage.createErr = errors.New("BucketAlreadyOwnedByYou")
		err := f.uc.EnsureBucket(context.Background())
		assert.ErrorIs(t, err, types.ErrBucketUnavailable)
		assert.Empty(t, f.storage.rules)
	})

	t.Run("upload stops on bucket failure", func(t *testing.T) {
		f := newUploadFixture(t)
		f.storage.headErr = errors.New("connection refused")
		f.archive.content = []byte("zip")
		res, err := f.uc.UploadReportsByNotebookPath(context.Background(), "check.ipynb")
		assert.Nil(t, res)
		assert.ErrorIs(t, err, types.ErrBucketUnavailable)
		assert.Empty(t, f.storage.objects)
		assert.Empty(t, f.archive.calls)
	})
}

func TestUploadReportsByNotebookPath(t *testing.T) {
	f := newUploadFixture(t)
	f.archive.content = []byte("zip-bytes")
	f.notebook.data = &entity.ExecutionData{
		Initiator:  "alice",
		LastRun:    1609459200123,
		Scope:      entity.NullSegment,
		Env:        "dev",
		ReportName: "check",
	}

	res, err := f.uc.UploadReportsByNotebookPath(context.Background(), "notebooks/check_1.ipynb")
	require.NoError(t, err)
	require.NotNil(t, res)

	wantKey := "cloud/alice/2021-01-01/dev_check_1609459200123.zip"
	assert.Equal(t, wantKey, res.Key)
	assert.Equal(t, "https://s3.local/"+testBucket+"/"+wantKey, res.URL)
	assert.Equal(t, []byte("zip-bytes"), f.storage.objects[testBucket+"/"+wantKey])
	assert.Equal(t, res.URL, f.notebook.stamped["notebooks/check_1.ipynb"])
	assert.Equal(t, 1, f.metrics.uploads["notebook/success"])
	assert.True(t, f.logged("success", "are saved in S3: "+res.URL))
}

func TestUploadReportsByNotebookPathWithoutResults(t *testing.T) {
	t.Run("no reports", func(t *testing.T) {
		f := newUploadFixture(t)
		f.notebook.data = &entity.ExecutionData{Initiator: "alice", ReportName: "check"}

		res, err := f.uc.UploadReportsByNotebookPath(context.Background(), "check.ipynb")
		assert.NoError(t, err)
		assert.Nil(t, res)
		assert.Empty(t, f.storage.objects)
		assert.True(t, f.logged("warning", "No generated reports found"))
	})

	t.Run("no execution data", func(t *testing.T) {
		f := newUploadFixture(t)
		f.archive.content = []byte("zip")

		res, err := f.uc.UploadReportsByNotebookPath(context.Background(), "check.ipynb")
		assert.NoError(t, err)
		assert.Nil(t, res)
		assert.Empty(t, f.storage.objects)
		assert.Empty(t, f.notebook.stamped)
	})
}

func TestUploadFailureIsLoggedNotReturned(t *testing.T) {
	f := newUploadFixture(t)
	f.archive.content = []byte("zip")
	f.notebook.data = &entity.ExecutionData{Initiator: "alice", LastRun: 1000, ReportName: "check"}
	f.storage.uploadErr = errors.New("AccessDenied")

	res, err := f.uc.UploadReportsByNotebookPath(context.Background(), "check.ipynb")
	assert.NoError(t, err)
	assert.Nil(t, res)
	assert.True(t, f.logged("error", "AccessDenied"))
	assert.Equal(t, 1, f.metrics.uploads["notebook/failure"])
	assert.Empty(t, f.notebook.stamped)
}

func TestUploadReportsUsesLegacyKey(t *testing.T) {
	f := newUploadFixture(t)
	f.archive.content = []byte("zip")
	f.notebook.path = filepath.Join(f.uc.config.OutputDir, "Check_1.ipynb")
	f.notebook.data = &entity.ExecutionData{Initiator: "alice", LastRun: 1609459200123, ReportName: "Check"}

	res, err := f.uc.UploadReports(context.Background(), "Check")
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, "reports/alice/check_1609459200123.zip", res.Key)
	assert.Equal(t, []string{"base:" + f.uc.config.OutputDir + ":Check"}, f.archive.calls)
	assert.Equal(t, 1, f.metrics.uploads["reports/success"])
	assert.Equal(t, res.URL, f.notebook.stamped[f.notebook.path])
}

func TestUploadReportsWithoutNotebook(t *testing.T) {
	f := newUploadFixture(t)
	f.archive.content = []byte("zip")

	res, err := f.uc.UploadReports(context.Background(), "Check")
	assert.NoError(t, err)
	assert.Nil(t, res)
	assert.True(t, f.logged("warning", "No executed notebook found for Check"))
}

func TestUploadBulkCheckTable(t *testing.T) {
	f := newUploadFixture(t)
	tablePath := filepath.Join(f.uc.config.OutputDir, "nightlyTable.html")
	require.NoError(t, os.WriteFile(tablePath, []byte("<table></table>"), 0o644))

	res, err := f.uc.UploadBulkCheckTable(context.Background(), "nightly")
	require.NoError(t, err)
	require.NotNil(t, res)

	wantKey := "cloud/envchecker/2021-01-01/nightlyTable_1609459200Table.html"
	assert.Equal(t, wantKey, res.Key)
	assert.Equal(t, []byte(tablePath), f.storage.objects[testBucket+"/"+wantKey])
	assert.Equal(t, 1, f.metrics.uploads["bulk_table/success"])
	assert.True(t, f.logged("success", "nightlyTable.html report is saved in S3"))
}

func TestUploadBulkCheckTableMissing(t *testing.T) {
	f := newUploadFixture(t)

	res, err := f.uc.UploadBulkCheckTable(context.Background(), "nightly")
	assert.NoError(t, err)
	assert.Nil(t, res)
	assert.Empty(t, f.storage.objects)
	assert.True(t, f.logged("warning", "Cannot find bulk report table."))
}
