package usecase

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/diillson/envcheck-reports/internal/domain/entity"
	"github.com/diillson/envcheck-reports/internal/domain/repository"
	"github.com/diillson/envcheck-reports/internal/shared/types"
)

// Upload kinds used as metric labels.
const (
	KindReports  = "reports"
	KindNotebook = "notebook"
	KindBulk     = "bulk_table"
)

// UploadUseCase handles pushing generated reports to the object store.
type UploadUseCase struct {
	storage  repository.StorageRepository
	archive  repository.ArchiveRepository
	notebook repository.NotebookRepository
	metrics  repository.MetricsRepository
	console  types.ConsoleInterface
	config   *types.Config

	now   func() time.Time
	newID func() string
}

// NewUploadUseCase creates a new upload use case.
func NewUploadUseCase(
	storage repository.StorageRepository,
	archive repository.ArchiveRepository,
	notebook repository.NotebookRepository,
	metrics repository.MetricsRepository,
	console types.ConsoleInterface,
	config *types.Config,
) *UploadUseCase {
	return &UploadUseCase{
		storage:  storage,
		archive:  archive,
		notebook: notebook,
		metrics:  metrics,
		console:  console,
		config:   config,
		now:      time.Now,
		newID:    func() string { return uuid.NewString() },
	}
}

// EnsureBucket garante que o bucket existe e que a regra de expiração está atualizada.
// É chamado antes de cada upload. Só falhas do bucket em si são devolvidas como erro.
func (uc *UploadUseCase) EnsureBucket(ctx context.Context) error {
	bucket := uc.config.Storage.Bucket

	exists, err := uc.storage.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("%w: %v", types.ErrBucketUnavailable, err)
	}

	if !exists {
		uc.console.LogInfo("Bucket %s not found, creating it", bucket)
		if err := uc.storage.CreateBucket(ctx, bucket); err != nil {
			return fmt.Errorf("%w: %v", types.ErrBucketUnavailable, err)
		}
		return uc.putExpirationRuleOnly(ctx)
	}

	return uc.verifyExpirationRule(ctx)
}

func (uc *UploadUseCase) verifyExpirationRule(ctx context.Context) error {
	prefix := uc.config.ExpirationPrefix()
	days := uc.config.ExpirationDays

	rules, err := uc.storage.GetLifecycleRules(ctx, uc.config.Storage.Bucket)
	if err != nil {
		// Bucket ainda sem configuração de lifecycle.
		uc.console.LogDebug("Create lifecycle configuration for bucket. Expiration days for directory %s: %d", prefix, days)
		return uc.putExpirationRuleOnly(ctx)
	}

	updated, action := ReconcileExpirationRule(rules, prefix, days, uc.newID())
	switch action {
	case entity.LifecycleUnchanged:
		uc.metrics.ObserveLifecycle(string(action))
		return nil
	case entity.LifecycleUpdated:
		uc.console.LogDebug("Updating S3 bucket expiration days for directory %s: %d", prefix, days)
	case entity.LifecycleCreated:
		uc.console.LogDebug("Add bucket expiration rule for S3 bucket. Expiration days for directory %s: %d", prefix, days)
	}

	if err := uc.storage.PutLifecycleRules(ctx, uc.config.Storage.Bucket, updated); err != nil {
		return err
	}
	uc.metrics.ObserveLifecycle(string(action))
	return nil
}

func (uc *UploadUseCase) putExpirationRuleOnly(ctx context.Context) error {
	rule := NewExpirationRule(uc.newID(), uc.config.ExpirationPrefix(), uc.config.ExpirationDays)
	if err := uc.storage.PutLifecycleRules(ctx, uc.config.Storage.Bucket, []entity.LifecycleRule{rule}); err != nil {
		return err
	}
	uc.metrics.ObserveLifecycle(string(entity.LifecycleCreated))
	return nil
}

// UploadReports zips every report generated for baseName and uploads it under the
// legacy reports/ prefix. A nil result means nothing was uploaded; the reason is logged.
func (uc *UploadUseCase) UploadReports(ctx context.Context, baseName string) (*entity.UploadResult, error) {
	if err := uc.EnsureBucket(ctx); err != nil {
		return nil, err
	}

	zip, err := uc.archive.ZipByBaseName(uc.config.OutputDir, baseName)
	if err != nil {
		uc.console.LogError("Could not zip reports for %s: %v", baseName, err)
		return nil, nil
	}
	if zip == nil {
		uc.console.LogWarning("No generated reports found for %s in %s", baseName, uc.config.OutputDir)
		return nil, nil
	}

	nbPath, err := uc.notebook.FindByBaseName(uc.config.OutputDir, baseName)
	if err != nil {
		uc.console.LogError("Could not look up executed notebook for %s: %v", baseName, err)
		return nil, nil
	}
	if nbPath == "" {
		uc.console.LogWarning("No executed notebook found for %s", baseName)
		return nil, nil
	}
	data := uc.executionData(nbPath)
	if data == nil {
		return nil, nil
	}

	key := LegacyReportKey(data.Initiator, baseName, data.LastRun)
	return uc.upload(ctx, KindReports, key, zip, nbPath, baseName+" reports"), nil
}

// UploadReportsByNotebookPath zips the reports of one executed notebook and uploads
// them under the templated cloud/initiator/date path.
func (uc *UploadUseCase) UploadReportsByNotebookPath(ctx context.Context, notebookPath string) (*entity.UploadResult, error) {
	if err := uc.EnsureBucket(ctx); err != nil {
		return nil, err
	}

	zip, err := uc.archive.ZipByNotebookPath(uc.config.OutputDir, notebookPath)
	if err != nil {
		uc.console.LogError("Could not zip reports for %s: %v", notebookPath, err)
		return nil, nil
	}
	if zip == nil {
		uc.console.LogWarning("No generated reports found for %s", notebookPath)
		return nil, nil
	}

	data := uc.executionData(notebookPath)
	if data == nil {
		return nil, nil
	}

	key := ReportKey(uc.config.CloudName, *data)
	return uc.upload(ctx, KindNotebook, key, zip, notebookPath, notebookPath+" reports"), nil
}

// UploadBulkCheckTable uploads {out}/{bulkName}Table.html as is.
func (uc *UploadUseCase) UploadBulkCheckTable(ctx context.Context, bulkName string) (*entity.UploadResult, error) {
	if err := uc.EnsureBucket(ctx); err != nil {
		return nil, err
	}

	tableFile := bulkName + "Table.html"
	tablePath := filepath.Join(uc.config.OutputDir, tableFile)
	if info, err := os.Stat(tablePath); err != nil || info.IsDir() {
		uc.console.LogWarning("Cannot find bulk report table.")
		return nil, nil
	}

	key := BulkTableKey(uc.config.CloudName, uc.config.DefaultInitiator, bulkName, uc.now().Unix())
	if err := uc.storage.UploadFile(ctx, uc.config.Storage.Bucket, key, tablePath); err != nil {
		uc.console.LogError("%v", err)
		uc.metrics.ObserveUpload(KindBulk, "failure")
		return nil, nil
	}

	url := ReportURL(uc.config.Storage.ServerURL, uc.config.Storage.Bucket, key)
	uc.console.LogSuccess("%s report is saved in S3: %s", tableFile, url)
	uc.metrics.ObserveUpload(KindBulk, "success")
	return &entity.UploadResult{Key: key, URL: url}, nil
}

func (uc *UploadUseCase) executionData(notebookPath string) *entity.ExecutionData {
	data, err := uc.notebook.ExecutionData(notebookPath)
	if err != nil {
		uc.console.LogError("Could not read execution data of %s: %v", notebookPath, err)
		return nil
	}
	if data == nil {
		uc.console.LogWarning("Notebook %s has no execution data, skipping upload", notebookPath)
	}
	return data
}

func (uc *UploadUseCase) upload(ctx context.Context, kind, key string, body io.ReadSeeker, notebookPath, what string) *entity.UploadResult {
	if err := uc.storage.UploadStream(ctx, uc.config.Storage.Bucket, key, body); err != nil {
		uc.console.LogError("%v", err)
		uc.metrics.ObserveUpload(kind, "failure")
		return nil
	}

	url := ReportURL(uc.config.Storage.ServerURL, uc.config.Storage.Bucket, key)
	uc.console.LogSuccess("%s are saved in S3: %s", what, url)
	uc.metrics.ObserveUpload(kind, "success")

	if err := uc.notebook.StampS3Link(notebookPath, url); err != nil {
		uc.console.LogWarning("Could not save S3 link in %s: %v", notebookPath, err)
	}
	return &entity.UploadResult{Key: key, URL: url}
}
