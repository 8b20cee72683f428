package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/smithy-go"

	"github.com/diillson/envcheck-reports/internal/domain/entity"
	"github.com/diillson/envcheck-reports/internal/domain/repository"
)

// ConnectivityUseCase checks that an S3 endpoint accepts a set of credentials.
type ConnectivityUseCase struct {
	factory repository.StorageFactory
}

// NewConnectivityUseCase creates a new connectivity use case.
func NewConnectivityUseCase(factory repository.StorageFactory) *ConnectivityUseCase {
	return &ConnectivityUseCase{factory: factory}
}

// CheckConnectivity lists buckets with the given credentials. It never returns an
// error; failures are described in the result.
func (uc *ConnectivityUseCase) CheckConnectivity(ctx context.Context, host, user, token, region string) entity.ConnectivityResult {
	store, err := uc.factory(ctx, host, user, token, region)
	if err != nil {
		return entity.ConnectivityResult{
			Status:    entity.ResultFail,
			Message:   err.Error(),
			Details:   fmt.Sprintf("%+v", err),
			ErrorCode: entity.ErrorCodeStorageConnection,
		}
	}

	buckets, err := store.ListBuckets(ctx)
	if err == nil {
		return entity.ConnectivityResult{
			Status:  entity.ResultSuccess,
			Message: fmt.Sprintf("Successfully connected and listed buckets (%d found).", len(buckets)),
		}
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		if apiErr.ErrorCode() == "InvalidAccessKeyId" {
			return entity.ConnectivityResult{
				Status:    entity.ResultFail,
				Message:   "Could not list buckets",
				Details:   err.Error(),
				ErrorCode: entity.ErrorCodeStorageAuth,
			}
		}
		return entity.ConnectivityResult{
			Status:    entity.ResultFail,
			Message:   "Error while connecting to S3",
			Details:   err.Error(),
			ErrorCode: entity.ErrorCodeStorageConnection,
		}
	}
	return entity.ConnectivityResult{
		Status:    entity.ResultFail,
		Message:   err.Error(),
		Details:   fmt.Sprintf("%+v", err),
		ErrorCode: entity.ErrorCodeStorageConnection,
	}
}
