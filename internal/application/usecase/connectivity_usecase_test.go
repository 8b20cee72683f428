package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"

	"github.com/diillson/envcheck-reports/internal/domain/entity"
	"github.com/diillson/envcheck-reports/internal/domain/repository"
)

func factoryFor(store *fakeStorage, err error) repository.StorageFactory {
	return func(_ context.Context, host, user, token, region string) (repository.StorageRepository, error) {
		if err != nil {
			return nil, err
		}
		return store, nil
	}
}

func TestCheckConnectivity(t *testing.T) {
	tests := []struct {
		name       string
		listErr    error
		factoryErr error
		wantStatus entity.ResultStatus
		wantCode   string
		wantMsg    string
	}{
		{
			name:       "success",
			wantStatus: entity.ResultSuccess,
			wantMsg:    "Successfully connected and listed buckets (1 found).",
		},
		{
			name:       "invalid access key",
			listErr:    &smithy.GenericAPIError{Code: "InvalidAccessKeyId", Message: "The access key does not exist"},
			wantStatus: entity.ResultFail,
			wantCode:   entity.ErrorCodeStorageAuth,
			wantMsg:    "Could not list buckets",
		},
		{
			name:       "other API error",
			listErr:    &smithy.GenericAPIError{Code: "SignatureDoesNotMatch"},
			wantStatus: entity.ResultFail,
			wantCode:   entity.ErrorCodeStorageConnection,
			wantMsg:    "Error while connecting to S3",
		},
		{
			name:       "transport error",
			listErr:    errors.New("dial tcp: connection refused"),
			wantStatus: entity.ResultFail,
			wantCode:   entity.ErrorCodeStorageConnection,
			wantMsg:    "dial tcp: connection refused",
		},
		{
			name:       "client cannot be built",
			factoryErr: errors.New("storage server URL is required"),
			wantStatus: entity.ResultFail,
			wantCode:   entity.ErrorCodeStorageConnection,
			wantMsg:    "storage server URL is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeStorage()
			store.buckets["reports"] = true
			store.listErr = tt.listErr

			uc := NewConnectivityUseCase(factoryFor(store, tt.factoryErr))
			res := uc.CheckConnectivity(context.Background(), "https://s3.local", "user", "token", "")

			assert.Equal(t, tt.wantStatus, res.Status)
			assert.Equal(t, tt.wantCode, res.ErrorCode)
			assert.Equal(t, tt.wantMsg, res.Message)
			if tt.wantStatus == entity.ResultFail {
				assert.NotEmpty(t, res.Details)
			}
		})
	}
}
