// Azure Blob Storage backed [Uploader] implementation
package services

import (
	"context"
	"fmt"
	"os"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/desertthunder/castaway/internal/models"
	"github.com/desertthunder/castaway/internal/shared"
)

// AzureUploader implements [Uploader] against an Azure Blob Storage container.
//
// Uploads overwrite existing blobs with the same name: last write wins.
type AzureUploader struct {
	client    *azblob.Client
	account   string
	container string
}

// NewAzureUploader creates an uploader from shared-key credentials.
//
// The credentials come from process configuration, not request data, so a
// construction failure here is a startup failure.
func NewAzureUploader(config shared.StorageConfig) (*AzureUploader, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	credential, err := azblob.NewSharedKeyCredential(config.Account, config.AccessKey)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid storage credential: %v", shared.ErrInvalidConfig, err)
	}

	serviceURL := fmt.Sprintf("https://%s.blob.core.windows.net/", config.Account)
	client, err := azblob.NewClientWithSharedKeyCredential(serviceURL, credential, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create storage client: %v", shared.ErrInvalidConfig, err)
	}

	return &AzureUploader{
		client:    client,
		account:   config.Account,
		container: config.Container,
	}, nil
}

// Upload persists localPath as blobName and returns its public URL.
func (u *AzureUploader) Upload(ctx context.Context, localPath, blobName string) (*models.StorageObject, error) {
	if blobName == "" {
		return nil, fmt.Errorf("%w: blob name is empty", shared.ErrStorageUpload)
	}

	file, err := os.Open(localPath)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open artifact: %v", shared.ErrStorageUpload, err)
	}
	defer file.Close()

	if _, err := u.client.UploadFile(ctx, u.container, blobName, file, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrStorageUpload, err)
	}

	return &models.StorageObject{
		URL:       u.BlobURL(blobName),
		Container: u.container,
		Blob:      blobName,
	}, nil
}

// BlobURL returns the public address of a blob in the configured container.
func (u *AzureUploader) BlobURL(blobName string) string {
	return fmt.Sprintf("https://%s.blob.core.windows.net/%s/%s", u.account, u.container, blobName)
}
