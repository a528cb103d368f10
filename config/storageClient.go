package config

import (
	"context"
	"fmt"
	"log"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

var StorageClient *minio.Client

// ConnectStorage initializes the MinIO client and makes sure the photo bucket exists
func ConnectStorage() {
	minioClient, err := minio.New(MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(MinioAccessKey, MinioSecretKey, ""),
		Secure: MinioUseSSL,
	})
	if err != nil {
		log.Fatalf("Failed to connect to MinIO: %v", err)
	}

	ctx := context.Background()
	exists, err := minioClient.BucketExists(ctx, MinioBucket)
	if err != nil {
		log.Fatalf("Failed to check bucket existence: %v", err)
	}
	if !exists {
		if err := minioClient.MakeBucket(ctx, MinioBucket, minio.MakeBucketOptions{}); err != nil {
			log.Fatalf("Failed to create bucket: %v", err)
		}
		log.Printf("Bucket created: %s", MinioBucket)
	}

	log.Println("Connected to MinIO")
	StorageClient = minioClient
}

// StorageBaseURL returns the base URL photo objects are served from.
func StorageBaseURL() string {
	if MinioPublicURL != "" {
		return MinioPublicURL
	}
	scheme := "http"
	if MinioUseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s", scheme, MinioEndpoint, MinioBucket)
}
