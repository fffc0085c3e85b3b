package utils

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

var (
	s3Client  *s3.Client
	s3Presign *s3.PresignClient
)

func InitS3() {
	s3Region := os.Getenv("S3_REGION")
	if s3Region == "" {
		s3Region = os.Getenv("AWS_REGION") // fallback
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(), config.WithRegion(s3Region))
	if err != nil {
		log.Fatalf("Unable to load AWS config for S3: %v", err)
	}

	s3Client = s3.NewFromConfig(cfg)
	s3Presign = s3.NewPresignClient(s3Client)
}

// UploadAttachment stores a contract attachment under a unique key and
// returns that key for the attachments table.
func UploadAttachment(data []byte, contentType, originalName string) (string, error) {
	ext := filepath.Ext(originalName)
	key := fmt.Sprintf("attachments/%s%s", uuid.NewString(), ext)

	_, err := s3Client.PutObject(context.TODO(), &s3.PutObjectInput{
		Bucket:      aws.String(os.Getenv("S3_BUCKET")),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %v", err)
	}

	return key, nil
}

// PresignDownload returns a short-lived URL that serves the object as a
// download with its original filename.
func PresignDownload(key, filename string) (string, error) {
	req, err := s3Presign.PresignGetObject(context.TODO(), &s3.GetObjectInput{
		Bucket:                     aws.String(os.Getenv("S3_BUCKET")),
		Key:                        aws.String(key),
		ResponseContentDisposition: aws.String(fmt.Sprintf(`attachment; filename=%q`, filename)),
	}, s3.WithPresignExpires(15*time.Minute))
	if err != nil {
		return "", fmt.Errorf("failed to presign download: %v", err)
	}
	return req.URL, nil
}
