package utils

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

// S3Config connects to an S3-compatible object store (PSCloud style
// endpoint). With an empty bucket the storefront serves images from local
// uploads only.
type S3Config struct {
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	Endpoint  string
}

var s3cfg S3Config

// ConfigureS3 is called once at startup with the values from config.
func ConfigureS3(cfg S3Config) {
	s3cfg = cfg
}

func S3Enabled() bool {
	return s3cfg.Bucket != "" && s3cfg.AccessKey != ""
}

func getS3Client() *s3.S3 {
	sess := session.Must(session.NewSession(&aws.Config{
		Region:   aws.String(s3cfg.Region),
		Endpoint: aws.String(s3cfg.Endpoint),
		Credentials: credentials.NewStaticCredentials(
			s3cfg.AccessKey, s3cfg.SecretKey, "",
		),
	}))
	return s3.New(sess)
}

// UploadFileToS3 mirrors an uploaded image to the bucket and returns its
// public URL.
func UploadFileToS3(file []byte, fileName string, folder string) (string, error) {
	filePath := fmt.Sprintf("%s/%s", folder, fileName)

	s3Client := getS3Client()

	_, err := s3Client.PutObject(&s3.PutObjectInput{
		Bucket:        aws.String(s3cfg.Bucket),
		Key:           aws.String(filePath),
		Body:          bytes.NewReader(file),
		ContentLength: aws.Int64(int64(len(file))),
		ContentType:   aws.String(contentTypeForFile(fileName)),
		ACL:           aws.String("public-read"),
	})
	if err != nil {
		return "", fmt.Errorf("unable to upload file to S3: %v", err)
	}

	return fmt.Sprintf("https://%s.%s/%s", s3cfg.Bucket, endpointHost(), filePath), nil
}

func endpointHost() string {
	host := strings.TrimPrefix(s3cfg.Endpoint, "https://")
	return strings.TrimPrefix(host, "http://")
}

func contentTypeForFile(fileName string) string {
	switch filepath.Ext(fileName) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}
