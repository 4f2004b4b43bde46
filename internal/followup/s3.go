package followup

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type S3Options struct {
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
}

// objectPutter é o subconjunto do client S3 usado aqui.
type objectPutter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type S3Recorder struct {
	client objectPutter
	bucket string
}

func NewS3Recorder(opts S3Options) *S3Recorder {
	s3opts := s3.Options{
		Region: opts.Region,
	}
	if opts.AccessKey != "" {
		s3opts.Credentials = credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, "")
	}
	if opts.Endpoint != "" {
		s3opts.BaseEndpoint = aws.String(opts.Endpoint)
		s3opts.UsePathStyle = true
	}

	return &S3Recorder{
		client: s3.New(s3opts),
		bucket: opts.Bucket,
	}
}

// ObjectKey agrupa os relatórios por dia e por pedido.
func ObjectKey(r Report) string {
	return fmt.Sprintf(
		"pedidos/%s/%s/%s-%d.json",
		r.CreatedAt.UTC().Format("2006-01-02"),
		r.SaleID,
		r.Operation,
		r.CreatedAt.UnixNano(),
	)
}

func (s *S3Recorder) Record(ctx context.Context, r Report) error {
	body, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal follow-up report: %w", err)
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(ObjectKey(r)),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("put follow-up report: %w", err)
	}
	return nil
}

var _ Recorder = (*S3Recorder)(nil)
