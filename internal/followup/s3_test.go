package followup

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePutter struct {
	in   *s3.PutObjectInput
	body []byte
	err  error
}

func (f *fakePutter) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.in = in
	if in.Body != nil {
		f.body, _ = io.ReadAll(in.Body)
	}
	return &s3.PutObjectOutput{}, f.err
}

func TestS3Recorder_Record(t *testing.T) {
	put := &fakePutter{}
	rec := &S3Recorder{client: put, bucket: "followups"}

	r := Report{
		Operation: "cancelar",
		SaleID:    "s-1",
		GuideID:   "g-1",
		Actor:     "unidade",
		Affected:  3,
		Total:     4,
		Failed:    []Failure{{GuideID: "g-4", Status: "faturada", Reason: "db timeout"}},
		CreatedAt: time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC),
	}

	require.NoError(t, rec.Record(context.Background(), r))

	require.NotNil(t, put.in)
	assert.Equal(t, "followups", aws.ToString(put.in.Bucket))
	assert.Equal(t, ObjectKey(r), aws.ToString(put.in.Key))
	assert.Contains(t, aws.ToString(put.in.Key), "pedidos/2024-06-03/s-1/cancelar-")

	var got Report
	require.NoError(t, json.Unmarshal(put.body, &got))
	assert.Equal(t, 3, got.Affected)
	assert.Equal(t, "g-4", got.Failed[0].GuideID)
}

func TestS3Recorder_PutError(t *testing.T) {
	rec := &S3Recorder{client: &fakePutter{err: errors.New("access denied")}, bucket: "b"}

	err := rec.Record(context.Background(), Report{SaleID: "s-1", CreatedAt: time.Now()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "access denied")
}
