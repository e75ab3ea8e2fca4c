package storage

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

type fakeS3 struct {
	headErr error
	created []*s3.CreateBucketInput
	puts    []*s3.PutObjectInput
	deletes []*s3.DeleteObjectInput
}

func (f *fakeS3) HeadBucket(_ context.Context, _ *s3.HeadBucketInput, _ ...func(*s3.Options)) (*s3.HeadBucketOutput, error) {
	if f.headErr != nil {
		return nil, f.headErr
	}
	return &s3.HeadBucketOutput{}, nil
}

func (f *fakeS3) CreateBucket(_ context.Context, in *s3.CreateBucketInput, _ ...func(*s3.Options)) (*s3.CreateBucketOutput, error) {
	f.created = append(f.created, in)
	return &s3.CreateBucketOutput{}, nil
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.puts = append(f.puts, in)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.deletes = append(f.deletes, in)
	return &s3.DeleteObjectOutput{}, nil
}

// useFakeS3 swaps the process-wide client for a capturing fake.
func useFakeS3(t *testing.T, fake *fakeS3) {
	t.Helper()
	prevClient, prevEnabled := s3Client, enabled
	s3Client, enabled = fake, true
	bucketMu.Lock()
	bucketsEnsured = map[string]bool{}
	bucketMu.Unlock()
	t.Cleanup(func() {
		s3Client, enabled = prevClient, prevEnabled
		bucketMu.Lock()
		bucketsEnsured = map[string]bool{}
		bucketMu.Unlock()
	})
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"report.pdf", "report.pdf"},
		{"my photo (1).png", "my_photo__1_.png"},
		{"../../etc/passwd", ".._.._etc_passwd"},
		{"résumé.docx", "r_sum_.docx"},
		{"clip v2.final.mp4", "clip_v2.final.mp4"},
	}

	for _, tt := range tests {
		if got := SanitizeFilename(tt.in); got != tt.want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestObjectPath(t *testing.T) {
	at := time.UnixMilli(1700000000000)
	got := ObjectPath("c0ffee00-0000-0000-0000-000000000001", at, "my photo.png")
	want := "c0ffee00-0000-0000-0000-000000000001/1700000000000_my_photo.png"
	if got != want {
		t.Errorf("ObjectPath = %q, want %q", got, want)
	}
}

func TestPublicURL(t *testing.T) {
	endpoint = "https://storage.example.com/"
	got := PublicURL(ComplaintBucket, "abc/1_file.png")
	if got != "https://storage.example.com/complaints/abc/1_file.png" {
		t.Errorf("unexpected public URL: %s", got)
	}
	if strings.Contains(got, "//complaints") {
		t.Error("trailing endpoint slash must be trimmed")
	}
}

func TestUploadRejectsOversizedObjects(t *testing.T) {
	data := make([]byte, MaxObjectSize+1)
	err := Upload(t.Context(), ComplaintBucket, "too-big", data, "video/mp4")
	if err == nil || !strings.Contains(err.Error(), "byte limit") {
		t.Fatalf("expected oversized upload to be rejected, got %v", err)
	}
}

func TestEnsureBucketCreatesPublicBucket(t *testing.T) {
	fake := &fakeS3{headErr: errors.New("NotFound")}
	useFakeS3(t, fake)

	if err := EnsureBucket(t.Context(), ComplaintBucket); err != nil {
		t.Fatalf("EnsureBucket failed: %v", err)
	}
	if len(fake.created) != 1 {
		t.Fatalf("expected one CreateBucket call, got %d", len(fake.created))
	}
	if fake.created[0].ACL != types.BucketCannedACLPublicRead {
		t.Fatalf("bucket must be created public-read, got ACL %q", fake.created[0].ACL)
	}

	// Second call is served from the cache.
	if err := EnsureBucket(t.Context(), ComplaintBucket); err != nil {
		t.Fatalf("cached EnsureBucket failed: %v", err)
	}
	if len(fake.created) != 1 {
		t.Fatalf("cached call must not create again, got %d calls", len(fake.created))
	}
}

func TestEnsureBucketSkipsExisting(t *testing.T) {
	fake := &fakeS3{}
	useFakeS3(t, fake)

	if err := EnsureBucket(t.Context(), ComplaintBucket); err != nil {
		t.Fatalf("EnsureBucket failed: %v", err)
	}
	if len(fake.created) != 0 {
		t.Fatalf("existing bucket must not be recreated, got %d calls", len(fake.created))
	}
}

func TestUploadSetsPublicReadACL(t *testing.T) {
	fake := &fakeS3{}
	useFakeS3(t, fake)

	if err := Upload(t.Context(), ComplaintBucket, "c1/1_file.png", []byte("data"), "image/png"); err != nil {
		t.Fatalf("Upload failed: %v", err)
	}
	if len(fake.puts) != 1 {
		t.Fatalf("expected one PutObject call, got %d", len(fake.puts))
	}
	put := fake.puts[0]
	if put.ACL != types.ObjectCannedACLPublicRead {
		t.Fatalf("object must be public-read, got ACL %q", put.ACL)
	}
	if put.CacheControl == nil || *put.CacheControl != "max-age=3600" {
		t.Fatalf("unexpected cache control: %v", put.CacheControl)
	}
}

func TestDeleteRemovesObject(t *testing.T) {
	fake := &fakeS3{}
	useFakeS3(t, fake)

	if err := Delete(t.Context(), ComplaintBucket, "c1/1_file.png"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if len(fake.deletes) != 1 || *fake.deletes[0].Key != "c1/1_file.png" {
		t.Fatalf("unexpected delete calls: %+v", fake.deletes)
	}
}
