package storage

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"testing"
	"time"

	courseModels "lms/models/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubSigner records calls and returns deterministic signed URLs
type stubSigner struct {
	mu    sync.Mutex
	calls int
	fail  bool
	delay bool
}

func (s *stubSigner) Sign(ctx context.Context, key string, ttl time.Duration) (string, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()

	if s.delay {
		time.Sleep(time.Duration(rand.Intn(5)) * time.Millisecond)
	}
	if s.fail {
		return "", errors.New("signing unavailable")
	}
	return "https://signed.example.com/" + key, nil
}

func (s *stubSigner) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func TestProcessContentSignsDirectURL(t *testing.T) {
	signer := &stubSigner{}
	p := NewProcessor(signer)

	content := &courseModels.CourseContent{
		ContentType: courseModels.ContentTypeVideo,
		ContentURL:  "https://bkt.s3.ap-south-1.amazonaws.com/courses/3/intro.mp4",
	}

	p.ProcessContent(context.Background(), content, time.Hour)

	assert.Equal(t, "https://signed.example.com/courses/3/intro.mp4", content.ContentURL)
	assert.Equal(t, 1, signer.callCount())
}

func TestProcessContentLeavesExternalLinks(t *testing.T) {
	signer := &stubSigner{}
	p := NewProcessor(signer)

	content := &courseModels.CourseContent{
		ContentType: courseModels.ContentTypeYoutube,
		ContentURL:  "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
	}

	p.ProcessContent(context.Background(), content, time.Hour)

	assert.Equal(t, "https://www.youtube.com/watch?v=dQw4w9WgXcQ", content.ContentURL)
	assert.Equal(t, 0, signer.callCount())
}

func TestProcessContentSignsEmbeddedURLs(t *testing.T) {
	signer := &stubSigner{}
	p := NewProcessor(signer)

	first := "https://bkt.s3.ap-south-1.amazonaws.com/courses/3/a.png"
	second := "https://bkt.s3.ap-south-1.amazonaws.com/courses/3/b.png"

	content := &courseModels.CourseContent{
		ContentType: courseModels.ContentTypeText,
		ContentText: "Look at " + first + " and " + second + " then " + first + " again",
	}

	p.ProcessContent(context.Background(), content, time.Hour)

	// Distinct URLs are signed once each; repeats get the same replacement
	assert.Equal(t, 2, signer.callCount())
	assert.NotContains(t, content.ContentText, "amazonaws.com")
	assert.Contains(t, content.ContentText, "https://signed.example.com/courses/3/a.png and https://signed.example.com/courses/3/b.png")
	assert.Contains(t, content.ContentText, "then https://signed.example.com/courses/3/a.png again")
}

// presignStubSigner mimics a real presigner: the signed URL is the original
// object URL with a query string appended
type presignStubSigner struct{}

func (presignStubSigner) Sign(ctx context.Context, key string, ttl time.Duration) (string, error) {
	return "https://bkt.s3.ap-south-1.amazonaws.com/" + key + "?X-Amz-Signature=sig", nil
}

func TestSignEmbeddedHandlesPrefixOverlappingURLs(t *testing.T) {
	p := NewProcessor(presignStubSigner{})

	video := "https://bkt.s3.ap-south-1.amazonaws.com/courses/3/video.mp4"
	captions := "https://bkt.s3.ap-south-1.amazonaws.com/courses/3/video.mp4.srt"

	content := &courseModels.CourseContent{
		ContentType: courseModels.ContentTypeText,
		ContentText: "watch " + video + " with captions " + captions,
	}

	p.ProcessContent(context.Background(), content, time.Hour)

	// One URL is a prefix of the other; each match must carry exactly one
	// signature and resolve back to its own key
	assert.Equal(t,
		"watch "+video+"?X-Amz-Signature=sig with captions "+captions+"?X-Amz-Signature=sig",
		content.ContentText)

	resigned := embeddedURLPattern.FindAllString(content.ContentText, -1)
	require.Len(t, resigned, 2)
	assert.Equal(t, "courses/3/video.mp4", ExtractStorageKey(resigned[0]))
	assert.Equal(t, "courses/3/video.mp4.srt", ExtractStorageKey(resigned[1]))
}

func TestProcessContentSignsDescriptionURLs(t *testing.T) {
	signer := &stubSigner{}
	p := NewProcessor(signer)

	content := &courseModels.CourseContent{
		ContentType: courseModels.ContentTypeVideo,
		Description: "Slides at https://bkt.s3.ap-south-1.amazonaws.com/courses/3/slides.pdf",
	}

	p.ProcessContent(context.Background(), content, time.Hour)

	assert.Equal(t, "Slides at https://signed.example.com/courses/3/slides.pdf", content.Description)
}

func TestProcessContentPlainTextUntouched(t *testing.T) {
	signer := &stubSigner{}
	p := NewProcessor(signer)

	content := &courseModels.CourseContent{
		ContentType: courseModels.ContentTypeText,
		ContentText: "No storage links here, just https://example.com/page",
	}

	p.ProcessContent(context.Background(), content, time.Hour)

	assert.Equal(t, "No storage links here, just https://example.com/page", content.ContentText)
	assert.Equal(t, 0, signer.callCount())
}

func TestProcessContentKeepsOriginalOnSigningFailure(t *testing.T) {
	signer := &stubSigner{fail: true}
	p := NewProcessor(signer)

	original := "https://bkt.s3.ap-south-1.amazonaws.com/courses/3/intro.mp4"
	content := &courseModels.CourseContent{
		ContentType: courseModels.ContentTypeVideo,
		ContentURL:  original,
		ContentText: "see " + original,
	}

	p.ProcessContent(context.Background(), content, time.Hour)

	assert.Equal(t, original, content.ContentURL)
	assert.Equal(t, "see "+original, content.ContentText)
}

func TestProcessMaterial(t *testing.T) {
	signer := &stubSigner{}
	p := NewProcessor(signer)

	material := &courseModels.CourseMaterial{
		FileURL:  "materials/9/notes.pdf",
		FileType: "PDF",
	}

	p.ProcessMaterial(context.Background(), material, time.Hour)

	assert.Equal(t, "https://signed.example.com/materials/9/notes.pdf", material.FileURL)
}

func TestProcessMaterialSignsDescriptionURLs(t *testing.T) {
	signer := &stubSigner{}
	p := NewProcessor(signer)

	material := &courseModels.CourseMaterial{
		FileURL:     "materials/9/notes.pdf",
		FileType:    "PDF",
		Description: "Errata: https://bkt.s3.ap-south-1.amazonaws.com/materials/9/errata.pdf",
	}

	p.ProcessMaterial(context.Background(), material, time.Hour)

	assert.Equal(t, "Errata: https://signed.example.com/materials/9/errata.pdf", material.Description)
	assert.Equal(t, 2, signer.callCount())
}

func TestBatchProcessVisitsEveryIndexOnce(t *testing.T) {
	signer := &stubSigner{delay: true}
	p := NewProcessor(signer)

	contents := make([]courseModels.CourseContent, 12)
	for i := range contents {
		contents[i] = courseModels.CourseContent{
			ContentURL: "courses/1/video.mp4",
		}
	}

	BatchProcess(context.Background(), len(contents), 5, func(ctx context.Context, i int) {
		p.ProcessContent(ctx, &contents[i], time.Hour)
	})

	require.Equal(t, 12, signer.callCount())
	for i := range contents {
		assert.Equal(t, "https://signed.example.com/courses/1/video.mp4", contents[i].ContentURL)
	}
}

func TestBatchProcessHandlesZeroRecords(t *testing.T) {
	called := false
	BatchProcess(context.Background(), 0, 5, func(ctx context.Context, i int) {
		called = true
	})
	assert.False(t, called)
}
