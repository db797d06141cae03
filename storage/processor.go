package storage

import (
	"context"
	"log"
	"regexp"
	"sync"
	"time"

	courseModels "lms/models/course"
)

// embeddedURLPattern matches object-store URLs embedded in free text. Matches
// are whole URLs bounded by whitespace, quotes or angle brackets.
var embeddedURLPattern = regexp.MustCompile(`https?://[a-zA-Z0-9.\-]*s3[a-zA-Z0-9.\-]*\.amazonaws\.com/[^\s"'<>` + "`" + `]+`)

// DefaultBatchConcurrency caps concurrent signing calls per batch
const DefaultBatchConcurrency = 5

// Processor rewrites storage references inside records into signed URLs.
// Signing failures never fail the request: the original reference is kept and
// the error is logged.
type Processor struct {
	signer Signer
}

// DefaultProcessor is the process-wide processor, set from main at startup
var DefaultProcessor *Processor

// NewProcessor returns a processor backed by the given signer
func NewProcessor(signer Signer) *Processor {
	return &Processor{signer: signer}
}

// ProcessContent rewrites every storage reference on a content record in
// place: the direct ContentURL field, then URLs embedded in ContentText and
// Description. Fields that fail to sign keep their original value.
func (p *Processor) ProcessContent(ctx context.Context, content *courseModels.CourseContent, ttl time.Duration) {
	content.ContentURL = p.signField(ctx, content.ContentURL, ttl)
	content.ContentText = p.signEmbedded(ctx, content.ContentText, ttl)
	content.Description = p.signEmbedded(ctx, content.Description, ttl)
}

// ProcessCourseImage rewrites the course thumbnail reference in place
func (p *Processor) ProcessCourseImage(ctx context.Context, c *courseModels.Course, ttl time.Duration) {
	c.CourseImage = p.signField(ctx, c.CourseImage, ttl)
}

// ProcessMaterial rewrites the material file reference and any URLs embedded
// in its description in place
func (p *Processor) ProcessMaterial(ctx context.Context, m *courseModels.CourseMaterial, ttl time.Duration) {
	m.FileURL = p.signField(ctx, m.FileURL, ttl)
	m.Description = p.signEmbedded(ctx, m.Description, ttl)
}

// signField resolves a single-value field. External links and plain values
// pass through untouched; a resolvable key is replaced with its signed URL
// unless signing fails.
func (p *Processor) signField(ctx context.Context, value string, ttl time.Duration) string {
	key := ExtractStorageKey(value)
	if key == "" {
		return value
	}
	signed, err := p.signer.Sign(ctx, key, ttl)
	if err != nil {
		log.Printf("Failed to sign storage key %s: %v", key, err)
		return value
	}
	return signed
}

// signEmbedded scans free text for object-store URLs and replaces each match
// with its signed counterpart in a single pass. Each distinct URL is signed
// once, and already-substituted text is never rescanned, so a URL that is a
// prefix of another cannot splice a second signature into it.
func (p *Processor) signEmbedded(ctx context.Context, text string, ttl time.Duration) string {
	if text == "" {
		return text
	}

	matches := embeddedURLPattern.FindAllString(text, -1)
	if len(matches) == 0 {
		return text
	}

	signed := make(map[string]string, len(matches))
	for _, match := range matches {
		if _, ok := signed[match]; ok {
			continue
		}
		key := ExtractStorageKey(match)
		if key == "" {
			continue
		}
		url, err := p.signer.Sign(ctx, key, ttl)
		if err != nil {
			log.Printf("Failed to sign embedded storage key %s: %v", key, err)
			continue
		}
		signed[match] = url
	}
	if len(signed) == 0 {
		return text
	}

	return embeddedURLPattern.ReplaceAllStringFunc(text, func(match string) string {
		if url, ok := signed[match]; ok {
			return url
		}
		return match
	})
}

// BatchProcess runs fn for indexes 0..n-1 in chunks of size concurrency,
// waiting for each chunk before starting the next. This bounds concurrent
// outbound signing calls for one request. Every index is processed exactly
// once.
func BatchProcess(ctx context.Context, n, concurrency int, fn func(ctx context.Context, i int)) {
	if concurrency < 1 {
		concurrency = DefaultBatchConcurrency
	}

	for start := 0; start < n; start += concurrency {
		end := start + concurrency
		if end > n {
			end = n
		}

		var wg sync.WaitGroup
		for i := start; i < end; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				fn(ctx, i)
			}(i)
		}
		wg.Wait()
	}
}
