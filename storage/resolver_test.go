package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractStorageKey(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "virtual hosted URL",
			input:    "https://my-bucket.s3.ap-south-1.amazonaws.com/courses/12/intro.mp4",
			expected: "courses/12/intro.mp4",
		},
		{
			name:     "virtual hosted URL with legacy dash region",
			input:    "https://my-bucket.s3-us-west-2.amazonaws.com/materials/9/notes.pdf",
			expected: "materials/9/notes.pdf",
		},
		{
			name:     "path style URL",
			input:    "https://s3.ap-south-1.amazonaws.com/my-bucket/courses/12/intro.mp4",
			expected: "courses/12/intro.mp4",
		},
		{
			name:     "signed URL with query parameters",
			input:    "https://my-bucket.s3.ap-south-1.amazonaws.com/courses/12/intro.mp4?X-Amz-Algorithm=AWS4-HMAC-SHA256&X-Amz-Expires=3600&X-Amz-Signature=abc123",
			expected: "courses/12/intro.mp4",
		},
		{
			name:     "bare key with courses prefix",
			input:    "courses/12/intro.mp4",
			expected: "courses/12/intro.mp4",
		},
		{
			name:     "bare key with certificates prefix",
			input:    "certificates/7/CERT1234.pdf",
			expected: "certificates/7/CERT1234.pdf",
		},
		{
			name:     "leading and trailing whitespace",
			input:    "  courses/12/intro.mp4  ",
			expected: "courses/12/intro.mp4",
		},
		{
			name:     "youtube link passes through",
			input:    "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			expected: "",
		},
		{
			name:     "unrelated https link",
			input:    "https://example.com/some/file.pdf",
			expected: "",
		},
		{
			name:     "plain text",
			input:    "Welcome to the course",
			expected: "",
		},
		{
			name:     "bare path without known prefix",
			input:    "uploads/12/intro.mp4",
			expected: "",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "only whitespace",
			input:    "   ",
			expected: "",
		},
		{
			name:     "query string only strips once",
			input:    "https://my-bucket.s3.ap-south-1.amazonaws.com/courses/file.mp4?a=1?b=2",
			expected: "courses/file.mp4",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractStorageKey(tt.input))
		})
	}
}

func TestExtractStorageKeyNestedKeys(t *testing.T) {
	// Keys with many path segments survive intact
	key := ExtractStorageKey("https://bkt.s3.eu-west-1.amazonaws.com/courses/1/sections/2/video with space.mp4")
	assert.Equal(t, "courses/1/sections/2/video with space.mp4", key)
}
