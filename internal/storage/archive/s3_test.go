package archive

import (
	"strings"
	"testing"
)

func TestS3Storage_ImplementsStorage(t *testing.T) {
	var _ Storage = (*S3Storage)(nil)
}

func TestS3Storage_ObjectKey(t *testing.T) {
	tests := []struct {
		prefix string
		key    string
		want   string
	}{
		{"", "reports/AAPL/r.json", "reports/AAPL/r.json"},
		{"hindsight", "reports/AAPL/r.json", "hindsight/reports/AAPL/r.json"},
		{"hindsight/", "reports/AAPL/r.json", "hindsight/reports/AAPL/r.json"},
	}

	for _, tt := range tests {
		s := &S3Storage{prefix: strings.TrimSuffix(tt.prefix, "/")}
		got := s.objectKey(tt.key)
		if got != tt.want {
			t.Errorf("objectKey(%q) with prefix %q = %q, want %q", tt.key, tt.prefix, got, tt.want)
		}
	}
}
