package cache

import (
	"testing"
	"time"
)

func TestEntry_IsExpired(t *testing.T) {
	tests := []struct {
		name    string
		expires time.Time
		want    bool
	}{
		{"expired entry", time.Now().Add(-1 * time.Hour), true},
		{"valid entry", time.Now().Add(1 * time.Hour), false},
		{"just expired", time.Now().Add(-1 * time.Second), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := &Entry{Expires: tt.expires}
			if got := entry.IsExpired(); got != tt.want {
				t.Errorf("IsExpired() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEntry_TTL(t *testing.T) {
	tests := []struct {
		name    string
		expires time.Time
		wantMin time.Duration
		wantMax time.Duration
	}{
		{"one hour remaining", time.Now().Add(1 * time.Hour), 59 * time.Minute, 61 * time.Minute},
		{"already expired", time.Now().Add(-1 * time.Hour), 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := &Entry{Expires: tt.expires}
			got := entry.TTL()
			if got < tt.wantMin || got > tt.wantMax {
				t.Errorf("TTL() = %v, want between %v and %v", got, tt.wantMin, tt.wantMax)
			}
		})
	}
}

func TestEntry_StorageTTL(t *testing.T) {
	stale := &Entry{Expires: time.Now().Add(-time.Minute)}
	if got := stale.storageTTL(); got != 0 {
		t.Errorf("stale entry without validator: storageTTL() = %v, want 0", got)
	}

	staleWithETag := &Entry{Expires: time.Now().Add(-time.Minute), ETag: `"v1"`}
	if got := staleWithETag.storageTTL(); got != StaleGrace {
		t.Errorf("stale entry with ETag: storageTTL() = %v, want %v", got, StaleGrace)
	}

	fresh := &Entry{Expires: time.Now().Add(time.Hour), LastModified: time.Now()}
	if got := fresh.storageTTL(); got < StaleGrace+59*time.Minute {
		t.Errorf("fresh entry with validator: storageTTL() = %v, want > %v", got, StaleGrace+59*time.Minute)
	}
}
