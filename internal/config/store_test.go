package config

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
)

func TestStore_ResolvesOnce(t *testing.T) {
	s := NewStore()

	var calls atomic.Int32
	load := func() (*Document, error) {
		calls.Add(1)
		return NewDocument(), nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, _, err := s.Resolve("project", load); err != nil {
				t.Errorf("Resolve() error: %v", err)
			}
		}()
	}
	wg.Wait()

	if got := calls.Load(); got != 1 {
		t.Errorf("load called %d times, want 1", got)
	}

	_, cached, err := s.Resolve("project", load)
	if err != nil || !cached {
		t.Errorf("Resolve() = cached %v, err %v; want cached", cached, err)
	}
}

func TestStore_FailedLoadIsRetried(t *testing.T) {
	s := NewStore()

	_, _, err := s.Resolve("project", func() (*Document, error) {
		return nil, fmt.Errorf("broken")
	})
	if err == nil {
		t.Fatal("Resolve() should return the load error")
	}
	if _, ok := s.Lookup("project"); ok {
		t.Error("Lookup() found a failed load")
	}

	doc, cached, err := s.Resolve("project", func() (*Document, error) {
		return NewDocument(), nil
	})
	if err != nil || cached || doc == nil {
		t.Errorf("Resolve() = %v, %v, %v; want fresh document", doc, cached, err)
	}
	if got := s.Len(); got != 1 {
		t.Errorf("Len() = %d, want 1", got)
	}
}

func TestStore_IdentitiesAreIndependent(t *testing.T) {
	s := NewStore()
	release := make(chan struct{})
	started := make(chan struct{})

	go func() {
		_, _, _ = s.Resolve("slow", func() (*Document, error) {
			close(started)
			<-release
			return NewDocument(), nil
		})
	}()
	<-started

	if _, _, err := s.Resolve("fast", func() (*Document, error) {
		return NewDocument(), nil
	}); err != nil {
		t.Errorf("Resolve() error: %v", err)
	}
	close(release)
}

func TestStore_LookupDoesNotRecord(t *testing.T) {
	s := NewStore()

	for i := 0; i < 5; i++ {
		if doc, ok := s.Lookup(fmt.Sprintf("unknown-%d", i)); ok || doc != nil {
			t.Errorf("Lookup() = %v, %v; want nil, false", doc, ok)
		}
	}

	s.mu.Lock()
	n := len(s.entries)
	s.mu.Unlock()
	if n != 0 {
		t.Errorf("store holds %d entries after lookups, want 0", n)
	}

	if _, _, err := s.Resolve("project", func() (*Document, error) {
		return NewDocument(), nil
	}); err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if _, ok := s.Lookup("project"); !ok {
		t.Error("Lookup() missed a resolved identity")
	}
}
