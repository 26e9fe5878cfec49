package session

import (
	"fmt"
	"sync"
	"testing"

	"github.com/jackzampolin/formscan/internal/extract"
)

func TestStore_CreateAndGet(t *testing.T) {
	store := NewStore(4)

	sess := store.Create(3, []byte("png"), []string{"Total"})
	if sess.ID == "" {
		t.Fatal("expected a session ID")
	}
	if sess.PageNumber != 3 {
		t.Errorf("expected page 3, got %d", sess.PageNumber)
	}

	got, ok := store.Get(sess.ID)
	if !ok {
		t.Fatal("session not found")
	}
	if string(got.Image) != "png" {
		t.Errorf("unexpected image data: %q", got.Image)
	}
}

func TestStore_GetUnknown(t *testing.T) {
	store := NewStore(4)
	if _, ok := store.Get("nope"); ok {
		t.Error("expected miss for unknown session")
	}
}

func TestStore_SetResult(t *testing.T) {
	store := NewStore(4)
	sess := store.Create(1, []byte("png"), []string{"Total"})

	result := &extract.Result{
		Fields: []extract.FieldValue{{Name: "Total", Value: "$5.00"}},
	}
	if !store.SetResult(sess.ID, []string{"Total"}, result) {
		t.Fatal("SetResult failed for live session")
	}

	got, _ := store.Get(sess.ID)
	if got.Result == nil || got.Result.Fields[0].Value != "$5.00" {
		t.Error("result not recorded on session")
	}
	if !got.UpdatedAt.After(got.CreatedAt) && !got.UpdatedAt.Equal(got.CreatedAt) {
		t.Error("UpdatedAt should move forward")
	}

	if store.SetResult("nope", []string{"Total"}, result) {
		t.Error("SetResult should fail for unknown session")
	}
}

func TestStore_SetResultUpdatesFields(t *testing.T) {
	store := NewStore(4)
	sess := store.Create(1, []byte("png"), []string{"Total"})

	result := &extract.Result{
		Fields: []extract.FieldValue{{Name: "Due Date", Value: "2024-06-01"}},
	}
	store.SetResult(sess.ID, []string{"Due Date"}, result)

	got, _ := store.Get(sess.ID)
	if len(got.Fields) != 1 || got.Fields[0] != "Due Date" {
		t.Errorf("session fields should follow the latest extraction, got %v", got.Fields)
	}
}

func TestStore_GetReturnsSnapshot(t *testing.T) {
	store := NewStore(4)
	sess := store.Create(1, []byte("png"), []string{"Total"})

	before, _ := store.Get(sess.ID)
	store.SetResult(sess.ID, []string{"Total"}, &extract.Result{})

	if before.Result != nil {
		t.Error("snapshot taken before SetResult should not see the result")
	}
	after, _ := store.Get(sess.ID)
	if after.Result == nil {
		t.Error("snapshot taken after SetResult should see the result")
	}
}

func TestStore_ConcurrentGetAndSetResult(t *testing.T) {
	store := NewStore(4)
	sess := store.Create(1, []byte("png"), []string{"Total"})

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				store.SetResult(sess.ID, []string{"Total"}, &extract.Result{})
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if got, ok := store.Get(sess.ID); ok {
					_ = got.UpdatedAt
					_ = got.Fields
				}
			}
		}()
	}
	wg.Wait()
}

func TestStore_EvictsOldest(t *testing.T) {
	store := NewStore(2)

	first := store.Create(1, []byte("a"), nil)
	store.Create(1, []byte("b"), nil)
	store.Create(1, []byte("c"), nil)

	if store.Len() != 2 {
		t.Fatalf("expected 2 sessions, got %d", store.Len())
	}
	if _, ok := store.Get(first.ID); ok {
		t.Error("oldest session should have been evicted")
	}
}

func TestStore_UniqueIDs(t *testing.T) {
	store := NewStore(16)
	seen := make(map[string]bool)
	for i := 0; i < 10; i++ {
		sess := store.Create(1, []byte(fmt.Sprintf("p%d", i)), nil)
		if seen[sess.ID] {
			t.Fatalf("duplicate session ID %s", sess.ID)
		}
		seen[sess.ID] = true
	}
}
