package tminuslib

import (
	"errors"
	"path/filepath"
	"testing"
)

func newTestManager(t *testing.T, clock Clock) *Manager {
	t.Helper()
	path := filepath.Join(t.TempDir(), "countdowns.db")
	m, err := InitManagerWithStore(path, clock)
	if err != nil {
		t.Fatalf("InitManagerWithStore error: %v", err)
	}
	t.Cleanup(func() { m.Close() })
	return m
}

func TestManagerAddAndGet(t *testing.T) {
	m := newTestManager(t, nil)

	item, err := m.AddCountdown("launch", 1_000_000, nil)
	if err != nil {
		t.Fatalf("AddCountdown error: %v", err)
	}
	if item.Hash == "" {
		t.Error("item hash is empty")
	}

	got, err := m.GetItem(item.Hash)
	if err != nil {
		t.Fatalf("GetItem error: %v", err)
	}
	if got.Name != "launch" || got.TargetAt != 1_000_000 {
		t.Errorf("got %q/%d, want launch/1000000", got.Name, got.TargetAt)
	}
}

func TestManagerRejectsDuplicateNames(t *testing.T) {
	m := newTestManager(t, nil)

	if _, err := m.AddCountdown("launch", 0, nil); err != nil {
		t.Fatalf("AddCountdown error: %v", err)
	}
	if _, err := m.AddCountdown("launch", 5_000, nil); !errors.Is(err, ErrCountdownExists) {
		t.Errorf("duplicate add error = %v, want ErrCountdownExists", err)
	}
}

func TestManagerRejectsEmptyName(t *testing.T) {
	m := newTestManager(t, nil)

	if _, err := m.AddCountdown("", 0, nil); !errors.Is(err, ErrNameEmpty) {
		t.Errorf("empty name error = %v, want ErrNameEmpty", err)
	}
}

func TestManagerListsSortedAndFiltered(t *testing.T) {
	clock := newFakeClock(10_000)
	m := newTestManager(t, clock)

	if _, err := m.AddCountdown("late", 100_000, nil); err != nil {
		t.Fatal(err)
	}
	if _, err := m.AddCountdown("early", 20_000, nil); err != nil {
		t.Fatal(err)
	}
	if _, err := m.AddCountdown("done", 5_000, nil); err != nil {
		t.Fatal(err)
	}
	if _, err := m.AddCountdown("secret", 30_000, &AddCountdownOpts{IsHidden: true}); err != nil {
		t.Fatal(err)
	}

	all := m.GetItems()
	if len(all) != 4 {
		t.Fatalf("GetItems returned %d items, want 4 (hidden included)", len(all))
	}
	wantOrder := []string{"done", "early", "secret", "late"}
	for i, name := range wantOrder {
		if all[i].Name != name {
			t.Errorf("GetItems[%d] = %q, want %q", i, all[i].Name, name)
		}
	}

	pending := m.GetPendingItems()
	if len(pending) != 3 || pending[0].Name != "early" || pending[2].Name != "late" {
		t.Errorf("GetPendingItems = %v, want [early secret late]", names(pending))
	}

	elapsed := m.GetElapsedItems()
	if len(elapsed) != 1 || elapsed[0].Name != "done" {
		t.Errorf("GetElapsedItems = %v, want [done]", names(elapsed))
	}
}

func names(items []*Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Name
	}
	return out
}

func TestManagerPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "countdowns.db")
	m, err := InitManagerWithStore(path, nil)
	if err != nil {
		t.Fatalf("InitManagerWithStore error: %v", err)
	}
	item, err := m.AddCountdown("release", 9_000_000, &AddCountdownOpts{CronExpr: "0 9 * * *"})
	if err != nil {
		t.Fatalf("AddCountdown error: %v", err)
	}
	if err := m.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}

	m2, err := InitManagerWithStore(path, nil)
	if err != nil {
		t.Fatalf("reopen error: %v", err)
	}
	defer m2.Close()

	got, err := m2.GetItem(item.Hash)
	if err != nil {
		t.Fatalf("GetItem after reopen error: %v", err)
	}
	if got.Name != "release" || got.TargetAt != 9_000_000 || got.CronExpr != "0 9 * * *" {
		t.Errorf("reloaded item = %+v", got)
	}
	if !got.IsRecurring() {
		t.Error("IsRecurring() = false after reopen, want true")
	}
}

func TestManagerRemove(t *testing.T) {
	m := newTestManager(t, nil)

	item, err := m.AddCountdown("gone", 0, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := m.RemoveCountdown(item.Hash); err != nil {
		t.Fatalf("RemoveCountdown error: %v", err)
	}
	if _, err := m.GetItem(item.Hash); !errors.Is(err, ErrCountdownNotFound) {
		t.Errorf("GetItem after remove error = %v, want ErrCountdownNotFound", err)
	}
	if err := m.RemoveCountdown("nope"); !errors.Is(err, ErrCountdownNotFound) {
		t.Errorf("remove missing error = %v, want ErrCountdownNotFound", err)
	}
}

func TestManagerActivateIsSingleflight(t *testing.T) {
	clock := newFakeClock(1_000)
	m := newTestManager(t, clock)

	item, err := m.AddCountdown("watchme", 60_000, nil)
	if err != nil {
		t.Fatal(err)
	}

	sink := &recordSink{}
	cd1, err := m.Activate(item.Hash, sink)
	if err != nil {
		t.Fatalf("Activate error: %v", err)
	}
	cd2, err := m.Activate(item.Hash, &recordSink{})
	if err != nil {
		t.Fatalf("second Activate error: %v", err)
	}
	if cd1 != cd2 {
		t.Error("Activate returned a second Countdown for the same item")
	}
	if got := m.ActiveCount(); got != 1 {
		t.Errorf("ActiveCount = %d, want 1", got)
	}

	m.Deactivate(item.Hash)
	if got := m.ActiveCount(); got != 0 {
		t.Errorf("ActiveCount after Deactivate = %d, want 0", got)
	}
}

func TestManagerSetTargetRetargetsActiveScheduler(t *testing.T) {
	clock := newFakeClock(1_000)
	m := newTestManager(t, clock)

	item, err := m.AddCountdown("moving", 60_000, nil)
	if err != nil {
		t.Fatal(err)
	}
	sink := &recordSink{}
	if _, err := m.Activate(item.Hash, sink); err != nil {
		t.Fatalf("Activate error: %v", err)
	}

	if err := m.SetTarget(item.Hash, 6_000); err != nil {
		t.Fatalf("SetTarget error: %v", err)
	}
	if got := sink.last(); got != "5 seconds" {
		t.Errorf("rendered %q after retarget, want %q", got, "5 seconds")
	}
	if got := item.GetTarget(); got != 6_000 {
		t.Errorf("item target = %d, want 6000", got)
	}
}
