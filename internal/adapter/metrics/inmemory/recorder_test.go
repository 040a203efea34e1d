package inmemory

import "testing"

func TestRecorderSnapshot(t *testing.T) {
	r := NewRecorder()
	r.RecordSuccess("feed")
	r.RecordSuccess("feed")
	r.RecordRejected("feed")
	r.RecordFailure("play")

	snap := r.Snapshot()
	if snap.Total != 4 {
		t.Fatalf("total = %d, want 4", snap.Total)
	}
	if snap.ByAction["feed"].Success != 2 || snap.ByAction["feed"].Rejected != 1 {
		t.Fatalf("feed counters = %+v", snap.ByAction["feed"])
	}
	if snap.ByAction["play"].Failure != 1 {
		t.Fatalf("play counters = %+v", snap.ByAction["play"])
	}
}

func TestRecorderSnapshotIsACopy(t *testing.T) {
	r := NewRecorder()
	r.RecordSuccess("care")
	snap := r.Snapshot()
	r.RecordSuccess("care")
	if snap.ByAction["care"].Success != 1 {
		t.Fatalf("snapshot mutated after the fact: %+v", snap.ByAction["care"])
	}
}
