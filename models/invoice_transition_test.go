package models

import (
	"errors"
	"testing"
	"time"

	"github.com/mmdatafocus/notas_backend/utils"
)

func TestResolveSetsTheWholeResolutionGroup(t *testing.T) {
	inc := Inconsistency{ID: 1, Description: "Divergência de valores.", AreaId: 3}
	now := time.Date(2023, 11, 3, 11, 0, 0, 0, time.UTC)

	if err := inc.Resolve("Valores ajustados com a gerência.", 2, now); err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if !inc.IsResolved {
		t.Error("expected IsResolved = true")
	}
	if inc.SolutionNotes == "" || inc.ResolvedAt == nil || inc.ResolvedBy == nil {
		t.Error("resolution fields must all be set together")
	}
	if *inc.ResolvedBy != 2 || !inc.ResolvedAt.Equal(now) {
		t.Errorf("unexpected resolution metadata: by=%v at=%v", *inc.ResolvedBy, inc.ResolvedAt)
	}
}

func TestResolveRejectsShortNote(t *testing.T) {
	inc := Inconsistency{ID: 1, AreaId: 3}
	err := inc.Resolve("ok", 2, time.Now().UTC())
	if err == nil {
		t.Fatal("expected a validation error for a short note")
	}
	var valErr *utils.ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if inc.IsResolved || inc.SolutionNotes != "" || inc.ResolvedAt != nil || inc.ResolvedBy != nil {
		t.Error("rejected resolve must leave the item untouched")
	}
}

func TestResolveCountsNoteLengthInRunes(t *testing.T) {
	now := time.Now().UTC()

	// four accented characters are eight bytes but still too short
	short := Inconsistency{ID: 1, AreaId: 3}
	if err := short.Resolve("éééé", 2, now); err == nil {
		t.Error("expected a validation error for a 4-character accented note")
	}

	ok := Inconsistency{ID: 2, AreaId: 3}
	if err := ok.Resolve("ééééé", 2, now); err != nil {
		t.Errorf("5-character accented note rejected: %v", err)
	}
}

func TestResolveRejectsAlreadyResolved(t *testing.T) {
	inc := Inconsistency{ID: 1, AreaId: 3}
	now := time.Now().UTC()
	if err := inc.Resolve("primeira solução", 2, now); err != nil {
		t.Fatalf("first resolve failed: %v", err)
	}
	if err := inc.Resolve("segunda solução", 3, now); err == nil {
		t.Fatal("expected an error resolving an already-resolved item")
	}
	if *inc.ResolvedBy != 2 {
		t.Error("second attempt must not overwrite resolution metadata")
	}
}

func TestUndoReturnsStagedNoteAndPreservesArea(t *testing.T) {
	inc := Inconsistency{ID: 1, AreaId: 3}
	now := time.Now().UTC()
	if err := inc.Resolve("CFOP corrigido para 6.102.", 2, now); err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	staged, err := inc.Undo()
	if err != nil {
		t.Fatalf("undo failed: %v", err)
	}
	if staged != "CFOP corrigido para 6.102." {
		t.Errorf("staged note %q, want the prior solution note", staged)
	}
	if inc.IsResolved || inc.SolutionNotes != "" || inc.ResolvedAt != nil || inc.ResolvedBy != nil {
		t.Error("undo must clear the whole resolution group")
	}
	if inc.AreaId != 3 {
		t.Errorf("undo must not change the area, got %d", inc.AreaId)
	}
}

func TestUndoRejectsPendingItem(t *testing.T) {
	inc := Inconsistency{ID: 1, AreaId: 3}
	_, err := inc.Undo()
	if err == nil {
		t.Fatal("expected an error undoing a pending item")
	}
	var stateErr *utils.StateError
	if !errors.As(err, &stateErr) {
		t.Fatalf("expected StateError, got %T", err)
	}
}

func TestReassignRejectsResolvedItem(t *testing.T) {
	inc := Inconsistency{ID: 1, AreaId: 3}
	if err := inc.Resolve("nota resolvida e fechada", 2, time.Now().UTC()); err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	err := inc.Reassign(5)
	if err == nil {
		t.Fatal("expected an error reassigning a resolved item")
	}
	var stateErr *utils.StateError
	if !errors.As(err, &stateErr) {
		t.Fatalf("expected StateError, got %T", err)
	}
	if inc.AreaId != 3 {
		t.Errorf("rejected reassign must keep area %d, got %d", 3, inc.AreaId)
	}
}

func TestReassignMovesPendingItem(t *testing.T) {
	inc := Inconsistency{ID: 1, AreaId: 3}
	if err := inc.Reassign(5); err != nil {
		t.Fatalf("reassign failed: %v", err)
	}
	if inc.AreaId != 5 {
		t.Errorf("area = %d, want 5", inc.AreaId)
	}
}

func TestRecomputeResolvedAt(t *testing.T) {
	now := time.Date(2023, 11, 3, 11, 0, 0, 0, time.UTC)
	later := now.Add(time.Hour)

	inv := Invoice{
		Inconsistencies: []Inconsistency{
			{ID: 1, IsResolved: true},
			{ID: 2},
		},
	}
	if inv.RecomputeResolvedAt(now) {
		t.Error("no change expected while items are still pending")
	}

	inv.Inconsistencies[1].IsResolved = true
	if !inv.RecomputeResolvedAt(now) {
		t.Error("expected the aggregate to be set when the last item resolves")
	}
	if inv.ResolvedAt == nil || !inv.ResolvedAt.Equal(now) {
		t.Fatalf("resolved_at = %v, want %v", inv.ResolvedAt, now)
	}

	// idempotent: a second recompute never overwrites the timestamp
	if inv.RecomputeResolvedAt(later) {
		t.Error("no change expected on a no-op recompute")
	}
	if !inv.ResolvedAt.Equal(now) {
		t.Errorf("resolved_at was overwritten to %v", inv.ResolvedAt)
	}

	inv.Inconsistencies[0].IsResolved = false
	if !inv.RecomputeResolvedAt(later) {
		t.Error("expected the aggregate to clear when an item pends again")
	}
	if inv.ResolvedAt != nil {
		t.Errorf("resolved_at = %v, want nil", inv.ResolvedAt)
	}
}

func TestUnresolvedCountOnEmptyList(t *testing.T) {
	inv := Invoice{}
	if got := inv.UnresolvedCount(); got != 0 {
		t.Errorf("UnresolvedCount() = %d, want 0", got)
	}
}
