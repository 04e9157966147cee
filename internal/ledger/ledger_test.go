package ledger

import (
	"testing"

	"interview-service/internal/models"
)

func msg(id, content string) models.Message {
	return models.Message{ID: id, Role: models.RoleUser, Content: content}
}

func ids(msgs []models.Message) []string {
	out := make([]string, len(msgs))
	for i, m := range msgs {
		out[i] = m.ID
	}
	return out
}

func TestMergeOverwritesInPlace(t *testing.T) {
	existing := []models.Message{msg("1", "a"), msg("2", "b"), msg("3", "c")}
	updates := []models.Message{msg("2", "B"), msg("4", "d")}

	merged := Merge(existing, updates)

	if len(merged) != 4 {
		t.Fatalf("expected 4 messages, got %d", len(merged))
	}
	if merged[1].ID != "2" || merged[1].Content != "B" {
		t.Errorf("expected id 2 overwritten in place, got %+v", merged[1])
	}
	if merged[3].ID != "4" {
		t.Errorf("expected new id 4 appended at end, got %+v", merged[3])
	}
}

func TestMergeAppendsNewInGivenOrder(t *testing.T) {
	existing := []models.Message{msg("1", "a")}
	updates := []models.Message{msg("5", "e"), msg("4", "d"), msg("1", "A")}

	merged := Merge(existing, updates)

	want := []string{"1", "5", "4"}
	got := ids(merged)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, got)
		}
	}
	if merged[0].Content != "A" {
		t.Errorf("expected id 1 overwritten, got %q", merged[0].Content)
	}
}

func TestMergeDoesNotMutateInput(t *testing.T) {
	existing := []models.Message{msg("1", "a"), msg("2", "b")}
	Merge(existing, []models.Message{msg("1", "A")})

	if existing[0].Content != "a" {
		t.Errorf("input slice mutated: %+v", existing[0])
	}
}

func TestDeleteRemovesNamedIdentities(t *testing.T) {
	existing := []models.Message{msg("1", "a"), msg("2", "b"), msg("3", "c"), msg("4", "d")}

	kept := Delete(existing, []string{"2", "4"})

	want := []string{"1", "3"}
	got := ids(kept)
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected relative order %v preserved, got %v", want, got)
		}
	}
}

func TestDeleteUnknownIDIsNoop(t *testing.T) {
	existing := []models.Message{msg("1", "a"), msg("2", "b")}

	kept := Delete(existing, []string{"9"})

	if len(kept) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(kept))
	}
}

func TestDeleteEmptySet(t *testing.T) {
	existing := []models.Message{msg("1", "a")}
	kept := Delete(existing, nil)
	if len(kept) != 1 {
		t.Fatalf("expected unchanged ledger, got %d entries", len(kept))
	}
}
