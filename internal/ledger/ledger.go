// Package ledger maintains the ordered conversation context handed to the
// language model. Reconciliation is exposed as two explicit operations,
// merge-by-identity and delete-by-identity, instead of a single call that
// inspects its operand's shape.
package ledger

import "interview-service/internal/models"

// Merge reconciles updates into the existing ordered sequence. A message
// sharing an existing identity overwrites that entry in place; genuinely
// new identities are appended at the end, in the order given.
func Merge(existing []models.Message, updates []models.Message) []models.Message {
	index := make(map[string]int, len(existing))
	for i, msg := range existing {
		index[msg.ID] = i
	}

	merged := make([]models.Message, len(existing))
	copy(merged, existing)
	for _, msg := range updates {
		if i, ok := index[msg.ID]; ok {
			merged[i] = msg
			continue
		}
		index[msg.ID] = len(merged)
		merged = append(merged, msg)
	}
	return merged
}

// Delete removes every entry whose identity is in ids. Remaining entries
// keep their relative order.
func Delete(existing []models.Message, ids []string) []models.Message {
	if len(ids) == 0 {
		return existing
	}
	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}

	kept := make([]models.Message, 0, len(existing))
	for _, msg := range existing {
		if _, gone := drop[msg.ID]; gone {
			continue
		}
		kept = append(kept, msg)
	}
	return kept
}
