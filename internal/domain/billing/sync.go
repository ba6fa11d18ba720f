package billing

import "github.com/shopspring/decimal"

// Item is a line item as it participates in edit-buffer diffing. An ID of
// zero marks a transient item that exists only in the edit buffer.
type Item struct {
	ID          int64
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
}

// OpKind identifies one operation in a synchronization plan.
type OpKind string

const (
	OpCreate OpKind = "create"
	OpUpdate OpKind = "update"
	OpDelete OpKind = "delete"
)

// Op is a single create/update/delete against the item collection.
type Op struct {
	Kind OpKind
	Item Item
}

// DiffItems reconciles the edit buffer against the previously persisted
// items and returns the plan of operations to apply. Updates and creates
// appear in edit-buffer order; deletes of persisted items missing from the
// buffer come last. The plan is recomputed fresh on every save and carries
// no state between saves; execution is the caller's concern.
func DiffItems(persisted, edited []Item) []Op {
	ops := make([]Op, 0, len(edited)+len(persisted))

	seen := make(map[int64]bool, len(edited))
	for _, it := range edited {
		if it.ID != 0 {
			seen[it.ID] = true
			ops = append(ops, Op{Kind: OpUpdate, Item: it})
			continue
		}
		ops = append(ops, Op{Kind: OpCreate, Item: it})
	}

	for _, it := range persisted {
		if !seen[it.ID] {
			ops = append(ops, Op{Kind: OpDelete, Item: it})
		}
	}

	return ops
}
