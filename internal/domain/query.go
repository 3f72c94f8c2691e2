package domain

import "time"

// QueryVariant identifies one of the eight aggregate/list query shapes:
// {client, global} x {range, after, before, all}.
type QueryVariant uint8

const (
	VariantClientRange QueryVariant = iota + 1
	VariantClientAfter
	VariantClientBefore
	VariantClientAll
	VariantGlobalRange
	VariantGlobalAfter
	VariantGlobalBefore
	VariantGlobalAll
)

type variantKey struct {
	scoped  bool
	hasFrom bool
	hasTo   bool
}

var variantTable = map[variantKey]QueryVariant{
	{scoped: true, hasFrom: true, hasTo: true}:    VariantClientRange,
	{scoped: true, hasFrom: true, hasTo: false}:   VariantClientAfter,
	{scoped: true, hasFrom: false, hasTo: true}:   VariantClientBefore,
	{scoped: true, hasFrom: false, hasTo: false}:  VariantClientAll,
	{scoped: false, hasFrom: true, hasTo: true}:   VariantGlobalRange,
	{scoped: false, hasFrom: true, hasTo: false}:  VariantGlobalAfter,
	{scoped: false, hasFrom: false, hasTo: true}:  VariantGlobalBefore,
	{scoped: false, hasFrom: false, hasTo: false}: VariantGlobalAll,
}

var variantNames = map[QueryVariant]string{
	VariantClientRange:  "client_range",
	VariantClientAfter:  "client_after",
	VariantClientBefore: "client_before",
	VariantClientAll:    "client_all",
	VariantGlobalRange:  "global_range",
	VariantGlobalAfter:  "global_after",
	VariantGlobalBefore: "global_before",
	VariantGlobalAll:    "global_all",
}

// VariantFor looks up the query variant for a scope/bound combination.
func VariantFor(scoped, hasFrom, hasTo bool) QueryVariant {
	return variantTable[variantKey{scoped: scoped, hasFrom: hasFrom, hasTo: hasTo}]
}

// AllVariants returns every variant in declaration order.
func AllVariants() []QueryVariant {
	return []QueryVariant{
		VariantClientRange, VariantClientAfter, VariantClientBefore, VariantClientAll,
		VariantGlobalRange, VariantGlobalAfter, VariantGlobalBefore, VariantGlobalAll,
	}
}

func (v QueryVariant) String() string {
	if name, ok := variantNames[v]; ok {
		return name
	}
	return "unknown"
}

// Scoped reports whether the variant filters by client.
func (v QueryVariant) Scoped() bool {
	return v >= VariantClientRange && v <= VariantClientAll
}

// LedgerQuery is the resolved input to aggregation. An empty ClientID means
// all clients.
type LedgerQuery struct {
	ClientID string
	Window   TimeWindow
}

// Scope returns the client scope of the query.
func (q LedgerQuery) Scope() Scope {
	return Scope{ClientID: q.ClientID}
}

// Variant selects the query variant matching the scope and window bounds.
func (q LedgerQuery) Variant() QueryVariant {
	return VariantFor(q.ClientID != "", q.Window.From != nil, q.Window.To != nil)
}

// Filter builds the retrieval filter for the query. Bounds absent from the
// window are left as zero values.
func (q LedgerQuery) Filter() SaleFilter {
	f := SaleFilter{
		Variant:  q.Variant(),
		ClientID: q.ClientID,
	}
	if q.Window.From != nil {
		f.From = *q.Window.From
	}
	if q.Window.To != nil {
		f.To = *q.Window.To
	}
	return f
}

// SaleFilter is the data-layer filter for one query variant. Only the fields
// the variant uses are meaningful.
type SaleFilter struct {
	From     time.Time
	To       time.Time
	ClientID string
	Variant  QueryVariant
}

// Matches reports whether a sale falls inside the filter. Bounds are
// inclusive.
func (f SaleFilter) Matches(s *Sale) bool {
	if f.Variant.Scoped() && s.ClientID != f.ClientID {
		return false
	}

	switch f.Variant {
	case VariantClientRange, VariantGlobalRange:
		return !s.SoldAt.Before(f.From) && !s.SoldAt.After(f.To)
	case VariantClientAfter, VariantGlobalAfter:
		return !s.SoldAt.Before(f.From)
	case VariantClientBefore, VariantGlobalBefore:
		return !s.SoldAt.After(f.To)
	default:
		return true
	}
}
