package pg

// RepresentativeSource describes one candidate table for a per-parent
// representative scalar: where candidate rows come from, how they correlate
// to the parent, the value taken, and the ordering under which a single row
// is extremal. The ordering should end on a stable id so ties resolve
// deterministically.
type RepresentativeSource struct {
	From    string // FROM clause with joins
	Where   string // correlation to the parent plus the qualifying predicate
	Value   string // selected expression
	OrderBy string // extremal ordering, one row wins
}

// SQL renders the source as a correlated scalar subquery picking its
// extremal row, NULL when no row qualifies.
func (s RepresentativeSource) SQL() string {
	return "(SELECT " + s.Value +
		" FROM " + s.From +
		" WHERE " + s.Where +
		" ORDER BY " + s.OrderBy +
		" LIMIT 1)"
}

// LatestWithFallback resolves a per-parent scalar with a strict two-tier
// preference: when the primary source has any qualifying row for the
// parent, its extremal row wins outright, even if a fallback row is more
// recent; the fallback contributes only when the primary has none. Each
// source's Where must exclude NULL values, so a primary subquery returns
// NULL exactly when the primary tier is empty and COALESCE implements the
// two-tier rule, not a value-wise merge of both sources.
func LatestWithFallback(primary, fallback RepresentativeSource) string {
	return "COALESCE(" + primary.SQL() + ", " + fallback.SQL() + ")"
}

// CollectionAgg aggregates grouped child rows into an order-stable JSON
// array. presentExpr filters out the NULL rows a LEFT JOIN produces for
// childless parents, and COALESCE turns the resulting NULL aggregate into
// an empty array so consumers never see null.
func CollectionAgg(objectExpr, orderKey, presentExpr string) string {
	return "COALESCE(json_agg(" + objectExpr +
		" ORDER BY " + orderKey +
		") FILTER (WHERE " + presentExpr + "), '[]')"
}
