package types

// An Explainer is told how the engines treat each row. It is meant
// for debugging filters which do not match what the user expects.
type Explainer interface {
	// The filters which will actually be applied, after unknown
	// columns and empty terms were dropped and inline operators
	// resolved.
	StartFilter(filters []Filter)

	// The row failed the filter. value is the cell value the
	// filter saw.
	RejectRow(row Row, filter Filter, value Any)

	// The row passed every filter.
	AcceptRow(row Row)

	// The sort keys which will actually be applied.
	StartSort(keys []SortKey)
}
