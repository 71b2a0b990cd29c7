package data

// TranscriptRepository persists every answered question across runs,
// independently of the in-memory Session. Failures here are reported and
// swallowed by the caller, an exchange that could not be stored still gets
// displayed.
type TranscriptRepository interface {
	InsertExchange(exchange Exchange) (int64, error)
	RecentExchanges(maxCount int) ([]Exchange, error)
}
