package importer

// RowStatus is a terminal per-row outcome.
type RowStatus string

const (
	RowCreated RowStatus = "created"
	RowUpdated RowStatus = "updated"
	RowSkipped RowStatus = "skipped"
	RowError   RowStatus = "error"
)

type RowResult struct {
	RowNumber int       `json:"row_number"`
	Status    RowStatus `json:"status"`
	Message   string    `json:"message"`
}

type Summary struct {
	TotalRows int `json:"total_rows"`
	Created   int `json:"created"`
	Updated   int `json:"updated"`
	Skipped   int `json:"skipped"`
	Errors    int `json:"errors"`
}

// Reporter accumulates exactly one RowResult per raw row, in file order.
// It is batch-scoped: a fresh Reporter is created per request and returned
// to the caller, never shared across requests.
type Reporter struct {
	results []RowResult
	summary Summary
}

func NewReporter(expectedRows int) *Reporter {
	return &Reporter{results: make([]RowResult, 0, expectedRows)}
}

func (r *Reporter) Record(rowNumber int, status RowStatus, message string) {
	r.results = append(r.results, RowResult{RowNumber: rowNumber, Status: status, Message: message})
	r.summary.TotalRows++
	switch status {
	case RowCreated:
		r.summary.Created++
	case RowUpdated:
		r.summary.Updated++
	case RowSkipped:
		r.summary.Skipped++
	case RowError:
		r.summary.Errors++
	}
}

func (r *Reporter) Results() []RowResult {
	return r.results
}

func (r *Reporter) Summary() Summary {
	return r.summary
}
