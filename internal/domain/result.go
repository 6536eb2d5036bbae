package domain

// Outcome classifies what happened to one source record or document.
type Outcome string

const (
	OutcomeLoaded  Outcome = "loaded"
	OutcomeSkipped Outcome = "skipped"
	OutcomeFailed  Outcome = "failed"
)

// RecordResult is the per-record verdict: which source it came from, its
// natural key (or path for document-level entries), and why it failed or
// was skipped. Failures carry enough context to find the offending row.
type RecordResult struct {
	Source  string
	Key     string
	Outcome Outcome
	Err     error
}

// RunReport aggregates per-record results for one pipeline run. Single-record
// failures land here instead of aborting the batch.
type RunReport struct {
	Pipeline string
	Results  []RecordResult
}

// Add appends one result.
func (r *RunReport) Add(res RecordResult) {
	r.Results = append(r.Results, res)
}

// Loaded counts successfully upserted records.
func (r *RunReport) Loaded() int { return r.count(OutcomeLoaded) }

// Skipped counts skipped records and documents.
func (r *RunReport) Skipped() int { return r.count(OutcomeSkipped) }

// Failed counts records that errored.
func (r *RunReport) Failed() int { return r.count(OutcomeFailed) }

// Failures returns the failed results for detailed reporting.
func (r *RunReport) Failures() []RecordResult {
	var out []RecordResult
	for _, res := range r.Results {
		if res.Outcome == OutcomeFailed {
			out = append(out, res)
		}
	}
	return out
}

func (r *RunReport) count(o Outcome) int {
	n := 0
	for _, res := range r.Results {
		if res.Outcome == o {
			n++
		}
	}
	return n
}
