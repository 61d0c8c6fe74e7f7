package encoder

// Outcome counters of a batch
type Report struct {
	Total       int
	Synthesized int
	Rejected    map[Reason]int
}

func NewReport(results []Result) *Report {
	r := &Report{
		Total:    len(results),
		Rejected: make(map[Reason]int),
	}

	for i := range results {
		if results[i].Ok() {
			r.Synthesized++
		} else {
			r.Rejected[results[i].Rejection.Reason]++
		}
	}

	return r
}

func (r *Report) count(pred func(Reason) bool) int {
	total := 0

	for reason, n := range r.Rejected {
		if pred(reason) {
			total += n
		}
	}

	return total
}

// Instructions rejected before their layout was resolved
func (r *Report) Excluded() int {
	return r.count(Reason.IsExclusion)
}

// Instructions whose template could not be turned into a valid layout
func (r *Report) BrokenEncodings() int {
	return r.count(Reason.IsBrokenEncoding)
}

func (r *Report) RejectedTotal() int {
	return r.Total - r.Synthesized
}
