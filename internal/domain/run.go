package domain

import "time"

// StatusCounts tallies entities per lifecycle status.
type StatusCounts map[Status]int

// Total sums every bucket.
func (c StatusCounts) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}

// RunReport summarizes a single enrichment pass over one catalog.
type RunReport struct {
	ID         string
	Catalog    string
	StartedAt  time.Time
	FinishedAt time.Time
	Counts     StatusCounts
}

// Total is the number of entities classified in the run.
func (r RunReport) Total() int {
	return r.Counts.Total()
}
