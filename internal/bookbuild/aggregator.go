// Package bookbuild aggregates the raw per-game entries the replayer
// produces into the sorted, reweighted stream a Polyglot writer serializes.
package bookbuild

import (
	"sort"

	"github.com/lgbarn/pgnbook/internal/polyglot"
)

// Aggregator collects entries across every replayed game and, on Finish,
// sorts and reweights them by observation frequency within each position.
type Aggregator struct {
	entries []polyglot.Entry
}

// NewAggregator returns an Aggregator pre-sized for an expected input of
// roughly inputSize bytes of PGN text; two entries per sixteen input bytes
// is a reasonable average density to avoid repeated slice growth on large
// corpora.
func NewAggregator(inputSize int) *Aggregator {
	return &Aggregator{entries: make([]polyglot.Entry, 0, 2*inputSize/16)}
}

// Add appends a game's entries to the pending set.
func (a *Aggregator) Add(entries []polyglot.Entry) {
	a.entries = append(a.entries, entries...)
}

// Len reports how many raw entries have been added so far.
func (a *Aggregator) Len() int {
	return len(a.entries)
}

// Finish sorts the accumulated entries by key, then within each same-key
// run by descending weight and descending move code, after reweighting runs
// of three or more observations by how often each move was actually played
// from that position. Runs of one or two observations are left at weight 1:
// there isn't enough data in them to prefer one move over another.
func (a *Aggregator) Finish() []polyglot.Entry {
	sortByKey(a.entries)

	out := make([]polyglot.Entry, 0, len(a.entries))
	i := 0
	for i < len(a.entries) {
		j := i + 1
		for j < len(a.entries) && a.entries[j].Key == a.entries[i].Key {
			j++
		}
		out = append(out, reweightRun(a.entries[i:j])...)
		i = j
	}
	return out
}

// reweightRun handles one key's worth of raw entries: for small runs, every
// entry is kept with its original weight; for runs of three or more, moves
// are collapsed to one entry per distinct move, weighted by how many times
// that move appeared in the run, and learn is taken from the first
// occurrence.
func reweightRun(run []polyglot.Entry) []polyglot.Entry {
	if len(run) < 3 {
		out := make([]polyglot.Entry, len(run))
		copy(out, run)
		sortByWeightThenMove(out)
		return out
	}

	counts := make(map[uint16]int, len(run))
	learn := make(map[uint16]uint32, len(run))
	for _, e := range run {
		counts[e.Move]++
		if _, seen := learn[e.Move]; !seen {
			learn[e.Move] = e.Learn
		}
	}

	out := make([]polyglot.Entry, 0, len(counts))
	for move, count := range counts {
		out = append(out, polyglot.Entry{
			Key:    run[0].Key,
			Move:   move,
			Weight: uint16(count),
			Learn:  learn[move],
		})
	}
	sortByWeightThenMove(out)
	return out
}

func sortByKey(entries []polyglot.Entry) {
	sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })
}

func sortByWeightThenMove(entries []polyglot.Entry) {
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Weight != b.Weight {
			return a.Weight > b.Weight
		}
		return a.Move > b.Move
	})
}
