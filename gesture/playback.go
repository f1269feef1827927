package gesture

import "errors"

// ErrPlaybackFault is returned by Playback for the batch marked as faulty.
var ErrPlaybackFault = errors.New("gesture: injected playback fault")

// Playback is a Source that replays recorded batches, one per fetch.
// DataReady stays true until every batch has been fetched.
type Playback struct {
	Batches [][]Sample

	// FaultAt is the 1-based batch whose fetch fails. Zero never fails.
	FaultAt int

	// Inactive makes SensingActive report false.
	Inactive bool

	pos     int
	fetches int
}

// SensingActive reports the Inactive switch.
func (p *Playback) SensingActive() (bool, error) {
	return !p.Inactive, nil
}

// DataReady reports whether batches remain.
func (p *Playback) DataReady() (bool, error) {
	return p.pos < len(p.Batches), nil
}

// FetchBatch copies the next batch into dst, truncating it to len(dst).
func (p *Playback) FetchBatch(dst []Sample) (int, error) {
	if p.pos >= len(p.Batches) {
		return 0, nil
	}
	p.fetches++
	p.pos++
	if p.FaultAt > 0 && p.pos == p.FaultAt {
		return 0, ErrPlaybackFault
	}
	return copy(dst, p.Batches[p.pos-1]), nil
}

// Fetches returns how many times FetchBatch was called with data pending.
func (p *Playback) Fetches() int {
	return p.fetches
}

// Rewind restarts playback from the first batch.
func (p *Playback) Rewind() {
	p.pos = 0
	p.fetches = 0
}
