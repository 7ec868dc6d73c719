package ui

import (
	"fmt"
	"slices"

	"cutdesk/internal/jogdial"
)

// Verdict is a reviewer's decision on a segment
type Verdict string

const (
	VerdictApproved Verdict = "approved"
	VerdictFlagged  Verdict = "flagged"
	VerdictPending  Verdict = "pending"
	VerdictRejected Verdict = "rejected"
)

// Segment is a reviewable range of the timeline
type Segment struct {
	End     int
	Name    string
	Note    string
	Start   int
	Verdict Verdict
}

// GenerationStatus tracks the segment generation job
type GenerationStatus string

const (
	GenerationCancelled GenerationStatus = "cancelled"
	GenerationDone      GenerationStatus = "done"
	GenerationIdle      GenerationStatus = "idle"
	GenerationRunning   GenerationStatus = "running"
)

// Generation is the state of the segment generation job
type Generation struct {
	Attempt  int
	Progress int // percent
	Status   GenerationStatus
}

const (
	maxShuttle     = 8
	noMark         = -1
	generationStep = 10
)

// Desk is the editable state of the scrubbing desk: playhead, marks, transport and review queue.
// Methods keep every frame index within [0, Total).
type Desk struct {
	Current    int // selected segment
	Frame      int
	Generation Generation
	In         int
	Loop       bool
	Out        int
	Segments   []Segment
	Shuttle    int // frames per playback tick, negative plays backwards
	Total      int
}

// NewDesk creates a desk of total frames split into segments of segmentLen frames
func NewDesk(total, segmentLen int) Desk {
	if total < 1 {
		total = 1
	}
	if segmentLen < 1 {
		segmentLen = total
	}

	d := Desk{
		Generation: Generation{Status: GenerationIdle},
		In:         noMark,
		Out:        noMark,
		Total:      total,
	}
	for start := 0; start < total; start += segmentLen {
		end := min(start+segmentLen, total) - 1
		d.Segments = append(d.Segments, Segment{
			End:     end,
			Name:    fmt.Sprintf("seg-%02d", len(d.Segments)+1),
			Start:   start,
			Verdict: VerdictPending,
		})
	}
	return d
}

// Clone returns a deep copy
func (d Desk) Clone() Desk {
	d.Segments = slices.Clone(d.Segments)
	return d
}

// Seek moves the playhead to frame, clamped to the timeline
func (d *Desk) Seek(frame int) {
	d.Frame = max(0, min(frame, d.Total-1))
}

// StepFrames moves the playhead by n frames
func (d *Desk) StepFrames(n int) {
	d.Seek(d.Frame + n)
}

// Step applies a jog dial emission
func (d *Desk) Step(dir jogdial.Direction, frames int) {
	if dir == jogdial.Backward {
		frames = -frames
	}
	d.StepFrames(frames)
}

// MarkIn sets the in point at the playhead. An out point before it is cleared.
func (d *Desk) MarkIn() {
	d.In = d.Frame
	if d.Out != noMark && d.Out < d.In {
		d.Out = noMark
	}
}

// MarkOut sets the out point at the playhead. An in point after it is cleared.
func (d *Desk) MarkOut() {
	d.Out = d.Frame
	if d.In != noMark && d.In > d.Out {
		d.In = noMark
	}
}

// HasRange reports whether both marks are set
func (d *Desk) HasRange() bool {
	return d.In != noMark && d.Out != noMark
}

// Playing reports whether the transport is moving
func (d *Desk) Playing() bool {
	return d.Shuttle != 0
}

// TogglePlay starts forward playback at normal speed or stops the transport
func (d *Desk) TogglePlay() {
	if d.Shuttle != 0 {
		d.Shuttle = 0
		return
	}
	d.Shuttle = 1
}

// ShuttleForward plays forward, doubling the speed on each repeat
func (d *Desk) ShuttleForward() {
	if d.Shuttle <= 0 {
		d.Shuttle = 1
		return
	}
	d.Shuttle = min(d.Shuttle*2, maxShuttle)
}

// ShuttleReverse plays backwards, doubling the speed on each repeat
func (d *Desk) ShuttleReverse() {
	if d.Shuttle >= 0 {
		d.Shuttle = -1
		return
	}
	d.Shuttle = max(d.Shuttle*2, -maxShuttle)
}

// Stop halts the transport
func (d *Desk) Stop() {
	d.Shuttle = 0
}

// Advance moves the playhead one playback tick.
// With loop on and both marks set playback wraps inside the marked range; otherwise it stops at either end.
func (d *Desk) Advance() {
	if d.Shuttle == 0 {
		return
	}

	lo, hi := 0, d.Total-1
	if d.Loop && d.HasRange() {
		lo, hi = d.In, d.Out
	}

	next := d.Frame + d.Shuttle
	switch {
	case next > hi && d.Loop:
		next = lo
	case next < lo && d.Loop:
		next = hi
	case next > hi:
		next = hi
		d.Shuttle = 0
	case next < lo:
		next = lo
		d.Shuttle = 0
	}
	d.Frame = next
}

// CurrentSegment returns the selected segment, if any
func (d *Desk) CurrentSegment() (*Segment, bool) {
	if d.Current < 0 || d.Current >= len(d.Segments) {
		return nil, false
	}
	return &d.Segments[d.Current], true
}

// NextItem selects the next segment, wrapping, and moves the playhead to its start
func (d *Desk) NextItem() {
	if len(d.Segments) == 0 {
		return
	}
	d.Current = (d.Current + 1) % len(d.Segments)
	d.Seek(d.Segments[d.Current].Start)
}

// SetVerdict records a verdict on the selected segment
func (d *Desk) SetVerdict(v Verdict) {
	if seg, ok := d.CurrentSegment(); ok {
		seg.Verdict = v
	}
}

// SetNote replaces the note on the selected segment
func (d *Desk) SetNote(note string) {
	if seg, ok := d.CurrentSegment(); ok {
		seg.Note = note
	}
}

// Generate starts a generation job unless one is running
func (d *Desk) Generate() bool {
	if d.Generation.Status == GenerationRunning {
		return false
	}
	d.Generation = Generation{Attempt: d.Generation.Attempt + 1, Status: GenerationRunning}
	return true
}

// Regenerate restarts the generation job from zero
func (d *Desk) Regenerate() {
	d.Generation = Generation{Attempt: d.Generation.Attempt + 1, Status: GenerationRunning}
}

// CancelGeneration stops a running job
func (d *Desk) CancelGeneration() bool {
	if d.Generation.Status != GenerationRunning {
		return false
	}
	d.Generation.Status = GenerationCancelled
	return true
}

// AdvanceGeneration progresses a running job and reports whether it is still running
func (d *Desk) AdvanceGeneration() bool {
	if d.Generation.Status != GenerationRunning {
		return false
	}
	d.Generation.Progress = min(d.Generation.Progress+generationStep, 100)
	if d.Generation.Progress == 100 {
		d.Generation.Status = GenerationDone
		return false
	}
	return true
}

// History is a bounded undo/redo stack of desk snapshots
type History struct {
	limit int
	redo  []Desk
	undo  []Desk
}

// NewHistory creates a history keeping at most limit undo steps
func NewHistory(limit int) *History {
	return &History{limit: limit}
}

// Record saves the state before an edit and clears the redo stack
func (h *History) Record(before Desk) {
	h.undo = append(h.undo, before.Clone())
	if h.limit > 0 && len(h.undo) > h.limit {
		h.undo = h.undo[len(h.undo)-h.limit:]
	}
	h.redo = nil
}

// Undo returns the state before the last edit
func (h *History) Undo(current Desk) (Desk, bool) {
	if len(h.undo) == 0 {
		return current, false
	}
	prev := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, current.Clone())
	return prev, true
}

// Redo reapplies the last undone edit
func (h *History) Redo(current Desk) (Desk, bool) {
	if len(h.redo) == 0 {
		return current, false
	}
	next := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, current.Clone())
	return next, true
}
