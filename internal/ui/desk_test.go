package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cutdesk/internal/jogdial"
)

func TestNewDesk_Segments(t *testing.T) {
	d := NewDesk(130, 60)

	require.Len(t, d.Segments, 3)
	assert.Equal(t, Segment{Name: "seg-01", Start: 0, End: 59, Verdict: VerdictPending}, d.Segments[0])
	assert.Equal(t, 120, d.Segments[2].Start)
	assert.Equal(t, 129, d.Segments[2].End)
	assert.Equal(t, noMark, d.In)
	assert.Equal(t, noMark, d.Out)
}

func TestDesk_StepClamps(t *testing.T) {
	d := NewDesk(100, 50)

	d.Step(jogdial.Forward, 5)
	assert.Equal(t, 5, d.Frame)

	d.Step(jogdial.Backward, 20)
	assert.Equal(t, 0, d.Frame)

	d.StepFrames(1000)
	assert.Equal(t, 99, d.Frame)
}

func TestDesk_Marks(t *testing.T) {
	d := NewDesk(100, 50)

	d.Seek(40)
	d.MarkIn()
	d.Seek(60)
	d.MarkOut()
	assert.True(t, d.HasRange())

	d.Seek(70)
	d.MarkIn()
	assert.Equal(t, 70, d.In)
	assert.Equal(t, noMark, d.Out, "out before in is cleared")

	d.Seek(10)
	d.MarkOut()
	assert.Equal(t, 10, d.Out)
	assert.Equal(t, noMark, d.In, "in after out is cleared")
}

func TestDesk_Shuttle(t *testing.T) {
	d := NewDesk(100, 50)

	d.ShuttleForward()
	d.ShuttleForward()
	d.ShuttleForward()
	d.ShuttleForward()
	d.ShuttleForward()
	assert.Equal(t, maxShuttle, d.Shuttle)

	d.ShuttleReverse()
	assert.Equal(t, -1, d.Shuttle)
	d.ShuttleReverse()
	assert.Equal(t, -2, d.Shuttle)

	d.TogglePlay()
	assert.False(t, d.Playing())
	d.TogglePlay()
	assert.Equal(t, 1, d.Shuttle)
}

func TestDesk_AdvanceStopsAtEnds(t *testing.T) {
	d := NewDesk(10, 10)
	d.Seek(8)
	d.Shuttle = 4

	d.Advance()

	assert.Equal(t, 9, d.Frame)
	assert.False(t, d.Playing())

	d.Shuttle = -4
	d.Seek(2)
	d.Advance()
	assert.Equal(t, 0, d.Frame)
	assert.False(t, d.Playing())
}

func TestDesk_AdvanceLoopsInsideRange(t *testing.T) {
	d := NewDesk(100, 50)
	d.Seek(10)
	d.MarkIn()
	d.Seek(12)
	d.MarkOut()
	d.Loop = true
	d.Shuttle = 1

	frames := []int{}
	for range 4 {
		d.Advance()
		frames = append(frames, d.Frame)
	}

	assert.Equal(t, []int{10, 11, 12, 10}, frames)
	assert.True(t, d.Playing())
}

func TestDesk_Review(t *testing.T) {
	d := NewDesk(120, 60)

	d.SetVerdict(VerdictApproved)
	d.SetNote("good")
	d.NextItem()
	assert.Equal(t, 1, d.Current)
	assert.Equal(t, 60, d.Frame)

	d.NextItem()
	assert.Equal(t, 0, d.Current, "wraps")
	assert.Equal(t, VerdictApproved, d.Segments[0].Verdict)
	assert.Equal(t, "good", d.Segments[0].Note)
}

func TestDesk_Generation(t *testing.T) {
	d := NewDesk(10, 10)

	assert.False(t, d.AdvanceGeneration())
	require.True(t, d.Generate())
	assert.False(t, d.Generate(), "already running")

	for d.AdvanceGeneration() {
	}
	assert.Equal(t, GenerationDone, d.Generation.Status)
	assert.Equal(t, 100, d.Generation.Progress)

	d.Regenerate()
	assert.Equal(t, 2, d.Generation.Attempt)
	assert.True(t, d.CancelGeneration())
	assert.Equal(t, GenerationCancelled, d.Generation.Status)
	assert.False(t, d.CancelGeneration())
}

func TestHistory_UndoRedo(t *testing.T) {
	h := NewHistory(2)
	d := NewDesk(100, 50)

	h.Record(d)
	d.SetVerdict(VerdictRejected)

	undone, ok := h.Undo(d)
	require.True(t, ok)
	assert.Equal(t, VerdictPending, undone.Segments[0].Verdict)
	assert.Equal(t, VerdictRejected, d.Segments[0].Verdict, "snapshots do not share segments")

	redone, ok := h.Redo(undone)
	require.True(t, ok)
	assert.Equal(t, VerdictRejected, redone.Segments[0].Verdict)

	_, ok = h.Redo(redone)
	assert.False(t, ok)
}

func TestHistory_Limit(t *testing.T) {
	h := NewHistory(2)
	d := NewDesk(100, 50)

	for i := range 5 {
		d.Seek(i)
		h.Record(d)
	}

	count := 0
	for {
		var ok bool
		d, ok = h.Undo(d)
		if !ok {
			break
		}
		count++
	}
	assert.Equal(t, 2, count)
	assert.Equal(t, 3, d.Frame)
}
