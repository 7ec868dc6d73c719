package cmd

import (
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"cutdesk/internal/jogdial"
)

const (
	simulationFrame       = time.Second / 60
	simulationMaxMomentum = 10000
	simulationRadius      = 100.0
)

// JogCmd groups the jog dial commands
type JogCmd struct {
	Simulate JogSimulateCmd `cmd:"simulate" help:"Feed pointer movements to the dial physics and print the frame steps"`
}

// simEvent is one step emission during a simulation
type simEvent struct {
	Angle     float64 `json:"angle"`
	Direction string  `json:"direction"`
	ElapsedMs int64   `json:"elapsed_ms"`
	Frames    int     `json:"frames"`
	Phase     string  `json:"phase"`
	Velocity  float64 `json:"velocity"`
}

// simResult is a finished simulation
type simResult struct {
	Backward int            `json:"backward_frames"`
	Config   jogdial.Config `json:"config"`
	Events   []simEvent     `json:"events"`
	Final    jogdial.State  `json:"final_state"`
	Forward  int            `json:"forward_frames"`
}

// simulateJog drags the dial through deltas, one sample per interval, then optionally releases it
// and runs momentum to rest on a manual clock.
func simulateJog(config jogdial.PartialConfig, deltas []float64, interval time.Duration, release bool) simResult {
	start := time.Unix(0, 0)
	scheduler := jogdial.NewManualScheduler(start)
	engine := jogdial.NewEngine(jogdial.WithClock(scheduler.Now), jogdial.WithScheduler(scheduler))
	engine.SetConfig(config)
	defer engine.Dispose()

	result := simResult{Config: engine.Config()}
	phase := "drag"
	engine.SetOnStep(func(dir jogdial.Direction, frames int) {
		state := engine.GetState()
		result.Events = append(result.Events, simEvent{
			Angle:     state.Angle,
			Direction: string(dir),
			ElapsedMs: scheduler.Now().Sub(start).Milliseconds(),
			Frames:    frames,
			Phase:     phase,
			Velocity:  state.AngularVelocity,
		})
		if dir == jogdial.Forward {
			result.Forward += frames
		} else {
			result.Backward += frames
		}
	})

	angle := 0.0
	pointer := func() (float64, float64) {
		rad := angle * math.Pi / 180
		return simulationRadius * math.Cos(rad), simulationRadius * math.Sin(rad)
	}

	x, y := pointer()
	engine.StartDrag(x, y, 0, 0)
	for _, delta := range deltas {
		scheduler.Sleep(interval)
		angle += delta
		x, y = pointer()
		engine.Drag(x, y)
	}

	if release {
		phase = "momentum"
		engine.EndDrag()
		for i := 0; i < simulationMaxMomentum && scheduler.Advance(simulationFrame); i++ {
		}
	}

	result.Final = engine.GetState()
	return result
}

func writeSimulation(w io.Writer, result simResult, format string) error {
	if format == "json" {
		return writeJSON(w, result)
	}

	rows := make([][]string, len(result.Events))
	for i, e := range result.Events {
		rows[i] = []string{
			fmt.Sprintf("%d", i+1),
			e.Phase,
			fmt.Sprintf("%dms", e.ElapsedMs),
			fmt.Sprintf("%.1f°", e.Angle),
			fmt.Sprintf("%.1f°/s", e.Velocity),
			fmt.Sprintf("%s %d", e.Direction, e.Frames),
		}
	}
	fmt.Fprintln(w, renderTable([]string{"#", "PHASE", "ELAPSED", "ANGLE", "VELOCITY", "STEP"}, rows, 0, 2, 3, 4))
	_, err := fmt.Fprintf(w, "forward %d frames, backward %d frames, net %+d; dial at %.1f°\n",
		result.Forward, result.Backward, result.Forward-result.Backward, result.Final.Angle)
	return err
}

// JogSimulateCmd runs the dial physics without a terminal
type JogSimulateCmd struct {
	Deltas   []float64     `help:"Pointer angle changes in degrees, one per drag sample (clockwise positive)" sep:"," required:""`
	Format   string        `help:"Output format: table or json" enum:"table,json" default:"table"`
	Interval time.Duration `help:"Time between drag samples" default:"16ms"`
	Release  bool          `help:"Release the dial after the last sample and let momentum run" default:"true" negatable:""`
}

// Run executes the simulate command
func (j *JogSimulateCmd) Run(cli *CLI) error {
	result := simulateJog(cli.Container.Settings.Jog.Partial(), j.Deltas, j.Interval, j.Release)
	return writeSimulation(os.Stdout, result, j.Format)
}
