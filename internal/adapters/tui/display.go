package tui

import (
	"bytes"
	"io"
	"strings"
	"sync"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/vito/progrock"
	"go.trai.ch/brokenpkg/internal/adapters/progress"
)

// fileSendInterval limits file count messages to one per this many files.
const fileSendInterval = 64

var (
	_ progrock.Writer      = (*Display)(nil)
	_ progress.FileCounter = (*Display)(nil)
	_ io.Writer            = (*Display)(nil)
)

// Display runs the progress Model in a Bubble Tea program.
//
// It is also an io.Writer for log output: while the program runs, complete
// lines are printed above the bar; otherwise they go straight to out.
type Display struct {
	out     io.Writer
	program *tea.Program
	model   *Model
	errCh   chan error

	mu      sync.Mutex
	running bool
	done    bool
	partial bytes.Buffer

	files atomic.Int64
}

// NewDisplay creates a Display drawing to out. opts are applied after the defaults.
func NewDisplay(out io.Writer, opts ...tea.ProgramOption) *Display {
	model := NewModel()
	defaults := []tea.ProgramOption{
		tea.WithOutput(out),
		tea.WithInput(nil),
		tea.WithoutSignalHandler(),
	}
	return &Display{
		out:     out,
		program: tea.NewProgram(model, append(defaults, opts...)...),
		model:   model,
		errCh:   make(chan error, 1),
	}
}

// SetTotal launches the program on first use and announces the package count.
func (d *Display) SetTotal(packages int) {
	d.mu.Lock()
	if !d.running && !d.done {
		d.running = true
		go func() {
			_, err := d.program.Run()
			d.errCh <- err
		}()
	}
	running := d.running
	d.mu.Unlock()

	if running {
		d.program.Send(MsgStart{Packages: packages})
	}
}

// AddFile counts one processed file.
func (d *Display) AddFile() {
	n := d.files.Add(1)
	if n%fileSendInterval == 0 {
		d.send(MsgFiles{Count: n})
	}
}

// WriteStatus forwards vertex updates to the model.
func (d *Display) WriteStatus(update *progrock.StatusUpdate) error {
	d.send(MsgTapeUpdate{Update: update})
	return nil
}

// Write prints log output above the bar. Incomplete lines are held until
// their newline arrives or the display closes.
func (d *Display) Write(p []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.running {
		return d.out.Write(p)
	}

	d.partial.Write(p)
	for {
		line, err := d.partial.ReadString('\n')
		if err != nil {
			// No newline yet: keep the fragment for the next write.
			d.partial.Reset()
			d.partial.WriteString(line)
			break
		}
		d.printAbove(strings.TrimSuffix(line, "\n"))
	}
	return len(p), nil
}

// Fd exposes the descriptor of the underlying writer so color detection
// treats the display like the terminal it draws on.
func (d *Display) Fd() uintptr {
	if f, ok := d.out.(interface{ Fd() uintptr }); ok {
		return f.Fd()
	}
	return ^uintptr(0)
}

// Close draws the final counts, stops the program and waits for it to exit.
// Later writes go directly to the underlying writer.
func (d *Display) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.running {
		d.done = true
		return nil
	}

	d.program.Send(MsgFiles{Count: d.files.Load()})
	if d.partial.Len() > 0 {
		d.printAbove(d.partial.String())
		d.partial.Reset()
	}
	d.program.Quit()
	err := <-d.errCh

	d.running = false
	d.done = true
	return err
}

// Model returns the model driven by the program.
func (d *Display) Model() *Model {
	return d.model
}

// printAbove queues line in the renderer directly so it is flushed before a
// quit that is already in flight.
func (d *Display) printAbove(line string) {
	d.program.Send(tea.Println(line)())
}

func (d *Display) send(msg tea.Msg) {
	d.mu.Lock()
	running := d.running
	d.mu.Unlock()
	if running {
		d.program.Send(msg)
	}
}
