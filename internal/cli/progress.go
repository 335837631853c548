package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/qed42/twig-sdc-yaml-generator/internal/generator"
)

type progressStep struct {
	label   string
	started time.Time
	enabled bool
}

func startProgress(label string) *progressStep {
	if !progressEnabled() {
		return nil
	}
	fmt.Fprintf(os.Stderr, "%s... ", label)
	return &progressStep{
		label:   label,
		started: time.Now(),
		enabled: true,
	}
}

func (p *progressStep) Done() {
	if p == nil || !p.enabled {
		return
	}
	fmt.Fprintf(os.Stderr, "done (%s)\n", formatDuration(time.Since(p.started)))
}

func (p *progressStep) Fail(err error) {
	if p == nil || !p.enabled {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed: %v\n", err)
		return
	}
	fmt.Fprintln(os.Stderr, "failed")
}

// resultProgress prints one line per failed template while a run is going.
type resultProgress struct {
	out     io.Writer
	enabled bool
}

func newResultProgress(out io.Writer) *resultProgress {
	return &resultProgress{out: out, enabled: progressEnabled()}
}

// Observe is passed to generator.Options.OnResult; calls are serialized.
func (p *resultProgress) Observe(res generator.Result) {
	if !p.enabled || res.Err == nil {
		return
	}
	fmt.Fprintf(p.out, "\n  %s %s: %v", styles().Error.Render("ERR"), res.Template.Path, res.Err)
}

func progressEnabled() bool {
	if noProgress {
		return false
	}
	if _, ok := os.LookupEnv("SDCGEN_NO_PROGRESS"); ok {
		return false
	}
	if _, ok := os.LookupEnv("NO_PROGRESS"); ok {
		return false
	}
	return true
}

func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return d.String()
	}
	if d < time.Second {
		return d.Round(10 * time.Millisecond).String()
	}
	return d.Round(100 * time.Millisecond).String()
}
