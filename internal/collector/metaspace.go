// JVM metaspace source — queries the target JVM's metaspace summary via
// `jcmd <pid> VM.metaspace` and extracts committed and used sizes.
package collector

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/slabsight/slabsight/internal/models"
)

// runJcmd invokes the jcmd binary and returns its combined output. It is a
// variable so tests can substitute canned output.
type runJcmd func(ctx context.Context, pid int32) (string, error)

func execJcmd(ctx context.Context, pid int32) (string, error) {
	out, err := exec.CommandContext(ctx, "jcmd",
		strconv.FormatInt(int64(pid), 10), "VM.metaspace").Output()
	if err != nil {
		return "", fmt.Errorf("running jcmd for pid %d: %w", pid, err)
	}
	return string(out), nil
}

// MetaspaceSource queries the target JVM's metaspace usage.
type MetaspaceSource struct {
	pid int32
	run runJcmd
}

// NewMetaspaceSource creates a metaspace source for the given JVM pid.
func NewMetaspaceSource(pid int32) *MetaspaceSource {
	return &MetaspaceSource{pid: pid, run: execJcmd}
}

// Name returns the source identifier.
func (m *MetaspaceSource) Name() string { return "metaspace" }

// Available reports whether the jcmd binary is on PATH.
func (m *MetaspaceSource) Available() bool {
	_, err := exec.LookPath("jcmd")
	return err == nil
}

// Collect runs the metaspace query and fills the committed and used sizes
// on snap. The summary "Both:" line carries MB values in fixed positional
// order: capacity, committed, used.
func (m *MetaspaceSource) Collect(ctx context.Context, snap *models.Snapshot) error {
	out, err := m.run(ctx, m.pid)
	if err != nil {
		return err
	}

	line, ok := findSummaryLine(out)
	if !ok {
		return fmt.Errorf("no metaspace summary line for pid %d", m.pid)
	}

	values := extractMBValues(line)
	if len(values) < 3 {
		return fmt.Errorf("metaspace summary has %d MB values, want at least 3", len(values))
	}

	snap.MetaspaceCommittedKB = uint64(values[1] * 1024)
	snap.MetaspaceUsedKB = uint64(values[2] * 1024)
	return nil
}

// findSummaryLine returns the first line of out containing the "Both:"
// aggregate marker.
func findSummaryLine(out string) (string, bool) {
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "Both:") {
			return line, true
		}
	}
	return "", false
}

// extractMBValues returns every numeric token followed by an "MB" unit, in
// order of appearance. Both "40.63 MB" and "40.63MB" forms are accepted.
func extractMBValues(line string) []float64 {
	var values []float64
	fields := strings.Fields(line)
	for i, fld := range fields {
		if suffixed, found := strings.CutSuffix(fld, "MB"); found && suffixed != "" {
			if v, err := strconv.ParseFloat(suffixed, 64); err == nil {
				values = append(values, v)
			}
			continue
		}
		if fld == "MB" && i > 0 {
			if v, err := strconv.ParseFloat(fields[i-1], 64); err == nil {
				values = append(values, v)
			}
		}
	}
	return values
}
