package build

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/schollz/progressbar/v3"

	"github.com/ozacod/raider/internal/pkg/utils/process"
	"github.com/ozacod/raider/internal/pkg/utils/terminal"
)

var progressRe = regexp.MustCompile(`^\[\s*\d+%]`)

// runWithProgress runs the build with its "[ 93%]" lines driving a progress
// bar. Other output is held back and replayed only when the build fails.
func runWithProgress(ctx context.Context, r *process.Runner, name string, args []string) error {
	cmd := r.Cmd(ctx, name, args...)

	bar := progressbar.NewOptions(100,
		progressbar.OptionSetWriter(r.Stderr),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(20),
		progressbar.OptionSetDescription("[cyan]Compiling[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[cyan]█[reset]",
			SaucerHead:    "[cyan]▸[reset]",
			SaucerPadding: "░",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionClearOnFinish(),
	)
	defer fmt.Fprint(r.Stderr, terminal.ShowCursor)

	pr, pw := io.Pipe()
	cmd.Stdin = r.Stdin
	cmd.Stdout = pw
	cmd.Stderr = pw

	if err := cmd.Start(); err != nil {
		return r.Wrap(name, err)
	}

	waitCh := make(chan error, 1)
	go func() {
		waitCh <- cmd.Wait()
		pw.Close()
	}()

	var nonProgress bytes.Buffer
	lastPercent := -1

	sc := bufio.NewScanner(pr)
	sc.Buffer(make([]byte, 0, 64*1024), 512*1024)
	for sc.Scan() {
		line := sc.Text()
		if match := progressRe.FindString(line); match != "" {
			pct := extractPercent(match)
			if pct >= 0 && pct != lastPercent {
				_ = bar.Set(pct)
				lastPercent = pct
			}
			continue
		}
		nonProgress.WriteString(line)
		nonProgress.WriteByte('\n')
	}
	// Drain anything left after a scanner error so the child never blocks
	_, _ = io.Copy(&nonProgress, pr)

	err := <-waitCh

	_ = bar.Set(100)
	_ = bar.Clear()

	if err != nil {
		if nonProgress.Len() > 0 {
			fmt.Fprint(r.Stderr, nonProgress.String())
		}
		return r.Wrap(name, err)
	}
	return nil
}

func extractPercent(line string) int {
	// line format: [ 93%] ...
	start := strings.Index(line, "[")
	end := strings.Index(line, "%")
	if start == -1 || end == -1 || end <= start {
		return -1
	}
	var pct int
	if _, err := fmt.Sscanf(line[start+1:end], "%d", &pct); err != nil {
		return -1
	}
	return pct
}
