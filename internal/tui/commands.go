package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Veraticus/ledgerlens/internal/capture"
	"github.com/Veraticus/ledgerlens/internal/config"
	"github.com/Veraticus/ledgerlens/internal/intake"
	"github.com/Veraticus/ledgerlens/internal/model"
	"github.com/Veraticus/ledgerlens/internal/report"
	"github.com/Veraticus/ledgerlens/internal/service"
	tea "github.com/charmbracelet/bubbletea"
)

const snapTimeout = 10 * time.Second

// appraiseCmd runs a started appraisal off the update loop.
func appraiseCmd(pending *intake.Pending) tea.Cmd {
	return func() tea.Msg {
		return appraisalDoneMsg{result: pending.Run()}
	}
}

// watchConnectivity waits for the next transition. It is re-armed after
// each message and stops once the channel closes.
func watchConnectivity(updates <-chan bool) tea.Cmd {
	if updates == nil {
		return nil
	}
	return func() tea.Msg {
		online, ok := <-updates
		if !ok {
			return nil
		}
		return connectivityMsg{online: online}
	}
}

// loadFrameCmd reads an image file for the draft.
func loadFrameCmd(path string, target attachTarget, gen uint64) tea.Cmd {
	return func() tea.Msg {
		frame, err := capture.FromFile(config.ExpandPath(path))
		return frameMsg{frame: frame, err: err, target: target, gen: gen}
	}
}

// snapFrameCmd opens the camera, grabs one still and releases the stream.
func snapFrameCmd(ctx context.Context, camera capture.Camera, facing capture.Facing, target attachTarget, gen uint64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, snapTimeout)
		defer cancel()

		session, err := capture.Open(ctx, camera, facing)
		if err != nil {
			return frameMsg{err: err, target: target, gen: gen}
		}
		defer func() { _ = session.Close() }()

		frame, err := session.Capture(ctx)
		return frameMsg{frame: frame, err: err, target: target, gen: gen}
	}
}

// writeReportCmd renders a PDF report into dir.
func writeReportCmd(renderer service.ReportRenderer, items []model.InventoryItem, limit float64, kind service.ReportKind, dir string) tea.Cmd {
	return func() tea.Msg {
		path, err := writeReport(renderer, items, limit, kind, dir)
		return reportWrittenMsg{path: path, kind: kind, err: err}
	}
}

func writeReport(renderer service.ReportRenderer, items []model.InventoryItem, limit float64, kind service.ReportKind, dir string) (string, error) {
	dir = config.ExpandPath(dir)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}

	path := filepath.Join(dir, report.FileName(kind))
	f, err := os.Create(path) // #nosec G304
	if err != nil {
		return "", fmt.Errorf("failed to create report file: %w", err)
	}

	if err := renderer.Render(f, items, limit, kind); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("failed to render report: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close report file: %w", err)
	}
	return path, nil
}
