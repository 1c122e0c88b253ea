package tui

import (
	"github.com/Veraticus/ledgerlens/internal/capture"
	"github.com/Veraticus/ledgerlens/internal/intake"
	"github.com/Veraticus/ledgerlens/internal/service"
)

// attachTarget says which slot of the draft a frame is for.
type attachTarget int

const (
	targetPhoto attachTarget = iota
	targetReceipt
)

func (t attachTarget) String() string {
	if t == targetReceipt {
		return "receipt"
	}
	return "photo"
}

// Async operation messages.
type appraisalDoneMsg struct {
	result intake.Result
}

type frameMsg struct {
	err    error
	frame  capture.Frame
	gen    uint64
	target attachTarget
}

type reportWrittenMsg struct {
	err  error
	path string
	kind service.ReportKind
}

// connectivityMsg carries one online/offline transition.
type connectivityMsg struct {
	online bool
}
