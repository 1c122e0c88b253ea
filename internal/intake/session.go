// Package intake drives the add-item form: pending photos, the optional AI
// appraisal and the final save into the ledger.
package intake

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/Veraticus/ledgerlens/internal/capture"
	"github.com/Veraticus/ledgerlens/internal/common"
	"github.com/Veraticus/ledgerlens/internal/llm"
	"github.com/Veraticus/ledgerlens/internal/model"
	"github.com/Veraticus/ledgerlens/internal/network"
)

// User-facing notices.
const (
	MsgAppraisalFailed = "Could not analyze image using AI. Please enter details manually."
	MsgOffline         = "Offline Mode: AI analysis unavailable."
)

var (
	// ErrAppraisalInFlight refuses a second appraisal or photo while one runs.
	ErrAppraisalInFlight = errors.New("appraisal already in progress")
	// ErrOffline means the appraisal service is unreachable.
	ErrOffline = common.ErrOffline
	// ErrNoPhoto means there is no item photo to appraise.
	ErrNoPhoto = errors.New("no item photo attached")
	// ErrStale means the draft changed while the appraisal ran.
	ErrStale = errors.New("appraisal result discarded")
)

// Appraiser infers item attributes from an image.
type Appraiser interface {
	Appraise(ctx context.Context, image llm.Image) (llm.Appraisal, error)
}

// Ledger persists a finished draft.
type Ledger interface {
	AddItem(ctx context.Context, draft model.Draft) (model.InventoryItem, error)
}

// Session holds one draft at a time. Every reset bumps the generation so
// results from an abandoned appraisal can be recognized and dropped.
type Session struct {
	ledger    Ledger
	appraiser Appraiser
	status    network.Status
	logger    *slog.Logger
	now       func() time.Time
	cancel    context.CancelFunc
	draft     model.Draft
	photo     capture.Frame
	receipt   capture.Frame
	gen       uint64
	inFlight  bool
	mu        sync.Mutex
}

// NewSession opens a draft with the form defaults. appraiser and status may
// be nil; a nil appraiser behaves as permanently offline.
func NewSession(ledger Ledger, appraiser Appraiser, status network.Status, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	if status == nil {
		status = network.Static(true)
	}
	s := &Session{
		ledger:    ledger,
		appraiser: appraiser,
		status:    status,
		logger:    logger,
		now:       time.Now,
	}
	s.draft = model.NewDraft(s.now())
	return s
}

// Draft returns a copy of the current form state.
func (s *Session) Draft() model.Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

// Generation identifies the current draft.
func (s *Session) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen
}

// Appraising reports whether an appraisal is running.
func (s *Session) Appraising() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inFlight
}

// CanAppraise reports whether an appraisal could start now.
func (s *Session) CanAppraise() bool {
	return s.appraiser != nil && s.status.Online()
}

// Edit changes form fields in place.
func (s *Session) Edit(fn func(d *model.Draft)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.draft)
}

// Photo returns the pending item photo.
func (s *Session) Photo() capture.Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.photo
}

// Receipt returns the pending receipt photo.
func (s *Session) Receipt() capture.Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.receipt
}

// AttachPhoto sets the item image. It is refused while an appraisal runs.
func (s *Session) AttachPhoto(frame capture.Frame) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.inFlight {
		return ErrAppraisalInFlight
	}
	s.photo = frame
	s.draft.ImageURL = frame.DataURL()
	return nil
}

// AttachReceipt sets the receipt image.
func (s *Session) AttachReceipt(frame capture.Frame) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.receipt = frame
	s.draft.ReceiptURL = frame.DataURL()
}

// Pending is an appraisal that has been started but not run.
type Pending struct {
	ctx       context.Context
	appraiser Appraiser
	image     llm.Image
	gen       uint64
}

// Result is the outcome of running a Pending appraisal.
type Result struct {
	Err       error
	Appraisal llm.Appraisal
	Gen       uint64
}

// Run performs the blocking appraisal call.
func (p *Pending) Run() Result {
	appraisal, err := p.appraiser.Appraise(p.ctx, p.image)
	return Result{Appraisal: appraisal, Err: err, Gen: p.gen}
}

// Begin reserves the single appraisal slot for the current photo. The
// returned Pending is bound to this draft; Discard cancels it.
func (s *Session) Begin(ctx context.Context) (*Pending, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.inFlight {
		return nil, ErrAppraisalInFlight
	}
	if s.photo.IsZero() {
		return nil, ErrNoPhoto
	}
	if s.appraiser == nil || !s.status.Online() {
		return nil, common.NewUserError(MsgOffline, ErrOffline)
	}

	image, err := llm.ParseDataURL(s.photo.DataURL())
	if err != nil {
		return nil, common.NewUserError(MsgAppraisalFailed, err)
	}

	taskCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.inFlight = true

	return &Pending{
		ctx:       taskCtx,
		appraiser: s.appraiser,
		image:     image,
		gen:       s.gen,
	}, nil
}

// Complete applies a finished appraisal if its draft is still current.
// A failure leaves every draft field as it was.
func (s *Session) Complete(res Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if res.Gen != s.gen {
		s.logger.Debug("dropping stale appraisal", "generation", res.Gen, "current", s.gen)
		return ErrStale
	}

	s.inFlight = false
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}

	if res.Err != nil {
		s.logger.Warn("analysis failed", "error", res.Err)
		return common.NewUserError(MsgAppraisalFailed, res.Err)
	}

	s.applyLocked(res.Appraisal)
	return nil
}

// Appraise runs Begin, Run and Complete in one blocking call.
func (s *Session) Appraise(ctx context.Context) error {
	pending, err := s.Begin(ctx)
	if err != nil {
		return err
	}
	return s.Complete(pending.Run())
}

// Apply overwrites the appraised fields of the draft.
func (s *Session) Apply(a llm.Appraisal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.applyLocked(a)
}

func (s *Session) applyLocked(a llm.Appraisal) {
	room := strings.TrimSpace(a.Room)
	if room == "" {
		room = model.UnknownRoom
	}
	s.draft.Name = a.Name
	s.draft.Category = a.Category
	s.draft.Room = room
	s.draft.Type = a.Type
	s.draft.SetValue(a.EstimatedValue)
	s.draft.Description = a.Description
	s.draft.Condition = a.Condition
}

// Save validates and stores the draft, then starts a fresh one. Validation
// errors leave the draft intact.
func (s *Session) Save(ctx context.Context) (model.InventoryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, err := s.ledger.AddItem(ctx, s.draft)
	if err != nil {
		return model.InventoryItem{}, fmt.Errorf("failed to save item: %w", err)
	}
	s.resetLocked()
	return item, nil
}

// Discard drops the draft and abandons any running appraisal.
func (s *Session) Discard() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked()
}

func (s *Session) resetLocked() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.inFlight = false
	s.gen++
	s.photo = capture.Frame{}
	s.receipt = capture.Frame{}
	s.draft = model.NewDraft(s.now())
}
