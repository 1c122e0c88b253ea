// Package tui is the interactive terminal front end: five tabbed screens
// over the ledger, with photo capture and AI appraisal on the add screen.
package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/ledgerlens/internal/analysis"
	"github.com/Veraticus/ledgerlens/internal/capture"
	"github.com/Veraticus/ledgerlens/internal/common"
	"github.com/Veraticus/ledgerlens/internal/intake"
	"github.com/Veraticus/ledgerlens/internal/ledger"
	"github.com/Veraticus/ledgerlens/internal/model"
	"github.com/Veraticus/ledgerlens/internal/network"
	"github.com/Veraticus/ledgerlens/internal/report"
	"github.com/Veraticus/ledgerlens/internal/router"
	"github.com/Veraticus/ledgerlens/internal/service"
	"github.com/Veraticus/ledgerlens/internal/tui/components"
	"github.com/Veraticus/ledgerlens/internal/tui/themes"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// opTimeout bounds the synchronous ledger writes made from Update.
const opTimeout = 5 * time.Second

type statusLevel int

const (
	statusInfo statusLevel = iota
	statusSuccess
	statusWarning
	statusError
)

type status struct {
	text  string
	level statusLevel
}

// subscriber is a connectivity source that publishes transitions.
type subscriber interface {
	Subscribe() <-chan bool
}

// Model holds the main TUI state. Shared state (ledger, session, router)
// sits behind pointers so the value copies Bubble Tea makes stay coherent.
type Model struct {
	ctx       context.Context
	theme     themes.Theme
	ledger    *ledger.Store
	session   *intake.Session
	router    *router.Router
	network   network.Status
	camera    capture.Camera
	renderer  service.ReportRenderer
	logger    *slog.Logger
	now       func() time.Time
	updates   <-chan bool
	reportDir string
	facing    capture.Facing
	status    status
	keymap    KeyMap
	help      help.Model
	spinner   spinner.Model
	coverage  components.CoverageModel
	list      components.ItemListModel
	form      formModel
	settings  settingsModel
	width     int
	height    int
	online    bool
	quitting  bool
}

// New creates the root model. The ledger must already be loaded.
func New(ctx context.Context, opts ...Option) (Model, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return newModel(ctx, cfg)
}

func newModel(ctx context.Context, cfg Config) (Model, error) {
	if cfg.Ledger == nil {
		return Model{}, fmt.Errorf("%w: ledger is required", common.ErrMissingConfig)
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Network == nil {
		cfg.Network = network.Static(true)
	}
	if cfg.Session == nil {
		cfg.Session = intake.NewSession(cfg.Ledger, nil, cfg.Network, cfg.Logger)
	}
	if cfg.Renderer == nil {
		cfg.Renderer = report.NewRenderer()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = cfg.Theme.StatusInfo

	m := Model{
		ctx:       ctx,
		theme:     cfg.Theme,
		ledger:    cfg.Ledger,
		session:   cfg.Session,
		router:    router.New(cfg.Session.Discard),
		network:   cfg.Network,
		camera:    cfg.Camera,
		renderer:  cfg.Renderer,
		logger:    cfg.Logger,
		now:       cfg.Now,
		reportDir: cfg.ReportDir,
		facing:    cfg.Facing,
		keymap:    DefaultKeyMap(),
		help:      help.New(),
		spinner:   spin,
		coverage:  components.NewCoverageModel(cfg.Theme),
		list:      components.NewItemList(cfg.Theme),
		form:      newFormModel(cfg.Theme),
		settings:  newSettingsModel(cfg.Theme),
		width:     cfg.Width,
		height:    cfg.Height,
		online:    cfg.Network.Online(),
	}
	if sub, ok := cfg.Network.(subscriber); ok {
		m.updates = sub.Subscribe()
	}
	if m.facing == "" {
		m.facing = capture.FacingEnvironment
	}
	m.refresh()
	return m, nil
}

// Init starts listening for connectivity changes.
func (m Model) Init() tea.Cmd {
	return watchConnectivity(m.updates)
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.coverage, _ = m.coverage.Update(msg)
		m.list, _ = m.list.Update(msg)
		return m, nil

	case connectivityMsg:
		m.online = msg.online
		m.logger.Info("connectivity changed", "online", msg.online)
		return m, watchConnectivity(m.updates)

	case appraisalDoneMsg:
		return m.handleAppraisal(msg)

	case frameMsg:
		return m.handleFrame(msg)

	case reportWrittenMsg:
		if msg.err != nil {
			m.logger.Error("report export failed", "kind", msg.kind, "error", msg.err)
			m.setStatus(statusError, "Could not write report: "+msg.err.Error())
		} else {
			m.setStatus(statusSuccess, "Saved "+msg.path)
		}
		return m, nil

	case spinner.TickMsg:
		if !m.session.Appraising() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m.forward(msg)
}

// forward passes non-key messages (cursor blinks) to the active inputs.
func (m Model) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m.router.Current() {
	case router.Details:
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	case router.Settings:
		var cmd tea.Cmd
		m.settings.limitInput, cmd = m.settings.limitInput.Update(msg)
		return m, cmd
	case router.Add:
		if m.form.choosing {
			var cmd tea.Cmd
			m.form.pathInput, cmd = m.form.pathInput.Update(msg)
			return m, cmd
		}
		if in, ok := m.form.inputs[m.form.focus]; ok {
			updated, cmd := in.Update(msg)
			*in = updated
			return m, cmd
		}
	}
	return m, nil
}

// typing reports whether printable keys belong to a text field.
func (m Model) typing() bool {
	switch m.router.Current() {
	case router.Add:
		return true
	case router.Details:
		return m.list.Searching()
	case router.Settings:
		return m.settings.typing() || m.settings.confirming
	}
	return false
}

// handleKey applies the global keys, then hands the rest to the screen.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	km := m.keymap

	if key.Matches(msg, km.ForceQuit) {
		return m.quit()
	}
	if key.Matches(msg, km.AltTabs) {
		if v, ok := router.ForKey(msg.String()[len("alt+"):]); ok {
			return m, m.navigate(v)
		}
	}

	if !m.typing() {
		switch {
		case key.Matches(msg, km.Quit):
			return m.quit()
		case key.Matches(msg, km.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, km.Tabs):
			if v, ok := router.ForKey(msg.String()); ok {
				return m, m.navigate(v)
			}
		}
	}

	if key.Matches(msg, km.Back) && m.backIsNavigation() {
		return m, m.navigate(router.Dashboard)
	}

	switch m.router.Current() {
	case router.Details:
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	case router.Add:
		return m.handleAddKey(msg)
	case router.Insurance:
		return m.handleInsuranceKey(msg)
	case router.Settings:
		return m.handleSettingsKey(msg)
	}
	return m, nil
}

// backIsNavigation reports whether esc should leave the screen rather than
// close something inside it.
func (m Model) backIsNavigation() bool {
	switch m.router.Current() {
	case router.Details:
		return !m.list.Searching()
	case router.Add:
		return !m.form.choosing
	case router.Settings:
		return !m.settings.confirming
	}
	return true
}

// navigate switches screens and prepares the one being entered.
func (m *Model) navigate(v router.View) tea.Cmd {
	if !m.router.Navigate(v) {
		return nil
	}
	m.status = status{}
	m.refresh()

	switch v {
	case router.Add:
		return m.form.load(m.session.Draft())
	case router.Settings:
		return m.settings.reset(m.ledger.PolicyLimit())
	}
	return nil
}

// refresh recomputes everything derived from the ledger.
func (m *Model) refresh() {
	m.coverage.SetSummary(analysis.Summarize(m.ledger.Items(), m.ledger.PolicyLimit()))
	m.list.SetItems(m.ledger.Items())
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.session.Discard()
	return m, tea.Quit
}

func (m *Model) setStatus(level statusLevel, text string) {
	m.status = status{text: text, level: level}
}

func (m *Model) opContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(m.ctx, opTimeout)
}

// handleAddKey drives the add-item form.
func (m Model) handleAddKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	km := m.keymap

	if m.form.choosing {
		switch msg.String() {
		case "enter":
			path := m.form.pathInput.Value()
			target := m.form.pathTarget
			cmd := m.form.closePath()
			if path == "" {
				return m, cmd
			}
			m.setStatus(statusInfo, fmt.Sprintf("Loading %s...", target))
			return m, tea.Batch(cmd, loadFrameCmd(path, target, m.session.Generation()))
		case "esc":
			return m, m.form.closePath()
		}
		var cmd tea.Cmd
		m.form.pathInput, cmd = m.form.pathInput.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, km.Save):
		return m.save()
	case key.Matches(msg, km.Appraise):
		return m, m.startAppraisal()
	case key.Matches(msg, km.AttachPhoto):
		return m, m.form.promptPath(targetPhoto)
	case key.Matches(msg, km.AttachReceipt):
		return m, m.form.promptPath(targetReceipt)
	case key.Matches(msg, km.SnapPhoto):
		return m, m.snap(targetPhoto)
	case key.Matches(msg, km.SnapReceipt):
		return m, m.snap(targetReceipt)
	case key.Matches(msg, km.ToggleFacing):
		m.facing = m.facing.Toggle()
		m.setStatus(statusInfo, "Camera: "+string(m.facing))
		return m, nil
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.update(msg)
	return m, cmd
}

func (m *Model) snap(target attachTarget) tea.Cmd {
	if m.camera == nil {
		m.setStatus(statusWarning, "No camera configured. Set camera.environment or attach a file with ctrl+p.")
		return nil
	}
	m.setStatus(statusInfo, fmt.Sprintf("Capturing %s...", target))
	return snapFrameCmd(m.ctx, m.camera, m.facing, target, m.session.Generation())
}

// handleFrame attaches a captured or loaded image to the draft it was
// requested for, then appraises a new item photo when online.
func (m Model) handleFrame(msg frameMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.session.Generation() {
		m.logger.Debug("dropping frame for discarded draft", "target", msg.target)
		return m, nil
	}
	if msg.err != nil {
		m.logger.Warn("capture failed", "target", msg.target, "error", msg.err)
		text := "Could not load image: " + msg.err.Error()
		if errors.Is(msg.err, capture.ErrCameraUnavailable) {
			text = "Camera unavailable. Check the snapshot source or attach a file instead."
		}
		m.setStatus(statusError, text)
		return m, nil
	}

	if msg.target == targetReceipt {
		m.session.AttachReceipt(msg.frame)
		m.setStatus(statusSuccess, "Receipt attached.")
		return m, nil
	}

	if err := m.session.AttachPhoto(msg.frame); err != nil {
		m.setStatus(statusWarning, "Please wait for the current analysis to finish.")
		return m, nil
	}
	if !m.session.CanAppraise() {
		m.setStatus(statusWarning, intake.MsgOffline)
		return m, nil
	}
	m.setStatus(statusSuccess, "Photo attached.")
	return m, m.startAppraisal()
}

// startAppraisal reserves the appraisal slot and runs it in the background.
func (m *Model) startAppraisal() tea.Cmd {
	pending, err := m.session.Begin(m.ctx)
	if err != nil {
		switch {
		case errors.Is(err, intake.ErrNoPhoto):
			m.setStatus(statusWarning, "Attach a photo first (ctrl+p or ctrl+k).")
		case errors.Is(err, intake.ErrAppraisalInFlight):
			m.setStatus(statusWarning, "Analysis already in progress.")
		case errors.Is(err, intake.ErrOffline):
			m.setStatus(statusWarning, intake.MsgOffline)
		default:
			m.setStatus(statusError, common.UserMessage(err))
		}
		return nil
	}
	m.setStatus(statusInfo, "Analyzing photo...")
	return tea.Batch(m.spinner.Tick, appraiseCmd(pending))
}

func (m Model) handleAppraisal(msg appraisalDoneMsg) (tea.Model, tea.Cmd) {
	err := m.session.Complete(msg.result)
	switch {
	case errors.Is(err, intake.ErrStale):
		return m, nil
	case err != nil:
		m.setStatus(statusError, common.UserMessage(err))
		return m, nil
	}
	m.form.refresh(m.session.Draft())
	m.setStatus(statusSuccess, "Details filled in by AI. Review and press ctrl+s to save.")
	return m, nil
}

// save writes the form into the draft and stores it.
func (m Model) save() (tea.Model, tea.Cmd) {
	var applyErr error
	m.session.Edit(func(d *model.Draft) {
		applyErr = m.form.apply(d)
	})
	if applyErr != nil {
		m.setStatus(statusError, common.UserMessage(applyErr))
		return m, nil
	}

	ctx, cancel := m.opContext()
	defer cancel()

	item, err := m.session.Save(ctx)
	if err != nil {
		var validationErr *common.ValidationError
		if errors.As(err, &validationErr) {
			m.setStatus(statusError, validationErr.Message())
		} else {
			m.logger.Error("failed to save item", "error", err)
			m.setStatus(statusError, "Could not save item: "+err.Error())
		}
		return m, nil
	}

	m.router.SaveCompleted()
	m.refresh()
	m.setStatus(statusSuccess, fmt.Sprintf("Saved %s (%s).", item.Name, common.FormatCurrency(item.Value)))
	return m, nil
}

func (m Model) handleInsuranceKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var kind service.ReportKind
	switch {
	case key.Matches(msg, m.keymap.InsuranceReport):
		kind = service.ReportInsurance
	case key.Matches(msg, m.keymap.ConveyanceReport):
		kind = service.ReportRealEstate
	default:
		return m, nil
	}
	m.setStatus(statusInfo, "Generating "+report.FileName(kind)+"...")
	return m, writeReportCmd(m.renderer, m.ledger.Items(), m.ledger.PolicyLimit(), kind, m.reportDir)
}

func (m Model) handleSettingsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var (
		action settingsAction
		cmd    tea.Cmd
	)
	m.settings, action, cmd = m.settings.update(msg)

	ctx, cancel := m.opContext()
	defer cancel()

	switch action {
	case actionSetLimit:
		limit, err := m.settings.limit()
		if err != nil {
			m.setStatus(statusError, "Please enter a dollar amount like 100000 or 100,000.")
			return m, cmd
		}
		if err := m.ledger.SetPolicyLimit(ctx, limit); err != nil {
			m.logger.Error("failed to set policy limit", "error", err)
			m.setStatus(statusError, "Could not update policy limit: "+err.Error())
			return m, cmd
		}
		m.refresh()
		m.setStatus(statusSuccess, "Policy limit updated to "+common.FormatCurrency(limit)+".")

	case actionResetLimit:
		if err := m.ledger.ResetPolicyLimit(ctx); err != nil {
			m.logger.Error("failed to reset policy limit", "error", err)
			m.setStatus(statusError, "Could not reset policy limit: "+err.Error())
			return m, cmd
		}
		m.refresh()
		_ = m.settings.reset(m.ledger.PolicyLimit())
		m.settings.focus = settingReset
		m.settings.limitInput.Blur()
		m.setStatus(statusSuccess, "Policy limit reset to "+common.FormatCurrency(m.ledger.PolicyLimit())+".")

	case actionClearAll:
		if err := m.ledger.ClearAll(ctx); err != nil {
			m.logger.Error("failed to clear data", "error", err)
			m.setStatus(statusError, "Could not clear data: "+err.Error())
			return m, cmd
		}
		m.router.Cleared()
		m.refresh()
		m.setStatus(statusSuccess, "All items deleted.")
	}
	return m, cmd
}
