package main

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Veraticus/ledgerlens/internal/common"
	"github.com/Veraticus/ledgerlens/internal/intake"
	"github.com/Veraticus/ledgerlens/internal/ledger"
	"github.com/Veraticus/ledgerlens/internal/llm"
	"github.com/Veraticus/ledgerlens/internal/model"
	"github.com/Veraticus/ledgerlens/internal/network"
	"github.com/Veraticus/ledgerlens/internal/testutil"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)

// setupDatabase points the commands at a fresh database file.
func setupDatabase(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ledgerlens.db")
	viper.Set("database.path", path)
	t.Cleanup(viper.Reset)
	return path
}

func execute(t *testing.T, cmd *cobra.Command, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

type fakeAppraiser struct {
	err   error
	mu    sync.Mutex
	calls int
}

func (f *fakeAppraiser) Appraise(_ context.Context, _ llm.Image) (llm.Appraisal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return llm.Appraisal{}, f.err
	}
	return llm.Appraisal{
		Name:           "Bookshelf",
		Category:       model.CategoryFurniture,
		Room:           "Den",
		Type:           model.ItemTypePersonal,
		Condition:      model.ConditionFair,
		EstimatedValue: 250,
	}, nil
}

func writeJPEG(t *testing.T, path string) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for x := 0; x < 16; x++ {
		for y := 0; y < 16; y++ {
			img.Set(x, y, color.RGBA{R: 90, G: 60, B: 30, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))
}

func newSession(t *testing.T, appraiser intake.Appraiser, online bool) (*ledger.Store, *intake.Session) {
	t.Helper()
	store := ledger.New(testutil.SetupTestStorage(t), nil)
	require.NoError(t, store.Load(context.Background()))
	require.NoError(t, store.ClearAll(context.Background()))
	return store, intake.NewSession(store, appraiser, network.Static(online), nil)
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, versionCmd(), "")
	require.NoError(t, err)
	assert.Equal(t, "ledgerlens dev\n", out)
}

func TestListCommand(t *testing.T) {
	setupDatabase(t)

	out, err := execute(t, listCmd(), "")
	require.NoError(t, err)
	assert.Contains(t, out, "MacBook Pro M1")
	assert.Contains(t, out, "Viking Gas Range")
	assert.Contains(t, out, "2 of 2 items · $5,700")

	out, err = execute(t, listCmd(), "", "--type", "fixture")
	require.NoError(t, err)
	assert.NotContains(t, out, "MacBook Pro M1")
	assert.Contains(t, out, "1 of 2 items · $4,500")

	out, err = execute(t, listCmd(), "", "--query", "OFFICE")
	require.NoError(t, err)
	assert.Contains(t, out, "MacBook Pro M1")
	assert.NotContains(t, out, "Viking Gas Range")

	out, err = execute(t, listCmd(), "", "-q", "piano")
	require.NoError(t, err)
	assert.Contains(t, out, "No items found.")

	_, err = execute(t, listCmd(), "", "--type", "rental")
	assert.Error(t, err)
}

func TestStatsCommand(t *testing.T) {
	setupDatabase(t)

	out, err := execute(t, statsCmd(), "")
	require.NoError(t, err)
	assert.Contains(t, out, "$5,700")
	assert.Contains(t, out, "$100,000")
	assert.Contains(t, out, "Appliances")
	assert.NotContains(t, out, "Under-insured")
}

func TestPolicyCommands(t *testing.T) {
	setupDatabase(t)

	out, err := execute(t, policyCmd(), "", "set", "$2,500")
	require.NoError(t, err)
	assert.Contains(t, out, "Policy limit set to $2,500")

	out, err = execute(t, policyCmd(), "", "get")
	require.NoError(t, err)
	assert.Contains(t, out, "Policy limit: $2,500")
	assert.Contains(t, out, "Coverage:     100%")
	assert.Contains(t, out, "Under-insured by $3,200")

	out, err = execute(t, policyCmd(), "", "reset")
	require.NoError(t, err)
	assert.Contains(t, out, "$100,000")

	_, err = execute(t, policyCmd(), "", "set", "lots")
	assert.Error(t, err)

	out, err = execute(t, policyCmd(), "lots\n75000\n", "set")
	require.NoError(t, err)
	assert.Contains(t, out, "Please enter a dollar amount")
	assert.Contains(t, out, "Policy limit set to $75,000")

	_, err = execute(t, policyCmd(), "", "set")
	assert.Error(t, err)
}

func TestClearCommand(t *testing.T) {
	setupDatabase(t)

	out, err := execute(t, clearCmd(), "n\n")
	require.NoError(t, err)
	assert.Contains(t, out, "Delete all 2 items?")
	assert.Contains(t, out, "Clear canceled.")

	// Closed input counts as a no.
	out, err = execute(t, clearCmd(), "")
	require.NoError(t, err)
	assert.Contains(t, out, "Clear canceled.")

	out, err = execute(t, clearCmd(), "y\n")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted 2 items")

	out, err = execute(t, clearCmd(), "", "--force")
	require.NoError(t, err)
	assert.Contains(t, out, "Nothing to clear")

	// The cleared ledger is not reseeded with demo items.
	out, err = execute(t, listCmd(), "")
	require.NoError(t, err)
	assert.Contains(t, out, "No items found.")
}

func TestReportCommand(t *testing.T) {
	setupDatabase(t)
	dir := t.TempDir()

	path := filepath.Join(dir, "nested", "insurance.pdf")
	out, err := execute(t, reportCmd(), "", "insurance", "-o", path)
	require.NoError(t, err)
	assert.Contains(t, out, "2 items")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))

	viper.Set("report.output_dir", dir)
	_, err = execute(t, reportCmd(), "", "real-estate")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "Real_Estate_Schedule.pdf"))

	_, err = execute(t, reportCmd(), "", "tax")
	assert.Error(t, err)
}

func TestAddCommand(t *testing.T) {
	setupDatabase(t)
	receipt := filepath.Join(t.TempDir(), "receipt.jpg")
	writeJPEG(t, receipt)

	out, err := execute(t, addCmd(), "",
		"--name", "Chandelier", "--value", "1,250.50", "--type", "fixture",
		"--room", "Dining Room", "--category", "fixtures/lighting", "--receipt", receipt)
	require.NoError(t, err)
	assert.Contains(t, out, "Saved Chandelier ($1,250.50) to Dining Room")

	out, err = execute(t, listCmd(), "", "--type", "fixture")
	require.NoError(t, err)
	assert.Contains(t, out, "Chandelier")
	assert.Contains(t, out, "Fixtures/Lighting")
	assert.Contains(t, out, "2 of 3 items")
}

func TestAddCommand_Validation(t *testing.T) {
	setupDatabase(t)

	_, err := execute(t, addCmd(), "", "--name", "Lamp")
	require.Error(t, err)
	assert.Equal(t, "Please provide at least a name and value.", common.UserMessage(err))

	_, err = execute(t, addCmd(), "", "--name", "Lamp", "--value", "cheap")
	assert.Error(t, err)

	_, err = execute(t, addCmd(), "", "--name", "Lamp", "--value", "40", "--type", "rental")
	assert.Error(t, err)

	_, err = execute(t, addCmd(), "", "--name", "Lamp", "--photo", filepath.Join(t.TempDir(), "missing.jpg"))
	assert.Error(t, err)
}

func TestRunAdd_AppraisalFillsAndFlagsOverride(t *testing.T) {
	photo := filepath.Join(t.TempDir(), "shelf.jpg")
	writeJPEG(t, photo)
	store, session := newSession(t, &fakeAppraiser{}, true)

	opts := addOptions{photo: photo, appraise: true, value: "300"}
	changed := func(name string) bool { return name == "value" }

	var out bytes.Buffer
	require.NoError(t, runAdd(context.Background(), &out, session, opts, changed))
	assert.Contains(t, out.String(), "Identified Bookshelf")

	items := store.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "Bookshelf", items[0].Name)
	assert.Equal(t, "Den", items[0].Room)
	assert.Equal(t, 300.0, items[0].Value)
	assert.NotEmpty(t, items[0].ImageURL)
}

func TestRunAdd_AppraisalFailureDegrades(t *testing.T) {
	photo := filepath.Join(t.TempDir(), "shelf.jpg")
	writeJPEG(t, photo)
	store, session := newSession(t, &fakeAppraiser{err: errors.New("quota exceeded")}, true)

	opts := addOptions{photo: photo, appraise: true, name: "Shelf", value: "120"}
	changed := func(name string) bool { return name == "name" || name == "value" }

	var out bytes.Buffer
	require.NoError(t, runAdd(context.Background(), &out, session, opts, changed))
	assert.Contains(t, out.String(), intake.MsgAppraisalFailed)
	require.Equal(t, 1, store.Len())
	assert.Equal(t, "Shelf", store.Items()[0].Name)
}

func TestRunAdd_AppraiseNeedsPhoto(t *testing.T) {
	_, session := newSession(t, &fakeAppraiser{}, true)

	err := runAdd(context.Background(), &bytes.Buffer{}, session, addOptions{appraise: true}, func(string) bool { return false })
	assert.ErrorIs(t, err, intake.ErrNoPhoto)
}

func TestApplyAddFlags(t *testing.T) {
	d := model.NewDraft(fixedNow)
	opts := addOptions{name: "Rug", value: "$80", condition: "like new", date: "2021-01-02", category: "Rugs"}
	changed := func(string) bool { return true }
	opts.itemType = "personal"

	require.NoError(t, applyAddFlags(&d, opts, changed))
	assert.Equal(t, "Rug", d.Name)
	require.NotNil(t, d.Value)
	assert.Equal(t, 80.0, *d.Value)
	assert.Equal(t, model.ConditionLikeNew, d.Condition)
	assert.Equal(t, "2021-01-02", d.PurchaseDate)
	assert.Equal(t, "Rugs", d.Category.String())
	assert.Equal(t, model.ItemTypePersonal, d.Type)

	untouched := model.NewDraft(fixedNow)
	require.NoError(t, applyAddFlags(&untouched, addOptions{name: "ignored"}, func(string) bool { return false }))
	assert.Empty(t, untouched.Name)
	assert.Equal(t, model.FormRoom, untouched.Room)
}

func TestRunImport(t *testing.T) {
	dir := t.TempDir()
	writeJPEG(t, filepath.Join(dir, "a.jpg"))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.jpg"), []byte("not an image"), 0o600))
	writeJPEG(t, filepath.Join(dir, "c.jpg"))

	appraiser := &fakeAppraiser{}
	store, session := newSession(t, appraiser, true)

	steps := 0
	paths := []string{filepath.Join(dir, "a.jpg"), filepath.Join(dir, "b.jpg"), filepath.Join(dir, "c.jpg")}
	result := runImport(context.Background(), session, paths, "Garage", func() { steps++ })

	assert.Equal(t, 3, steps)
	assert.Len(t, result.added, 2)
	require.Len(t, result.failed, 1)
	assert.Equal(t, paths[1], result.failed[0].path)
	assert.Equal(t, 2, appraiser.calls)
	assert.Equal(t, 2, store.Len())
	assert.Equal(t, "Garage", store.Items()[0].Room)

	var out bytes.Buffer
	require.NoError(t, printImportResult(&out, result, len(paths)))
	assert.Contains(t, out.String(), "Added 2 of 3 items")
	assert.Contains(t, out.String(), "b.jpg")
}

func TestRunImport_AppraisalFailuresAreSkipped(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.jpg")
	writeJPEG(t, path)

	store, session := newSession(t, &fakeAppraiser{err: errors.New("boom")}, true)
	result := runImport(context.Background(), session, []string{path}, "", func() {})

	assert.Empty(t, result.added)
	require.Len(t, result.failed, 1)
	assert.Equal(t, intake.MsgAppraisalFailed, result.failed[0].reason)
	assert.Equal(t, 0, store.Len())
	assert.True(t, session.Photo().IsZero(), "failed draft is discarded")
}

func TestRunImport_StopsWhenCanceled(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.jpg")
	writeJPEG(t, path)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, session := newSession(t, &fakeAppraiser{}, true)
	result := runImport(ctx, session, []string{path, path}, "", func() {})
	assert.Empty(t, result.added)
	assert.Empty(t, result.failed)
}

func TestLLMConfig(t *testing.T) {
	t.Cleanup(viper.Reset)

	viper.Set("llm.provider", "anthropic")
	t.Setenv("ANTHROPIC_API_KEY", "sk-test")
	cfg, err := llmConfig()
	require.NoError(t, err)
	assert.Equal(t, "sk-test", cfg.APIKey)
	assert.Equal(t, 60, cfg.RateLimit)

	viper.Set("llm.provider", "openai")
	t.Setenv("OPENAI_API_KEY", "")
	_, err = llmConfig()
	assert.Error(t, err)

	viper.Set("llm.api_key", "from-config")
	cfg, err = llmConfig()
	require.NoError(t, err)
	assert.Equal(t, "from-config", cfg.APIKey)
}
