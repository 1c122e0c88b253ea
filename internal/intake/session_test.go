package intake_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/Veraticus/ledgerlens/internal/capture"
	"github.com/Veraticus/ledgerlens/internal/common"
	"github.com/Veraticus/ledgerlens/internal/intake"
	"github.com/Veraticus/ledgerlens/internal/ledger"
	"github.com/Veraticus/ledgerlens/internal/llm"
	"github.com/Veraticus/ledgerlens/internal/model"
	"github.com/Veraticus/ledgerlens/internal/network"
	"github.com/Veraticus/ledgerlens/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var photo = capture.Frame{Data: []byte{0xff, 0xd8, 0xff, 0xe0}, MIME: "image/jpeg"}

type fakeAppraiser struct {
	err     error
	result  llm.Appraisal
	block   chan struct{}
	images  []llm.Image
	mu      sync.Mutex
	started chan struct{}
}

func (f *fakeAppraiser) Appraise(ctx context.Context, image llm.Image) (llm.Appraisal, error) {
	f.mu.Lock()
	f.images = append(f.images, image)
	f.mu.Unlock()

	if f.started != nil {
		close(f.started)
	}
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return llm.Appraisal{}, ctx.Err()
		}
	}
	return f.result, f.err
}

func newStore(t *testing.T) *ledger.Store {
	t.Helper()
	store := ledger.New(testutil.SetupTestStorage(t), nil)
	require.NoError(t, store.Load(context.Background()))
	require.NoError(t, store.ClearAll(context.Background()))
	return store
}

var rangeAppraisal = llm.Appraisal{
	Name:           "Viking Gas Range",
	Category:       model.CategoryAppliances,
	Room:           "Kitchen",
	Type:           model.ItemTypeFixture,
	Condition:      model.ConditionGood,
	Description:    "6-burner gas stove",
	EstimatedValue: 4500,
}

func TestSession_NewDraftHasFormDefaults(t *testing.T) {
	s := intake.NewSession(newStore(t), nil, nil, nil)

	d := s.Draft()
	assert.Equal(t, model.FormRoom, d.Room)
	assert.Equal(t, model.ItemTypePersonal, d.Type)
	assert.Equal(t, model.CategoryOther, d.Category)
	assert.Equal(t, model.ConditionGood, d.Condition)
	assert.NotEmpty(t, d.PurchaseDate)
	assert.False(t, s.CanAppraise())
}

func TestSession_AppraiseAppliesResult(t *testing.T) {
	appraiser := &fakeAppraiser{result: rangeAppraisal}
	s := intake.NewSession(newStore(t), appraiser, network.Static(true), nil)
	require.NoError(t, s.AttachPhoto(photo))

	require.NoError(t, s.Appraise(context.Background()))

	d := s.Draft()
	assert.Equal(t, "Viking Gas Range", d.Name)
	assert.Equal(t, model.CategoryAppliances, d.Category)
	assert.Equal(t, "Kitchen", d.Room)
	assert.Equal(t, model.ItemTypeFixture, d.Type)
	require.NotNil(t, d.Value)
	assert.Equal(t, 4500.0, *d.Value)
	assert.Equal(t, photo.DataURL(), d.ImageURL)
	require.Len(t, appraiser.images, 1)
	assert.Equal(t, "image/jpeg", appraiser.images[0].MIME)
	assert.False(t, s.Appraising())
}

func TestSession_ApplyRoomFallback(t *testing.T) {
	s := intake.NewSession(newStore(t), nil, nil, nil)

	s.Apply(llm.Appraisal{Name: "Lamp", Type: model.ItemTypePersonal, EstimatedValue: 20})

	assert.Equal(t, model.UnknownRoom, s.Draft().Room)
}

func TestSession_AppraisalFailureLeavesDraftUnchanged(t *testing.T) {
	appraiser := &fakeAppraiser{err: errors.New("model overloaded")}
	s := intake.NewSession(newStore(t), appraiser, network.Static(true), nil)
	s.Edit(func(d *model.Draft) {
		d.Name = "My chair"
		d.Room = "Den"
	})
	require.NoError(t, s.AttachPhoto(photo))
	before := s.Draft()

	err := s.Appraise(context.Background())

	require.Error(t, err)
	assert.Equal(t, intake.MsgAppraisalFailed, common.UserMessage(err))
	assert.Equal(t, before, s.Draft())
	assert.False(t, s.Appraising())
}

func TestSession_OfflineKeepsPhoto(t *testing.T) {
	appraiser := &fakeAppraiser{result: rangeAppraisal}
	s := intake.NewSession(newStore(t), appraiser, network.Static(false), nil)
	require.NoError(t, s.AttachPhoto(photo))

	err := s.Appraise(context.Background())

	assert.ErrorIs(t, err, intake.ErrOffline)
	assert.Equal(t, intake.MsgOffline, common.UserMessage(err))
	assert.Equal(t, photo.DataURL(), s.Draft().ImageURL)
	assert.Empty(t, appraiser.images)
}

func TestSession_RequiresPhoto(t *testing.T) {
	s := intake.NewSession(newStore(t), &fakeAppraiser{}, network.Static(true), nil)
	assert.ErrorIs(t, s.Appraise(context.Background()), intake.ErrNoPhoto)
}

func TestSession_SingleAppraisalInFlight(t *testing.T) {
	appraiser := &fakeAppraiser{result: rangeAppraisal}
	s := intake.NewSession(newStore(t), appraiser, network.Static(true), nil)
	require.NoError(t, s.AttachPhoto(photo))

	pending, err := s.Begin(context.Background())
	require.NoError(t, err)
	assert.True(t, s.Appraising())

	_, err = s.Begin(context.Background())
	assert.ErrorIs(t, err, intake.ErrAppraisalInFlight)
	assert.ErrorIs(t, s.AttachPhoto(photo), intake.ErrAppraisalInFlight)

	require.NoError(t, s.Complete(pending.Run()))
	assert.False(t, s.Appraising())
	assert.NoError(t, s.AttachPhoto(photo))
}

func TestSession_DiscardDropsLateResult(t *testing.T) {
	appraiser := &fakeAppraiser{
		result:  rangeAppraisal,
		block:   make(chan struct{}),
		started: make(chan struct{}),
	}
	s := intake.NewSession(newStore(t), appraiser, network.Static(true), nil)
	require.NoError(t, s.AttachPhoto(photo))

	pending, err := s.Begin(context.Background())
	require.NoError(t, err)

	results := make(chan intake.Result, 1)
	go func() { results <- pending.Run() }()
	<-appraiser.started

	s.Discard()
	res := <-results

	assert.ErrorIs(t, res.Err, context.Canceled)
	assert.ErrorIs(t, s.Complete(res), intake.ErrStale)
	assert.Empty(t, s.Draft().Name)
	assert.Empty(t, s.Draft().ImageURL)
	assert.False(t, s.Appraising())
}

func TestSession_StaleSuccessIsNotApplied(t *testing.T) {
	appraiser := &fakeAppraiser{result: rangeAppraisal}
	s := intake.NewSession(newStore(t), appraiser, network.Static(true), nil)
	require.NoError(t, s.AttachPhoto(photo))

	pending, err := s.Begin(context.Background())
	require.NoError(t, err)
	res := pending.Run()

	s.Discard()

	assert.ErrorIs(t, s.Complete(res), intake.ErrStale)
	assert.Empty(t, s.Draft().Name)
}

func TestSession_Save(t *testing.T) {
	store := newStore(t)
	s := intake.NewSession(store, nil, nil, nil)
	s.AttachReceipt(photo)
	s.Edit(func(d *model.Draft) {
		d.Name = "Sofa"
		d.SetValue(800)
	})
	genBefore := s.Generation()

	item, err := s.Save(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Sofa", item.Name)
	assert.Equal(t, model.FormRoom, item.Room, "form default room is kept")
	assert.True(t, item.HasReceipt())
	assert.Equal(t, 1, store.Len())

	assert.Empty(t, s.Draft().Name)
	assert.Nil(t, s.Draft().Value)
	assert.True(t, s.Receipt().IsZero())
	assert.Greater(t, s.Generation(), genBefore)
}

func TestSession_SaveValidationKeepsDraft(t *testing.T) {
	store := newStore(t)
	s := intake.NewSession(store, nil, nil, nil)
	s.Edit(func(d *model.Draft) { d.Name = "Sofa" })

	_, err := s.Save(context.Background())

	var validationErr *common.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "Please provide at least a name and value.", common.UserMessage(err))
	assert.Equal(t, "Sofa", s.Draft().Name)
	assert.Equal(t, 0, store.Len())
}
