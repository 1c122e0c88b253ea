package analysis

import (
	"testing"

	"github.com/Veraticus/ledgerlens/internal/model"
	"github.com/Veraticus/ledgerlens/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(items []model.InventoryItem) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.Name
	}
	return out
}

func TestTotalValue(t *testing.T) {
	assert.Equal(t, 0.0, TotalValue(nil))
	assert.Equal(t, 0.0, TotalValue([]model.InventoryItem{}))

	items := []model.InventoryItem{
		testutil.NewItem("Sofa", 800).Build(),
		testutil.NewItem("Water Heater", 1200).Fixture().Build(),
	}
	assert.Equal(t, 2000.0, TotalValue(items))
}

func TestCoverage(t *testing.T) {
	tests := []struct {
		name        string
		total       float64
		limit       float64
		wantPercent float64
		wantUnder   bool
	}{
		{name: "half covered", total: 500, limit: 1000, wantPercent: 50},
		{name: "exactly at limit", total: 1000, limit: 1000, wantPercent: 100},
		{name: "over limit clamps", total: 1500, limit: 1000, wantPercent: 100, wantUnder: true},
		{name: "empty", total: 0, limit: 100000, wantPercent: 0},
		{name: "zero limit with items", total: 10, limit: 0, wantPercent: 100, wantUnder: true},
		{name: "zero limit and nothing recorded", total: 0, limit: 0, wantPercent: 0},
		{name: "negative limit", total: 10, limit: -5, wantPercent: 100, wantUnder: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.wantPercent, CoveragePercent(tt.total, tt.limit), 1e-9)
			assert.Equal(t, tt.wantUnder, IsUnderInsured(tt.total, tt.limit))
		})
	}
}

func TestCountsByRoom(t *testing.T) {
	items := []model.InventoryItem{
		testutil.NewItem("Toaster", 40).InRoom("Kitchen").Build(),
		testutil.NewItem("Kettle", 30).InRoom("Kitchen").Build(),
		testutil.NewItem("Bed", 900).InRoom("Bedroom").Build(),
		testutil.NewItem("Mystery box", 5).InRoom("").Build(),
		testutil.NewItem("Rug", 200).InRoom("Attic").Build(),
	}

	got := CountsByRoom(items)

	assert.Equal(t, []RoomCount{
		{Room: "Kitchen", Count: 2},
		{Room: "Attic", Count: 1},
		{Room: "Bedroom", Count: 1},
		{Room: model.UngroupedRoom, Count: 1},
	}, got)
	assert.Len(t, TopRoomsByCount(items, 2), 2)
	assert.Len(t, TopRoomsByCount(items, 10), 4)
}

func TestValueByRoom(t *testing.T) {
	items := []model.InventoryItem{
		testutil.NewItem("Toaster", 40).InRoom("Kitchen").Build(),
		testutil.NewItem("Range", 4500).InRoom("Kitchen").Fixture().Build(),
		testutil.NewItem("Bed", 900).InRoom("Bedroom").Build(),
		testutil.NewItem("Box", 900).InRoom("  ").Build(),
	}

	assert.Equal(t, []RoomValue{
		{Room: "Kitchen", Value: 4540},
		{Room: "Bedroom", Value: 900},
		{Room: model.UngroupedRoom, Value: 900},
	}, ValueByRoom(items))
}

func TestValueByCategory(t *testing.T) {
	items := []model.InventoryItem{
		testutil.NewItem("Laptop", 1200).InCategory(model.CategoryElectronics).Build(),
		testutil.NewItem("Chair", 150).InCategory(model.CategoryFurniture).Build(),
		testutil.NewItem("Phone", 300).InCategory(model.CategoryElectronics).Build(),
		testutil.NewItem("Guitar", 700).InCategory(model.ParseCategory("Instruments")).Build(),
		testutil.NewItem("Freebie", 0).InCategory(model.CategoryBooks).Build(),
	}

	got := ValueByCategory(items)

	require.Len(t, got, 2)
	assert.Equal(t, model.CategoryElectronics, got[0].Category)
	assert.Equal(t, 1500.0, got[0].Value)
	assert.Equal(t, model.CategoryFurniture, got[1].Category)
	assert.Equal(t, 150.0, got[1].Value)
}

func TestRecentItems(t *testing.T) {
	items := []model.InventoryItem{
		testutil.NewItem("B", 1).CreatedAt(200).Build(),
		testutil.NewItem("D", 1).CreatedAt(400).Build(),
		testutil.NewItem("A", 1).CreatedAt(100).Build(),
		testutil.NewItem("C", 1).CreatedAt(300).Build(),
	}

	assert.Equal(t, []string{"D", "C", "B"}, names(RecentItems(items, 3)))
	assert.Equal(t, []string{"D", "C", "B", "A"}, names(RecentItems(items, 10)))
	assert.Empty(t, RecentItems(nil, 3))
	assert.Equal(t, "B", items[0].Name, "input must not be reordered")
}

func TestPartitionByType(t *testing.T) {
	items := []model.InventoryItem{
		testutil.NewItem("Water Heater", 1200).Fixture().Build(),
		testutil.NewItem("Sofa", 800).Build(),
		testutil.NewItem("Chandelier", 600).Fixture().Build(),
		testutil.NewItem("Lamp", 40).Build(),
	}

	c := PartitionByType(items)

	assert.Equal(t, []string{"Water Heater", "Chandelier"}, names(c.Fixtures))
	assert.Equal(t, []string{"Sofa", "Lamp"}, names(c.Personal))
	assert.Equal(t, len(items), len(c.Fixtures)+len(c.Personal))
	for _, f := range c.Fixtures {
		assert.NotContains(t, c.Personal, f)
	}
}

func TestFilterItems(t *testing.T) {
	items := []model.InventoryItem{
		testutil.NewItem("MacBook Pro", 1200).InRoom("Office").InCategory(model.CategoryElectronics).Build(),
		testutil.NewItem("Viking Range", 4500).InRoom("Kitchen").InCategory(model.CategoryAppliances).Fixture().Build(),
		testutil.NewItem("Desk", 300).InRoom("Office").WithDescription("standing desk, walnut").Build(),
	}

	tests := []struct {
		name   string
		query  string
		filter TypeFilter
		want   []string
	}{
		{name: "everything", filter: FilterAll, want: []string{"MacBook Pro", "Viking Range", "Desk"}},
		{name: "by room", query: "office", filter: FilterAll, want: []string{"MacBook Pro", "Desk"}},
		{name: "by category", query: "APPLIANCES", filter: FilterAll, want: []string{"Viking Range"}},
		{name: "by description", query: "walnut", filter: FilterAll, want: []string{"Desk"}},
		{name: "fixtures only", filter: FilterFixtures, want: []string{"Viking Range"}},
		{name: "personal with query", query: "office", filter: FilterPersonal, want: []string{"MacBook Pro", "Desk"}},
		{name: "no match", query: "boat", filter: FilterAll, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, names(FilterItems(items, tt.query, tt.filter)))
		})
	}
}

func TestParseTypeFilter(t *testing.T) {
	f, ok := ParseTypeFilter("Fixtures")
	assert.True(t, ok)
	assert.Equal(t, FilterFixtures, f)
	assert.Equal(t, "Fixtures only", f.Label())

	f, ok = ParseTypeFilter("")
	assert.True(t, ok)
	assert.Equal(t, FilterAll, f)

	_, ok = ParseTypeFilter("garage")
	assert.False(t, ok)
}

func TestSummarize(t *testing.T) {
	t.Run("sofa and water heater", func(t *testing.T) {
		items := []model.InventoryItem{
			testutil.NewItem("Water Heater", 1200).Fixture().CreatedAt(2).WithReceipt("data:image/jpeg;base64,AA==").Build(),
			testutil.NewItem("Sofa", 800).CreatedAt(1).Build(),
		}

		s := Summarize(items, model.DefaultPolicyLimit)

		assert.Equal(t, 2000.0, s.TotalValue)
		assert.Equal(t, 2, s.ItemCount)
		assert.Equal(t, 1, s.FixtureCount)
		assert.Equal(t, 1200.0, s.FixtureValue)
		assert.Equal(t, 1, s.PersonalCount)
		assert.Equal(t, 800.0, s.PersonalValue)
		assert.Equal(t, 1, s.ReceiptCount)
		assert.InDelta(t, 2.0, s.CoveragePercent, 1e-9)
		assert.False(t, s.IsUnderInsured)
		assert.Equal(t, []string{"Water Heater", "Sofa"}, names(s.Recent))
	})

	t.Run("over the limit", func(t *testing.T) {
		items := []model.InventoryItem{testutil.NewItem("Piano", 1500).Build()}

		s := Summarize(items, 1000)

		assert.True(t, s.IsUnderInsured)
		assert.Equal(t, 100.0, s.CoveragePercent)
		assert.InDelta(t, 1.5, s.CoverageRatio, 1e-9)
	})

	t.Run("empty", func(t *testing.T) {
		s := Summarize(nil, model.DefaultPolicyLimit)

		assert.Zero(t, s.TotalValue)
		assert.Zero(t, s.CoveragePercent)
		assert.Empty(t, s.Recent)
		assert.Empty(t, s.Rooms)
		assert.False(t, s.IsUnderInsured)
	})
}
