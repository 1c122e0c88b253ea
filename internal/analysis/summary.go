// Package analysis derives aggregate statistics from the ledger. Every
// function is pure and recomputed from the collection on each call.
package analysis

import (
	"sort"
	"strings"

	"github.com/Veraticus/ledgerlens/internal/model"
)

// DashboardRecentCount is how many recent items the dashboard shows.
const DashboardRecentCount = 3

// DashboardRoomCount is how many rooms the dashboard lists.
const DashboardRoomCount = 5

// RoomCount is the number of items recorded in one room.
type RoomCount struct {
	Room  string
	Count int
}

// RoomValue is the summed value of the items in one room.
type RoomValue struct {
	Room  string
	Value float64
}

// CategoryValue is the summed value of the items in one known category.
type CategoryValue struct {
	Category model.Category
	Value    float64
}

// Conveyance splits items by whether they transfer with the property.
type Conveyance struct {
	Fixtures []model.InventoryItem
	Personal []model.InventoryItem
}

// TypeFilter narrows a listing to one item type.
type TypeFilter string

const (
	// FilterAll keeps every item.
	FilterAll TypeFilter = "all"
	// FilterFixtures keeps fixtures only.
	FilterFixtures TypeFilter = "fixture"
	// FilterPersonal keeps personal property only.
	FilterPersonal TypeFilter = "personal"
)

// Summary bundles the statistics shown on the dashboard and insurance screens.
type Summary struct {
	Recent          []model.InventoryItem
	Rooms           []RoomCount
	RoomValues      []RoomValue
	CategoryValues  []CategoryValue
	TotalValue      float64
	PolicyLimit     float64
	CoveragePercent float64
	// CoverageRatio is total/limit without the display clamp. Zero when the
	// limit is not positive.
	CoverageRatio  float64
	ItemCount      int
	FixtureCount   int
	PersonalCount  int
	FixtureValue   float64
	PersonalValue  float64
	ReceiptCount   int
	IsUnderInsured bool
}

// TotalValue sums the value of every item. The empty collection totals 0.
func TotalValue(items []model.InventoryItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Value
	}
	return total
}

func roomKey(room string) string {
	if strings.TrimSpace(room) == "" {
		return model.UngroupedRoom
	}
	return room
}

// CountsByRoom tallies items per room, descending by count with ties broken
// by room name. Items without a room are grouped under "Other".
func CountsByRoom(items []model.InventoryItem) []RoomCount {
	counts := make(map[string]int)
	for _, item := range items {
		counts[roomKey(item.Room)]++
	}

	out := make([]RoomCount, 0, len(counts))
	for room, count := range counts {
		out = append(out, RoomCount{Room: room, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Room < out[j].Room
	})
	return out
}

// TopRoomsByCount returns at most n entries of CountsByRoom.
func TopRoomsByCount(items []model.InventoryItem, n int) []RoomCount {
	rooms := CountsByRoom(items)
	if n >= 0 && len(rooms) > n {
		rooms = rooms[:n]
	}
	return rooms
}

// ValueByRoom sums value per room, descending by value with ties broken by
// room name.
func ValueByRoom(items []model.InventoryItem) []RoomValue {
	values := make(map[string]float64)
	for _, item := range items {
		values[roomKey(item.Room)] += item.Value
	}

	out := make([]RoomValue, 0, len(values))
	for room, value := range values {
		out = append(out, RoomValue{Room: room, Value: value})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Value != out[j].Value {
			return out[i].Value > out[j].Value
		}
		return out[i].Room < out[j].Room
	})
	return out
}

// ValueByCategory sums value per known category in enumeration order.
// Categories totalling zero and unrecognized labels are left out.
func ValueByCategory(items []model.InventoryItem) []CategoryValue {
	sums := make(map[string]float64)
	for _, item := range items {
		if item.Category.Known() {
			sums[item.Category.String()] += item.Value
		}
	}

	var out []CategoryValue
	for _, c := range model.Categories() {
		if v := sums[c.String()]; v > 0 {
			out = append(out, CategoryValue{Category: c, Value: v})
		}
	}
	return out
}

// CoveragePercent is the documented value as a percentage of limit, clamped
// at 100. A non-positive limit reads as fully consumed once anything is
// recorded.
func CoveragePercent(total, limit float64) float64 {
	if limit <= 0 {
		if total > 0 {
			return 100
		}
		return 0
	}
	pct := total / limit * 100
	if pct > 100 {
		return 100
	}
	return pct
}

// IsUnderInsured reports whether the documented value exceeds the limit.
func IsUnderInsured(total, limit float64) bool {
	return total > limit
}

// RecentItems returns up to n items, newest createdAt first.
func RecentItems(items []model.InventoryItem, n int) []model.InventoryItem {
	out := make([]model.InventoryItem, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt > out[j].CreatedAt
	})
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// PartitionByType splits items into fixtures and personal property,
// preserving input order. Every item lands in exactly one side.
func PartitionByType(items []model.InventoryItem) Conveyance {
	var c Conveyance
	for _, item := range items {
		if item.Type == model.ItemTypeFixture {
			c.Fixtures = append(c.Fixtures, item)
		} else {
			c.Personal = append(c.Personal, item)
		}
	}
	return c
}

// ParseTypeFilter accepts "all", "fixture(s)" or "personal"; blank means all.
func ParseTypeFilter(s string) (TypeFilter, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return FilterAll, true
	case "fixture", "fixtures":
		return FilterFixtures, true
	case "personal":
		return FilterPersonal, true
	default:
		return "", false
	}
}

// Label returns the chip text for the filter.
func (f TypeFilter) Label() string {
	switch f {
	case FilterFixtures:
		return "Fixtures only"
	case FilterPersonal:
		return "Personal only"
	default:
		return "All"
	}
}

// FilterItems keeps items matching query and filter. The query is a
// case-insensitive substring over name, room, category and description.
func FilterItems(items []model.InventoryItem, query string, filter TypeFilter) []model.InventoryItem {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]model.InventoryItem, 0, len(items))
	for _, item := range items {
		switch filter {
		case FilterFixtures:
			if item.Type != model.ItemTypeFixture {
				continue
			}
		case FilterPersonal:
			if item.Type != model.ItemTypePersonal {
				continue
			}
		}
		if q != "" && !matches(item, q) {
			continue
		}
		out = append(out, item)
	}
	return out
}

func matches(item model.InventoryItem, q string) bool {
	for _, field := range []string{item.Name, item.Room, item.Category.String(), item.Description} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

// Summarize computes every dashboard statistic in one pass over the inputs.
func Summarize(items []model.InventoryItem, limit float64) Summary {
	total := TotalValue(items)
	s := Summary{
		Recent:          RecentItems(items, DashboardRecentCount),
		Rooms:           TopRoomsByCount(items, DashboardRoomCount),
		RoomValues:      ValueByRoom(items),
		CategoryValues:  ValueByCategory(items),
		TotalValue:      total,
		PolicyLimit:     limit,
		CoveragePercent: CoveragePercent(total, limit),
		ItemCount:       len(items),
		IsUnderInsured:  IsUnderInsured(total, limit),
	}
	if limit > 0 {
		s.CoverageRatio = total / limit
	}

	for _, item := range items {
		if item.Type == model.ItemTypeFixture {
			s.FixtureCount++
			s.FixtureValue += item.Value
		} else {
			s.PersonalCount++
			s.PersonalValue += item.Value
		}
		if item.HasReceipt() {
			s.ReceiptCount++
		}
	}
	return s
}
