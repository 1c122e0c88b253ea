package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/Veraticus/ledgerlens/internal/common"
	"github.com/Veraticus/ledgerlens/internal/model"
	"github.com/Veraticus/ledgerlens/internal/service"
	"github.com/Veraticus/ledgerlens/internal/testutil"
	"github.com/go-pdf/fpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var reportTime = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func conveyanceItems() []model.InventoryItem {
	return []model.InventoryItem{
		testutil.NewItem("Sofa", 800).InRoom("Living Room").InCategory(model.CategoryFurniture).Build(),
		testutil.NewItem("Water Heater", 1200).
			Fixture().
			InRoom("Basement").
			InCategory(model.CategoryHVAC).
			WithDescription("50 gal, SN 4471-B").
			WithReceipt("data:image/jpeg;base64,AAAA").
			Build(),
	}
}

func column(rows [][]string, idx int) []string {
	out := make([]string, len(rows))
	for i, row := range rows {
		out[i] = row[idx]
	}
	return out
}

func TestBuild_RealEstatePartitionsByType(t *testing.T) {
	doc, err := Build(conveyanceItems(), 100000, service.ReportRealEstate, reportTime)
	require.NoError(t, err)

	assert.Equal(t, RealEstateTitle, doc.Title)
	assert.Equal(t, Emerald, doc.TitleColor)
	assert.Contains(t, doc.Lines, "Generated: 2026-03-14")
	require.Len(t, doc.Sections, 2)

	fixtures := doc.Sections[0]
	assert.Equal(t, FixturesHeading, fixtures.Heading)
	assert.Equal(t, []string{"Water Heater"}, column(fixtures.Rows, 0))
	assert.Equal(t, []string{"Basement", "Good", "50 gal, SN 4471-B"}, fixtures.Rows[0][1:])

	personal := doc.Sections[1]
	assert.Equal(t, PersonalHeading, personal.Heading)
	assert.Equal(t, Slate, personal.Fill)
	assert.Equal(t, [][]string{{"Sofa", "Living Room", "Excluded"}}, personal.Rows)
}

func TestBuild_Insurance(t *testing.T) {
	doc, err := Build(conveyanceItems(), 100000, service.ReportInsurance, reportTime)
	require.NoError(t, err)

	assert.Equal(t, InsuranceTitle, doc.Title)
	assert.Equal(t, []string{
		"Generated: 2026-03-14",
		"Total Value: $2,000",
		"Policy Limit: $100,000 (2% covered)",
	}, doc.Lines)
	assert.Empty(t, doc.Warning)

	require.Len(t, doc.Sections, 1)
	table := doc.Sections[0]
	assert.Equal(t, []string{"Item", "Category", "Location", "Value", "Cond", "Receipt"}, headers(table))
	assert.Equal(t, [][]string{
		{"Sofa", "Furniture", "Living Room", "$800", "Good", "No"},
		{"Water Heater", "HVAC/Systems", "Basement", "$1,200", "Good", "Yes"},
	}, table.Rows)
}

func TestBuild_InsuranceUnderInsured(t *testing.T) {
	items := []model.InventoryItem{testutil.NewItem("Piano", 1500).Build()}

	doc, err := Build(items, 1000, service.ReportInsurance, reportTime)
	require.NoError(t, err)

	assert.Contains(t, doc.Lines, "Policy Limit: $1,000 (100% covered)")
	assert.Contains(t, doc.Warning, "$500")
}

func TestBuild_UnknownKind(t *testing.T) {
	_, err := Build(nil, 0, service.ReportKind("TAX"), reportTime)
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func headers(s Section) []string {
	out := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		out[i] = c.Header
	}
	return out
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in      string
		want    service.ReportKind
		wantErr bool
	}{
		{in: "insurance", want: service.ReportInsurance},
		{in: "INSURANCE", want: service.ReportInsurance},
		{in: "real-estate", want: service.ReportRealEstate},
		{in: "real_estate", want: service.ReportRealEstate},
		{in: "realestate", want: service.ReportRealEstate},
		{in: "tax", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseKind(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "Insurance_Report.pdf", FileName(service.ReportInsurance))
	assert.Equal(t, "Real_Estate_Schedule.pdf", FileName(service.ReportRealEstate))
}

func TestRenderer_ProducesPDF(t *testing.T) {
	r := &Renderer{now: func() time.Time { return reportTime }}

	for _, kind := range []service.ReportKind{service.ReportInsurance, service.ReportRealEstate} {
		t.Run(string(kind), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, r.Render(&buf, conveyanceItems(), 100000, kind))
			assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
			assert.Contains(t, buf.String(), "%%EOF")
		})
	}
}

func TestRenderer_EmptyCollectionAndPageBreaks(t *testing.T) {
	r := &Renderer{now: func() time.Time { return reportTime }}

	var empty bytes.Buffer
	require.NoError(t, r.Render(&empty, nil, 100000, service.ReportRealEstate))
	assert.True(t, bytes.HasPrefix(empty.Bytes(), []byte("%PDF-")))

	many := make([]model.InventoryItem, 0, 120)
	for i := range 120 {
		many = append(many, testutil.NewItem("Very long item name that will not fit in its column "+string(rune('A'+i%26)), float64(i)).Build())
	}
	var big bytes.Buffer
	require.NoError(t, r.Render(&big, many, 100000, service.ReportInsurance))
	assert.Greater(t, big.Len(), empty.Len())
}

func TestRenderer_RejectsUnknownKind(t *testing.T) {
	var buf bytes.Buffer
	err := NewRenderer().Render(&buf, nil, 0, service.ReportKind("TAX"))
	assert.ErrorIs(t, err, common.ErrInvalidInput)
	assert.Zero(t, buf.Len())
}

func TestFit_TruncatesBeforeTranslating(t *testing.T) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont(fontFamily, "", 10)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	short := fit(pdf, tr, "Café", 60)
	assert.Equal(t, tr("Café"), short)
	assert.Equal(t, "Caf\xe9", short)

	got := fit(pdf, tr, "Café crème armoire, hand-carved walnut with brass inlay", 60)
	assert.NotContains(t, got, "\xef\xbf\xbd")
	assert.True(t, strings.HasPrefix(got, tr("Café crème")), "got %q", got)
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.LessOrEqual(t, pdf.GetStringWidth(got), 60.0)
}
