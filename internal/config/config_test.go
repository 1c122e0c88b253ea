package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/ledgerlens/internal/sheets"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("LEDGERLENS_TEST_DIR", "/srv/ledger")

	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: "~", want: home},
		{in: "~/photos", want: filepath.Join(home, "photos")},
		{in: "$LEDGERLENS_TEST_DIR/db.sqlite", want: "/srv/ledger/db.sqlite"},
		{in: "/abs/path", want: "/abs/path"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.in))
		})
	}
}

func TestLoadSheetsConfig(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	for _, env := range []string{
		"GOOGLE_SHEETS_CLIENT_ID", "GOOGLE_SHEETS_CLIENT_SECRET", "GOOGLE_SHEETS_REFRESH_TOKEN",
		"GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH", "GOOGLE_SHEETS_SPREADSHEET_ID", "GOOGLE_SHEETS_SPREADSHEET_NAME",
	} {
		t.Setenv(env, "")
	}

	_, err := LoadSheetsConfig()
	require.Error(t, err)

	t.Setenv("GOOGLE_SHEETS_SPREADSHEET_NAME", "Household")
	viper.Set("sheets.service_account_path", "~/keys/sa.json")
	viper.Set("sheets.spreadsheet_id", "abc")

	cfg, err := LoadSheetsConfig()
	require.NoError(t, err)

	home, _ := os.UserHomeDir()
	assert.Equal(t, filepath.Join(home, "keys/sa.json"), cfg.ServiceAccountPath)
	assert.Equal(t, "abc", cfg.SpreadsheetID)
	assert.Equal(t, "Household", cfg.SpreadsheetName)
	assert.Equal(t, sheets.DefaultSheetTitle, cfg.SheetTitle)
}
