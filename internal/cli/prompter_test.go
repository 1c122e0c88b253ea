package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrompter_Confirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{input: "y\n", want: true},
		{input: "YES\n", want: true},
		{input: "n\n", want: false},
		{input: "\n", want: false},
		{input: "maybe\n", want: false},
		{input: "y", want: true},
	}

	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.input), func(t *testing.T) {
			var out bytes.Buffer
			p := NewPrompter(strings.NewReader(tt.input), &out)

			got, err := p.Confirm(context.Background(), "Delete all items?")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, out.String(), "Delete all items? [y/N]")
		})
	}
}

func TestPrompter_ConfirmEOF(t *testing.T) {
	p := NewPrompter(strings.NewReader(""), &bytes.Buffer{})

	_, err := p.Confirm(context.Background(), "Delete all items?")
	assert.ErrorIs(t, err, ErrInputTerminated)
}

func TestPrompter_PromptString(t *testing.T) {
	p := NewPrompter(strings.NewReader("\nOffice\n"), &bytes.Buffer{})

	got, err := p.PromptString(context.Background(), "Room", "General")
	require.NoError(t, err)
	assert.Equal(t, "General", got)

	got, err = p.PromptString(context.Background(), "Room", "General")
	require.NoError(t, err)
	assert.Equal(t, "Office", got)
}

func TestPrompter_PromptAmountRetries(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("lots\n-5\n$1,250.50\n"), &out)

	got, err := p.PromptAmount(context.Background(), "Policy limit")
	require.NoError(t, err)
	assert.Equal(t, 1250.5, got)
	assert.Equal(t, 2, strings.Count(out.String(), "Please enter a dollar amount"))
}
