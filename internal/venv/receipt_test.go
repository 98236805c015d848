package venv

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinji-kodama/pybootstrap/internal/model"
)

// --- Write/Read tests ---

// TestReceiptRoundTrip verifies that a written receipt reads back intact.
func TestReceiptRoundTrip(t *testing.T) {
	dir := t.TempDir()
	now := time.Now().UTC().Truncate(time.Second)
	in := Receipt{
		RunID:         "7b0c2f4e-5f7a-4d56-9f0d-2f9a47c0a111",
		TargetVersion: "3.10",
		Interpreter:   "/usr/bin/python3.10",
		CreatedAt:     now.Add(-time.Hour),
		UpdatedAt:     now,
	}

	require.NoError(t, WriteReceipt(dir, in))

	out, err := ReadReceipt(dir)
	require.NoError(t, err)
	assert.Equal(t, in.RunID, out.RunID)
	assert.Equal(t, in.TargetVersion, out.TargetVersion)
	assert.Equal(t, in.Interpreter, out.Interpreter)
	assert.True(t, in.CreatedAt.Equal(out.CreatedAt))
	assert.True(t, in.UpdatedAt.Equal(out.UpdatedAt))
}

// TestWriteReceiptHeader verifies the generated-file warning at the top
// of the receipt.
func TestWriteReceiptHeader(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteReceipt(dir, Receipt{RunID: "x", TargetVersion: "3.10"}))

	data, err := os.ReadFile(ReceiptPath(dir))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "# Auto-generated by pybootstrap\n"))
	assert.Contains(t, string(data), "DO NOT EDIT")
}

// TestReadReceipt_Missing verifies that a missing receipt surfaces as
// os.ErrNotExist so callers can branch on absence.
func TestReadReceipt_Missing(t *testing.T) {
	_, err := ReadReceipt(t.TempDir())

	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

// TestReadReceipt_Damaged verifies that unparseable receipt content is an
// error distinct from absence.
func TestReadReceipt_Damaged(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(ReceiptPath(dir), []byte("runId: [unclosed\n"), 0644))

	_, err := ReadReceipt(dir)

	require.Error(t, err)
	assert.NotErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), filepath.Join(dir, ReceiptFileName))
}

// --- MatchesTarget tests ---

// TestMatchesTarget verifies the field-wise version comparison against
// the recorded string, including the 3.100 case.
func TestMatchesTarget(t *testing.T) {
	target := model.Version{Major: 3, Minor: 10}

	assert.True(t, Receipt{TargetVersion: "3.10"}.MatchesTarget(target))
	assert.False(t, Receipt{TargetVersion: "3.9"}.MatchesTarget(target))
	assert.False(t, Receipt{TargetVersion: "3.100"}.MatchesTarget(target))
	assert.False(t, Receipt{TargetVersion: "garbage"}.MatchesTarget(target))
	assert.False(t, Receipt{}.MatchesTarget(target))
}
