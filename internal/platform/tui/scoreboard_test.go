package tui

import (
	"testing"
	"time"

	"github.com/vovakirdan/platformer/internal/storage"
)

func TestFormatFrames(t *testing.T) {
	tests := []struct {
		frames int
		fps    int
		want   string
	}{
		{0, 60, "0:00.0"},
		{90, 60, "0:01.5"},
		{3600, 60, "1:00.0"},
		{3690, 60, "1:01.5"},
		{30, 0, "0:00.5"},
	}

	for _, tc := range tests {
		if got := FormatFrames(tc.frames, tc.fps); got != tc.want {
			t.Errorf("FormatFrames(%d, %d) = %q, expected %q", tc.frames, tc.fps, got, tc.want)
		}
	}
}

func TestRunRows(t *testing.T) {
	when := time.Date(2026, time.March, 4, 15, 30, 0, 0, time.UTC)
	rows := RunRows([]storage.Run{
		{Score: 40, Coins: 4, Frames: 120, Outcome: "quit", Player: "ana", CreatedAt: when},
		{Score: 10, Coins: 1, Frames: 60, Outcome: "enemy", CreatedAt: when},
	})

	if len(rows) != 2 {
		t.Fatalf("got %d rows, expected 2", len(rows))
	}
	want := []string{"#1", "40", "4", "0:02.0", "quit", "ana", "Mar 04 15:30"}
	for i, cell := range want {
		if rows[0][i] != cell {
			t.Errorf("row 0 col %d = %q, expected %q", i, rows[0][i], cell)
		}
	}
	if rows[1][5] != "-" {
		t.Errorf("anonymous player shown as %q, expected -", rows[1][5])
	}
}

func TestRunColumnsFitRows(t *testing.T) {
	cols := RunColumns(60)
	rows := RunRows([]storage.Run{{Score: 1}})
	if len(cols) != len(rows[0]) {
		t.Errorf("%d columns for %d cells", len(cols), len(rows[0]))
	}
}
