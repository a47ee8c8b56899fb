package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/aquarium/components"
	"github.com/pthm-cable/aquarium/config"
)

func TestOutputManagerDisabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil {
		t.Fatalf("NewOutputManager(\"\") error: %v", err)
	}
	if om != nil {
		t.Fatal("expected nil manager for empty dir")
	}
	// Every method is safe on nil
	if err := om.WriteTelemetry(WindowStats{}); err != nil {
		t.Error(err)
	}
	if err := om.WriteEvents([]Event{{Type: EventMoved}}); err != nil {
		t.Error(err)
	}
	if err := om.Close(); err != nil {
		t.Error(err)
	}
	if om.Dir() != "" {
		t.Error("nil manager should report empty dir")
	}
}

func TestOutputManagerWritesCSV(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager error: %v", err)
	}

	if err := om.WriteConfig(config.Default()); err != nil {
		t.Fatalf("WriteConfig: %v", err)
	}
	for i := 1; i <= 2; i++ {
		if err := om.WriteTelemetry(WindowStats{WindowEndTick: int32(i * 20), Fish: 2, Crabs: 2}); err != nil {
			t.Fatalf("WriteTelemetry: %v", err)
		}
	}
	if err := om.WriteBookmark(Bookmark{Type: BookmarkEmptyTank, Tick: 40, Description: "empty"}); err != nil {
		t.Fatalf("WriteBookmark: %v", err)
	}
	events := []Event{
		NewAddedEvent(0, 1, components.Scalar, components.Position{X: 2, Y: 3}),
		NewRelocationEvent(3, 4, components.Shrimp, 7, 8, 10, false),
	}
	if err := om.WriteEvents(events); err != nil {
		t.Fatalf("WriteEvents: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	read := func(name string) []string {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("reading %s: %v", name, err)
		}
		return strings.Split(strings.TrimSpace(string(data)), "\n")
	}

	telemetry := read("telemetry.csv")
	if len(telemetry) != 3 {
		t.Errorf("telemetry.csv has %d lines, want header + 2", len(telemetry))
	}
	if !strings.HasPrefix(telemetry[0], "window_end,fish,crabs") {
		t.Errorf("telemetry header = %q", telemetry[0])
	}

	bookmarks := read("bookmarks.csv")
	if len(bookmarks) != 2 || !strings.Contains(bookmarks[1], "empty_tank") {
		t.Errorf("bookmarks.csv = %v", bookmarks)
	}

	ev := read("events.csv")
	if len(ev) != 3 {
		t.Fatalf("events.csv has %d lines, want header + 2", len(ev))
	}
	if ev[2] != "3,relocation_failed,4,sh,7,8,0,10" {
		t.Errorf("events row = %q", ev[2])
	}

	if _, err := os.Stat(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("config.yaml missing: %v", err)
	}
}
