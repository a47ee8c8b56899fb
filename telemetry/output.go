package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/aquarium/config"
)

// csvSink appends gocsv records to one file, writing the header once.
type csvSink struct {
	name          string
	file          *os.File
	headerWritten bool
}

func openSink(dir, name string) (*csvSink, error) {
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", name, err)
	}
	return &csvSink{name: name, file: f}, nil
}

// write marshals records, which must be a slice of csv-tagged structs.
func (s *csvSink) write(records any) error {
	var err error
	if !s.headerWritten {
		err = gocsv.Marshal(records, s.file)
		s.headerWritten = err == nil
	} else {
		err = gocsv.MarshalWithoutHeaders(records, s.file)
	}
	if err != nil {
		return fmt.Errorf("writing %s: %w", s.name, err)
	}
	return nil
}

func (s *csvSink) close() error {
	if s == nil || s.file == nil {
		return nil
	}
	return s.file.Close()
}

// EventRecord is the CSV form of an Event.
type EventRecord struct {
	Tick     int32  `csv:"tick"`
	Type     string `csv:"type"`
	AnimalID uint32 `csv:"animal_id"`
	Species  string `csv:"species"`
	X        int    `csv:"x"`
	Y        int    `csv:"y"`
	OtherID  uint32 `csv:"other_id"`
	Amount   int    `csv:"amount"`
}

// ToCSV converts an Event to a flat CSV-friendly struct.
func (ev Event) ToCSV() EventRecord {
	return EventRecord{
		Tick:     ev.Tick,
		Type:     ev.Type.String(),
		AnimalID: ev.AnimalID,
		Species:  ev.Species.Code(),
		X:        ev.X,
		Y:        ev.Y,
		OtherID:  ev.OtherID,
		Amount:   ev.Amount,
	}
}

// OutputManager writes run output (stats, perf, bookmarks, events) as CSV.
// A nil *OutputManager is valid and discards everything.
type OutputManager struct {
	dir       string
	telemetry *csvSink
	perf      *csvSink
	bookmarks *csvSink
	events    *csvSink
}

// NewOutputManager creates the output directory and its CSV files.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}
	sinks := []struct {
		dst  **csvSink
		name string
	}{
		{&om.telemetry, "telemetry.csv"},
		{&om.perf, "perf.csv"},
		{&om.bookmarks, "bookmarks.csv"},
		{&om.events, "events.csv"},
	}
	for _, s := range sinks {
		sink, err := openSink(dir, s.name)
		if err != nil {
			om.Close()
			return nil, err
		}
		*s.dst = sink
	}

	return om, nil
}

// WriteConfig saves the effective configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteTelemetry writes a window stats record to telemetry.csv.
func (om *OutputManager) WriteTelemetry(stats WindowStats) error {
	if om == nil {
		return nil
	}
	return om.telemetry.write([]WindowStats{stats})
}

// WritePerf writes a window's tick profile to perf.csv.
func (om *OutputManager) WritePerf(tp TickProfile) error {
	if om == nil {
		return nil
	}
	return om.perf.write([]ProfileRow{tp.Row()})
}

// WriteBookmark writes a bookmark record to bookmarks.csv.
func (om *OutputManager) WriteBookmark(b Bookmark) error {
	if om == nil {
		return nil
	}
	return om.bookmarks.write([]Bookmark{b})
}

// WriteEvents appends events to events.csv.
func (om *OutputManager) WriteEvents(events []Event) error {
	if om == nil || len(events) == 0 {
		return nil
	}
	records := make([]EventRecord, len(events))
	for i, ev := range events {
		records[i] = ev.ToCSV()
	}
	return om.events.write(records)
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close closes all output files and returns the first error.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}

	var firstErr error
	for _, s := range []*csvSink{om.telemetry, om.perf, om.bookmarks, om.events} {
		if err := s.close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
