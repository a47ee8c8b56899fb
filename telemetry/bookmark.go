package telemetry

import (
	"fmt"
	"log/slog"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkDieOff         BookmarkType = "die_off"
	BookmarkCollisionStorm BookmarkType = "collision_storm"
	BookmarkEmptyTank      BookmarkType = "empty_tank"
)

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType `csv:"type"`
	Tick        int32        `csv:"tick"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"tick", b.Tick,
		"description", b.Description,
	)
}

// BookmarkDetector flags notable windows in the tank's history.
type BookmarkDetector struct {
	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	stormThreshold int
}

// NewBookmarkDetector creates a detector with the given history size. A
// window with at least stormThreshold failed relocations is a collision storm.
func NewBookmarkDetector(historySize, stormThreshold int) *BookmarkDetector {
	if historySize < 2 {
		historySize = 2
	}
	if stormThreshold < 1 {
		stormThreshold = 1
	}
	return &BookmarkDetector{
		history:        make([]WindowStats, historySize),
		historySize:    historySize,
		stormThreshold: stormThreshold,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark

	if bd.historyFull || bd.historyIdx > 0 {
		// Die-off: population fell to half of the recent peak or less
		if b := bd.checkDieOff(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}

		// Empty tank: the last animal just died
		if b := bd.checkEmptyTank(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
	}

	// Collision storm needs no history
	if b := bd.checkCollisionStorm(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	bd.addToHistory(stats)
	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

func (bd *BookmarkDetector) getHistory() []WindowStats {
	if bd.historyFull {
		return bd.history
	}
	return bd.history[:bd.historyIdx]
}

// last returns the most recently added window.
func (bd *BookmarkDetector) last() WindowStats {
	idx := bd.historyIdx - 1
	if idx < 0 {
		idx = bd.historySize - 1
	}
	return bd.history[idx]
}

func (bd *BookmarkDetector) checkDieOff(stats WindowStats) *Bookmark {
	peak := 0
	for _, h := range bd.getHistory() {
		if h.Population() > peak {
			peak = h.Population()
		}
	}
	if peak < 2 {
		return nil
	}

	pop := stats.Population()
	// Only the window that crosses the threshold triggers
	if pop*2 > peak || bd.last().Population()*2 <= peak {
		return nil
	}

	drop := 1.0 - float64(pop)/float64(peak)
	return &Bookmark{
		Type:        BookmarkDieOff,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Population fell %.0f%% from peak %d to %d", drop*100, peak, pop),
	}
}

func (bd *BookmarkDetector) checkEmptyTank(stats WindowStats) *Bookmark {
	if stats.Population() != 0 || bd.last().Population() == 0 {
		return nil
	}
	return &Bookmark{
		Type:        BookmarkEmptyTank,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Tank empty after %d deaths this window", stats.Deaths()),
	}
}

func (bd *BookmarkDetector) checkCollisionStorm(stats WindowStats) *Bookmark {
	if stats.RelocationFailures < bd.stormThreshold {
		return nil
	}
	return &Bookmark{
		Type:        BookmarkCollisionStorm,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("%d relocations failed out of %d collisions", stats.RelocationFailures, stats.Collisions),
	}
}
