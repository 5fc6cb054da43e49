package ui

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Stats is a point-in-time snapshot of the session counters.
type Stats struct {
	WindowsCreated   int64         `json:"windows_created"`
	WindowsDestroyed int64         `json:"windows_destroyed"`
	EventsProcessed  int64         `json:"events_processed"`
	FramesRendered   int64         `json:"frames_rendered"`
	Uptime           time.Duration `json:"uptime"`
}

// StatisticsManager keeps process-wide counters for one UI session: windows
// created/destroyed, events processed, frames rendered.
type StatisticsManager struct {
	windowsCreated   int64
	windowsDestroyed int64
	eventsProcessed  int64
	framesRendered   int64
	startTime        time.Time
	mu               sync.RWMutex
}

// NewStatisticsManager は新しい StatisticsManager を作成する
func NewStatisticsManager() *StatisticsManager {
	return &StatisticsManager{
		startTime: time.Now(),
	}
}

// WindowCreated increments the windows_created counter.
func (sm *StatisticsManager) WindowCreated() {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.windowsCreated++
}

// WindowDestroyed increments the windows_destroyed counter.
func (sm *StatisticsManager) WindowDestroyed() {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.windowsDestroyed++
}

// EventProcessed increments the events_processed counter.
func (sm *StatisticsManager) EventProcessed() {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.eventsProcessed++
}

// FrameRendered increments the frames_rendered counter.
func (sm *StatisticsManager) FrameRendered() {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.framesRendered++
}

// Snapshot returns a copy of the current counters.
func (sm *StatisticsManager) Snapshot() *Stats {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return &Stats{
		WindowsCreated:   sm.windowsCreated,
		WindowsDestroyed: sm.windowsDestroyed,
		EventsProcessed:  sm.eventsProcessed,
		FramesRendered:   sm.framesRendered,
		Uptime:           time.Since(sm.startTime),
	}
}

// Report returns a multi-line human-readable counter listing.
func (sm *StatisticsManager) Report() string {
	stats := sm.Snapshot()

	var sb strings.Builder
	sb.WriteString("=== Session Statistics ===\n")
	sb.WriteString(fmt.Sprintf("Windows Created:   %d\n", stats.WindowsCreated))
	sb.WriteString(fmt.Sprintf("Windows Destroyed: %d\n", stats.WindowsDestroyed))
	sb.WriteString(fmt.Sprintf("Events Processed:  %d\n", stats.EventsProcessed))
	sb.WriteString(fmt.Sprintf("Frames Rendered:   %d\n", stats.FramesRendered))
	sb.WriteString(fmt.Sprintf("Uptime:            %s\n", stats.Uptime.Round(time.Millisecond)))
	sb.WriteString("==========================\n")
	return sb.String()
}

// Compact はコンパクトな文字列表現を返す
// デバッグオーバーレイ表示用
func (sm *StatisticsManager) Compact() string {
	stats := sm.Snapshot()
	return fmt.Sprintf("win:%d/%d ev:%d frames:%d",
		stats.WindowsCreated, stats.WindowsDestroyed,
		stats.EventsProcessed, stats.FramesRendered)
}

// Reset zeroes every counter and restarts the uptime clock.
func (sm *StatisticsManager) Reset() {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.windowsCreated = 0
	sm.windowsDestroyed = 0
	sm.eventsProcessed = 0
	sm.framesRendered = 0
	sm.startTime = time.Now()
}
