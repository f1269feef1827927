package core

import (
	"strconv"
	"sync"
)

// DebugWriter is a function type for writing debug messages
type DebugWriter func(string)

// Event captures a gesture engine event for post-mortem analysis
type Event struct {
	Type   uint8  // Event type code
	Device uint8  // Device index (one per session)
	Seq    uint32 // Monotonic event sequence number
	Value1 uint32 // Context-dependent value
	Value2 uint32 // Context-dependent value
}

// Event type codes
const (
	EvtSessionStart = 1 // session entered POLLING
	EvtBatch        = 2 // batch consumed (v1=samples, v2=total)
	EvtFlag         = 3 // direction flag promoted (v1=flags, v2=record index)
	EvtCeiling      = 4 // sample ceiling reached, batch dropped
	EvtFault        = 5 // sample source fault
	EvtDecode       = 6 // session decoded (v1=flags, v2=total)
	EvtDeadline     = 7 // session deadline passed
)

const (
	EventRingSize = 32 // Keep last 32 events for post-mortem
)

var (
	// debugPrintln is the global debug print function (can be set by platform code)
	debugPrintln DebugWriter = func(s string) {} // No-op by default

	// debugEnabled controls whether debug output is active
	debugEnabled bool = false

	eventMu       sync.Mutex
	eventRing     [EventRingSize]Event
	eventRingHead uint8
	eventSeq      uint32
)

// SetDebugWriter sets the platform-specific debug output function
// This allows platforms to redirect debug output to UART, USB, slog, etc.
func SetDebugWriter(writer DebugWriter) {
	debugPrintln = writer
}

// SetDebugEnabled enables or disables debug output
func SetDebugEnabled(enabled bool) {
	debugEnabled = enabled
}

// IsDebugEnabled returns whether debug output is enabled
func IsDebugEnabled() bool {
	return debugEnabled
}

// DebugPrintln writes a debug message using the platform-specific writer
func DebugPrintln(msg string) {
	if debugEnabled && debugPrintln != nil {
		debugPrintln(msg)
	}
}

// RecordEvent captures an event in the ring buffer.
// Always on and allocation free.
func RecordEvent(eventType, device uint8, value1, value2 uint32) {
	eventMu.Lock()
	defer eventMu.Unlock()

	eventSeq++
	idx := eventRingHead
	eventRing[idx] = Event{
		Type:   eventType,
		Device: device,
		Seq:    eventSeq,
		Value1: value1,
		Value2: value2,
	}
	eventRingHead = (idx + 1) % EventRingSize
}

// Events returns the recorded events from oldest to newest.
func Events() []Event {
	eventMu.Lock()
	defer eventMu.Unlock()

	out := make([]Event, 0, EventRingSize)
	start := eventRingHead
	for i := uint8(0); i < EventRingSize; i++ {
		evt := eventRing[(start+i)%EventRingSize]
		if evt.Type == 0 {
			continue // Empty slot
		}
		out = append(out, evt)
	}
	return out
}

// EventName returns the short tag used in dumps.
func EventName(eventType uint8) string {
	switch eventType {
	case EvtSessionStart:
		return "SESSION"
	case EvtBatch:
		return "BATCH"
	case EvtFlag:
		return "FLAG"
	case EvtCeiling:
		return "CEILING"
	case EvtFault:
		return "FAULT!"
	case EvtDecode:
		return "DECODE"
	case EvtDeadline:
		return "DEADLINE!"
	default:
		return "UNKNOWN"
	}
}

// DumpEvents outputs the event ring through the debug writer.
// Intended for shutdown or after a fault; it ignores SetDebugEnabled.
func DumpEvents() {
	if debugPrintln == nil {
		return
	}

	debugPrintln("[EVENTS] === Event Ring Dump ===")
	for _, evt := range Events() {
		debugPrintln("[EVENTS] " + EventName(evt.Type) +
			" dev=" + strconv.Itoa(int(evt.Device)) +
			" seq=" + strconv.FormatUint(uint64(evt.Seq), 10) +
			" v1=" + strconv.FormatUint(uint64(evt.Value1), 10) +
			" v2=" + strconv.FormatUint(uint64(evt.Value2), 10))
	}
	debugPrintln("[EVENTS] === End Dump ===")
}

// ClearEvents clears the event buffer
func ClearEvents() {
	eventMu.Lock()
	defer eventMu.Unlock()

	for i := range eventRing {
		eventRing[i] = Event{}
	}
	eventRingHead = 0
	eventSeq = 0
}
