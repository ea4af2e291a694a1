package recorder

import "time"

// Tick holds one successful poll result attributed to a session.
type Tick struct {
	SessionID string
	Symbol    string
	Price     float64
	PrevClose float64
	Timestamp time.Time
}

// Recorder persists ticks for later inspection.
type Recorder interface {
	RecordTick(*Tick) error
	Close() error
}
