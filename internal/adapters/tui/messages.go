package tui

import "github.com/vito/progrock"

// MsgStart announces how many packages the scan will process.
type MsgStart struct {
	Packages int
}

// MsgFiles carries the running count of processed files.
type MsgFiles struct {
	Count int64
}

// MsgTapeUpdate carries vertex updates recorded by the progress reporter.
type MsgTapeUpdate struct {
	Update *progrock.StatusUpdate
}
