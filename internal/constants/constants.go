package constants

import "time"

const (
	RunTimeout      = 30 * time.Second
	DecodeTimeout   = 10 * time.Second
	ShutdownTimeout = 5 * time.Second
)

const (
	DefaultWorkers = 8
	BatchSize      = 100
)

const (
	ReportIDLength = 12
)
