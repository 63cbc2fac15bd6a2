package constants

const (
	// DefaultSampleInterval is the time between two recorded samples, in seconds.
	DefaultSampleInterval = 0.01
	// DefaultReplayWindow is the lookback of the replayed path, in seconds.
	// Zero or less replays everything up to the current time.
	DefaultReplayWindow = 1.0

	// SessionFileLayout names session files after their activation time.
	SessionFileLayout = "2006.01.02-15.04.05"
)
