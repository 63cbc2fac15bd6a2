package constants

const (
	// CSVHeader is the first line of every session file.
	CSVHeader = "X,Y,Z,time,date,actor name"

	// DataSubdir is where session files live, relative to the game directory.
	DataSubdir = "Data/MovementTracker"

	FileExtension = ".csv"
	FilePattern   = "*" + FileExtension

	// HeatGridFile is the heat grid export; the heat grid never reads it back.
	HeatGridFile = "heatgrid.csv"
)

// Debug drawing.
const (
	PointSize     = 20.0
	LineThickness = 5.0
)
