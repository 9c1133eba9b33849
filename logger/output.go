package logger

// Output controls what categories of information the CLI prints at each
// verbosity level. Log levels filter by severity; output categories filter by
// kind of information.
//
//	0 (default) - results, class failures, doc warnings, final status
//	1 (-v)      - + every written unit, watch progress
//	2 (-vv)     - + timing, configuration sources
//	3 (-vvv)    - + per-method shape decisions

// OutputCategory defines a category of output that can be enabled/disabled
type OutputCategory int

const (
	OutputResults OutputCategory = iota // Generated text and command output
	OutputErrors                        // Class failures with their kind
	OutputWarnings                      // Documentation warnings

	OutputUnits    // One line per written unit
	OutputProgress // Watch mode regeneration notices

	OutputTiming // Per-run and per-class durations
	OutputConfig // Config files and values applied

	OutputShapes // Shape chosen for each method
)

var categoryLevels = map[OutputCategory]int{
	OutputResults:  VerbosityUser,
	OutputErrors:   VerbosityUser,
	OutputWarnings: VerbosityUser,

	OutputUnits:    VerbosityInfo,
	OutputProgress: VerbosityInfo,

	OutputTiming: VerbosityDebug,
	OutputConfig: VerbosityDebug,

	OutputShapes: VerbosityTrace,
}

// ShouldOutput returns true if the given category should be shown at the given verbosity
func ShouldOutput(verbosity int, category OutputCategory) bool {
	minLevel, ok := categoryLevels[category]
	if !ok {
		return verbosity >= VerbosityTrace
	}
	return verbosity >= minLevel
}

var categoryNames = map[OutputCategory]string{
	OutputResults:  "results",
	OutputErrors:   "errors",
	OutputWarnings: "warnings",
	OutputUnits:    "units",
	OutputProgress: "progress",
	OutputTiming:   "timing",
	OutputConfig:   "config",
	OutputShapes:   "shapes",
}

// CategoryName returns the human-readable name for an output category
func CategoryName(category OutputCategory) string {
	if name, ok := categoryNames[category]; ok {
		return name
	}
	return "unknown"
}

// VerbosityDescription returns a description of what's shown at each level
func VerbosityDescription(verbosity int) string {
	switch {
	case verbosity <= VerbosityUser:
		return "results, failures and warnings"
	case verbosity == VerbosityInfo:
		return "above + written units and watch progress"
	case verbosity == VerbosityDebug:
		return "above + timing and configuration"
	default:
		return "above + per-method shape decisions"
	}
}
