package defaults

// Control files inside a cpufreq control directory.
const (
	AvailableFrequenciesFile = "scaling_available_frequencies"
	AvailableGovernorsFile   = "scaling_available_governors"
	GovernorFile             = "scaling_governor"
	MinFrequencyFile         = "scaling_min_freq"
	MaxFrequencyFile         = "scaling_max_freq"
)

// ControlDirectoryPattern matches the logical per-core control directories.
// Several cores usually link to the same policy directory.
const ControlDirectoryPattern = "/sys/devices/system/cpu/cpu*/cpufreq"

// ProbeFiles is the write test performed during discovery.
var ProbeFiles = []string{MinFrequencyFile}

// ProbeAllFiles covers every file a generated config writes to.
var ProbeAllFiles = []string{MinFrequencyFile, MaxFrequencyFile, GovernorFile}

const (
	// ConfigHeader is the first line of a generated governor config.
	ConfigHeader = "# Automatically generated MCE CPU scaling config file"

	// SectionPrefix is prepended to scenario names to form section names.
	SectionPrefix = "CPUScalingGovernor"
)

// MaxControlFileSize bounds reads of sysfs attribute files (one page).
const MaxControlFileSize = 4096
