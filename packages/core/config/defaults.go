package config

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Reporters:   []string{"console"},
		OutputDir:   "",
		HistoryPath: "",
		NameFilter:  "",
		Parallel:    BoolPtr(false),
		Concurrency: 5,
		Bail:        BoolPtr(false),
		Verbose:     BoolPtr(false),
		NoColor:     BoolPtr(false),
	}
}
