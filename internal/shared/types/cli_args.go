package types

// CLIArgs represents the command-line arguments shared by all subcommands.
type CLIArgs struct {
	ConfigFile      string
	LogLevel        string
	MetricsTextfile string
	NoBanner        bool
}

// RecordArgs represents the arguments of the record-result subcommand.
type RecordArgs struct {
	File       string
	Validation string
	Namespace  string
	Status     string
	Message    string
}

// ReportArgs represents the arguments of the generate-report subcommand.
type ReportArgs struct {
	DumpFile   string
	OutputFile string
	Formats    []string
}
