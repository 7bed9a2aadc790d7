package cli

import (
	"go_5_wobushizi/internal/config"
	"go_5_wobushizi/internal/middleware"

	"github.com/spf13/cobra"
)

// GlobalOptions はすべてのサブコマンドで使う
type GlobalOptions struct {
	DataDir  string
	Dataset  string
	Device   string
	LogLevel string
}

func AddGlobalArgs(cmd *cobra.Command, o *GlobalOptions) {
	cmd.PersistentFlags().StringVar(&o.DataDir, "data-dir", config.DefaultLocalDataDir,
		"Directory of the local character store.")
	cmd.PersistentFlags().StringVar(&o.Dataset, "dataset", config.DefaultDatasetJSONPath,
		"Path to the character dataset JSON.")
	cmd.PersistentFlags().StringVar(&o.Device, "device", middleware.DefaultDeviceID,
		"Local namespace to read and write (lowercase letters, digits and hyphens, or a UUID).")
	cmd.PersistentFlags().StringVar(&o.LogLevel, "log-level", "warn",
		"Log level (debug, info, warn, error).")
}

// LogOptions は log コマンド用
type LogOptions struct {
	Study string
	HTML  bool
}

func AddLogArgs(cmd *cobra.Command, o *LogOptions) {
	cmd.Flags().StringVarP(&o.Study, "study", "s", "",
		"Characters to queue for study instead of logging as known.")
	cmd.Flags().BoolVar(&o.HTML, "html", false,
		"Treat the input as an HTML page and extract the article text.")
}

// ResetOptions は reset コマンド用
type ResetOptions struct {
	Yes bool
}

func AddResetArgs(cmd *cobra.Command, o *ResetOptions) {
	cmd.Flags().BoolVarP(&o.Yes, "yes", "y", false,
		"Skip the confirmation prompt.")
}

// HistoryOptions は history コマンド用
type HistoryOptions struct {
	Limit int
}

func AddHistoryArgs(cmd *cobra.Command, o *HistoryOptions) {
	cmd.Flags().IntVarP(&o.Limit, "limit", "n", 20,
		"Number of events to show.")
}

// ConvertOptions は convert コマンド用
type ConvertOptions struct {
	Input      string
	OutputJSON string
	OutputCSV  string
}

func AddConvertArgs(cmd *cobra.Command, o *ConvertOptions) {
	cmd.Flags().StringVarP(&o.Input, "input", "i", "",
		"Source hanzidb CSV.")
	cmd.Flags().StringVar(&o.OutputJSON, "output-json", "",
		"Where to write the dataset JSON.")
	cmd.Flags().StringVar(&o.OutputCSV, "output-csv", "",
		"Where to write the enhanced CSV (optional).")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("output-json")
}
