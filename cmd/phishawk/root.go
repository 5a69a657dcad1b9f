package main

import (
	"github.com/mikey/phishawk/internal/di"
	"github.com/spf13/cobra"
	"go.uber.org/dig"
)

// NewRootCommand builds the phishawk command tree
func NewRootCommand() *cobra.Command {
	flags := &di.CLIFlags{}

	rootCmd := &cobra.Command{
		Use:   "phishawk",
		Short: "Phishing check for the open webmail message",
		Long: `PhisHawk reads the message open in a webmail page, sends it to the
classification backend and shows the risk verdict.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.ConfigFile, "config", "", "Path to config file")
	pf.StringVar(&flags.Page, "page", "", "Saved webmail page to read the message from")
	pf.StringVar(&flags.URL, "url", "", "Fetch the webmail page from this URL instead")
	pf.StringVar(&flags.Location, "location", "", "Address the saved page was opened at")
	pf.StringVar(&flags.Target, "target", "", "Relay target name of the page")
	pf.StringVar(&flags.Endpoint, "endpoint", "", "Classification endpoint")
	pf.StringVar(&flags.Timeout, "timeout", "", "Classification request timeout, e.g. 30s")
	pf.BoolVarP(&flags.Verbose, "verbose", "v", false, "Enable verbose logging")
	pf.BoolVar(&flags.JSONLog, "json-log", false, "Output logs in JSON format")
	pf.StringVar(&flags.LogFile, "log-file", "", "Write logs to this file instead of stderr")

	build := func(interactive bool) (*dig.Container, error) {
		flags.Interactive = interactive
		return di.BuildCLIContainer(flags)
	}

	rootCmd.AddCommand(NewAnalyzeCommand(build))
	rootCmd.AddCommand(NewPanelCommand(build))
	rootCmd.AddCommand(NewExtractCommand(build))

	return rootCmd
}

// containerBuilder defers building the container until flags are parsed.
// interactive marks commands that take over the terminal.
type containerBuilder func(interactive bool) (*dig.Container, error)
