package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ChristoforosMylona/ham-sandwich-cut/src/backend"
	"github.com/ChristoforosMylona/ham-sandwich-cut/src/config"
	"github.com/ChristoforosMylona/ham-sandwich-cut/src/logging"
)

var flags *pflag.FlagSet

var (
	outFlag    string
	outDirFlag string
	teachFlag  bool
	darkFlag   bool
	redFlag    int
	blueFlag   int
	seedFlag   int64
)

func init() {
	resetFlags()
}

// Explicitly define a method to facilitate tests
func resetFlags() {
	flags = &pflag.FlagSet{}
	config.AttachFlags(flags)

	flags.StringVarP(&outFlag, "output", "o", "", "output file; the extension picks the format")
	flags.StringVar(&outDirFlag, "out-dir", "", "directory for per-step images in teach mode")
	flags.BoolVar(&teachFlag, "teach", false, "render every teach step instead of the final cut")
	flags.BoolVar(&darkFlag, "dark", true, "dark chart palette")
	flags.IntVar(&redFlag, "red", 7, "number of red points")
	flags.IntVar(&blueFlag, "blue", 5, "number of blue points")
	flags.Int64Var(&seedFlag, "seed", 0, "random seed; 0 picks one")
}

var globalFlags = []string{"config", "backend", "algorithm", "timeout", "log-level"}

func attachFlags(cmd *cobra.Command, names []string) {
	cmdFlags := cmd.Flags()
	for _, name := range append(append([]string{}, globalFlags...), names...) {
		if flag := flags.Lookup(name); flag != nil {
			cmdFlags.AddFlag(flag)
		} else {
			panic(fmt.Errorf("could not find flag '%s' to attach to command '%s'", name, cmd.Name()))
		}
	}
}

// loadConfig reads the config file named by --config and applies the
// command's flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path, cmd.Flags())
	if err != nil {
		return nil, err
	}
	logging.SetLogLevel(cfg.LogLevel)
	return cfg, nil
}

func newClient(cfg *config.Config) (*backend.Client, error) {
	alg, err := backend.ParseAlgorithm(cfg.Algorithm)
	if err != nil {
		return nil, err
	}
	return backend.NewClient(cfg.BackendURL, alg, cfg.Timeout), nil
}

func newMainCmd() *cobra.Command {
	mainCmd := &cobra.Command{
		Use:           "hsctl",
		Short:         "ham sandwich cut tools",
		Long:          "Compute, render and generate ham sandwich cut point sets from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	mainCmd.AddCommand(boundsCMD(), cutCMD(), renderCMD(), randomCMD(), sampleCMD())
	return mainCmd
}

func main() {
	if err := newMainCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "hsctl:", err)
		os.Exit(1)
	}
}
