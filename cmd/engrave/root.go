package main

import (
	"os"
	"strings"

	"github.com/npillmayer/engrave/core"
	"github.com/npillmayer/engrave/core/font"
	"github.com/npillmayer/engrave/core/locate/resources"
	"github.com/npillmayer/engrave/core/parameters"
	"github.com/npillmayer/engrave/engine/layout"
	"github.com/npillmayer/engrave/engine/score"
	"github.com/npillmayer/engrave/input/scoreyaml"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/schukonf/viperadapter"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/logrusadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type rootOpts struct {
	cfgFile   string
	styleFile string
	fontFile  string
	traceLvl  string
}

var rootOpt rootOpts

var rootCmd = &cobra.Command{
	Use:           "engrave",
	Short:         "Lay out score fixtures and draw their spanning elements",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. It is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		core.Report(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&rootOpt.cfgFile, "config", "", "configuration file with engrave.<parameter> keys")
	rootCmd.PersistentFlags().StringVar(&rootOpt.styleFile, "style", "", "style sheet of engraving parameters (YAML)")
	rootCmd.PersistentFlags().StringVar(&rootOpt.fontFile, "font", "", "SMuFL font, by file path or installed font name")
	rootCmd.PersistentFlags().StringVar(&rootOpt.traceLvl, "trace", "Error", "trace level [Debug|Info|Error]")
	rootCmd.AddCommand(newLayoutCmd(), newRenderCmd(), newDotCmd())
}

// initConfig reads the configuration file and environment variables.
func initConfig() {
	logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	if rootOpt.cfgFile != "" {
		viper.SetConfigFile(rootOpt.cfgFile)
	}
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	for p := parameters.P_UNIT; p < parameters.P_STOPPER; p++ {
		// ENGRAVE_UNIT etc.; bound keys are visible to AllKeys
		_ = viper.BindEnv(parameters.ConfigPrefix + p.String())
	}
	if rootOpt.cfgFile != "" {
		if err := viper.ReadInConfig(); err != nil {
			pterm.Error.Printf("cannot read configuration: %v\n", err)
		}
	}
	if err := setupTracing(testconfig.Conf{}, rootOpt.traceLvl); err != nil {
		pterm.Error.Printf("cannot configure tracing: %v\n", err)
	}
}

var traceKeys = []string{
	"engrave.cli", "engrave.core", "engrave.font", "engrave.functor", "engrave.gfx",
	"engrave.layout", "engrave.resources", "engrave.score", "engrave.scoreyaml", "engrave.view",
}

// setupTracing routes all tracers to logrus.
func setupTracing(conf testconfig.Conf, level string) error {
	tracing.RegisterTraceAdapter("logrus", logrusadapter.GetAdapter(), false)
	conf["tracing.adapter"] = "logrus"
	for _, key := range traceKeys {
		conf["trace."+key] = level
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		return err
	}
	tracing.SetTraceSelector(trace2go.Selector())
	return nil
}

// engraving sets up parameters and metrics from the command line options.
// If the music font cannot be resolved, the built-in metrics are returned
// together with the resolver's error.
func engraving() (*parameters.Registers, font.Metrics, error) {
	params := parameters.FromConfiguration(viperadapter.New("engrave"))
	if rootOpt.styleFile != "" {
		f, err := os.Open(rootOpt.styleFile)
		if err != nil {
			return nil, nil, err
		}
		defer f.Close()
		if params, err = parameters.LoadYAML(f); err != nil {
			return nil, nil, err
		}
	}
	units := font.UnitsFromParameters(params)
	if rootOpt.fontFile == "" {
		return params, font.NewStaticMetrics(units), nil
	}
	metrics, err := resources.ResolveMusicFont(font.GlobalRegistry(), rootOpt.fontFile, units).Metrics()
	return params, metrics, err
}

// laidOut loads a fixture and runs the layout passes on it. Layout
// advisories are reported, not returned.
func laidOut(fixture string) (*score.Document, *parameters.Registers, font.Metrics, error) {
	params, metrics, err := engraving()
	if metrics == nil {
		return nil, nil, nil, err
	}
	if err != nil {
		reportAdvisories("font", err)
	}
	doc, err := scoreyaml.LoadFile(fixture)
	if doc == nil {
		return nil, nil, nil, err
	}
	if err != nil {
		reportAdvisories("fixture", err)
	}
	engine := layout.New(doc, metrics, params)
	reportAdvisories("layout", engine.Run())
	return doc, params, metrics, nil
}
