package cmd

import (
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
)

var RootCmd = &cobra.Command{
	Use:   "mesa",
	Short: "cycle-adaptive technical indicators",
	Long:  "mesa computes Hilbert-transform cycle indicators (dominant cycle period, sine wave, MAMA/FAMA) and the parabolic SAR over OHLC bar files",

	// SilenceUsage is an option to silence usage when an error occurs.
	SilenceUsage: true,

	RunE: func(cmd *cobra.Command, args []string) error {
		return nil
	},
}

func init() {
	RootCmd.PersistentFlags().Bool("debug", false, "debug flag")

	RootCmd.PersistentFlags().Float64("fast-limit", 0.5, "MAMA fast limit")
	RootCmd.PersistentFlags().Float64("slow-limit", 0.05, "MAMA slow limit")
	RootCmd.PersistentFlags().Float64("min-period", 6, "dominant cycle lower bound in bars")
	RootCmd.PersistentFlags().Float64("max-period", 50, "dominant cycle upper bound in bars")
	RootCmd.PersistentFlags().Float64("sar-af", 0.02, "SAR acceleration factor")
	RootCmd.PersistentFlags().Float64("sar-af-max", 0.20, "SAR max acceleration factor")
}

func Execute() {
	viper.SetEnvPrefix("MESA")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	// Enable environment variable binding, flags win over env vars.
	viper.AutomaticEnv()

	if err := viper.BindPFlags(RootCmd.PersistentFlags()); err != nil {
		log.WithError(err).Errorf("failed to bind persistent flags. please check the flag settings.")
	}

	log.SetFormatter(&prefixed.TextFormatter{})

	logger := log.StandardLogger()
	if viper.GetBool("debug") {
		logger.SetLevel(log.DebugLevel)
	}

	if err := RootCmd.Execute(); err != nil {
		log.WithError(err).Fatalf("cannot execute command")
	}
}
