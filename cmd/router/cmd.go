package cmd

import (
	"fmt"
	"os"

	"github.com/NextSpark-js/nextspark-sub000/config"
	"github.com/NextSpark-js/nextspark-sub000/internal"
	"github.com/sirupsen/logrus"

	"github.com/spf13/cobra"
)

var (
	log *logrus.Logger

	cfgFile     string
	showVersion bool
	dumpConfig  bool
)

var cmd = &cobra.Command{
	Use:   "intent-router",
	Short: "intent-router classifies conversational messages into structured intents against a configured tool catalog",
	Run:   func(cmd *cobra.Command, args []string) { run() },
}

var classifyCmd = &cobra.Command{
	Use:     "classify [message]",
	Short:   "Classify a single message and print the result as JSON",
	Example: `intent-router classify "Show me my open tasks"`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return classifyOnce(args[0])
	},
}

var dumpJsonSchemaCmd = &cobra.Command{
	Use:     "json-schema",
	Short:   "Generates JSON Schema for the router's configuration file",
	Example: "intent-router json-schema > router_config_schema.json",
	RunE: func(cmd *cobra.Command, args []string) error {
		schema, err := config.JSONSchema()
		if err != nil {
			return err
		}
		fmt.Println(string(schema))
		return nil
	},
}

func init() {
	cmd.AddCommand(classifyCmd)
	cmd.AddCommand(dumpJsonSchemaCmd)

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default config.yaml)")
	cmd.PersistentFlags().BoolVarP(&showVersion, "version", "v", false, "print version number")
	cmd.PersistentFlags().BoolVarP(&dumpConfig, "dump-config", "d", false, "dump config")
}

// Execute executes the root cobra command.
func Execute() {
	log = internal.GetLogger()
	log.SetLevel(logrus.InfoLevel)

	err := cmd.Execute()

	if err != nil {
		os.Exit(1)
	}
}
