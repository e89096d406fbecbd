// MIT License
//
// Copyright 2021 Spatium Labs
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to
// deal in the Software without restriction, including without limitation the
// rights to use, copy, modify, merge, publish, distribute, sublicense, and/or
// sell copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS
// IN THE SOFTWARE.

package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/posener/complete"
	"github.com/spf13/cobra"
	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/Spatium-Labs/desod/deso"
	_log "github.com/Spatium-Labs/desod/log"
	"github.com/Spatium-Labs/desod/srv"
)

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if Complete() {
		// Invoked by the shell for completion.
		return
	}
	if err := rootCmd.Execute(); err != nil {
		errLog.Error(err)
		os.Exit(1)
	}
}

var (
	cfgFile     string
	DesodClient = srv.NewClient()
	NodeClient  = deso.NewClient(deso.MainNode)
	Debug       bool

	publicKey        string
	derivedPublicKey string
	seedHex          string

	errLog = _log.New("deso-cli")
	vrbLog = _log.Discard()
)

func init() {
	cobra.OnInitialize(initConfig, initClients)
}

// initClients sets the same timeout and debug settings for all Clients.
func initClients() {
	if Debug {
		_log.LogDebug = true
		vrbLog = _log.New("deso-cli")
		NodeClient.Log = _log.New("deso")
	}
	DesodClient.DebugRequest = Debug
	NodeClient.DebugRequest = Debug
	NodeClient.Timeout = DesodClient.Timeout
}

var apiFlags = func() *flag.FlagSet {
	flags := flag.NewFlagSet("", flag.ContinueOnError)
	flags.ParseErrorsWhitelist.UnknownFlags = true
	flags.VarP(&NodeClient.Node, "node", "n",
		`DeSo node: "main", "test" or scheme://host:port`)
	flags.StringVarP(&DesodClient.DesodServer, "desod", "d", srv.DesodDefault,
		"scheme://host:port for desod")
	flags.DurationVar(&DesodClient.Timeout, "timeout", 3*time.Minute,
		"Timeout for all API requests (i.e. 10s, 1m)")
	flags.BoolVar(&Debug, "debug", false, "Print all API requests and responses")
	return flags
}()

var accountFlags = func() *flag.FlagSet {
	flags := flag.NewFlagSet("", flag.ContinueOnError)
	flags.StringVarP(&publicKey, "public-key", "k", "",
		"Base58 public key of the posting account")
	flags.StringVar(&derivedPublicKey, "derived-public-key", "",
		"Derived public key, if the seed hex is a derived private key")
	flags.StringVar(&seedHex, "seed-hex", "",
		"Seed hex, prefer DESO_SEED_HEX or the prompt")
	return flags
}()

// rootCmd represents the base command when called without any subcommands
var rootCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deso-cli",
		Short: "DeSo posting CLI",
		Long: `deso-cli creates, updates and reads posts on the DeSo blockchain.

Transactions are built by a DeSo node, signed locally with your seed hex and
submitted back to the node, or relayed through a running desod.

Account Settings

Posting requires --public-key and a seed hex. The seed hex is read from
--seed-hex, the DESO_SEED_HEX environment variable, a .env file in the working
directory, or a terminal prompt, in that order. If the seed hex is a derived
private key, --derived-public-key must also be set.

Config File

Any flag may also be set in ~/.deso-cli.yaml, or with the environment variable
DESO_<FLAG>, e.g. DESO_PUBLIC_KEY.

API Settings

Use --node to choose the DeSo node, which defaults to https://node.deso.org.
If --desod is set on the command line or in the config, post, comment and
update are relayed through desod and signed by its account instead.`,
		Args:          cobra.ExactArgs(0),
		PreRunE:       validateRunCompletionFlags,
		Run:           runCompletion,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().AddFlagSet(installCompletionFlags)
	flags := cmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "",
		"config file (default is $HOME/.deso-cli.yaml)")
	// API Flags
	flags.AddFlagSet(apiFlags)
	// Account Flags
	flags.AddFlagSet(accountFlags)

	generateCmplFlags(cmd, rootCmplCmd.Flags)
	return cmd
}()

var rootCmplCmd = complete.Command{
	Flags: mergeFlags(apiCmplFlags),
	Sub:   complete.Commands{"help": complete.Command{Sub: complete.Commands{}}},
}
var apiCmplFlags = complete.Flags{
	"--help":   complete.PredictNothing,
	"--node":   complete.PredictSet("main", "test"),
	"-n":       complete.PredictSet("main", "test"),
	"--config": complete.PredictFiles("*.yaml"),
}

func validateRunCompletionFlags(cmd *cobra.Command, _ []string) error {
	// Ensure that the install completion flags are not ever used with any
	// other flags.
	flags := cmd.Flags()
	installMode := false
	otherFlags := false
	flags.Visit(func(flg *flag.Flag) {
		switch flg.Name {
		case "install", "uninstall", "yes":
			installMode = true
		default:
			otherFlags = true
		}
	})
	if installMode && otherFlags {
		return fmt.Errorf(
			"--install and --uninstall may not be used with any other flags")
	}
	if installCompletion && uninstallCompletion {
		return fmt.Errorf("--install and --uninstall are mutually exclusive")
	}
	return nil
}

func runCompletion(cmd *cobra.Command, _ []string) {
	// installCompletionMode() returns true if it attempts to install
	// completion, otherwise just output the help page.
	if !installCompletionMode() {
		cmd.Help()
	}
}

// useDesod reports whether posts should be relayed through desod.
func useDesod(cmd *cobra.Command) bool {
	return cmd.Flags().Changed("desod") || viper.IsSet("desod")
}

// initConfig reads in .env, the config file and DESO_* environment
// variables, and applies them to any flags not set on the command line.
func initConfig() {
	// A missing .env file is not an error.
	godotenv.Load()

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			errLog.Fatal(err)
		}

		// Search config in home directory with name ".deso-cli" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".deso-cli")
	}

	viper.SetEnvPrefix("DESO")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		vrbLog.Debugf("Using config file: %v", viper.ConfigFileUsed())
	}

	if err := applyConfig(rootCmd.PersistentFlags()); err != nil {
		errLog.Fatal(err)
	}
}

// applyConfig sets every flag in flags that was not set on the command line
// from viper.
func applyConfig(flags *flag.FlagSet) error {
	var err error
	flags.VisitAll(func(flg *flag.Flag) {
		if err != nil || flg.Changed || flg.Name == "config" {
			return
		}
		if !viper.IsSet(flg.Name) {
			return
		}
		if e := flg.Value.Set(viper.GetString(flg.Name)); e != nil {
			err = fmt.Errorf("config %v: %v", flg.Name, e)
		}
	})
	return err
}
