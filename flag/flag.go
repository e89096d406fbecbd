// Package flag parses desod's command line flags, falling back to DESOD_*
// environment variables, which may be set in a .env file.
package flag

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/posener/complete"

	"github.com/Spatium-Labs/desod/deso"
	_log "github.com/Spatium-Labs/desod/log"
)

const envNamePrefix = "DESOD_"

var (
	envNames = map[string]string{
		"debug": "DEBUG",

		"dbpath": "DB_PATH",

		"apiaddress": "API_ADDRESS",

		"node":            "NODE",
		"nodetimeout":     "NODE_TIMEOUT",
		"submitattempts":  "SUBMIT_ATTEMPTS",
		"confirmattempts": "CONFIRM_ATTEMPTS",
		"maxbackoff":      "MAX_BACKOFF",

		"publickey":        "PUBLIC_KEY",
		"derivedpublickey": "DERIVED_PUBLIC_KEY",
		"seedhex":          "SEED_HEX",
	}
	defaults = map[string]interface{}{
		"debug": false,

		"dbpath": "./desod.db",

		"apiaddress": ":8078",

		"nodetimeout":     deso.DefaultTimeout,
		"submitattempts":  uint64(deso.DefaultSubmitBackoff.Attempts),
		"confirmattempts": uint64(deso.DefaultConfirmBackoff.Attempts),
		"maxbackoff":      deso.DefaultSubmitBackoff.Max,

		"publickey":        "",
		"derivedpublickey": "",
		"seedhex":          "",
	}
	descriptions = map[string]string{
		"debug": "Log debug messages",

		"dbpath": "Path to the folder containing the journal database",

		"apiaddress": "IPAddr:port# to bind to for serving the JSON RPC 2.0 API",

		"node":            `DeSo node to use: "main", "test" or scheme://host:port`,
		"nodetimeout":     "Timeout for DeSo node API requests, 0 means never timeout",
		"submitattempts":  "Number of attempts to submit a signed transaction",
		"confirmattempts": "Number of times to poll for a submitted transaction",
		"maxbackoff":      "Maximum delay between submit attempts and polls, 0 means no maximum",

		"publickey":        "Public key of the account that desod posts as",
		"derivedpublickey": "Derived public key, required if -seedhex is a derived private key",
		"seedhex":          "Seed hex or derived private key, prefer the environment variable",
	}
	flags = complete.Flags{
		"-debug": complete.PredictNothing,

		"-dbpath": complete.PredictDirs("*"),

		"-apiaddress": complete.PredictAnything,

		"-node":            complete.PredictSet("main", "test"),
		"-nodetimeout":     complete.PredictAnything,
		"-submitattempts":  complete.PredictAnything,
		"-confirmattempts": complete.PredictAnything,
		"-maxbackoff":      complete.PredictAnything,

		"-publickey":        complete.PredictAnything,
		"-derivedpublickey": complete.PredictAnything,
		"-seedhex":          complete.PredictNothing,

		"-y":                   complete.PredictNothing,
		"-installcompletion":   complete.PredictNothing,
		"-uninstallcompletion": complete.PredictNothing,
	}

	// Revision is set at build time with -ldflags.
	Revision = "development"

	LogDebug bool

	DBPath string

	APIAddress string

	Node            = deso.MainNode
	NodeTimeout     time.Duration
	submitAttempts  uint64
	confirmAttempts uint64
	MaxBackoff      time.Duration

	PublicKey        string
	DerivedPublicKey string
	seedHex          string

	flagset    map[string]bool
	log        _log.Log
	Completion *complete.Complete
)

func init() {
	flagVar(&LogDebug, "debug")

	flagVar(&DBPath, "dbpath")

	flagVar(&APIAddress, "apiaddress")

	flagVar(&Node, "node")
	flagVar(&NodeTimeout, "nodetimeout")
	flagVar(&submitAttempts, "submitattempts")
	flagVar(&confirmAttempts, "confirmattempts")
	flagVar(&MaxBackoff, "maxbackoff")

	flagVar(&PublicKey, "publickey")
	flagVar(&DerivedPublicKey, "derivedpublickey")
	flagVar(&seedHex, "seedhex")

	// Add flags for self installing the CLI completion tool
	Completion = complete.New(os.Args[0], complete.Command{Flags: flags})
	Completion.CLI.InstallName = "installcompletion"
	Completion.CLI.UninstallName = "uninstallcompletion"
	Completion.AddFlags(nil)
}

// Parse parses the command line and then loads unset options from the
// environment. A .env file in the working directory is loaded first, but
// never overrides variables that are already set.
func Parse() {
	flag.Parse()
	flagset = make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { flagset[f.Name] = true })

	godotenv.Load()

	loadFromEnv(&LogDebug, "debug")
	_log.LogDebug = LogDebug
	log = _log.New("flag")

	loadFromEnv(&DBPath, "dbpath")

	loadFromEnv(&APIAddress, "apiaddress")

	loadFromEnv(&Node, "node")
	loadFromEnv(&NodeTimeout, "nodetimeout")
	loadFromEnv(&submitAttempts, "submitattempts")
	loadFromEnv(&confirmAttempts, "confirmattempts")
	loadFromEnv(&MaxBackoff, "maxbackoff")

	loadFromEnv(&PublicKey, "publickey")
	loadFromEnv(&DerivedPublicKey, "derivedpublickey")
	loadFromEnv(&seedHex, "seedhex")
}

// Validate checks the parsed options and logs them at debug level.
func Validate() error {
	// Redact private data from debug output.
	redactedSeedHex := "\"\""
	if len(seedHex) > 0 {
		redactedSeedHex = "<redacted>"
	}

	log.Debugf("-dbpath           %#v", DBPath)
	log.Debugf("-apiaddress       %#v", APIAddress)
	debugPrintln()

	log.Debugf("-node             %v ", Node)
	log.Debugf("-nodetimeout      %v ", NodeTimeout)
	log.Debugf("-submitattempts   %v ", submitAttempts)
	log.Debugf("-confirmattempts  %v ", confirmAttempts)
	log.Debugf("-maxbackoff       %v ", MaxBackoff)
	debugPrintln()

	log.Debugf("-publickey        %#v", PublicKey)
	log.Debugf("-derivedpublickey %#v", DerivedPublicKey)
	log.Debugf("-seedhex          %v ", redactedSeedHex)
	debugPrintln()

	// Validate options
	if submitAttempts == 0 {
		return fmt.Errorf("-submitattempts must be greater than 0")
	}
	if confirmAttempts == 0 {
		return fmt.Errorf("-confirmattempts must be greater than 0")
	}
	if len(PublicKey) == 0 || len(seedHex) == 0 {
		return fmt.Errorf("-publickey and -seedhex are required")
	}
	if _, err := Account(); err != nil {
		return err
	}
	return nil
}

// Account returns the account configured by -publickey, -seedhex and
// -derivedpublickey.
func Account() (deso.Account, error) {
	return deso.NewAccountBuilder().
		PublicKey(PublicKey).
		SeedHex(seedHex).
		DerivedPublicKey(DerivedPublicKey).
		Node(Node).
		Build()
}

// Client returns a deso.Client configured by the node flags.
func Client() *deso.Client {
	c := deso.NewClient(Node)
	c.Timeout = NodeTimeout
	c.DebugRequest = LogDebug
	c.Log = _log.New("deso")
	c.Submit.Attempts = int(submitAttempts)
	c.Submit.Max = MaxBackoff
	c.Confirm.Attempts = int(confirmAttempts)
	c.Confirm.Max = MaxBackoff
	return c
}

func flagVar(v interface{}, name string) {
	dflt := defaults[name]
	desc := description(name)
	switch v := v.(type) {
	case *string:
		flag.StringVar(v, name, dflt.(string), desc)
	case *time.Duration:
		flag.DurationVar(v, name, dflt.(time.Duration), desc)
	case *uint64:
		flag.Uint64Var(v, name, dflt.(uint64), desc)
	case *bool:
		flag.BoolVar(v, name, dflt.(bool), desc)
	case flag.Value:
		flag.Var(v, name, desc)
	}
}

func loadFromEnv(v interface{}, flagName string) {
	if flagset[flagName] {
		return
	}
	eName := envName(flagName)
	eVar, ok := os.LookupEnv(eName)
	if len(eVar) > 0 {
		switch v := v.(type) {
		case *string:
			*v = eVar
		case *time.Duration:
			duration, err := time.ParseDuration(eVar)
			if err != nil {
				log.Fatalf("Environment Variable %v: "+
					"time.ParseDuration(\"%v\"): %v",
					eName, eVar, err)
			}
			*v = duration
		case *uint64:
			val, err := strconv.ParseUint(eVar, 10, 64)
			if err != nil {
				log.Fatalf("Environment Variable %v: "+
					"strconv.ParseUint(\"%v\", 10, 64): %v",
					eName, eVar, err)
			}
			*v = val
		case *bool:
			if ok {
				*v = true
			}
		case flag.Value:
			if err := v.Set(eVar); err != nil {
				log.Fatalf("Environment Variable %v: %v", eName, err)
			}
		}
	}
}

func debugPrintln() {
	if LogDebug {
		fmt.Println()
	}
}

func envName(flagName string) string {
	return envNamePrefix + envNames[flagName]
}
func description(flagName string) string {
	return fmt.Sprintf("%s\nEnvironment variable: %v",
		descriptions[flagName], envName(flagName))
}
