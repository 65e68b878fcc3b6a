package main

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"code.cryptopower.dev/group/walletdisplay/libwallet/utils"
	"code.cryptopower.dev/group/walletdisplay/ui/values"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/jessevdk/go-flags"
)

const (
	defaultConfigFilename = "walletdisplay.conf"
	defaultLogDirname     = "logs"
	defaultMaxLogZips     = 3
	defaultNetwork        = "mainnet"
	defaultWidth          = 60
)

var (
	defaultHomeDir    = btcutil.AppDataDir("walletdisplay", false)
	defaultConfigFile = filepath.Join(defaultHomeDir, defaultConfigFilename)
	defaultLogDir     = filepath.Join(defaultHomeDir, defaultLogDirname)
)

// config defines the configuration options. Options left empty that are also
// display preferences fall back to the values saved by a previous run.
type config struct {
	ConfigFile string `short:"C" long:"configfile" description:"Path to configuration file"`
	HomeDir    string `short:"A" long:"appdata" description:"Path to application home directory"`
	LogDir     string `long:"logdir" description:"Directory to log output."`
	MaxLogZips int    `long:"maxlogzips" description:"The number of zipped log files created by the log rotator to be retained. Setting to 0 will keep all."`
	DebugLevel string `short:"d" long:"debuglevel" description:"Logging level {trace, debug, info, warn, error, critical} or SUBSYS=level pairs"`
	Network    string `long:"network" description:"Network to use {mainnet, testnet, simnet, regnet}"`

	RateSource string `long:"ratesource" description:"Exchange rates source {binance, kucoin, none}"`
	Currency   string `long:"currency" description:"Currency counter-values are shown in, by id or ticker"`
	Locale     string `long:"locale" description:"Language of labels and number format, e.g. en, fr or de"`
	FeesURL    string `long:"feesurl" description:"Page opened by the info link of fee rows"`
	Offline    bool   `long:"offline" description:"Serve saved rates only and never fetch rates or fee estimates"`
	Accounts   string `long:"accounts" description:"Accounts JSON file, defaults to accounts.json in the network data directory"`
	Width      int    `long:"width" description:"Width of rendered rows in terminal cells"`

	// command is the sub-command picked on the command line and
	// commandArgs what is left after it.
	command     appCommand
	commandArgs []string
}

func defaultConfig() config {
	return config{
		ConfigFile: defaultConfigFile,
		HomeDir:    defaultHomeDir,
		LogDir:     defaultLogDir,
		MaxLogZips: defaultMaxLogZips,
		Network:    defaultNetwork,
		Width:      defaultWidth,
	}
}

// cleanAndExpandPath expands environment variables and leading ~ in the
// passed path, cleans the result, and returns it.
func cleanAndExpandPath(path string) string {
	if path == "" {
		return ""
	}

	// Expand initial ~ to OS specific home directory.
	if strings.HasPrefix(path, "~") {
		var homeDir string
		u, err := user.Current()
		if err == nil {
			homeDir = u.HomeDir
		} else {
			homeDir = os.Getenv("HOME")
		}

		path = strings.Replace(path, "~", homeDir, 1)
	}

	// NOTE: The os.ExpandEnv doesn't work with Windows-style %VARIABLE%,
	// but the variables can still be expanded via POSIX-style $VARIABLE.
	return filepath.Clean(os.ExpandEnv(path))
}

func fileExists(name string) bool {
	_, err := os.Stat(name)
	return err == nil
}

// loadConfig initializes and parses the config using a config file and
// command line options. Command line options take precedence over the config
// file, which takes precedence over the defaults. The sub-command is parsed
// with the options but not executed.
func loadConfig(args []string) (*config, error) {
	// Pre-parse the command line options to see if an alternative config
	// file or home directory was specified. Help is left to the full parser
	// so it lists the commands.
	preCfg := defaultConfig()
	preParser := flags.NewParser(&preCfg, flags.IgnoreUnknown)
	if _, err := preParser.ParseArgs(args); err != nil {
		return nil, err
	}

	cfg := defaultConfig()
	if preCfg.HomeDir != defaultHomeDir {
		cfg.HomeDir = cleanAndExpandPath(preCfg.HomeDir)
		cfg.LogDir = filepath.Join(cfg.HomeDir, defaultLogDirname)
		if preCfg.ConfigFile == defaultConfigFile {
			preCfg.ConfigFile = filepath.Join(cfg.HomeDir, defaultConfigFilename)
		}
	}
	cfg.ConfigFile = cleanAndExpandPath(preCfg.ConfigFile)

	// If a config file exists parse it.
	if fileExists(cfg.ConfigFile) {
		if err := flags.IniParse(cfg.ConfigFile, &cfg); err != nil {
			return nil, fmt.Errorf("error parsing config file: %v", err)
		}
	} else if preCfg.ConfigFile != defaultConfigFile && preCfg.ConfigFile != filepath.Join(cfg.HomeDir, defaultConfigFilename) {
		return nil, fmt.Errorf("config file %s does not exist", cfg.ConfigFile)
	}

	// Finally, parse the remaining command line options again to ensure
	// they take precedence.
	parser := flags.NewParser(&cfg, flags.HelpFlag|flags.PassDoubleDash)
	parser.SubcommandsOptional = true
	if err := addCommands(parser); err != nil {
		return nil, err
	}
	parser.CommandHandler = func(command flags.Commander, _ []string) error {
		if command == nil {
			return nil
		}
		c, ok := command.(appCommand)
		if !ok {
			return fmt.Errorf("unexpected command %T", command)
		}
		cfg.command = c
		return nil
	}
	remaining, err := parser.ParseArgs(args)
	if err != nil {
		return nil, err
	}
	cfg.commandArgs = remaining

	cfg.HomeDir = cleanAndExpandPath(cfg.HomeDir)
	cfg.LogDir = cleanAndExpandPath(cfg.LogDir)
	cfg.Accounts = cleanAndExpandPath(cfg.Accounts)

	if utils.ToNetworkType(cfg.Network) == utils.Unknown {
		return nil, fmt.Errorf("invalid network %q", cfg.Network)
	}
	cfg.Network = string(utils.ToNetworkType(cfg.Network))

	if cfg.RateSource != "" && !isRateSource(cfg.RateSource) {
		return nil, fmt.Errorf("invalid rate source %q -- supported sources %v", cfg.RateSource, values.RateSources)
	}
	if cfg.MaxLogZips < 0 {
		return nil, fmt.Errorf("maxlogzips must not be negative")
	}
	if cfg.Width <= 0 {
		cfg.Width = defaultWidth
	}

	return &cfg, nil
}

func isRateSource(source string) bool {
	for _, s := range values.RateSources {
		if s == source {
			return true
		}
	}
	return false
}
