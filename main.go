package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"code.cryptopower.dev/group/walletdisplay/libwallet"
	"code.cryptopower.dev/group/walletdisplay/libwallet/currency"
	"code.cryptopower.dev/group/walletdisplay/libwallet/utils"
	"code.cryptopower.dev/group/walletdisplay/logger"
	"code.cryptopower.dev/group/walletdisplay/ui/load"
	"code.cryptopower.dev/group/walletdisplay/ui/renderers"
	"github.com/jessevdk/go-flags"
	"golang.org/x/text/language"
)

var (
	// Version is the application version. It is set using the -ldflags
	Version = "1.0.0"
	// BuildDate is the date the application was built. It is set using the -ldflags
	BuildDate string
)

const defaultCounterCurrency = "usd"

func main() {
	cfg, err := loadConfig(os.Args[1:])
	if err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			fmt.Println(err)
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %s\n", err.Error())
		os.Exit(1)
	}

	if err := run(cfg, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err.Error())
		os.Exit(1)
	}
}

// run opens the display manager for cfg and executes the command parsed
// with it, writing its rows to out. Command errors are returned translated
// into the display language.
func run(cfg *config, out io.Writer) error {
	cmd := cfg.command
	if cmd == nil {
		if len(cfg.commandArgs) > 0 {
			return fmt.Errorf("unknown command %q, see --help for the commands", cfg.commandArgs[0])
		}
		return errors.New("no command given, see --help for the commands")
	}

	//  Initialize loggers and set log level before the display manager is
	//  initialized.
	netType := utils.ToNetworkType(cfg.Network)
	if err := initLogRotator(filepath.Join(cfg.LogDir, string(netType)), cfg.MaxLogZips); err != nil {
		return err
	}
	defer closeLogRotators()

	debugLevel := cfg.DebugLevel
	if debugLevel == "" {
		debugLevel = utils.DefaultLogLevel
	}
	if err := logger.ParseAndSetDebugLevels(debugLevel); err != nil {
		return err
	}
	log.Infof("walletdisplay version %s %s", Version, BuildDate)

	mgr, err := libwallet.NewDisplayManager(&libwallet.InitParams{
		RootDir:    cfg.HomeDir,
		NetType:    netType,
		RateSource: cfg.RateSource,
		Offline:    cfg.Offline,
	})
	if err != nil {
		return err
	}
	defer mgr.Shutdown()

	// Options passed at the command line are persisted. The saved ones are
	// used otherwise.
	if cfg.DebugLevel != "" {
		mgr.SetLogLevels(cfg.DebugLevel)
	} else if saved := mgr.GetLogLevels(); saved != "" {
		if err := logger.ParseAndSetDebugLevels(saved); err != nil {
			log.Warnf("ignoring saved log level: %v", err)
		}
	}
	if cfg.RateSource != "" {
		mgr.SetCurrencyConversionExchange(cfg.RateSource)
	}

	l, err := newLoad(cfg, mgr)
	if err != nil {
		return err
	}

	cmd.setApp(&app{
		cfg:  cfg,
		mgr:  mgr,
		load: l,
		term: renderers.NewTerminal(out, cfg.Width),
		out:  out,
	})
	if err := cmd.Execute(cfg.commandArgs); err != nil {
		log.Errorf("Command failed: %v", err)
		return errors.New(l.TranslateErr(err))
	}
	return nil
}

// newLoad builds the load rows read from, resolving the counter currency,
// locale and fees page from the options or the saved preferences.
func newLoad(cfg *config, mgr *libwallet.DisplayManager) (*load.Load, error) {
	l := load.NewLoad(mgr.Bridge, mgr.CounterValues())
	l.Network = mgr.NetType()

	counter := cfg.Currency
	if counter == "" {
		counter = mgr.GetCounterCurrency()
	}
	if counter == "" {
		counter = defaultCounterCurrency
	}
	c, err := currency.Find(counter)
	if err != nil {
		return nil, err
	}
	if cfg.Currency != "" {
		mgr.SetCounterCurrency(cfg.Currency)
	}
	l.CounterCurrency = c

	locale := cfg.Locale
	if locale == "" {
		locale = mgr.GetLanguagePreference()
	}
	if locale != "" {
		tag, err := language.Parse(locale)
		if err != nil {
			return nil, fmt.Errorf("invalid locale %q: %v", locale, err)
		}
		l.SetLocale(tag)
	} else {
		l.SetLocale(language.English)
	}
	if cfg.Locale != "" {
		mgr.SetLanguagePreference(cfg.Locale)
	}

	l.FeesURL = cfg.FeesURL
	if l.FeesURL == "" {
		l.FeesURL = mgr.GetFeesURL()
	}
	if cfg.FeesURL != "" {
		mgr.SetFeesURL(cfg.FeesURL)
	}
	return l, nil
}
