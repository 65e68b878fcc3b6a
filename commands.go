package main

import (
	"context"
	"fmt"
	"io"
	"math/big"
	"time"

	"code.cryptopower.dev/group/walletdisplay/libwallet"
	"code.cryptopower.dev/group/walletdisplay/libwallet/assets/eth"
	"code.cryptopower.dev/group/walletdisplay/libwallet/countervalue"
	"code.cryptopower.dev/group/walletdisplay/libwallet/currency"
	"code.cryptopower.dev/group/walletdisplay/libwallet/utils"
	"code.cryptopower.dev/group/walletdisplay/listeners"
	"code.cryptopower.dev/group/walletdisplay/ui/load"
	"code.cryptopower.dev/group/walletdisplay/ui/page/components"
	"code.cryptopower.dev/group/walletdisplay/ui/renderers"
	"code.cryptopower.dev/group/walletdisplay/ui/values"
	"decred.org/dcrwallet/v2/errors"
	"github.com/jessevdk/go-flags"
)

// rateWaitTimeout bounds how long commands wait on a rate refresh before
// rendering what is cached.
const rateWaitTimeout = 15 * time.Second

var defaultRateCurrencies = []string{"BTC", "DCR", "LTC", "ETH"}

// app is what every command runs against.
type app struct {
	cfg  *config
	mgr  *libwallet.DisplayManager
	load *load.Load
	term *renderers.Terminal
	out  io.Writer
}

// appCommand is a sub-command. The command line fills its arguments and
// Execute runs once the display manager is open.
type appCommand interface {
	flags.Commander
	setApp(a *app)
}

type formatCommand struct {
	Args struct {
		Currency string `positional-arg-name:"currency" required:"yes"`
		Amount   string `positional-arg-name:"raw-amount" required:"yes"`
		Unit     string `positional-arg-name:"unit"`
	} `positional-args:"yes"`

	app *app
}

type convertCommand struct {
	Args struct {
		Currency string `positional-arg-name:"currency" required:"yes"`
		Amount   string `positional-arg-name:"amount" required:"yes"`
	} `positional-args:"yes"`

	app *app
}

type rateCommand struct {
	Args struct {
		Currencies []string `positional-arg-name:"currency"`
	} `positional-args:"yes"`

	app *app
}

type accountsCommand struct {
	app *app
}

func (c *formatCommand) setApp(a *app)   { c.app = a }
func (c *convertCommand) setApp(a *app)  { c.app = a }
func (c *rateCommand) setApp(a *app)     { c.app = a }
func (c *accountsCommand) setApp(a *app) { c.app = a }

// addCommands registers the sub-commands on parser.
func addCommands(parser *flags.Parser) error {
	commands := []struct {
		name, short, long string
		data              appCommand
	}{{
		name:  "format",
		short: "Print a raw amount of smallest units in a unit of the currency",
		long:  "Print a raw amount of smallest units in the currency display unit, or in the named unit",
		data:  &formatCommand{},
	}, {
		name:  "convert",
		short: "Print the counter-value of an amount written in the currency display unit",
		long:  "Print the counter-value of an amount written in the currency display unit with the locale decimal mark",
		data:  &convertCommand{},
	}, {
		name:  "rate",
		short: "Print the rate of one coin of each currency",
		long:  "Print the rate of one coin of each currency, BTC, DCR, LTC and ETH when none is given",
		data:  &rateCommand{},
	}, {
		name:  "accounts",
		short: "Print the account rows and the fee rows of pending transactions",
		long:  "Print the account rows of the accounts file and the fee rows of pending ethereum transactions",
		data:  &accountsCommand{},
	}}
	for _, c := range commands {
		if _, err := parser.AddCommand(c.name, c.short, c.long, c.data); err != nil {
			return err
		}
	}
	return nil
}

// noExtraArgs rejects arguments left after the positional ones.
func noExtraArgs(op errors.Op, args []string) error {
	if len(args) > 0 {
		return utils.CodedError(op, errors.Invalid, utils.ErrInvalid, "unexpected arguments %v", args)
	}
	return nil
}

// waitForRates refreshes the rate source. A refresh that takes too long is
// left running and rows show their loading state.
func (a *app) waitForRates() {
	if a.cfg.Offline {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), rateWaitTimeout)
	defer cancel()
	if err := a.mgr.WaitForRates(ctx, false); err != nil {
		log.Warnf("Rates are still loading: %v", err)
	}
}

func (cmd *formatCommand) Execute(args []string) error {
	const op errors.Op = "main.format"
	if err := noExtraArgs(op, args); err != nil {
		return err
	}
	a := cmd.app
	c, err := currency.Find(cmd.Args.Currency)
	if err != nil {
		return err
	}
	raw, ok := new(big.Int).SetString(cmd.Args.Amount, 10)
	if !ok {
		return utils.CodedError(op, errors.Invalid, utils.ErrMalformedAmount, "%q is not a whole number of smallest units", cmd.Args.Amount)
	}
	unit := c.DisplayUnit()
	if cmd.Args.Unit != "" {
		if unit, ok = c.UnitByCode(cmd.Args.Unit); !ok {
			return utils.CodedError(op, errors.Invalid, utils.ErrMalformedUnit, "%s is not a unit of %s", cmd.Args.Unit, c.Ticker())
		}
	}

	text, err := a.load.FormatAmount(currency.NewAmount(c, raw), unit, currency.FormatOptions{ShowCode: true})
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, text)
	return nil
}

func (cmd *convertCommand) Execute(args []string) error {
	const op errors.Op = "main.convert"
	if err := noExtraArgs(op, args); err != nil {
		return err
	}
	a := cmd.app
	c, err := currency.Find(cmd.Args.Currency)
	if err != nil {
		return err
	}
	amount, err := currency.ParseAmount(c, cmd.Args.Amount, c.DisplayUnit(), a.load.Locale)
	if err != nil {
		return err
	}

	a.waitForRates()
	res, err := a.load.CounterValue(amount, countervalue.Options{ShowCode: true})
	if err != nil {
		return err
	}
	switch res.Kind {
	case countervalue.Value:
		fmt.Fprintln(a.out, res.Text)
	default:
		fmt.Fprintf(a.out, "%s: %s\n", res.Kind, a.load.StringF(values.StrRateSource, a.mgr.RateSource.Name()))
	}
	return nil
}

func (cmd *rateCommand) Execute(args []string) error {
	if err := noExtraArgs("main.rate", args); err != nil {
		return err
	}
	a := cmd.app
	tickers := cmd.Args.Currencies
	if len(tickers) == 0 {
		tickers = defaultRateCurrencies
	}
	currencies := make([]*currency.Currency, 0, len(tickers))
	for _, arg := range tickers {
		c, err := currency.Find(arg)
		if err != nil {
			return err
		}
		currencies = append(currencies, c)
	}

	a.waitForRates()
	for _, c := range currencies {
		lbl, err := components.NewCurrencyRateLabel(a.load, c, 0)
		if err != nil {
			return err
		}
		fmt.Fprintln(a.out, a.term.CurrencyRate(lbl))
	}
	return nil
}

const syncListenerID = "walletdisplay"

func (cmd *accountsCommand) Execute(args []string) error {
	if err := noExtraArgs("main.accounts", args); err != nil {
		return err
	}
	a := cmd.app
	syncListener := listeners.NewSyncProgress()
	if err := a.mgr.Bridge.AddSyncProgressListener(syncListener, syncListenerID); err != nil {
		return err
	}
	defer a.mgr.Bridge.RemoveSyncProgressListener(syncListenerID)

	n, err := a.mgr.LoadAccounts(a.cfg.Accounts)
	if err != nil {
		return err
	}
	log.Debugf("Loaded %d accounts", n)
	logSyncUpdates(syncListener)

	a.waitForRates()
	rows, err := components.AccountRows(a.load)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Fprintln(a.out, a.load.String(values.StrNoAccounts))
		return nil
	}
	fmt.Fprintln(a.out, a.term.AccountList(rows))

	accounts, err := a.mgr.Bridge.GetAccountsRaw()
	if err != nil {
		return err
	}
	for _, account := range accounts.Acc {
		tx, err := a.mgr.Bridge.PendingTransaction(account.ID)
		if err != nil {
			return err
		}
		if tx == nil {
			continue
		}
		if _, ok := tx.Extra.(*eth.TxExtra); !ok {
			continue
		}
		row, err := components.NewEthereumFeeRow(a.load, account, tx)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "\n%s\n%s\n", account.Name, a.term.EthereumFeeRow(row))
	}
	return nil
}

// logSyncUpdates drains the sync notifications queued while accounts were
// loaded.
func logSyncUpdates(sp *listeners.SyncProgressListener) {
	for {
		select {
		case update := <-sp.SyncStatusChan:
			if update.Err != nil {
				log.Debugf("Account %s sync %s: %v", update.AccountID, update.Stage, update.Err)
				continue
			}
			log.Debugf("Account %s sync %s", update.AccountID, update.Stage)
		default:
			return
		}
	}
}
