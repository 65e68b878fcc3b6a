package libwallet_test

import (
	"os"
	"path/filepath"
	"time"

	"code.cryptopower.dev/group/walletdisplay/libwallet"
	"code.cryptopower.dev/group/walletdisplay/libwallet/assets/btc"
	"code.cryptopower.dev/group/walletdisplay/libwallet/assets/eth"
	"code.cryptopower.dev/group/walletdisplay/libwallet/countervalue"
	"code.cryptopower.dev/group/walletdisplay/libwallet/currency"
	"code.cryptopower.dev/group/walletdisplay/libwallet/ext"
	"code.cryptopower.dev/group/walletdisplay/libwallet/utils"
	"code.cryptopower.dev/group/walletdisplay/libwallet/walletdata"
	"github.com/shopspring/decimal"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

const accountsJSON = `{
  "accounts": [
    {"id": "btc-1", "name": "Savings", "currency": "BTC", "balance": "1.23456789", "upToDate": true},
    {"id": "eth-1", "name": "Spending", "currency": "ethereum", "balance": "0.5", "syncing": true,
     "pendingTransaction": {"id": "tx-1", "gasPrice": "21000000000", "gasLimit": "21000"}},
    {"id": "dcr-1", "name": "Staking", "currency": "DCR", "unit": "atom", "balance": "150000000", "syncError": "peer went away"},
    {"id": "ltc-1", "name": "Litecoin", "currency": "LTC",
     "pendingTransaction": {"id": "tx-2", "feePerByte": 5, "estimatedSize": 250}}
  ]
}`

var _ = Describe("DisplayManager", func() {
	var (
		rootDir string
		mgr     *libwallet.DisplayManager
	)

	newManager := func() *libwallet.DisplayManager {
		m, err := libwallet.NewDisplayManager(&libwallet.InitParams{
			RootDir:    rootDir,
			NetType:    utils.Testnet,
			RateSource: "binance",
			Offline:    true,
		})
		Expect(err).To(BeNil())
		return m
	}

	BeforeEach(func() {
		var err error
		rootDir, err = os.MkdirTemp("", "walletdisplay")
		Expect(err).To(BeNil())
	})

	AfterEach(func() {
		if mgr != nil {
			mgr.Shutdown()
			mgr = nil
		}
		os.RemoveAll(rootDir)
	})

	It("rejects unknown networks", func() {
		_, err := libwallet.NewDisplayManager(&libwallet.InitParams{
			RootDir:    rootDir,
			NetType:    utils.Unknown,
			RateSource: "binance",
		})
		Expect(err).ToNot(BeNil())
	})

	It("rejects unknown rate sources", func() {
		_, err := libwallet.NewDisplayManager(&libwallet.InitParams{
			RootDir:    rootDir,
			NetType:    utils.Testnet,
			RateSource: "bittrex",
			Offline:    true,
		})
		Expect(err).ToNot(BeNil())
		Expect(err.Error()).To(ContainSubstring(utils.ErrRateSourceUnsupported))
	})

	Context("offline", func() {
		BeforeEach(func() {
			mgr = newManager()
		})

		It("does not estimate fees", func() {
			Expect(mgr.FeeEstimator).To(BeNil())
			Expect(mgr.NetType()).To(Equal(utils.Testnet))
			Expect(mgr.RootDir()).To(Equal(filepath.Join(rootDir, "testnet3")))
		})

		It("reports unknown rates as unavailable", func() {
			rate := mgr.Rate(currency.Bitcoin, currency.USDollar)
			Expect(rate.State).To(Equal(countervalue.RateUnavailable))

			rate = mgr.CounterValues().CounterValue(currency.Bitcoin, currency.Bitcoin)
			Expect(rate.State).To(Equal(countervalue.RateAvailable))
		})

		It("loads the accounts file into the bridge", func() {
			Expect(os.WriteFile(mgr.AccountsFilePath(), []byte(accountsJSON), 0600)).To(Succeed())

			n, err := mgr.LoadAccounts("")
			Expect(err).To(BeNil())
			Expect(n).To(Equal(4))

			accounts, err := mgr.Bridge.GetAccountsRaw()
			Expect(err).To(BeNil())
			Expect(accounts.Count).To(Equal(4))
			ids := make([]string, 0, accounts.Count)
			for _, acc := range accounts.Acc {
				ids = append(ids, acc.ID)
			}
			Expect(ids).To(Equal([]string{"btc-1", "eth-1", "dcr-1", "ltc-1"}))

			By("Reading balances in the configured unit")
			balance, err := accounts.Acc[0].Balance.Format(currency.FormatOptions{ShowCode: true})
			Expect(err).To(BeNil())
			Expect(balance).To(Equal("1.23456789 BTC"))
			Expect(accounts.Acc[2].Balance.Value().Int64()).To(Equal(int64(150000000)))
			Expect(accounts.Acc[2].DisplayUnit().Code).To(Equal("atom"))
			Expect(accounts.Acc[3].Balance.IsZero()).To(BeTrue())

			By("Applying the sync state")
			Expect(mgr.Bridge.IsUpToDate("btc-1")).To(BeTrue())
			Expect(mgr.Bridge.SyncState("eth-1").Pending).To(BeTrue())
			Expect(mgr.Bridge.SyncState("dcr-1").Err).ToNot(BeNil())

			By("Typing pending transaction extras by family")
			tx, err := mgr.Bridge.PendingTransaction("eth-1")
			Expect(err).To(BeNil())
			extra, ok := tx.Extra.(*eth.TxExtra)
			Expect(ok).To(BeTrue())
			fee, ok := extra.EstimatedFee()
			Expect(ok).To(BeTrue())
			feeText, err := fee.Format(currency.FormatOptions{ShowCode: true})
			Expect(err).To(BeNil())
			Expect(feeText).To(Equal("0.000441 ETH"))

			tx, err = mgr.Bridge.PendingTransaction("ltc-1")
			Expect(err).To(BeNil())
			btcExtra, ok := tx.Extra.(*btc.TxExtra)
			Expect(ok).To(BeTrue())
			Expect(int64(*btcExtra.FeePerByte)).To(Equal(int64(5)))
		})

		It("loads a pending transaction without a gas limit", func() {
			err := mgr.AddAccount(&libwallet.AccountConfig{
				ID:       "eth-2",
				Currency: "ETH",
				Pending:  &libwallet.PendingTransactionConfig{ID: "tx-3", GasPrice: "21000000000"},
			})
			Expect(err).To(BeNil())

			tx, err := mgr.Bridge.PendingTransaction("eth-2")
			Expect(err).To(BeNil())
			extra, ok := tx.Extra.(*eth.TxExtra)
			Expect(ok).To(BeTrue())
			Expect(extra.GasLimit).To(BeNil())
			_, ok = extra.EstimatedFee()
			Expect(ok).To(BeFalse())
		})

		It("leaves the bridge untouched on a bad pending transaction", func() {
			err := mgr.AddAccount(&libwallet.AccountConfig{
				ID:       "eth-3",
				Currency: "ETH",
				Pending:  &libwallet.PendingTransactionConfig{ID: "tx-4", GasPrice: "lots"},
			})
			Expect(err).ToNot(BeNil())
			Expect(err.Error()).To(ContainSubstring(utils.ErrMalformedAmount))
			_, err = mgr.Bridge.GetAccount("eth-3")
			Expect(err).ToNot(BeNil())

			feePerByte := int64(5)
			err = mgr.AddAccount(&libwallet.AccountConfig{
				ID:       "eth-4",
				Currency: "ETH",
				Pending:  &libwallet.PendingTransactionConfig{ID: "tx-5", FeePerByte: &feePerByte},
			})
			Expect(err).ToNot(BeNil())
			Expect(err.Error()).To(ContainSubstring(utils.ErrIncompleteTxExtra))
			_, err = mgr.Bridge.GetAccount("eth-4")
			Expect(err).ToNot(BeNil())

			accounts, err := mgr.Bridge.GetAccountsRaw()
			Expect(err).To(BeNil())
			Expect(accounts.Count).To(BeZero())
		})

		It("rejects unknown currencies and units", func() {
			err := mgr.AddAccount(&libwallet.AccountConfig{ID: "x", Currency: "DOGE"})
			Expect(err).ToNot(BeNil())
			Expect(err.Error()).To(ContainSubstring(utils.ErrUnknownCurrency))

			err = mgr.AddAccount(&libwallet.AccountConfig{ID: "y", Currency: "BTC", Unit: "wei"})
			Expect(err).ToNot(BeNil())
			Expect(err.Error()).To(ContainSubstring(utils.ErrMalformedUnit))
		})

		It("saves preferences across runs", func() {
			Expect(mgr.GetCurrencyConversionExchange()).To(Equal("binance"))
			Expect(mgr.GetCounterCurrency()).To(BeEmpty())

			mgr.SetCurrencyConversionExchange("kucoin")
			mgr.SetCounterCurrency("EUR")
			mgr.SetLanguagePreference("fr")
			mgr.SetLogLevels("debug")
			mgr.SetFeesURL("https://example.org/fees")
			mgr.Shutdown()
			mgr = nil

			reopened, err := libwallet.NewDisplayManager(&libwallet.InitParams{
				RootDir: rootDir,
				NetType: utils.Testnet,
				Offline: true,
			})
			Expect(err).To(BeNil())
			defer reopened.Shutdown()
			Expect(reopened.RateSource.Name()).To(Equal("Kucoin"))
			Expect(reopened.GetCounterCurrency()).To(Equal("EUR"))
			Expect(reopened.GetLanguagePreference()).To(Equal("fr"))
			Expect(reopened.GetLogLevels()).To(Equal("debug"))
			Expect(reopened.GetFeesURL()).To(Equal("https://example.org/fees"))

			reopened.DeleteConfigValue("fees_url")
			Expect(reopened.GetFeesURL()).To(BeEmpty())
		})

		It("fails on a malformed accounts file", func() {
			path := filepath.Join(rootDir, "broken.json")
			Expect(os.WriteFile(path, []byte("{"), 0600)).To(Succeed())
			_, err := mgr.LoadAccounts(path)
			Expect(err).ToNot(BeNil())
		})
	})

	It("serves the tickers stored by a previous run", func() {
		netDir := filepath.Join(rootDir, "testnet3")
		Expect(os.MkdirAll(netDir, 0700)).To(Succeed())
		db, err := walletdata.Initialize(filepath.Join(netDir, walletdata.DbName))
		Expect(err).To(BeNil())
		Expect(db.SaveTickers("binance", []*ext.Ticker{{
			Market:         "BTC-USDT",
			LastTradePrice: decimal.NewFromInt(23000),
			LastUpdate:     time.Now(),
		}})).To(Succeed())
		Expect(db.Close()).To(Succeed())

		mgr = newManager()
		rate := mgr.Rate(currency.Bitcoin, currency.USDollar)
		Expect(rate.State).To(Equal(countervalue.RateAvailable))
		Expect(rate.Stale).To(BeFalse())
	})
})
