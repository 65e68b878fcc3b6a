package components_test

import (
	"errors"
	"math/big"
	"time"

	sharedW "code.cryptopower.dev/group/walletdisplay/libwallet/assets/wallet"
	"code.cryptopower.dev/group/walletdisplay/libwallet/assets/eth"
	"code.cryptopower.dev/group/walletdisplay/libwallet/countervalue"
	"code.cryptopower.dev/group/walletdisplay/libwallet/currency"
	"code.cryptopower.dev/group/walletdisplay/ui/load"
	"code.cryptopower.dev/group/walletdisplay/ui/page/components"
	"code.cryptopower.dev/group/walletdisplay/ui/values"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"
)

var usdPrices = map[string]string{
	"BTC": "23000",
	"ETH": "1850",
}

// priceProvider serves fixed USD prices. loading makes every rate load.
func priceProvider(loading *bool) countervalue.Provider {
	return countervalue.ProviderFunc(func(from, to *currency.Currency) countervalue.Rate {
		if from.Equal(to) {
			return countervalue.Identity(from)
		}
		if *loading {
			return countervalue.LoadingRate(from, to)
		}
		price, ok := usdPrices[from.Ticker()]
		if !ok || !to.Equal(currency.USDollar) {
			return countervalue.UnavailableRate(from, to)
		}
		return countervalue.NewRate(from, to, decimal.RequireFromString(price), time.Now())
	})
}

var _ = Describe("Rows", func() {
	var (
		bridge  *sharedW.MemoryBridge
		ld      *load.Load
		loading bool
	)

	BeforeEach(func() {
		loading = false
		bridge = sharedW.NewMemoryBridge()
		Expect(bridge.AddAccount(&sharedW.Account{
			ID:       "btc-1",
			Name:     "Bitcoin savings account number one",
			Currency: currency.Bitcoin,
			Balance:  currency.NewAmountFromInt64(currency.Bitcoin, 123456789),
		})).To(Succeed())
		Expect(bridge.AddAccount(&sharedW.Account{
			ID:       "eth-1",
			Name:     "Ethereum",
			Currency: currency.Ethereum,
		})).To(Succeed())
		Expect(bridge.AddAccount(&sharedW.Account{
			ID:       "usdt-1",
			Name:     "Tether",
			Currency: currency.Tether,
		})).To(Succeed())

		ld = load.NewLoad(bridge, priceProvider(&loading))
		ld.FeesURL = "https://example.com/fees"
	})

	Describe("CurrencyRateLabel", func() {
		It("prices one coin in the counter currency", func() {
			label, err := components.NewCurrencyRateLabel(ld, currency.Bitcoin, 0)
			Expect(err).To(BeNil())
			Expect(label.Text()).To(Equal("1 BTC = 23,000.00 USD"))
			Expect(label.Icon.Name).To(Equal("activity"))
			Expect(label.Icon.Size).To(Equal(10))
			Expect(label.Icon.Color).To(Equal(currency.Bitcoin.Color()))
		})

		It("keeps a custom icon size", func() {
			label, err := components.NewCurrencyRateLabel(ld, currency.Ethereum, 16)
			Expect(err).To(BeNil())
			Expect(label.Icon.Size).To(Equal(16))
			Expect(label.Text()).To(Equal("1 ETH = 1,850.00 USD"))
		})

		It("leaves the rate empty while it loads", func() {
			loading = true
			label, err := components.NewCurrencyRateLabel(ld, currency.Bitcoin, 0)
			Expect(err).To(BeNil())
			Expect(label.Rate.Kind).To(Equal(countervalue.Loading))
			Expect(label.Text()).To(Equal("1 BTC = "))
		})
	})

	Describe("AccountRow", func() {
		It("shows the native balance and its counter-value", func() {
			acc, err := bridge.GetAccount("btc-1")
			Expect(err).To(BeNil())
			row, err := components.NewAccountRow(ld, acc, false)
			Expect(err).To(BeNil())

			Expect(row.Balance.String()).To(Equal("1.23456789 BTC"))
			Expect(row.Balance.Main).To(Equal("1.23"))
			Expect(row.Balance.Sub).To(Equal("456789"))
			Expect(row.CounterValue.Kind).To(Equal(countervalue.Value))
			Expect(row.CounterValue.Text).To(Equal("28,395.06 USD"))
			Expect(row.Name.Text).To(Equal("Bitcoin savi… number one"))
			Expect([]rune(row.Name.Text)).To(HaveLen(24))
			Expect(row.Action).To(Equal(components.Action{Route: components.AccountRoute, AccountID: "btc-1"}))
			Expect(row.DividerColor).NotTo(BeEmpty())
		})

		It("swaps in the placeholder while the rate loads", func() {
			loading = true
			acc, _ := bridge.GetAccount("btc-1")
			row, err := components.NewAccountRow(ld, acc, true)
			Expect(err).To(BeNil())
			Expect(row.Balance.String()).To(Equal("1.23456789 BTC"))
			Expect(row.CounterValue.Kind).To(Equal(countervalue.Loading))
			Expect(row.CounterValue.Placeholder).To(Equal(&countervalue.Placeholder{Width: 40, Height: 20}))
			Expect(row.IsLast).To(BeTrue())
			Expect(row.DividerColor).To(BeEmpty())
		})

		It("reports unavailable rates", func() {
			acc, _ := bridge.GetAccount("usdt-1")
			row, err := components.NewAccountRow(ld, acc, false)
			Expect(err).To(BeNil())
			Expect(row.Balance.String()).To(Equal("0 USDT"))
			Expect(row.CounterValue.Kind).To(Equal(countervalue.Unavailable))
		})

		It("builds every bridge account in order", func() {
			rows, err := components.AccountRows(ld)
			Expect(err).To(BeNil())
			Expect(rows).To(HaveLen(3))
			Expect(rows[0].AccountID).To(Equal("btc-1"))
			Expect(rows[2].IsLast).To(BeTrue())
			Expect(rows[1].IsLast).To(BeFalse())
		})

		It("follows the account sync state", func() {
			bridge.OnSyncStarted("btc-1", false)
			acc, _ := bridge.GetAccount("btc-1")
			row, err := components.NewAccountRow(ld, acc, false)
			Expect(err).To(BeNil())
			Expect(row.SyncStatus.Kind).To(Equal(components.SyncStatusSyncing))

			bridge.OnSyncCompleted("btc-1")
			row, _ = components.NewAccountRow(ld, acc, false)
			Expect(row.SyncStatus.Kind).To(Equal(components.SyncStatusUpToDate))
		})
	})

	Describe("SyncStatus", func() {
		th := values.NewTheme(nil)
		en := values.NewPrinter(values.English)
		syncErr := errors.New("sync failed")

		DescribeTable("composes up to date and sync state",
			func(isUpToDate bool, state sharedW.SyncState, kind components.SyncStatusKind, tick string) {
				status := components.NewSyncStatus(th, en, isUpToDate, state)
				Expect(status.Kind).To(Equal(kind))
				Expect(status.TickColor).To(Equal(tick))
			},
			Entry("synced", true, sharedW.SyncState{}, components.SyncStatusUpToDate, ""),
			Entry("outdated", false, sharedW.SyncState{}, components.SyncStatusOutdated, th.Color.Gray4),
			Entry("syncing", false, sharedW.SyncState{Pending: true}, components.SyncStatusSyncing, th.Color.Gray4),
			Entry("resyncing an up to date account", true, sharedW.SyncState{Pending: true}, components.SyncStatusUpToDate, ""),
			Entry("error on an up to date account", true, sharedW.SyncState{Err: syncErr}, components.SyncStatusError, th.Color.Danger),
			Entry("error on an outdated account", false, sharedW.SyncState{Err: syncErr}, components.SyncStatusError, th.Color.Danger),
			Entry("error while pending", false, sharedW.SyncState{Pending: true, Err: syncErr}, components.SyncStatusError, th.Color.Danger),
		)

		It("translates the labels", func() {
			status := components.NewSyncStatus(th, values.NewPrinter(values.French), true, sharedW.SyncState{})
			Expect(status.Label.Text).To(Equal("Synchronisé"))
		})

		It("keeps the language of each load", func() {
			fr := load.NewLoad(bridge, priceProvider(&loading))
			fr.SetLocale(language.French)
			de := load.NewLoad(bridge, priceProvider(&loading))
			de.SetLocale(language.German)

			acc, err := bridge.GetAccount("btc-1")
			Expect(err).To(BeNil())
			frRow, err := components.NewAccountRow(fr, acc, false)
			Expect(err).To(BeNil())
			deRow, err := components.NewAccountRow(de, acc, false)
			Expect(err).To(BeNil())
			enRow, err := components.NewAccountRow(ld, acc, false)
			Expect(err).To(BeNil())

			Expect(frRow.SyncStatus.Label.Text).To(Equal("Obsolète"))
			Expect(deRow.SyncStatus.Label.Text).To(Equal("Veraltet"))
			Expect(enRow.SyncStatus.Label.Text).To(Equal("Outdated"))
		})
	})

	Describe("EthereumFeeRow", func() {
		var acc *sharedW.Account

		BeforeEach(func() {
			var err error
			acc, err = bridge.GetAccount("eth-1")
			Expect(err).To(BeNil())
		})

		It("shows the fee rate, the fee and its counter-value", func() {
			tx := &sharedW.Transaction{ID: "tx", AccountID: acc.ID, Extra: &eth.TxExtra{
				GasPrice: eth.GweiToWei(21),
				GasLimit: big.NewInt(21000),
			}}
			Expect(bridge.SetPendingTransaction(tx)).To(Succeed())

			row, err := components.NewEthereumFeeRow(ld, acc, tx)
			Expect(err).To(BeNil())
			Expect(row.Title).To(Equal("Fees"))
			Expect(row.FeeRate).To(Equal("21 Gwei"))
			Expect(row.Fee).To(Equal("0.000441 ETH"))
			Expect(row.CounterValue.Kind).To(Equal(countervalue.Value))
			Expect(row.CounterValue.Text).To(Equal("≈ 0.82 USD"))
			Expect(row.Info.URL).To(Equal("https://example.com/fees"))
			Expect(row.Edit.Text).To(Equal("Edit"))
			Expect(row.Edit.Action.Route).To(Equal(components.EthereumEditFeeRoute))
			Expect(row.Edit.Action.Transaction).To(BeIdenticalTo(tx))
			Expect(row.GasLimit.GasLimit).To(Equal("21000"))
		})

		It("omits native values without a gas price", func() {
			tx := &sharedW.Transaction{ID: "tx", AccountID: acc.ID, Extra: &eth.TxExtra{GasLimit: big.NewInt(21000)}}
			row, err := components.NewEthereumFeeRow(ld, acc, tx)
			Expect(err).To(BeNil())
			Expect(row.FeeRate).To(BeEmpty())
			Expect(row.Fee).To(BeEmpty())
			Expect(row.CounterValue.Kind).To(Equal(countervalue.Unavailable))
			Expect(row.Edit.Action.Route).To(Equal(components.EthereumEditFeeRoute))
			Expect(row.GasLimit.Edit.Action.Route).To(Equal(components.EthereumEditGasLimitRoute))
		})

		It("reads the gas price in the custom fee unit", func() {
			wei, _ := currency.Ethereum.UnitByCode("wei")
			tx := &sharedW.Transaction{ID: "tx", AccountID: acc.ID, Extra: &eth.TxExtra{
				GasPrice:      big.NewInt(1500),
				GasLimit:      big.NewInt(2),
				FeeCustomUnit: &wei,
			}}
			row, err := components.NewEthereumFeeRow(ld, acc, tx)
			Expect(err).To(BeNil())
			Expect(row.FeeRate).To(Equal("1,500 wei"))
			Expect(row.CounterValue.Text).To(Equal("≈ < 0.01 USD"))
		})

		It("charges token fees in ether", func() {
			token, _ := bridge.GetAccount("usdt-1")
			tx := &sharedW.Transaction{ID: "tx", AccountID: token.ID, Extra: &eth.TxExtra{
				GasPrice: eth.GweiToWei(21),
				GasLimit: big.NewInt(21000),
			}}
			row, err := components.NewEthereumFeeRow(ld, token, tx)
			Expect(err).To(BeNil())
			Expect(row.Fee).To(Equal("0.000441 ETH"))
		})

		It("shows the gas price without a gas limit", func() {
			tx, err := sharedW.NewTransaction("tx", acc, &eth.TxExtra{GasPrice: eth.GweiToWei(21)})
			Expect(err).To(BeNil())
			Expect(bridge.SetPendingTransaction(tx)).To(Succeed())

			pending, err := bridge.PendingTransaction(acc.ID)
			Expect(err).To(BeNil())
			row, err := components.NewEthereumFeeRow(ld, acc, pending)
			Expect(err).To(BeNil())
			Expect(row.FeeRate).To(Equal("21 Gwei"))
			Expect(row.Fee).To(BeEmpty())
			Expect(row.CounterValue.Kind).To(Equal(countervalue.Unavailable))
			Expect(row.GasLimit.GasLimit).To(BeEmpty())
			Expect(row.GasLimit.Edit.Action.Route).To(Equal(components.EthereumEditGasLimitRoute))
		})

		It("translates the row labels", func() {
			ld.SetLocale(language.French)
			tx := &sharedW.Transaction{ID: "tx", AccountID: acc.ID, Extra: &eth.TxExtra{GasLimit: big.NewInt(21000)}}
			row, err := components.NewEthereumFeeRow(ld, acc, tx)
			Expect(err).To(BeNil())
			Expect(row.Title).To(Equal("Frais"))
			Expect(row.Edit.Text).To(Equal("Modifier"))
			Expect(row.GasLimit.Title).To(Equal("Limite de gaz"))
		})

		It("rejects other extras", func() {
			tx := &sharedW.Transaction{ID: "tx", AccountID: acc.ID}
			_, err := components.NewEthereumFeeRow(ld, acc, tx)
			Expect(err).NotTo(BeNil())

			var nilExtra *eth.TxExtra
			tx = &sharedW.Transaction{ID: "tx", AccountID: acc.ID, Extra: nilExtra}
			_, err = components.NewEthereumFeeRow(ld, acc, tx)
			Expect(err).NotTo(BeNil())
		})
	})
})
