package values

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

const (
	StrFees          = "Fees"
	StrEdit          = "Edit"
	StrGasLimit      = "Gas limit"
	StrSynchronizing = "Synchronizing"
	StrSynchronized  = "Synchronized"
	StrSyncError     = "Sync error"
	StrOutdated      = "Outdated"
	StrRateSource    = "Rate source %s"
	StrNoAccounts    = "No accounts"

	StrUnknownCurrency   = "Unknown currency"
	StrInvalidAmount     = "Invalid amount"
	StrCurrencyMismatch  = "Currencies do not match"
	StrRatesDisabled     = "Exchange rates are disabled"
	StrIncompleteFee     = "Fee details are incomplete"
)

var (
	English = language.English
	French  = language.French
	German  = language.German
)

var translations = map[language.Tag]map[string]string{
	French: {
		StrFees:              "Frais",
		StrEdit:              "Modifier",
		StrGasLimit:          "Limite de gaz",
		StrSynchronizing:     "Synchronisation",
		StrSynchronized:      "Synchronisé",
		StrSyncError:         "Erreur de synchronisation",
		StrOutdated:          "Obsolète",
		StrRateSource:        "Source des taux %s",
		StrNoAccounts:        "Aucun compte",
		StrUnknownCurrency:   "Devise inconnue",
		StrInvalidAmount:     "Montant invalide",
		StrCurrencyMismatch:  "Les devises ne correspondent pas",
		StrRatesDisabled:     "Les taux de change sont désactivés",
		StrIncompleteFee:     "Les détails des frais sont incomplets",
	},
	German: {
		StrFees:              "Gebühren",
		StrEdit:              "Bearbeiten",
		StrGasLimit:          "Gaslimit",
		StrSynchronizing:     "Synchronisiere",
		StrSynchronized:      "Synchronisiert",
		StrSyncError:         "Synchronisationsfehler",
		StrOutdated:          "Veraltet",
		StrRateSource:        "Kursquelle %s",
		StrNoAccounts:        "Keine Konten",
		StrUnknownCurrency:   "Unbekannte Währung",
		StrInvalidAmount:     "Ungültiger Betrag",
		StrCurrencyMismatch:  "Währungen stimmen nicht überein",
		StrRatesDisabled:     "Wechselkurse sind deaktiviert",
		StrIncompleteFee:     "Gebührenangaben sind unvollständig",
	},
}

var (
	supportedLanguages = []language.Tag{English, French, German}
	languageMatcher    = language.NewMatcher(supportedLanguages)

	languageCatalog = buildCatalog()
)

func buildCatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(English))
	for tag, entries := range translations {
		for key, msg := range entries {
			if err := b.SetString(English, key, key); err != nil {
				panic(fmt.Sprintf("bad message %q: %v", key, err))
			}
			if err := b.SetString(tag, key, msg); err != nil {
				panic(fmt.Sprintf("bad translation %s/%q: %v", tag, key, err))
			}
		}
	}
	return b
}

// NewPrinter returns a printer of the supported language closest to tag.
// Unknown languages get English.
func NewPrinter(tag language.Tag) *message.Printer {
	return message.NewPrinter(matchLanguage(tag), message.Catalog(languageCatalog))
}

func matchLanguage(tag language.Tag) language.Tag {
	_, index, confidence := languageMatcher.Match(tag)
	if confidence == language.No {
		return English
	}
	return supportedLanguages[index]
}
