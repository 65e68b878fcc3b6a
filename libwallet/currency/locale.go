package currency

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Separators are the digit grouping and decimal marks of a locale.
// PrimaryGroup is the size of the integer digit group next to the decimal
// mark and SecondaryGroup the size of the groups before it. Both are zero
// when the locale does not group digits.
type Separators struct {
	Group          string
	Decimal        string
	PrimaryGroup   int
	SecondaryGroup int
}

var (
	defaultSeparators = Separators{Group: ",", Decimal: ".", PrimaryGroup: 3, SecondaryGroup: 3}

	separatorCache sync.Map // language.Tag -> Separators
)

// SeparatorsFor derives the separators and group sizes of tag from the CLDR
// number data. Locales that print non-ASCII digits fall back to "," and ".".
func SeparatorsFor(tag language.Tag) Separators {
	if tag == language.Und {
		return defaultSeparators
	}
	if s, ok := separatorCache.Load(tag); ok {
		return s.(Separators)
	}

	// The probe is only printed to read the marks back, it never carries an
	// amount.
	probe := message.NewPrinter(tag).Sprint(number.Decimal(12345678.5, number.MinFractionDigits(1)))

	var marks []string
	var digitRuns []int
	var mark []rune
	inDigits := false
	for _, r := range probe {
		switch {
		case r >= '0' && r <= '9':
			if len(mark) > 0 {
				marks = append(marks, string(mark))
				mark = mark[:0]
			}
			if !inDigits {
				digitRuns = append(digitRuns, 0)
				inDigits = true
			}
			digitRuns[len(digitRuns)-1]++
		case unicode.IsDigit(r):
			separatorCache.Store(tag, defaultSeparators)
			return defaultSeparators
		default:
			mark = append(mark, r)
			inDigits = false
		}
	}

	s := defaultSeparators
	switch {
	case len(marks) == 1:
		s = Separators{Decimal: marks[0]}
	case len(marks) > 1 && len(digitRuns) == len(marks)+1:
		// The last run holds the fraction digits.
		integer := digitRuns[:len(digitRuns)-1]
		s = Separators{
			Group:          marks[0],
			Decimal:        marks[len(marks)-1],
			PrimaryGroup:   integer[len(integer)-1],
			SecondaryGroup: integer[len(integer)-1],
		}
		if len(integer) > 2 {
			s.SecondaryGroup = integer[len(integer)-2]
		}
	}
	if s.Group == s.Decimal || (s.Group != "" && s.PrimaryGroup <= 0) {
		s = defaultSeparators
	}

	separatorCache.Store(tag, s)
	return s
}

// groupDigits inserts sep into the integer digits of a plain decimal string
// using the group sizes of s.
func (s Separators) groupDigits(digits, sep string) string {
	integer, fraction := digits, ""
	if i := strings.IndexByte(digits, '.'); i >= 0 {
		integer, fraction = digits[:i], digits[i:]
	}
	if s.PrimaryGroup <= 0 || len(integer) <= s.PrimaryGroup {
		return integer + fraction
	}

	secondary := s.SecondaryGroup
	if secondary <= 0 {
		secondary = s.PrimaryGroup
	}
	end := len(integer) - s.PrimaryGroup
	groups := []string{integer[end:]}
	for end > 0 {
		start := end - secondary
		if start < 0 {
			start = 0
		}
		groups = append(groups, integer[start:end])
		end = start
	}

	var b strings.Builder
	for i := len(groups) - 1; i >= 0; i-- {
		b.WriteString(groups[i])
		if i > 0 {
			b.WriteString(sep)
		}
	}
	return b.String() + fraction
}
