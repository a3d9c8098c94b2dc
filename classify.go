package allocation

import (
	"regexp"
	"strings"
)

var (
	cashKeywords    = regexp.MustCompile(`(?i)LIQUID|CONTO|CASH|DEPOSITO|LIQUIDITA`)
	fundKeywords    = regexp.MustCompile(`(?i)SICAV|FUND|UCITS|FONDO`)
	managedKeywords = regexp.MustCompile(`(?i)GESTIONE|GP|GPM|GPF|LINEA`)
)

// Signals are the independent classification predicates of a position.
// Several can hold at once; Category decides.
type Signals struct {
	Cash           bool // name looks like a current account or a deposit.
	Fund           bool // name looks like a fund or a SICAV.
	Managed        bool // name looks like a managed mandate (gestione patrimoniale).
	SecurityShaped bool // identifier has the ISIN shape.
}

// DetectSignals evaluates every predicate on a position name and identifier.
// Keyword tests are case-insensitive substring matches.
func DetectSignals(name, identifier string) Signals {
	return Signals{
		Cash:           cashKeywords.MatchString(name),
		Fund:           fundKeywords.MatchString(name),
		Managed:        managedKeywords.MatchString(name),
		SecurityShaped: IsISINShaped(identifier),
	}
}

// Category applies the fixed precedence Cash, Fund, ManagedMandate, then
// Security when no name keyword matched and the identifier is ISIN-shaped.
func (s Signals) Category() Category {
	switch {
	case s.Cash:
		return Cash
	case s.Fund:
		return Fund
	case s.Managed:
		return ManagedMandate
	case s.SecurityShaped:
		return Security
	default:
		return Unclassified
	}
}

// Classify returns the category of a position.
func Classify(name, identifier string) Category {
	return DetectSignals(name, identifier).Category()
}

// SecurityType is a best-effort guess of the kind of a security.
type SecurityType string

const (
	UnknownType SecurityType = ""
	Bond        SecurityType = "Bond"
	Equity      SecurityType = "Equity"
)

var (
	bondKeywords   = []string{"BTP", "BOND", "OBBLIG", "NOTE", "DEBENTURE"}
	equityKeywords = []string{"AZIONE", "EQUITY", "ORD.", "RISP.", "SHARE", "SPA", "INC", "PLC"}
)

// GuessSecurityType scans the name for bond then equity keywords. It is
// purely descriptive and never changes a category.
func GuessSecurityType(name string) SecurityType {
	s := strings.ToUpper(name)
	if containsAny(s, bondKeywords) {
		return Bond
	}
	if containsAny(s, equityKeywords) {
		return Equity
	}
	return UnknownType
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
