package statement

import (
	"regexp"

	"billkaro/statement-ledger/internal/models"
	"billkaro/statement-ledger/internal/textutils"
)

// Profile is the line-parsing configuration used for one issuer.
type Profile struct {
	Bank       models.BankType
	DateShapes []*regexp.Regexp
	Allocate   AllocationStrategy
}

// DefaultProfile is shared by every known issuer and the generic fallback.
func DefaultProfile() Profile {
	return Profile{
		Bank:       models.BankGeneric,
		DateShapes: textutils.DefaultDateShapes,
		Allocate:   PositionalAllocation,
	}
}

// profiles holds issuer-specific overrides. None of the supported issuers
// needs one yet.
var profiles = map[models.BankType]Profile{}

// ProfileFor returns the parsing profile for bank.
func ProfileFor(bank models.BankType) Profile {
	if p, ok := profiles[bank]; ok {
		return p
	}
	p := DefaultProfile()
	p.Bank = bank
	return p
}
