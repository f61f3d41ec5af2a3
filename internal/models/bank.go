package models

// BankType identifies the issuer of a statement.
type BankType string

const (
	BankSBI     BankType = "SBI"
	BankICICI   BankType = "ICICI"
	BankHDFC    BankType = "HDFC"
	BankKotak   BankType = "KOTAK"
	BankAxis    BankType = "AXIS"
	BankGeneric BankType = "GENERIC"
)

// BankTypes lists every known issuer followed by the generic fallback.
var BankTypes = []BankType{BankSBI, BankICICI, BankHDFC, BankKotak, BankAxis, BankGeneric}

func (b BankType) String() string {
	return string(b)
}
