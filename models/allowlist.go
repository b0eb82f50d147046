package models

// AllowlistStatus é o estado de aprovação de uma carteira.
type AllowlistStatus string

const (
	AllowlistPending   AllowlistStatus = "pending"
	AllowlistActive    AllowlistStatus = "active"
	AllowlistRevoked   AllowlistStatus = "revoked"
	AllowlistSuspended AllowlistStatus = "suspended"
)

// Valid informa se o status é um dos valores conhecidos.
func (s AllowlistStatus) Valid() bool {
	switch s {
	case AllowlistPending, AllowlistActive, AllowlistRevoked, AllowlistSuspended:
		return true
	}
	return false
}

// AllowlistEntry registra a aprovação de compliance de uma carteira para uma
// equity. Existe no máximo uma entrada por par (equity, carteira).
type AllowlistEntry struct {
	ID         string          `db:"id" json:"id"`
	EquityID   string          `db:"equity_id" json:"equity_id"`
	Wallet     string          `db:"wallet" json:"wallet"`
	ApprovedAt int64           `db:"approved_at" json:"approved_at"` // Unix timestamp da aprovação
	ApprovedBy string          `db:"approved_by" json:"approved_by"` // Admin que aprovou
	Status     AllowlistStatus `db:"status" json:"status"`
	KYCLevel   uint8           `db:"kyc_level" json:"kyc_level"`
}
