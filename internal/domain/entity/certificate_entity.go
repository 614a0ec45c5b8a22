package entity

import "time"

// Certificate is an issued record; Payload keeps the exact canonical JSON that was hashed.
type Certificate struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	ModuleID   string    `json:"module_id"`
	Payload    string    `json:"-"`
	Hash       string    `json:"hash"`
	ArchiveURL string    `json:"archive_url,omitempty"`
	IssuedAt   time.Time `json:"issued_at"`
}

type NFTMint struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	ModuleID        string    `json:"module_id"`
	WalletAddress   string    `json:"wallet_address"`
	TokenID         string    `json:"token_id"`
	CertificateHash string    `json:"certificate_hash"`
	MintedAt        time.Time `json:"minted_at"`
}
