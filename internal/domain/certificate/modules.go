package certificate

// Module is a certification stage awarded once all of its courses are complete.
type Module struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Rarity string `json:"rarity"`
}

// Modules is the certification catalog in display order.
var Modules = []Module{
	{ID: "M1", Title: "CRECIMIENTO", Rarity: "Common"},
	{ID: "M2", Title: "ESCALAMIENTO", Rarity: "Rare"},
	{ID: "M3", Title: "CONSOLIDACIÓN", Rarity: "Epic"},
	{ID: "M4", Title: "DESPEGUE", Rarity: "Legendary"},
}

// FindModule looks a module up by id.
func FindModule(id string) (Module, bool) {
	for _, m := range Modules {
		if m.ID == id {
			return m, true
		}
	}
	return Module{}, false
}

// StorageKey is the per-user key a certificate was cached under.
func StorageKey(moduleID string) string { return "cert_" + moduleID }

// MintKey identifies one mint of a module certificate to a wallet.
func MintKey(moduleID, wallet string) string { return "nft_" + moduleID + "_" + wallet }
