package domain

import "time"

// Wallet is the locally tracked view of a ledger wallet. The node owns keys
// and authoritative balances; this is a cacheable snapshot.
type Wallet struct {
	Address   string    `json:"address"`
	Balance   float64   `json:"balance"`
	LastLogin time.Time `json:"last_login,omitempty"`
}

// PlayerIdentity is the cross-game identity of a player. GlobalPlayerID is
// derived once and reused to scope inventory ownership across linked games.
type PlayerIdentity struct {
	GlobalPlayerID  string    `json:"global_id"`
	CurrentGameID   string    `json:"game_id"`
	PlayerName      string    `json:"player_name"`
	LastKnownGameID string    `json:"current_game"`
	LastActiveTime  time.Time `json:"last_active_time"`
}
