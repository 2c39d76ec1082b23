package domain

// WardrobeCounts summarises one owner's wardrobes.
type WardrobeCounts struct {
	Wardrobes int64 `json:"wardrobes"`
	Items     int64 `json:"items"`
}

type UserWithCounts struct {
	User
	Stats WardrobeCounts `json:"stats"`
}

type UserTotals struct {
	Total    int64 `db:"total" json:"total"`
	Active   int64 `db:"active" json:"active"`
	Inactive int64 `db:"inactive" json:"inactive"`
	Recent   int64 `db:"recent" json:"recent"`
	Local    int64 `db:"local" json:"-"`
	Google   int64 `db:"google" json:"-"`
}

type AdminStats struct {
	Users         UserTotals       `json:"users"`
	Wardrobes     int64            `json:"wardrobes"`
	Items         int64            `json:"items"`
	AuthProviders map[string]int64 `json:"auth_providers"`
}
