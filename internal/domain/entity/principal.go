package entity

// Principal is the authenticated caller, derived once from a verified bearer
// token and passed explicitly to every protected operation.
type Principal struct {
	UserID uint
	Email  string
}
