package enum

// LoyaltyAction is the loyalty side effect requested with a sale.
type LoyaltyAction string

const (
	LoyaltyActionNone   LoyaltyAction = "none"
	LoyaltyActionStamp  LoyaltyAction = "stamp"
	LoyaltyActionRedeem LoyaltyAction = "redeem"
)

// Valid reports whether the action is one of the known values. The empty
// string is treated as "none" for older clients that omit the field.
func (a LoyaltyAction) Valid() bool {
	switch a {
	case LoyaltyActionNone, LoyaltyActionStamp, LoyaltyActionRedeem, "":
		return true
	}
	return false
}

// Normalize maps the empty string to LoyaltyActionNone.
func (a LoyaltyAction) Normalize() LoyaltyAction {
	if a == "" {
		return LoyaltyActionNone
	}
	return a
}
