package domain

// TrueOdds returns the payout ratio num:den for an odds bet on p.
// It returns 0, 1 for anything that is not a point number.
func TrueOdds(p Point) (num, den int64) {
	switch p {
	case 4, 10:
		return 2, 1
	case 5, 9:
		return 3, 2
	case 6, 8:
		return 6, 5
	}
	return 0, 1
}

// OddsPayout returns the winnings (stake excluded) of an odds bet on p,
// rounded down to whole units.
func OddsPayout(p Point, amount int64) int64 {
	num, den := TrueOdds(p)
	return amount * num / den
}

// OddsIncrement is the smallest odds amount step that pays without
// rounding on p: 1 on 4/10, 2 on 5/9, 5 on 6/8.
func OddsIncrement(p Point) int64 {
	_, den := TrueOdds(p)
	return den
}
