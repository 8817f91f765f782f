// Package tier maps SIC industry codes to supply-chain tiers.
//
// Tiers are ordinal positions in the supply chain:
//
//	0: raw materials / mining / agriculture
//	1: basic manufacturing / chemicals
//	2: components / electronics
//	3: assembly / finished goods
//	4: retail / distribution / wholesale
package tier

// sicRange is a half-open range [Lo, Hi) of SIC codes mapped to a tier.
type sicRange struct {
	Lo   int
	Hi   int
	Tier int
}

// sicRanges is scanned in declaration order and the first match wins.
// Ranges overlap on purpose: [2800,3600) precedes [3000,3600), so codes
// 3000-3599 resolve to tier 1, not 3. Reordering this table changes output.
var sicRanges = []sicRange{
	{100, 1000, 0},
	{2000, 2800, 1},
	{2800, 3600, 1},
	{3000, 3600, 3},
	{3600, 3800, 2},
	{3800, 4000, 2},
	{5000, 5200, 3},
	{5200, 5400, 4},
	{5400, 5800, 4},
	{5900, 6000, 4},
}

// DefaultTier is returned for any SIC code outside every declared range,
// including 0 ("unknown"). Middle of the chain is the least-wrong guess.
const DefaultTier = 2

// Classify returns the supply-chain tier for a SIC code.
// It is total: every integer, including negatives and zero, yields a
// tier in [0,4].
func Classify(sic int) int {
	for _, r := range sicRanges {
		if sic >= r.Lo && sic < r.Hi {
			return r.Tier
		}
	}
	return DefaultTier
}
