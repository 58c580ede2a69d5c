package categorizer

// DefaultTable returns the built-in category rules.
//
// Order matters. Food & Dining sits before Transportation so delivery
// services ("uber eats", "doordash") are claimed before the ride-share
// keywords see them; Groceries sits before Shopping for the same
// reason. Keywords are lowercase substrings.
func DefaultTable() Table {
	return Table{
		{
			Label: IncomeCategory,
			Keywords: []string{
				"payment received", "direct deposit", "payroll", "salary",
				"paycheck", "deposit from", "refund",
			},
		},
		{
			Label: "Food & Dining",
			Keywords: []string{
				"uber eats", "doordash", "grubhub", "restaurant", "cafe",
				"coffee", "starbucks", "mcdonald", "chipotle", "pizza",
				"diner", "bakery",
			},
		},
		{
			Label: "Groceries",
			Keywords: []string{
				"grocery", "supermarket", "whole foods", "trader joe",
				"safeway", "kroger", "aldi", "costco", "market",
			},
		},
		{
			Label: "Shopping",
			Keywords: []string{
				"amazon", "walmart", "target", "best buy", "ebay",
				"store", "retail", "mall",
			},
		},
		{
			Label: "Transportation",
			Keywords: []string{
				"uber", "lyft", "taxi", "transit", "metro", "parking",
				"gas station", "shell", "chevron", "exxon", "toll",
			},
		},
		{
			Label: "Utilities",
			Keywords: []string{
				"electric", "water", "internet", "comcast", "verizon",
				"at&t", "t-mobile", "utility", "phone bill",
			},
		},
		{
			Label: "Entertainment",
			Keywords: []string{
				"netflix", "spotify", "hulu", "cinema", "movie",
				"theater", "steam", "playstation", "concert",
			},
		},
		{
			Label: "Health",
			Keywords: []string{
				"pharmacy", "cvs", "walgreens", "doctor", "dental",
				"clinic", "hospital", "gym", "fitness",
			},
		},
		{
			Label: "Travel",
			Keywords: []string{
				"airline", "airlines", "hotel", "airbnb", "flight",
				"delta", "united", "southwest", "expedia",
			},
		},
		{
			Label: "Housing",
			Keywords: []string{
				"rent", "mortgage", "landlord", "property management",
				"hoa",
			},
		},
	}
}
