package categorizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategorize_BasicMerchants(t *testing.T) {
	c := New(nil)

	assert.Equal(t, "Groceries", c.Categorize("WHOLE FOODS MARKET #123"))
	assert.Equal(t, "Shopping", c.Categorize("AMAZON.COM PURCHASE"))
	assert.Equal(t, "Transportation", c.Categorize("UBER TRIP 4521"))
	assert.Equal(t, "Utilities", c.Categorize("COMCAST INTERNET BILL"))
	assert.Equal(t, "Entertainment", c.Categorize("Netflix.com subscription"))
}

func TestCategorize_IncomeBeatsMerchantCollision(t *testing.T) {
	c := New(nil)

	// "amazon" is a Shopping keyword, but income signals win.
	assert.Equal(t, "Income", c.Categorize("payment received from amazon marketplace"))
	assert.Equal(t, "Income", c.Categorize("DIRECT DEPOSIT PAYROLL ACME CORP"))
}

func TestCategorize_TableOrderResolvesOverlap(t *testing.T) {
	c := New(nil)

	// "uber eats" belongs to Food & Dining even though "uber" alone is
	// a Transportation keyword; Food & Dining is declared first.
	assert.Equal(t, "Food & Dining", c.Categorize("UBER EATS ORDER #4451"))
	assert.Equal(t, "Transportation", c.Categorize("UBER RIDE 17:40"))
}

func TestCategorize_EmptyDescription(t *testing.T) {
	c := New(nil)

	assert.Equal(t, FallbackCategory, c.Categorize(""))
	assert.Equal(t, FallbackCategory, c.Categorize("   "))
}

func TestCategorize_NoMatchFallsBack(t *testing.T) {
	c := New(nil)

	assert.Equal(t, FallbackCategory, c.Categorize("ZZZZ UNKNOWN MERCHANT 000"))
}

func TestCategorize_CustomTable(t *testing.T) {
	c := New(Table{
		{Label: "Pets", Keywords: []string{"petco", "chewy"}},
		{Label: "Books", Keywords: []string{"bookstore"}},
	})

	assert.Equal(t, "Pets", c.Categorize("CHEWY.COM AUTOSHIP"))
	assert.Equal(t, "Books", c.Categorize("Corner Bookstore"))
	// The built-in rules are gone when a custom table is supplied.
	assert.Equal(t, FallbackCategory, c.Categorize("AMAZON.COM"))
}

func TestCategorize_CustomTableIncomePriority(t *testing.T) {
	// Income keeps priority even when declared last in a custom table.
	c := New(Table{
		{Label: "Shopping", Keywords: []string{"amazon"}},
		{Label: IncomeCategory, Keywords: []string{"payment received"}},
	})

	assert.Equal(t, IncomeCategory, c.Categorize("payment received from amazon"))
}

func TestLabels(t *testing.T) {
	c := New(Table{
		{Label: "Pets", Keywords: []string{"petco"}},
	})

	assert.Equal(t, []string{"Pets", FallbackCategory}, c.Labels())
}
