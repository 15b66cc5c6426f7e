package core

// StorageKey is the well-known key the state document is persisted under.
const StorageKey = "zenspend_local_data"

const (
	DefaultCurrency      = "USD"
	DefaultMonthStartDay = 1
)

// Currency describes a supported display currency.
type Currency struct {
	Code   string
	Symbol string
	Name   string
}

var Currencies = []Currency{
	{Code: "USD", Symbol: "$", Name: "US Dollar"},
	{Code: "EUR", Symbol: "€", Name: "Euro"},
	{Code: "GBP", Symbol: "£", Name: "British Pound"},
	{Code: "JPY", Symbol: "¥", Name: "Japanese Yen"},
}

func LookupCurrency(code string) (Currency, bool) {
	for _, c := range Currencies {
		if c.Code == code {
			return c, true
		}
	}
	return Currency{}, false
}

// SeedCategories returns a fresh copy of the categories every new document
// starts with.
func SeedCategories() []Category {
	return []Category{
		{ID: "1", Name: "Housing", Icon: "home", Color: "#13b6ec", Limit: Money{Cents: 120000}},
		{ID: "2", Name: "Groceries", Icon: "shopping_cart", Color: "#ffb020", Limit: Money{Cents: 50000}},
		{ID: "3", Name: "Utilities", Icon: "bolt", Color: "#13b6ec", Limit: Money{Cents: 30000}},
		{ID: "4", Name: "Transport", Icon: "directions_car", Color: "#a855f7", Limit: Money{Cents: 20000}},
		{ID: "5", Name: "Entertainment", Icon: "movie", Color: "#ff4842", Limit: Money{Cents: 20000}},
		{ID: "6", Name: "Dining", Icon: "restaurant", Color: "#f97316", Limit: Money{Cents: 15000}},
		{ID: "7", Name: "Health", Icon: "ecg_heart", Color: "#ef4444", Limit: Money{Cents: 10000}},
		{ID: "8", Name: "Others", Icon: "more_horiz", Color: "#64748b", Limit: Money{Cents: 10000}},
	}
}

func DefaultSettings() Settings {
	return Settings{
		Currency:      DefaultCurrency,
		IsDarkMode:    true,
		MonthStartDay: DefaultMonthStartDay,
	}
}

// DefaultState is the document used when nothing has been persisted yet or
// the persisted document cannot be read.
func DefaultState() AppState {
	return AppState{
		Transactions: []Transaction{},
		Categories:   SeedCategories(),
		Settings:     DefaultSettings(),
	}
}
