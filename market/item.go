package market

// Type classifies the market an instrument trades on.
type Type string

const (
	Crypto Type = "crypto"
	Stock  Type = "stock"
	Forex  Type = "forex"
)

// Item identifies one tradable instrument. Two items refer to the same
// instrument when code and type match; name and info are display-only.
type Item struct {
	Name string `json:"name"`
	Code string `json:"code"`
	Info string `json:"info"`
	Type Type   `json:"type"`
}

// With builds a bare stock item from a symbol code.
func With(code string) Item {
	return Item{Name: code, Code: code, Type: Stock}
}

// Same reports instrument identity by (code, type).
func (i Item) Same(o Item) bool {
	return i.Code == o.Code && i.Type == o.Type
}
