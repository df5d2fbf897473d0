package output

import "fmt"

// Kind discriminates Item.
type Kind int

const (
	KindStatic Kind = iota
	KindFunction
	KindMiddleware
	KindOverride
)

// String returns the kind's wire name.
func (k Kind) String() string {
	switch k {
	case KindStatic:
		return "static"
	case KindFunction:
		return "function"
	case KindMiddleware:
		return "middleware"
	case KindOverride:
		return "override"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// RecordID identifies an override record in a Table's arena.
type RecordID int

// Item is one output table value.
//
// Entrypoint is set for function and middleware items; Record is set for
// override items.
type Item struct {
	Kind       Kind
	Entrypoint string
	Record     RecordID
}

// Static returns a static item.
func Static() Item {
	return Item{Kind: KindStatic}
}

// Function returns a function item invoked per request.
func Function(entrypoint string) Item {
	return Item{Kind: KindFunction, Entrypoint: entrypoint}
}

// Middleware returns a middleware item.
func Middleware(entrypoint string) Item {
	return Item{Kind: KindMiddleware, Entrypoint: entrypoint}
}

// OverrideRecord is the shared payload of an override item.
type OverrideRecord struct {
	// CanonicalPath is the asset actually served.
	CanonicalPath string

	// Headers replace the default response headers.
	Headers map[string]string
}
