package payment

// Sale is a normalized credit purchase extracted from a provider
// notification.
type Sale struct {
	SaleID  string
	Email   string
	AgentID string
	Credits int
	Amount  float64
}

// Driver is the interface payment providers implement. A driver only
// verifies and normalizes incoming sale notifications; crediting happens in
// the purchase service.
type Driver interface {
	// Verify authenticates a provider callback and returns the sale it
	// describes.
	Verify(params map[string]string) (*Sale, error)
}
