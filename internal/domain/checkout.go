package domain

type LineRequest struct {
	ProductID int64
	Quantity  int
}

// CardInput is the raw card data of one checkout call. Expiry and CVC are
// accepted from the client but never stored.
type CardInput struct {
	HolderName string
	Number     string
	Expiry     string
	CVC        string
}

type CheckoutRequest struct {
	Lines           []LineRequest
	ShippingAddress ShippingAddress
	Payment         *CardInput
}
