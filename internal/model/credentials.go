package model

// Credentials identify the caller to the DNS provider. They live for a single
// request and are never stored.
type Credentials struct {
	Email  string
	Secret string
}
