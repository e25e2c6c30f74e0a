package domain

// Subaccount is an isolated credential/billing scope within the telephony
// provider, created once per customer. The auth token is opaque to us and is
// stored for later use by call-handling features.
type Subaccount struct {
	SID       string
	AuthToken string
}

// ProvisionedNumber is a phone number purchased and bound to a customer's
// subaccount. Number is E.164 formatted.
type ProvisionedNumber struct {
	Number string
	SID    string
}

// RegistrationResult is what a successful registration hands back to the
// caller: the new bearer credential plus the telephony assignment.
type RegistrationResult struct {
	AccountToken      string
	ProvisionedNumber string
	SubaccountID      string
}
