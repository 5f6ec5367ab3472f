package gocardless

// --- API resource structs ---

type RedirectFlow struct {
	Id          string            `json:"id"`
	RedirectURL string            `json:"redirect_url"`
	Links       RedirectFlowLinks `json:"links"`
}

type RedirectFlowLinks struct {
	Mandate  string `json:"mandate"`
	Customer string `json:"customer"`
}

type PrefilledCustomer struct {
	GivenName   string `json:"given_name,omitempty"`
	FamilyName  string `json:"family_name,omitempty"`
	CompanyName string `json:"company_name,omitempty"`
	Email       string `json:"email,omitempty"`
}

type RedirectFlowCreateRequest struct {
	Description        string            `json:"description"`
	SessionToken       string            `json:"session_token"`
	SuccessRedirectURL string            `json:"success_redirect_url"`
	PrefilledCustomer  PrefilledCustomer `json:"prefilled_customer"`
}

type Mandate struct {
	Id        string       `json:"id"`
	Reference string       `json:"reference"`
	Status    string       `json:"status"`
	Links     MandateLinks `json:"links"`
}

type MandateLinks struct {
	Customer            string `json:"customer"`
	Creditor            string `json:"creditor"`
	CustomerBankAccount string `json:"customer_bank_account"`
}

type Payment struct {
	Id       string `json:"id"`
	Amount   int64  `json:"amount"` // minor units (pence)
	Currency string `json:"currency"`
	Status   string `json:"status"`
	// "YYYY-MM-DD"; empty until the payout has been scheduled.
	PayoutDate string       `json:"payout_date,omitempty"`
	Links      PaymentLinks `json:"links"`
}

type PaymentLinks struct {
	Mandate string `json:"mandate"`
}

type PaymentCreateRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Mandate  string `json:"mandate"`
}
