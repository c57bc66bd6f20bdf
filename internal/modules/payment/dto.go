package payment

// WebhookPayload is a bank-transfer notification as posted by the gateway.
type WebhookPayload struct {
	ID              int64   `json:"id" binding:"required"`
	Gateway         string  `json:"gateway"`
	TransactionDate string  `json:"transactionDate"`
	AccountNumber   string  `json:"accountNumber"`
	Code            *string `json:"code"`
	Content         string  `json:"content"`
	TransferType    string  `json:"transferType"`
	TransferAmount  int64   `json:"transferAmount"`
	Accumulated     int64   `json:"accumulated"`
	SubAccount      *string `json:"subAccount"`
	ReferenceCode   string  `json:"referenceCode"`
	Description     string  `json:"description"`
}

// WebhookResult is returned to the gateway as is; it does not use the
// response envelope.
type WebhookResult struct {
	Success        bool   `json:"success"`
	Duplicate      bool   `json:"duplicate,omitempty"`
	BookingMatched bool   `json:"bookingMatched"`
	BookingID      string `json:"bookingId,omitempty"`
	AutoApproved   bool   `json:"autoApproved"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}
