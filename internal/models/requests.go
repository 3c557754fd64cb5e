package models

type UpdateRenewalRequest struct {
	Carrier       Carrier     `json:"carrier"`
	ProductLine   ProductLine `json:"product_line"`
	PolicyNumber  string      `json:"policy_number"`
	RenewalStatus *string     `json:"renewal_status"`
	CaseFile      *string     `json:"case_file"`
}

type NotifyRenewalRequest struct {
	Carrier       Carrier     `json:"carrier"`
	ProductLine   ProductLine `json:"product_line"`
	PolicyNumber  string      `json:"policy_number"`
	ClientName    string      `json:"client_name"`
	CoverageEnd   string      `json:"coverage_end"`
	CaseFile      *string     `json:"case_file"`
	OverrideEmail *string     `json:"override_email"`
}

// NotifyRenewalResult echoes the resolved recipient back to the caller. The
// marker update after the send is best effort, so its outcome is reported
// separately from the send itself.
type NotifyRenewalResult struct {
	Recipient    string `json:"recipient"`
	MarkerSet    bool   `json:"marker_set"`
	PolicyNumber string `json:"policy_number"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type Client struct {
	Name  string  `json:"name"`
	Email *string `json:"email"`
	Phone *string `json:"phone"`
}

type UpdateClientRequest struct {
	OriginalName string `json:"original_name"`
	Client       Client `json:"client"`
}

type DeleteClientRequest struct {
	Name string `json:"name"`
}
