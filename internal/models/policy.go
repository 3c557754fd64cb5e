package models

// Canonical column names shared by the carrier adapters and the unified
// record mapping. Adapter output datasets use these names regardless of the
// raw headers each carrier ships.
const (
	ColPolicyNumber  = "policy_number"
	ColContractor    = "contractor_name"
	ColInsured       = "insured_name"
	ColCoverageStart = "coverage_start"
	ColCoverageEnd   = "coverage_end"
	ColPaidThrough   = "paid_through"
	ColPremium       = "premium"
	ColTax           = "tax"
	ColSurcharge     = "surcharge"
	ColExpenseFees   = "expense_fees"
	ColDeductible    = "deductible"
	ColCoinsurance   = "coinsurance"
	ColStatus        = "renewal_status"
	ColCaseFile      = "case_file"
	ColNotified      = "notified"
	ColAgent         = "agent"
	ColProduct       = "product"
)

// PolicyRecord is the unified policy shape. Records originate in
// carrier-maintained ledgers; this service never creates them, it only reads
// and selectively mutates status, case-file reference and the notification
// marker. Nullable fields are pointers so an absent source column stays null
// all the way to the caller.
type PolicyRecord struct {
	Carrier            Carrier     `json:"carrier"`
	ProductLine        ProductLine `json:"product_line"`
	PolicyNumber       string      `json:"policy_number"`
	ContractorName     *string     `json:"contractor_name"`
	InsuredName        *string     `json:"insured_name"`
	CoverageStart      *string     `json:"coverage_start"`
	CoverageEnd        *string     `json:"coverage_end"`
	PaidThrough        *string     `json:"paid_through"`
	PremiumAmount      *float64    `json:"premium"`
	Tax                *float64    `json:"tax"`
	Surcharge          *float64    `json:"surcharge"`
	ExpenseFees        *float64    `json:"expense_fees"`
	Deductible         *float64    `json:"deductible"`
	Coinsurance        *float64    `json:"coinsurance"`
	RenewalStatus      *string     `json:"renewal_status"`
	CaseFileReference  *string     `json:"case_file"`
	NotificationMarker *string     `json:"notified"`
	Extras             map[string]any `json:"extras,omitempty"`
}
