package models

type Carrier string

const (
	CarrierMetlife Carrier = "METLIFE"
	CarrierAXA     Carrier = "AXA"
	CarrierGNP     Carrier = "GNP"
)

type ProductLine string

const (
	LineLife    ProductLine = "VIDA"
	LineHealth  ProductLine = "GMM"
	LineGeneral ProductLine = "GENERAL"
)

type LedgerBook string

const (
	BookRenewals    LedgerBook = "renewals"
	BookCollections LedgerBook = "collections"
	BookPortfolio   LedgerBook = "portfolio"
)

type NotificationMarker string

const (
	NotificationSent NotificationMarker = "sent"
)
