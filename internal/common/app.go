package common

const (
	AppStorefront   = "lumiere-storefront"
	AppCatalogSeed  = "lumiere-catalog-seed"
	AudienceShopper = "audience-shopper"

	TokenIssuer = AppStorefront
)
