package entities

// EntityKind identifies which catalog entity changed when the catalog
// notifies the promotion side. The set is closed; callers sending anything
// else get a contract error instead of a silent no-op.
type EntityKind string

const (
	EntityShopProduct  EntityKind = "shop_product"
	EntityContactGroup EntityKind = "contact_group"
	EntityCategory     EntityKind = "category"
	EntityProductType  EntityKind = "product_type"
)
