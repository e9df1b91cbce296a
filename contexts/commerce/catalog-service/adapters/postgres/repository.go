package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"merx/contexts/commerce/catalog-service/domain/entities"
	domainerrors "merx/contexts/commerce/catalog-service/domain/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) SaveShopProduct(ctx context.Context, product entities.ShopProduct) error {
	row := shopProductModelFromEntity(product)
	if err := r.db.WithContext(ctx).Save(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrInvalidProductInput
		}
		return err
	}
	return nil
}

func (r *Repository) GetShopProduct(ctx context.Context, shopProductID string) (entities.ShopProduct, error) {
	var row shopProductModel
	err := r.db.WithContext(ctx).
		Where("shop_product_id = ?", strings.TrimSpace(shopProductID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.ShopProduct{}, domainerrors.ErrProductNotFound
		}
		return entities.ShopProduct{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) GetShopProductByProduct(ctx context.Context, shopID, productID string) (entities.ShopProduct, error) {
	var row shopProductModel
	err := r.db.WithContext(ctx).
		Where("shop_id = ?", shopID).
		Where("product_id = ?", strings.TrimSpace(productID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.ShopProduct{}, domainerrors.ErrProductNotFound
		}
		return entities.ShopProduct{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) ListShopProducts(ctx context.Context, shopID string) ([]entities.ShopProduct, error) {
	var rows []shopProductModel
	err := r.db.WithContext(ctx).
		Where("shop_id = ?", shopID).
		Order("created_at DESC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	items := make([]entities.ShopProduct, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) ListVariationChildren(ctx context.Context, shopID, parentProductID string) ([]entities.ShopProduct, error) {
	var rows []shopProductModel
	err := r.db.WithContext(ctx).
		Where("shop_id = ?", shopID).
		Where("parent_product_id = ?", parentProductID).
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	items := make([]entities.ShopProduct, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) SaveCategory(ctx context.Context, category entities.Category) error {
	row := categoryModel{
		CategoryID: category.CategoryID,
		ShopID:     category.ShopID,
		ParentID:   category.ParentID,
		Name:       category.Name,
		Active:     category.Active,
		CreatedAt:  category.CreatedAt.UTC(),
		UpdatedAt:  category.UpdatedAt.UTC(),
	}
	return r.db.WithContext(ctx).Save(&row).Error
}

func (r *Repository) GetCategory(ctx context.Context, categoryID string) (entities.Category, error) {
	var row categoryModel
	err := r.db.WithContext(ctx).
		Where("category_id = ?", strings.TrimSpace(categoryID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Category{}, domainerrors.ErrCategoryNotFound
		}
		return entities.Category{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) ListCategories(ctx context.Context, shopID string) ([]entities.Category, error) {
	var rows []categoryModel
	err := r.db.WithContext(ctx).
		Where("shop_id = ?", shopID).
		Order("name ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	items := make([]entities.Category, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) SaveContactGroup(ctx context.Context, group entities.ContactGroup) error {
	row := contactGroupModel{
		GroupID:   group.GroupID,
		ShopID:    group.ShopID,
		Name:      group.Name,
		CreatedAt: group.CreatedAt.UTC(),
		UpdatedAt: group.UpdatedAt.UTC(),
	}
	return r.db.WithContext(ctx).Save(&row).Error
}

func (r *Repository) GetContactGroup(ctx context.Context, groupID string) (entities.ContactGroup, error) {
	var row contactGroupModel
	err := r.db.WithContext(ctx).
		Where("group_id = ?", strings.TrimSpace(groupID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.ContactGroup{}, domainerrors.ErrContactGroupNotFound
		}
		return entities.ContactGroup{}, err
	}
	return entities.ContactGroup{
		GroupID:   row.GroupID,
		ShopID:    row.ShopID,
		Name:      row.Name,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}, nil
}

func (r *Repository) ReplaceContactGroups(ctx context.Context, contactID string, groupIDs []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("contact_id = ?", contactID).
			Delete(&groupMemberModel{}).
			Error; err != nil {
			return err
		}
		if len(groupIDs) == 0 {
			return nil
		}
		rows := make([]groupMemberModel, 0, len(groupIDs))
		for _, groupID := range groupIDs {
			rows = append(rows, groupMemberModel{
				GroupID:   groupID,
				ContactID: contactID,
			})
		}
		return tx.Create(&rows).Error
	})
}

func (r *Repository) ContactGroupIDs(ctx context.Context, contactID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&groupMemberModel{}).
		Where("contact_id = ?", contactID).
		Pluck("group_id", &ids).
		Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *Repository) SaveShop(ctx context.Context, shop entities.Shop) error {
	row := shopModel{
		ShopID:    shop.ShopID,
		Name:      shop.Name,
		Timezone:  shop.Timezone,
		CreatedAt: shop.CreatedAt.UTC(),
		UpdatedAt: shop.UpdatedAt.UTC(),
	}
	return r.db.WithContext(ctx).Save(&row).Error
}

func (r *Repository) GetShop(ctx context.Context, shopID string) (entities.Shop, error) {
	var row shopModel
	err := r.db.WithContext(ctx).
		Where("shop_id = ?", strings.TrimSpace(shopID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Shop{}, domainerrors.ErrShopNotFound
		}
		return entities.Shop{}, err
	}
	return entities.Shop{
		ShopID:    row.ShopID,
		Name:      row.Name,
		Timezone:  row.Timezone,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

type shopProductModel struct {
	ShopProductID     string           `gorm:"column:shop_product_id;primaryKey"`
	ShopID            string           `gorm:"column:shop_id"`
	ProductID         string           `gorm:"column:product_id"`
	ParentProductID   string           `gorm:"column:parent_product_id"`
	ProductTypeID     string           `gorm:"column:product_type_id"`
	Name              string           `gorm:"column:name"`
	SKU               string           `gorm:"column:sku"`
	SupplierIDs       []string         `gorm:"column:supplier_ids;type:text[]"`
	CategoryIDs       []string         `gorm:"column:category_ids;type:text[]"`
	PrimaryCategoryID string           `gorm:"column:primary_category_id"`
	Visible           bool             `gorm:"column:visible"`
	Purchasable       bool             `gorm:"column:purchasable"`
	MinimumPrice      *decimal.Decimal `gorm:"column:minimum_price;type:numeric"`
	DefaultPrice      decimal.Decimal  `gorm:"column:default_price;type:numeric"`
	MinOrderQuantity  decimal.Decimal  `gorm:"column:min_order_quantity;type:numeric"`
	MaxOrderQuantity  decimal.Decimal  `gorm:"column:max_order_quantity;type:numeric"`
	CreatedAt         time.Time        `gorm:"column:created_at"`
	UpdatedAt         time.Time        `gorm:"column:updated_at"`
}

func (shopProductModel) TableName() string {
	return "catalog_shop_products"
}

func shopProductModelFromEntity(item entities.ShopProduct) shopProductModel {
	return shopProductModel{
		ShopProductID:     item.ShopProductID,
		ShopID:            item.ShopID,
		ProductID:         item.ProductID,
		ParentProductID:   item.ParentProductID,
		ProductTypeID:     item.ProductTypeID,
		Name:              item.Name,
		SKU:               item.SKU,
		SupplierIDs:       item.SupplierIDs,
		CategoryIDs:       item.CategoryIDs,
		PrimaryCategoryID: item.PrimaryCategoryID,
		Visible:           item.Visible,
		Purchasable:       item.Purchasable,
		MinimumPrice:      item.MinimumPrice,
		DefaultPrice:      item.DefaultPrice,
		MinOrderQuantity:  item.MinOrderQuantity,
		MaxOrderQuantity:  item.MaxOrderQuantity,
		CreatedAt:         item.CreatedAt.UTC(),
		UpdatedAt:         item.UpdatedAt.UTC(),
	}
}

func (m shopProductModel) toEntity() entities.ShopProduct {
	return entities.ShopProduct{
		ShopProductID:     m.ShopProductID,
		ShopID:            m.ShopID,
		ProductID:         m.ProductID,
		ParentProductID:   m.ParentProductID,
		ProductTypeID:     m.ProductTypeID,
		Name:              m.Name,
		SKU:               m.SKU,
		SupplierIDs:       m.SupplierIDs,
		CategoryIDs:       m.CategoryIDs,
		PrimaryCategoryID: m.PrimaryCategoryID,
		Visible:           m.Visible,
		Purchasable:       m.Purchasable,
		MinimumPrice:      m.MinimumPrice,
		DefaultPrice:      m.DefaultPrice,
		MinOrderQuantity:  m.MinOrderQuantity,
		MaxOrderQuantity:  m.MaxOrderQuantity,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

type categoryModel struct {
	CategoryID string    `gorm:"column:category_id;primaryKey"`
	ShopID     string    `gorm:"column:shop_id"`
	ParentID   string    `gorm:"column:parent_id"`
	Name       string    `gorm:"column:name"`
	Active     bool      `gorm:"column:active"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (categoryModel) TableName() string {
	return "catalog_categories"
}

func (m categoryModel) toEntity() entities.Category {
	return entities.Category{
		CategoryID: m.CategoryID,
		ShopID:     m.ShopID,
		ParentID:   m.ParentID,
		Name:       m.Name,
		Active:     m.Active,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

type contactGroupModel struct {
	GroupID   string    `gorm:"column:group_id;primaryKey"`
	ShopID    string    `gorm:"column:shop_id"`
	Name      string    `gorm:"column:name"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (contactGroupModel) TableName() string {
	return "catalog_contact_groups"
}

type groupMemberModel struct {
	GroupID   string `gorm:"column:group_id;primaryKey"`
	ContactID string `gorm:"column:contact_id;primaryKey"`
}

func (groupMemberModel) TableName() string {
	return "catalog_group_members"
}

type shopModel struct {
	ShopID    string    `gorm:"column:shop_id;primaryKey"`
	Name      string    `gorm:"column:name"`
	Timezone  string    `gorm:"column:timezone"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (shopModel) TableName() string {
	return "catalog_shops"
}
