package schema

import (
	"context"

	"backoffice-service/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Options struct {
	CreateChecks    bool // CHECK-ограничения (stock, price, quantity, status)
	CreateIndexes   bool
	CreateFKsViaSQL bool // FK с правилами RESTRICT/CASCADE
}

func DefaultOptions() Options {
	return Options{
		CreateChecks:    true,
		CreateIndexes:   true,
		CreateFKsViaSQL: true,
	}
}

type statement struct {
	name string
	sql  string
}

var checkStatements = []statement{
	{"chk_products_stock_non_negative", `
ALTER TABLE products DROP CONSTRAINT IF EXISTS chk_products_stock_non_negative;
ALTER TABLE products ADD CONSTRAINT chk_products_stock_non_negative CHECK (stock_qty >= 0);
`},
	{"chk_products_price_non_negative", `
ALTER TABLE products DROP CONSTRAINT IF EXISTS chk_products_price_non_negative;
ALTER TABLE products ADD CONSTRAINT chk_products_price_non_negative CHECK (price >= 0);
`},
	{"chk_orders_status_allowed", `
ALTER TABLE orders DROP CONSTRAINT IF EXISTS chk_orders_status_allowed;
ALTER TABLE orders ADD CONSTRAINT chk_orders_status_allowed
  CHECK (status IN ('pending','confirmed','shipped','delivered','cancelled'));
`},
	{"chk_orders_total_non_negative", `
ALTER TABLE orders DROP CONSTRAINT IF EXISTS chk_orders_total_non_negative;
ALTER TABLE orders ADD CONSTRAINT chk_orders_total_non_negative CHECK (total_amount >= 0);
`},
	{"chk_order_items_quantity_gt_zero", `
ALTER TABLE order_items DROP CONSTRAINT IF EXISTS chk_order_items_quantity_gt_zero;
ALTER TABLE order_items ADD CONSTRAINT chk_order_items_quantity_gt_zero CHECK (quantity > 0);
`},
	{"chk_order_items_unit_price_non_negative", `
ALTER TABLE order_items DROP CONSTRAINT IF EXISTS chk_order_items_unit_price_non_negative;
ALTER TABLE order_items ADD CONSTRAINT chk_order_items_unit_price_non_negative CHECK (unit_price >= 0);
`},
}

var indexStatements = []statement{
	{"ix_orders_customer_date", `
CREATE INDEX IF NOT EXISTS ix_orders_customer_date ON orders (customer_id, order_date DESC);
`},
	{"ix_product_categories_category", `
CREATE INDEX IF NOT EXISTS ix_product_categories_category ON product_categories (category_id);
`},
}

var fkStatements = []statement{
	// orders.customer_id -> customers (RESTRICT)
	{"fk_orders_customer", `
ALTER TABLE orders
  DROP CONSTRAINT IF EXISTS fk_orders_customer,
  ADD CONSTRAINT fk_orders_customer
    FOREIGN KEY (customer_id) REFERENCES customers(customer_id) ON DELETE RESTRICT;
`},
	// order_items.order_id -> orders (CASCADE)
	{"fk_order_items_order", `
ALTER TABLE order_items
  DROP CONSTRAINT IF EXISTS fk_order_items_order,
  ADD CONSTRAINT fk_order_items_order
    FOREIGN KEY (order_id) REFERENCES orders(order_id) ON DELETE CASCADE;
`},
	// order_items.product_id -> products (RESTRICT)
	{"fk_order_items_product", `
ALTER TABLE order_items
  DROP CONSTRAINT IF EXISTS fk_order_items_product,
  ADD CONSTRAINT fk_order_items_product
    FOREIGN KEY (product_id) REFERENCES products(product_id) ON DELETE RESTRICT;
`},
	{"fk_product_categories_product", `
ALTER TABLE product_categories
  DROP CONSTRAINT IF EXISTS fk_product_categories_product,
  ADD CONSTRAINT fk_product_categories_product
    FOREIGN KEY (product_id) REFERENCES products(product_id) ON DELETE CASCADE;
`},
	{"fk_product_categories_category", `
ALTER TABLE product_categories
  DROP CONSTRAINT IF EXISTS fk_product_categories_category,
  ADD CONSTRAINT fk_product_categories_category
    FOREIGN KEY (category_id) REFERENCES categories(category_id) ON DELETE CASCADE;
`},
}

// Apply creates the back-office tables and their constraints. Every
// statement is idempotent, so Apply can run on each deploy.
func Apply(ctx context.Context, db *gorm.DB, log *zap.Logger, opt Options) error {
	log.Info("Начало применения схемы back-office")
	db = db.WithContext(ctx)

	log.Info("Создание таблиц")
	if err := db.AutoMigrate(
		&models.Customer{},
		&models.Product{},
		&models.Category{},
		&models.ProductCategory{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		log.Error("Не удалось создать таблицы", zap.Error(err))
		return err
	}
	log.Info("Таблицы успешно созданы")

	if opt.CreateChecks {
		log.Info("Создание CHECK-ограничений")
		if err := execAll(db, log, checkStatements); err != nil {
			return err
		}
		log.Info("CHECK-ограничения успешно созданы")
	}

	if opt.CreateIndexes {
		log.Info("Создание индексов")
		if err := execAll(db, log, indexStatements); err != nil {
			return err
		}
		log.Info("Индексы успешно созданы")
	}

	if opt.CreateFKsViaSQL {
		log.Info("Создание внешних ключей")
		if err := execAll(db, log, fkStatements); err != nil {
			return err
		}
		log.Info("Внешние ключи успешно созданы")
	}

	log.Info("Схема back-office успешно применена")
	return nil
}

func execAll(db *gorm.DB, log *zap.Logger, stmts []statement) error {
	for _, st := range stmts {
		if err := db.Exec(st.sql).Error; err != nil {
			log.Error("Не удалось выполнить DDL", zap.String("name", st.name), zap.Error(err))
			return err
		}
	}
	return nil
}
