package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/go-gin-backoffice/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-backoffice/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists orders and order lines in PostgreSQL using GORM.
type Repository struct {
	db       *gorm.DB
	rowLocks bool
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithRowLocks returns a repository whose GetByID locks the order row. Only meaningful inside a transaction.
func (r *Repository) WithRowLocks() *Repository {
	return &Repository{db: r.db, rowLocks: true}
}

type orderRecord struct {
	ID         int64           `gorm:"primaryKey;column:id"`
	CustomerID *int64          `gorm:"column:customer_id"`
	OrderDate  time.Time       `gorm:"column:order_date"`
	DueDate    *time.Time      `gorm:"column:due_date"`
	Status     string          `gorm:"column:status"`
	Total      decimal.Decimal `gorm:"column:total;type:numeric(12,2)"`
	Costs      decimal.Decimal `gorm:"column:costs;type:numeric(12,2)"`
	UpdatedAt  time.Time       `gorm:"column:updated_at"`
	Lines      []lineRecord    `gorm:"foreignKey:OrderID"`
}

func (orderRecord) TableName() string { return "orders" }

type lineRecord struct {
	ID        int64           `gorm:"primaryKey;column:id"`
	OrderID   int64           `gorm:"column:order_id"`
	ProductID *int64          `gorm:"column:product_id"`
	Quantity  int64           `gorm:"column:quantity"`
	Price     decimal.Decimal `gorm:"column:price;type:numeric(12,2)"`
	Cost      decimal.Decimal `gorm:"column:cost;type:numeric(12,2)"`
}

func (lineRecord) TableName() string { return "order_lines" }

// Create inserts the order and its lines in one statement batch.
func (r *Repository) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.New("order is nil")
	}
	record := toRecord(order)
	record.ID = 0
	if record.OrderDate.IsZero() {
		record.OrderDate = time.Now().UTC()
	}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	query := r.db.WithContext(ctx)
	if r.rowLocks {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var record orderRecord
	if err := query.First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	if err := r.db.WithContext(ctx).Where("order_id = ?", id).Order("id ASC").Find(&record.Lines).Error; err != nil {
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.Status) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Model(&orderRecord{}).Where("id = ?", id).Update("status", string(status))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func (r *Repository) List(ctx context.Context, filter ports.ListFilter) ([]*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	query := r.db.WithContext(ctx).Model(&orderRecord{})
	if len(filter.Statuses) > 0 {
		statuses := make([]string, 0, len(filter.Statuses))
		for _, s := range filter.Statuses {
			statuses = append(statuses, string(s))
		}
		query = query.Where("status IN ?", statuses)
	}
	if filter.DueFrom != nil {
		query = query.Where("due_date >= ?", *filter.DueFrom)
	}
	if filter.DueTo != nil {
		query = query.Where("due_date <= ?", *filter.DueTo)
	}
	var records []orderRecord
	if err := query.Order("id ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return []*domain.Order{}, nil
	}

	ids := make([]int64, 0, len(records))
	for _, rec := range records {
		ids = append(ids, rec.ID)
	}
	var lines []lineRecord
	if err := r.db.WithContext(ctx).Where("order_id IN ?", ids).Order("id ASC").Find(&lines).Error; err != nil {
		return nil, err
	}
	byOrder := make(map[int64][]lineRecord, len(records))
	for _, line := range lines {
		byOrder[line.OrderID] = append(byOrder[line.OrderID], line)
	}

	orders := make([]*domain.Order, 0, len(records))
	for i := range records {
		records[i].Lines = byOrder[records[i].ID]
		orders = append(orders, records[i].toDomain())
	}
	return orders, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres order repository not configured")
	}
	return nil
}

func toRecord(order *domain.Order) orderRecord {
	record := orderRecord{
		ID:         order.ID,
		CustomerID: order.CustomerID,
		OrderDate:  order.OrderDate,
		DueDate:    order.DueDate,
		Status:     string(order.Status),
		Total:      order.Total,
		Costs:      order.Costs,
		Lines:      make([]lineRecord, 0, len(order.Lines)),
	}
	for _, line := range order.Lines {
		record.Lines = append(record.Lines, lineRecord{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			Price:     line.Price,
			Cost:      line.Cost,
		})
	}
	return record
}

func (r orderRecord) toDomain() *domain.Order {
	order := &domain.Order{
		ID:         r.ID,
		CustomerID: r.CustomerID,
		OrderDate:  r.OrderDate,
		DueDate:    r.DueDate,
		Status:     domain.Status(r.Status),
		Total:      r.Total,
		Costs:      r.Costs,
		UpdatedAt:  r.UpdatedAt,
		Lines:      make([]domain.Line, 0, len(r.Lines)),
	}
	for _, line := range r.Lines {
		order.Lines = append(order.Lines, domain.Line{
			ID:        line.ID,
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			Price:     line.Price,
			Cost:      line.Cost,
		})
	}
	return order
}
