package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"challanmart/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the subset of pgxpool.Pool the repositories need. pgxmock
// satisfies it in tests.
type DBTX interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	GetByDCNo(ctx context.Context, dcNo int64) (*models.Order, error)
	List(ctx context.Context, limit, offset int) ([]*models.Order, error)
	Count(ctx context.Context) (int, error)
	ListUnarchived(ctx context.Context, limit int) ([]*models.Order, error)
	MarkArchived(ctx context.Context, dcNo int64) error
}

type orderRepo struct {
	db DBTX
}

func NewOrderRepo(db DBTX) OrderRepository {
	return &orderRepo{db: db}
}

const orderColumns = `id, dc_no, invoice_no, party_dc_no, consignee, e_way_no, party_gstin, hsn_code, product_description, vehicle_no, items, handling_charges, net_total, cgst, sgst, gross_total, total_weight, challan_date, party_dc_date, archived_at, created_at, updated_at`

// Create allocates the next document number and inserts the order in one
// transaction. The sequence row lock serializes concurrent creations, so
// two writers can never observe the same number. The assigned number is
// written back to DCNo, InvoiceNo and PartyDCNo.
func (r *orderRepo) Create(ctx context.Context, order *models.Order) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	seqQuery := `
		WITH upsert AS (
			INSERT INTO dc_sequences (id, last_number)
			VALUES (1, 1)
			ON CONFLICT (id)
			DO UPDATE SET
				last_number = dc_sequences.last_number + 1,
				updated_at = NOW()
			RETURNING last_number
		)
		SELECT last_number FROM upsert;
	`

	var dcNo int64
	if err := tx.QueryRow(ctx, seqQuery).Scan(&dcNo); err != nil {
		return fmt.Errorf("failed to allocate dc_no: %w", err)
	}

	order.DCNo = dcNo
	order.InvoiceNo = dcNo
	order.PartyDCNo = dcNo

	itemsJSON, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("failed to encode items: %w", err)
	}

	insertQuery := `
		INSERT INTO orders (id, dc_no, invoice_no, party_dc_no, consignee, e_way_no, party_gstin, hsn_code, product_description, vehicle_no, items, handling_charges, net_total, cgst, sgst, gross_total, total_weight, challan_date, party_dc_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, NOW(), NOW())
	`
	_, err = tx.Exec(ctx, insertQuery,
		order.ID, order.DCNo, order.InvoiceNo, order.PartyDCNo, order.To,
		order.EWayNo, order.PartyGSTIN, order.HSNCode, order.ProductDescription,
		order.VehicleNo, itemsJSON, order.HandlingCharges, order.NetTotal,
		order.CGST, order.SGST, order.GrossTotal, order.TotalWeight,
		order.Date, order.PartyDCDate)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// GetByDCNo returns (nil, nil) when no order carries the number.
func (r *orderRepo) GetByDCNo(ctx context.Context, dcNo int64) (*models.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE dc_no = $1
	`
	order, err := scanOrder(r.db.QueryRow(ctx, query, dcNo))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return order, nil
}

// List returns orders in insertion order, which is dc_no order.
func (r *orderRepo) List(ctx context.Context, limit, offset int) ([]*models.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		ORDER BY dc_no ASC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectOrders(rows)
}

func (r *orderRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM orders`).Scan(&count)
	return count, err
}

// ListUnarchived returns orders whose PDF has not been uploaded to object
// storage yet, oldest first.
func (r *orderRepo) ListUnarchived(ctx context.Context, limit int) ([]*models.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE archived_at IS NULL
		ORDER BY dc_no ASC
		LIMIT $1
	`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectOrders(rows)
}

func (r *orderRepo) MarkArchived(ctx context.Context, dcNo int64) error {
	query := `
		UPDATE orders
		SET archived_at = NOW(), updated_at = NOW()
		WHERE dc_no = $1
	`
	_, err := r.db.Exec(ctx, query, dcNo)
	return err
}

func scanOrder(row pgx.Row) (*models.Order, error) {
	order := &models.Order{}
	var itemsJSON []byte
	err := row.Scan(&order.ID, &order.DCNo, &order.InvoiceNo, &order.PartyDCNo,
		&order.To, &order.EWayNo, &order.PartyGSTIN, &order.HSNCode,
		&order.ProductDescription, &order.VehicleNo, &itemsJSON,
		&order.HandlingCharges, &order.NetTotal, &order.CGST, &order.SGST,
		&order.GrossTotal, &order.TotalWeight, &order.Date, &order.PartyDCDate,
		&order.ArchivedAt, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(itemsJSON, &order.Items); err != nil {
		return nil, fmt.Errorf("failed to decode items for dc_no %d: %w", order.DCNo, err)
	}
	return order, nil
}

func collectOrders(rows pgx.Rows) ([]*models.Order, error) {
	var orders []*models.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}
