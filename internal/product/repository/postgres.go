package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/carhub/catalog-service/internal/model"
	"github.com/carhub/catalog-service/internal/product/dto"
	"github.com/carhub/catalog-service/pkg/db"
)

type PGRepository struct {
	conn *db.Postgres
}

func NewPGRepository(conn *db.Postgres) *PGRepository {
	return &PGRepository{conn: conn}
}

func (r *PGRepository) Create(ctx context.Context, p *model.Product) error {
	dbx, err := r.conn.Get(ctx)
	if err != nil {
		return err
	}

	query := `
        INSERT INTO products (
            id, name, price, origin_country, rating, product_image,
            available_quantity, created_by, created_at, updated_at
        )
        VALUES (
            :id, :name, :price, :origin_country, :rating, :product_image,
            :available_quantity, :created_by, :created_at, :updated_at
        )
    `
	_, err = dbx.NamedExecContext(ctx, query, p)
	return err
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Product, error) {
	dbx, err := r.conn.Get(ctx)
	if err != nil {
		return nil, err
	}

	var product model.Product
	query := `SELECT * FROM products WHERE id = $1 LIMIT 1`
	err = dbx.GetContext(ctx, &product, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.ProductFilters) ([]model.Product, error) {
	dbx, err := r.conn.Get(ctx)
	if err != nil {
		return nil, err
	}

	conditions := []string{}
	args := map[string]interface{}{}

	if f.SearchQuery != "" {
		conditions = append(conditions, "name ILIKE :search")
		args["search"] = "%" + f.SearchQuery + "%"
	}
	if f.CreatedBy != "" {
		conditions = append(conditions, "created_by = :created_by")
		args["created_by"] = f.CreatedBy
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	orderBy := "created_at ASC"
	if f.Latest {
		orderBy = "created_at DESC"
	}

	query := fmt.Sprintf("SELECT * FROM products%s ORDER BY %s", whereClause, orderBy)
	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", f.Limit)
	}

	nstmt, err := dbx.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer nstmt.Close()

	products := []model.Product{}
	if err := nstmt.SelectContext(ctx, &products, args); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *PGRepository) UpdateOwned(ctx context.Context, id, owner string, patch *dto.UpdateProductInput) (bool, error) {
	dbx, err := r.conn.Get(ctx)
	if err != nil {
		return false, err
	}

	sets := []string{"updated_at = now()"}
	args := map[string]interface{}{
		"id":         id,
		"created_by": owner,
	}

	if patch.Name != nil {
		sets = append(sets, "name = :name")
		args["name"] = *patch.Name
	}
	if patch.Price != nil {
		sets = append(sets, "price = :price")
		args["price"] = *patch.Price
	}
	if patch.OriginCountry != nil {
		sets = append(sets, "origin_country = :origin_country")
		args["origin_country"] = *patch.OriginCountry
	}
	if patch.Rating != nil {
		sets = append(sets, "rating = :rating")
		args["rating"] = *patch.Rating
	}
	if patch.ProductImage != nil {
		sets = append(sets, "product_image = :product_image")
		args["product_image"] = *patch.ProductImage
	}
	if patch.AvailableQuantity != nil {
		sets = append(sets, "available_quantity = :available_quantity")
		args["available_quantity"] = *patch.AvailableQuantity
	}

	query := fmt.Sprintf(
		"UPDATE products SET %s WHERE id = :id AND created_by = :created_by",
		strings.Join(sets, ", "),
	)

	res, err := dbx.NamedExecContext(ctx, query, args)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (r *PGRepository) DeleteOwned(ctx context.Context, id, owner string) (bool, error) {
	dbx, err := r.conn.Get(ctx)
	if err != nil {
		return false, err
	}

	res, err := dbx.ExecContext(ctx,
		"DELETE FROM products WHERE id = $1 AND created_by = $2", id, owner)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}
