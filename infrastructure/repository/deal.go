package repository

import (
	"context"
	"database/sql"
	"strconv"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/vfg2006/cre-deals-api/infrastructure/database/postgres"
	"github.com/vfg2006/cre-deals-api/internal/domain"
)

const dealsTable = "deals"

// ErrNotFound é retornado quando o registro não existe
var ErrNotFound = errors.New("registro não encontrado")

var dealColumns = []string{
	"id::text", "name", "address", "city", "property_type", "status", "priority",
	"price", "cap_rate", "irr", "location", "notes", "created_at", "updated_at",
}

type DealRepository interface {
	ListDeals(ctx context.Context, filters domain.DealFilters) ([]domain.Deal, error)
	GetDeal(ctx context.Context, id string) (*domain.Deal, error)
	CreateDeal(ctx context.Context, deal *domain.Deal) (*domain.Deal, error)
	UpdateDeal(ctx context.Context, id string, patch domain.DealPatch) (*domain.Deal, error)
	DeleteDeal(ctx context.Context, id string) error

	// Update e FetchAll atendem o reconciliador do kanban
	Update(ctx context.Context, id string, patch domain.DealPatch) error
	FetchAll(ctx context.Context) ([]domain.Deal, error)
}

type dealRepository struct {
	conn postgres.Queryer
}

func NewDealRepository(conn postgres.Queryer) DealRepository {
	return &dealRepository{
		conn: conn,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDeal(row rowScanner) (domain.Deal, error) {
	var deal domain.Deal
	err := row.Scan(
		&deal.ID,
		&deal.Name,
		&deal.Address,
		&deal.City,
		&deal.PropertyType,
		&deal.Status,
		&deal.Priority,
		&deal.Price,
		&deal.CapRate,
		&deal.IRR,
		&deal.Location,
		&deal.Notes,
		&deal.CreatedAt,
		&deal.UpdatedAt,
	)
	return deal, err
}

// parseDealID rejeita ids não numéricos antes de chegarem ao banco (coluna BIGSERIAL)
func parseDealID(id string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(id), 10, 64)
	if err != nil || n <= 0 {
		return 0, errors.Wrapf(ErrNotFound, "deal id inválido %q", id)
	}
	return n, nil
}

func buildListDealsQuery(filters domain.DealFilters) squirrel.SelectBuilder {
	query := squirrel.
		Select(dealColumns...).
		From(dealsTable).
		OrderBy("created_at DESC", "id DESC").
		PlaceholderFormat(squirrel.Dollar)

	if filters.Status != nil {
		query = query.Where(squirrel.Eq{"status": string(*filters.Status)})
	}

	if filters.PropertyType != "" {
		query = query.Where(squirrel.Eq{"property_type": filters.PropertyType})
	}

	if search := strings.TrimSpace(filters.Search); search != "" {
		pattern := "%" + escapeLike(search) + "%"
		query = query.Where(squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"address": pattern},
			squirrel.ILike{"city": pattern},
			squirrel.ILike{"property_type": pattern},
		})
	}

	return query
}

// likeEscaper escapa os curingas do ILIKE; a barra invertida é o escape padrão do Postgres
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// escapeLike faz a busca textual tratar % e _ como caracteres literais
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func (r *dealRepository) ListDeals(ctx context.Context, filters domain.DealFilters) ([]domain.Deal, error) {
	dealsSQL, dealsArgs, err := buildListDealsQuery(filters).ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir consulta de negócios")
	}

	rows, err := r.conn.QueryContext(ctx, dealsSQL, dealsArgs...)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao consultar negócios")
	}
	defer rows.Close()

	deals := make([]domain.Deal, 0)
	for rows.Next() {
		deal, err := scanDeal(rows)
		if err != nil {
			return nil, errors.Wrap(err, "erro ao processar negócio")
		}
		deals = append(deals, deal)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "erro durante iteração de negócios")
	}

	return deals, nil
}

func (r *dealRepository) GetDeal(ctx context.Context, id string) (*domain.Deal, error) {
	dealID, err := parseDealID(id)
	if err != nil {
		return nil, err
	}

	dealSQL, dealArgs, err := squirrel.
		Select(dealColumns...).
		From(dealsTable).
		Where(squirrel.Eq{"id": dealID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir consulta de negócio")
	}

	deal, err := scanDeal(r.conn.QueryRowContext(ctx, dealSQL, dealArgs...))
	if err == sql.ErrNoRows {
		return nil, errors.Wrapf(ErrNotFound, "deal %s", id)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "erro ao buscar negócio %s", id)
	}

	return &deal, nil
}

func buildInsertDealQuery(deal *domain.Deal) squirrel.InsertBuilder {
	return squirrel.
		Insert(dealsTable).
		Columns("name", "address", "city", "property_type", "status", "priority",
			"price", "cap_rate", "irr", "location", "notes").
		Values(deal.Name, deal.Address, deal.City, deal.PropertyType, string(deal.Status), string(deal.Priority),
			deal.Price, deal.CapRate, deal.IRR, deal.Location, deal.Notes).
		Suffix("RETURNING " + strings.Join(dealColumns, ", ")).
		PlaceholderFormat(squirrel.Dollar)
}

func (r *dealRepository) CreateDeal(ctx context.Context, deal *domain.Deal) (*domain.Deal, error) {
	dealSQL, dealArgs, err := buildInsertDealQuery(deal).ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir inserção de negócio")
	}

	created, err := scanDeal(r.conn.QueryRowContext(ctx, dealSQL, dealArgs...))
	if err != nil {
		return nil, errors.Wrap(err, "erro ao criar negócio")
	}

	return &created, nil
}

// buildUpdateDealQuery aplica somente os campos informados no patch
func buildUpdateDealQuery(id int64, patch domain.DealPatch) squirrel.UpdateBuilder {
	query := squirrel.
		Update(dealsTable).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(dealColumns, ", ")).
		PlaceholderFormat(squirrel.Dollar)

	if patch.Name != nil {
		query = query.Set("name", *patch.Name)
	}
	if patch.Address != nil {
		query = query.Set("address", *patch.Address)
	}
	if patch.City != nil {
		query = query.Set("city", *patch.City)
	}
	if patch.PropertyType != nil {
		query = query.Set("property_type", *patch.PropertyType)
	}
	if patch.Status != nil {
		query = query.Set("status", string(*patch.Status))
	}
	if patch.Priority != nil {
		query = query.Set("priority", string(*patch.Priority))
	}
	if patch.Price != nil {
		query = query.Set("price", *patch.Price)
	}
	if patch.CapRate != nil {
		query = query.Set("cap_rate", *patch.CapRate)
	}
	if patch.IRR != nil {
		query = query.Set("irr", *patch.IRR)
	}
	if patch.Location != nil {
		query = query.Set("location", *patch.Location)
	}
	if patch.Notes != nil {
		query = query.Set("notes", *patch.Notes)
	}

	return query
}

func (r *dealRepository) UpdateDeal(ctx context.Context, id string, patch domain.DealPatch) (*domain.Deal, error) {
	dealID, err := parseDealID(id)
	if err != nil {
		return nil, err
	}

	dealSQL, dealArgs, err := buildUpdateDealQuery(dealID, patch).ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir atualização de negócio")
	}

	updated, err := scanDeal(r.conn.QueryRowContext(ctx, dealSQL, dealArgs...))
	if err == sql.ErrNoRows {
		return nil, errors.Wrapf(ErrNotFound, "deal %s", id)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "erro ao atualizar negócio %s", id)
	}

	return &updated, nil
}

func (r *dealRepository) DeleteDeal(ctx context.Context, id string) error {
	dealID, err := parseDealID(id)
	if err != nil {
		return err
	}

	dealSQL, dealArgs, err := squirrel.
		Delete(dealsTable).
		Where(squirrel.Eq{"id": dealID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "erro ao construir remoção de negócio")
	}

	result, err := r.conn.ExecContext(ctx, dealSQL, dealArgs...)
	if err != nil {
		return errors.Wrapf(err, "erro ao remover negócio %s", id)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "erro ao verificar remoção")
	}
	if affected == 0 {
		return errors.Wrapf(ErrNotFound, "deal %s", id)
	}

	return nil
}

func (r *dealRepository) Update(ctx context.Context, id string, patch domain.DealPatch) error {
	_, err := r.UpdateDeal(ctx, id, patch)
	return err
}

func (r *dealRepository) FetchAll(ctx context.Context) ([]domain.Deal, error) {
	return r.ListDeals(ctx, domain.DealFilters{})
}
