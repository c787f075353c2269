package repository

import (
	"context"

	"github.com/Masterminds/squirrel"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/vfg2006/cre-deals-api/infrastructure/database/postgres"
	"github.com/vfg2006/cre-deals-api/internal/domain"
)

const valuationsTable = "valuations"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type ValuationRepository interface {
	SaveValuation(ctx context.Context, valuation *domain.Valuation) (*domain.Valuation, error)
	ListValuations(ctx context.Context, dealID *string) ([]domain.Valuation, error)
	CountValuations(ctx context.Context) (int, error)
	DeleteValuation(ctx context.Context, id string) error
}

type valuationRepository struct {
	conn postgres.Queryer
}

func NewValuationRepository(conn postgres.Queryer) ValuationRepository {
	return &valuationRepository{
		conn: conn,
	}
}

func buildInsertValuationQuery(valuation *domain.Valuation) (squirrel.InsertBuilder, error) {
	assumptions, err := json.Marshal(valuation.Assumptions)
	if err != nil {
		return squirrel.InsertBuilder{}, errors.Wrap(err, "erro ao serializar premissas")
	}

	return squirrel.
		Insert(valuationsTable).
		Columns("id", "deal_id", "name", "property_value", "annual_income", "annual_expenses",
			"cap_rate", "assumptions", "created_by").
		Values(valuation.ID, valuation.DealID, valuation.Name, valuation.PropertyValue, valuation.AnnualIncome,
			valuation.AnnualExpenses, valuation.CapRate, string(assumptions), valuation.CreatedBy).
		Suffix("RETURNING created_at").
		PlaceholderFormat(squirrel.Dollar), nil
}

func (r *valuationRepository) SaveValuation(ctx context.Context, valuation *domain.Valuation) (*domain.Valuation, error) {
	query, err := buildInsertValuationQuery(valuation)
	if err != nil {
		return nil, err
	}

	valuationSQL, valuationArgs, err := query.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir inserção de avaliação")
	}

	if err := r.conn.QueryRowContext(ctx, valuationSQL, valuationArgs...).Scan(&valuation.CreatedAt); err != nil {
		return nil, errors.Wrap(err, "erro ao salvar avaliação")
	}

	return valuation, nil
}

func buildListValuationsQuery(dealID *string) squirrel.SelectBuilder {
	query := squirrel.
		Select("id", "deal_id::text", "name", "property_value", "annual_income", "annual_expenses",
			"cap_rate", "assumptions", "created_by", "created_at").
		From(valuationsTable).
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	if dealID != nil {
		query = query.Where(squirrel.Eq{"deal_id": *dealID})
	}

	return query
}

func (r *valuationRepository) ListValuations(ctx context.Context, dealID *string) ([]domain.Valuation, error) {
	if dealID != nil {
		if _, err := parseDealID(*dealID); err != nil {
			return []domain.Valuation{}, nil
		}
	}

	valuationsSQL, valuationsArgs, err := buildListValuationsQuery(dealID).ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir consulta de avaliações")
	}

	rows, err := r.conn.QueryContext(ctx, valuationsSQL, valuationsArgs...)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao consultar avaliações")
	}
	defer rows.Close()

	valuations := make([]domain.Valuation, 0)
	for rows.Next() {
		var (
			valuation   domain.Valuation
			assumptions []byte
		)
		if err := rows.Scan(
			&valuation.ID,
			&valuation.DealID,
			&valuation.Name,
			&valuation.PropertyValue,
			&valuation.AnnualIncome,
			&valuation.AnnualExpenses,
			&valuation.CapRate,
			&assumptions,
			&valuation.CreatedBy,
			&valuation.CreatedAt,
		); err != nil {
			return nil, errors.Wrap(err, "erro ao processar avaliação")
		}

		if len(assumptions) > 0 {
			if err := json.Unmarshal(assumptions, &valuation.Assumptions); err != nil {
				return nil, errors.Wrapf(err, "premissas inválidas na avaliação %s", valuation.ID)
			}
		}

		valuations = append(valuations, valuation)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "erro durante iteração de avaliações")
	}

	return valuations, nil
}

func (r *valuationRepository) CountValuations(ctx context.Context) (int, error) {
	countSQL, countArgs, err := squirrel.
		Select("COUNT(*)").
		From(valuationsTable).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, errors.Wrap(err, "erro ao construir contagem de avaliações")
	}

	var total int
	if err := r.conn.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return 0, errors.Wrap(err, "erro ao contar avaliações")
	}

	return total, nil
}

func (r *valuationRepository) DeleteValuation(ctx context.Context, id string) error {
	deleteSQL, deleteArgs, err := squirrel.
		Delete(valuationsTable).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "erro ao construir remoção de avaliação")
	}

	result, err := r.conn.ExecContext(ctx, deleteSQL, deleteArgs...)
	if err != nil {
		return errors.Wrapf(err, "erro ao remover avaliação %s", id)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "erro ao verificar remoção")
	}
	if affected == 0 {
		return errors.Wrapf(ErrNotFound, "valuation %s", id)
	}

	return nil
}
