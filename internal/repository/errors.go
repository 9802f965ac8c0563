package repository

import (
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"

	"GearGodAPI/internal/model"
)

// notFound maps pgx.ErrNoRows to model.ErrNotFound for the named entity.
func notFound(err error, entity string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return errors.Wrap(model.ErrNotFound, entity)
	}
	return errors.Wrapf(err, "query %s", entity)
}
