package httperr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

func IsAnyBusiness(err error) bool {
	var be BusinessError
	return errors.As(err, &be)
}

// IsExclusionConflict reconhece a violação da constraint de exclusão do
// Postgres (23P01), o backstop do banco contra duas criações
// concorrentes sobrepostas para o mesmo profissional.
func IsExclusionConflict(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23P01"
	}
	return false
}
