package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// Sentinel errors surfaced by the locked check-and-set operations. They
// describe what the transaction observed, not how a caller should phrase
// it; the module layer owns the public wording.
var (
	ErrSlotTaken      = errors.New("slot already taken")
	ErrAlreadyInEvent = errors.New("performer already holds a slot in this event")
	ErrNotOwner       = errors.New("resource held by a different performer")
	ErrShowcaseSlot   = errors.New("showcase slots are host-assigned")
	ErrOverlap        = errors.New("appointment overlaps an existing one")
	ErrLineupTooLong  = errors.New("more performers than slots")
	ErrCancelFinal    = errors.New("appointment already completed")
	ErrLockTimeout    = errors.New("lock wait timed out")
)

// translateErr rewrites store-level lock/serialization failures into
// ErrLockTimeout so callers can retry, and unique-index violations into
// the conflict they guard against. Everything else passes through.
func translateErr(err error, onUnique error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			if onUnique != nil {
				return onUnique
			}
		case "40001", "40P01", "55P03":
			return ErrLockTimeout
		}
		return err
	}

	// modernc sqlite reports writer contention as a plain busy/locked error
	// and unique violations as a constraint message
	msg := err.Error()
	if strings.Contains(msg, "database is locked") || strings.Contains(msg, "SQLITE_BUSY") {
		return ErrLockTimeout
	}
	if onUnique != nil && strings.Contains(msg, "UNIQUE constraint failed") {
		return onUnique
	}

	return err
}
