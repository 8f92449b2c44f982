package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	pq "github.com/lib/pq"

	"github.com/julianstephens/countdownctl/internal/constants"
	"github.com/julianstephens/countdownctl/internal/models"
	"github.com/julianstephens/countdownctl/internal/storage"
)

const countdownColumns = "uid, name, target_date, image_path, active"

// uniqueViolation is the SQLSTATE for a primary key clash.
const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

func (s *Store) ListCountdowns() ([]models.Countdown, error) {
	rows, err := s.db.Query("SELECT " + countdownColumns + " FROM countdowns ORDER BY position")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []models.Countdown{}
	for rows.Next() {
		var cd models.Countdown
		if err := rows.Scan(&cd.UID, &cd.Name, &cd.TargetDate, &cd.ImagePath, &cd.Active); err != nil {
			return nil, err
		}
		list = append(list, cd)
	}
	return list, rows.Err()
}

func (s *Store) GetCountdown(uid string) (models.Countdown, error) {
	var cd models.Countdown
	err := s.db.QueryRow("SELECT "+countdownColumns+" FROM countdowns WHERE uid = $1", uid).
		Scan(&cd.UID, &cd.Name, &cd.TargetDate, &cd.ImagePath, &cd.Active)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Countdown{}, storage.ErrNotFound
	}
	return cd, err
}

func (s *Store) AddCountdown(cd models.Countdown) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Serialize writers so the count check and the insert see the same rows.
	if _, err := tx.Exec("LOCK TABLE countdowns IN SHARE ROW EXCLUSIVE MODE"); err != nil {
		return err
	}

	var count int
	if err := tx.QueryRow("SELECT COUNT(*) FROM countdowns").Scan(&count); err != nil {
		return err
	}
	if count >= constants.MaxCountdowns {
		return storage.ErrLimitReached
	}

	_, err = tx.Exec(`
		INSERT INTO countdowns (uid, name, target_date, image_path, active, position)
		VALUES ($1, $2, $3, $4, $5, (SELECT COALESCE(MAX(position), 0) + 1 FROM countdowns))`,
		cd.UID, cd.Name, cd.TargetDate, cd.ImagePath, cd.Active)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %s", storage.ErrDuplicateUID, cd.UID)
	}
	if err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Store) UpdateCountdown(uid string, cd models.Countdown) error {
	res, err := s.db.Exec(`
		UPDATE countdowns SET uid = $1, name = $2, target_date = $3, image_path = $4, active = $5
		WHERE uid = $6`,
		cd.UID, cd.Name, cd.TargetDate, cd.ImagePath, cd.Active, uid)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %s", storage.ErrDuplicateUID, cd.UID)
	}
	if err != nil {
		return err
	}
	return expectOneRow(res, uid)
}

func (s *Store) DeleteCountdown(uid string) error {
	res, err := s.db.Exec("DELETE FROM countdowns WHERE uid = $1", uid)
	if err != nil {
		return err
	}
	return expectOneRow(res, uid)
}

func expectOneRow(res sql.Result, uid string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", storage.ErrNotFound, uid)
	}
	return nil
}
