package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/julianstephens/countdownctl/internal/constants"
	"github.com/julianstephens/countdownctl/internal/models"
	"github.com/julianstephens/countdownctl/internal/storage"
)

const countdownColumns = "uid, name, target_date, image_path, active"

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanCountdown(row scanner) (models.Countdown, error) {
	var cd models.Countdown
	if err := row.Scan(&cd.UID, &cd.Name, &cd.TargetDate, &cd.ImagePath, &cd.Active); err != nil {
		return models.Countdown{}, err
	}
	return cd, nil
}

func (s *Store) ListCountdowns() ([]models.Countdown, error) {
	rows, err := s.db.Query("SELECT " + countdownColumns + " FROM countdowns ORDER BY position")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []models.Countdown{}
	for rows.Next() {
		cd, err := scanCountdown(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, cd)
	}
	return list, rows.Err()
}

func (s *Store) GetCountdown(uid string) (models.Countdown, error) {
	row := s.db.QueryRow("SELECT "+countdownColumns+" FROM countdowns WHERE uid = ?", uid)
	cd, err := scanCountdown(row)
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

	var count int
	var exists bool
	if err := tx.QueryRow("SELECT COUNT(*), COALESCE(SUM(uid = ?), 0) > 0 FROM countdowns", cd.UID).Scan(&count, &exists); err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: %s", storage.ErrDuplicateUID, cd.UID)
	}
	if count >= constants.MaxCountdowns {
		return storage.ErrLimitReached
	}

	_, err = tx.Exec(`
		INSERT INTO countdowns (uid, name, target_date, image_path, active, position)
		VALUES (?, ?, ?, ?, ?, (SELECT COALESCE(MAX(position), 0) + 1 FROM countdowns))`,
		cd.UID, cd.Name, cd.TargetDate, cd.ImagePath, cd.Active)
	if err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Store) UpdateCountdown(uid string, cd models.Countdown) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var found int
	if err := tx.QueryRow("SELECT COUNT(*) FROM countdowns WHERE uid = ?", uid).Scan(&found); err != nil {
		return err
	}
	if found == 0 {
		return fmt.Errorf("%w: %s", storage.ErrNotFound, uid)
	}

	if cd.UID != uid {
		var taken int
		if err := tx.QueryRow("SELECT COUNT(*) FROM countdowns WHERE uid = ?", cd.UID).Scan(&taken); err != nil {
			return err
		}
		if taken > 0 {
			return fmt.Errorf("%w: %s", storage.ErrDuplicateUID, cd.UID)
		}
	}

	_, err = tx.Exec(`
		UPDATE countdowns SET uid = ?, name = ?, target_date = ?, image_path = ?, active = ?
		WHERE uid = ?`,
		cd.UID, cd.Name, cd.TargetDate, cd.ImagePath, cd.Active, uid)
	if err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Store) DeleteCountdown(uid string) error {
	res, err := s.db.Exec("DELETE FROM countdowns WHERE uid = ?", uid)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", storage.ErrNotFound, uid)
	}
	return nil
}
