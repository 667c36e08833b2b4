package repository

import (
	"database/sql"
	"fmt"

	"gopkg.in/yaml.v3"

	"quickstart/internal/logging"
)

// Payloads are stored as YAML text: unlike JSON it round-trips integers as
// integers, which the composer depends on when emitting numeric settings.

// SaveSection upserts one (name, section) row. Writes replace the whole
// record; last write wins.
func (s *Repository) SaveSection(rec SectionRecord) error {
	encoded, err := yaml.Marshal(rec.Payload)
	if err != nil {
		return fmt.Errorf("failed to encode section payload: %w", err)
	}

	query, args, err := s.Builder.
		Insert("section_data").
		Columns("name", "section", "validated", "user_entered", "data").
		Values(rec.Name, rec.Section, rec.Validated, rec.UserEntered, string(encoded)).
		Suffix(`ON CONFLICT(name, section) DO UPDATE SET
			validated = excluded.validated,
			user_entered = excluded.user_entered,
			data = excluded.data`).
		ToSql()
	if err != nil {
		return err
	}

	_, err = s.DB.Exec(query, args...)
	return err
}

// GetSection fetches one (name, section) row. A missing row is not an
// error: the zero flags and a nil payload are returned so the wizard can
// fall back to template defaults.
func (s *Repository) GetSection(name, section string) (SectionRecord, error) {
	rec := SectionRecord{Name: name, Section: section}

	query, args, err := s.Builder.
		Select("validated", "user_entered", "data").
		From("section_data").
		Where("name = ? AND section = ?", name, section).
		ToSql()
	if err != nil {
		return rec, err
	}

	var data sql.NullString
	err = s.DB.QueryRow(query, args...).Scan(&rec.Validated, &rec.UserEntered, &data)
	if err == sql.ErrNoRows {
		return rec, nil
	}
	if err != nil {
		return rec, err
	}

	if data.Valid && data.String != "" {
		payload := map[string]interface{}{}
		if err := yaml.Unmarshal([]byte(data.String), &payload); err != nil {
			// A corrupted row degrades to "no data" rather than wedging a step.
			logging.Log.Warnf("Discarding unreadable payload for %s/%s: %v", name, section, err)
			return SectionRecord{Name: name, Section: section}, nil
		}
		rec.Payload = payload
	}
	return rec, nil
}

// ListSections returns every stored section of one configuration, ordered
// by section name. Rows with unreadable payloads are skipped.
func (s *Repository) ListSections(name string) ([]SectionRecord, error) {
	query, args, err := s.Builder.
		Select("section", "validated", "user_entered", "data").
		From("section_data").
		Where("name = ?", name).
		OrderBy("section ASC").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]SectionRecord, 0)
	for rows.Next() {
		rec := SectionRecord{Name: name}
		var data sql.NullString
		if err := rows.Scan(&rec.Section, &rec.Validated, &rec.UserEntered, &data); err != nil {
			return nil, err
		}
		if data.Valid && data.String != "" {
			payload := map[string]interface{}{}
			if err := yaml.Unmarshal([]byte(data.String), &payload); err != nil {
				logging.Log.Warnf("Skipping unreadable payload for %s/%s: %v", name, rec.Section, err)
				continue
			}
			rec.Payload = payload
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// DeleteSection removes one stored section of a configuration.
func (s *Repository) DeleteSection(name, section string) error {
	query, args, err := s.Builder.
		Delete("section_data").
		Where("name = ? AND section = ?", name, section).
		ToSql()
	if err != nil {
		return err
	}
	_, err = s.DB.Exec(query, args...)
	return err
}

// DeleteConfig removes every stored section of a configuration.
func (s *Repository) DeleteConfig(name string) error {
	query, args, err := s.Builder.
		Delete("section_data").
		Where("name = ?", name).
		ToSql()
	if err != nil {
		return err
	}
	_, err = s.DB.Exec(query, args...)
	return err
}

// ListConfigNames returns the distinct configuration names, ordered.
func (s *Repository) ListConfigNames() ([]string, error) {
	rows, err := s.DB.Query("SELECT DISTINCT name FROM section_data ORDER BY name ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}
