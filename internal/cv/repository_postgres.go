package cv

import (
	"database/sql"
)

// Postgres repository stores CVs in a dedicated table with a foreign key to
// users. The experiences and education lists live in JSON-encoded TEXT
// columns, not in separate tables; the whole list is replaced on every save.

type PostgresRepository struct {
	db *sql.DB
}

const (
	cvColumns = `id, user_id, title, full_name, professional_title, email, phone, location, professional_summary, skills, experiences, education, created_at, updated_at`

	insertCVQuery = `
		INSERT INTO cvs (user_id, title, full_name, professional_title, email, phone, location, professional_summary, skills, experiences, education, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
		RETURNING id
	`
	updateCVQuery = `
		UPDATE cvs
		SET title=$3, full_name=$4, professional_title=$5, email=$6, phone=$7, location=$8, professional_summary=$9, skills=$10, experiences=$11, education=$12, updated_at=$13
		WHERE user_id=$1 AND id=$2
	`
	deleteCVQuery = `DELETE FROM cvs WHERE user_id=$1 AND id=$2`

	getCVByIDQuery = `SELECT ` + cvColumns + ` FROM cvs WHERE user_id=$1 AND id=$2`

	listCVsByUserQuery = `SELECT ` + cvColumns + ` FROM cvs WHERE user_id=$1 ORDER BY created_at DESC, id DESC`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCV(row rowScanner) (CV, error) {
	var (
		c           CV
		experiences string
		education   string
	)
	if err := row.Scan(
		&c.ID, &c.UserID, &c.Title, &c.FullName, &c.ProfessionalTitle,
		&c.Email, &c.Phone, &c.Location, &c.Summary, &c.Skills,
		&experiences, &education, &c.CreatedAt, &c.UpdatedAt,
	); err != nil {
		return CV{}, err
	}
	c.Experiences = decodeExperiences(experiences)
	c.Education = decodeEducation(education)
	return c, nil
}

func (r *PostgresRepository) Create(cv CV) (CV, error) {
	err := r.db.QueryRow(insertCVQuery,
		cv.UserID, cv.Title, cv.FullName, cv.ProfessionalTitle,
		cv.Email, cv.Phone, cv.Location, cv.Summary, cv.Skills,
		encodeExperiences(cv.Experiences), encodeEducation(cv.Education),
		cv.CreatedAt, cv.UpdatedAt,
	).Scan(&cv.ID)
	if err != nil {
		return CV{}, err
	}
	return cv, nil
}

// Update filters by both user_id and id, so an update aimed at another
// owner's CV affects zero rows and comes back as ErrNotFound.
func (r *PostgresRepository) Update(userID, cvID int, cv CV) (CV, error) {
	res, err := r.db.Exec(updateCVQuery,
		userID, cvID,
		cv.Title, cv.FullName, cv.ProfessionalTitle,
		cv.Email, cv.Phone, cv.Location, cv.Summary, cv.Skills,
		encodeExperiences(cv.Experiences), encodeEducation(cv.Education),
		cv.UpdatedAt,
	)
	if err != nil {
		return CV{}, err
	}
	cnt, _ := res.RowsAffected()
	if cnt == 0 {
		return CV{}, ErrNotFound
	}
	return r.GetByID(userID, cvID)
}

func (r *PostgresRepository) Delete(userID, cvID int) error {
	res, err := r.db.Exec(deleteCVQuery, userID, cvID)
	if err != nil {
		return err
	}
	cnt, _ := res.RowsAffected()
	if cnt == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) GetByID(userID, cvID int) (CV, error) {
	c, err := scanCV(r.db.QueryRow(getCVByIDQuery, userID, cvID))
	if err != nil {
		if err == sql.ErrNoRows {
			return CV{}, ErrNotFound
		}
		return CV{}, err
	}
	return c, nil
}

func (r *PostgresRepository) ListByUser(userID int) ([]CV, error) {
	rows, err := r.db.Query(listCVsByUserQuery, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]CV, 0)
	for rows.Next() {
		c, err := scanCV(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}

	return out, rows.Err()
}
