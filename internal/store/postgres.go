// Package store provides the PostgreSQL implementation of the workflow
// EntityStore port. SQL lives inline next to the method that runs it; rows
// are written with RETURNING so the caller always gets the persisted state
// back, timestamps included.
package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	ierr "talenthub/pipeline-service/internal/errors"
	"talenthub/pipeline-service/internal/model"
)

// uniqueViolation is the PostgreSQL error code for a unique constraint hit.
const uniqueViolation = "23505"

// Postgres implements workflow.EntityStore over a pgxpool.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres returns a store backed by the given pool.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// ─── Candidate ───────────────────────────────────────────────────────────────

func (s *Postgres) GetCandidate(ctx context.Context, id string) (*model.Candidate, error) {
	var c model.Candidate
	err := s.pool.QueryRow(ctx,
		`SELECT id, name, email, phone, created_at, updated_at
		 FROM candidates WHERE id = $1`, id,
	).Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ierr.NotFound("candidate", id)
		}
		return nil, ierr.Store("getCandidate", err)
	}
	return &c, nil
}

func (s *Postgres) ListCandidates(ctx context.Context) ([]model.Candidate, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, email, phone, created_at, updated_at
		 FROM candidates ORDER BY name ASC`)
	if err != nil {
		return nil, ierr.Store("listCandidates", err)
	}
	defer rows.Close()

	out := make([]model.Candidate, 0)
	for rows.Next() {
		var c model.Candidate
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, ierr.Store("listCandidates scan", err)
		}
		out = append(out, c)
	}
	return out, nil
}

func (s *Postgres) InsertCandidate(ctx context.Context, c *model.Candidate) error {
	err := s.pool.QueryRow(ctx,
		`INSERT INTO candidates (name, email, phone)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at`,
		c.Name, c.Email, c.Phone,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ierr.Validation("candidate email %q already exists", c.Email)
		}
		return ierr.Store("insertCandidate", err)
	}
	return nil
}

// ─── JobPosting ──────────────────────────────────────────────────────────────

func (s *Postgres) GetJobPosting(ctx context.Context, id string) (*model.JobPosting, error) {
	var j model.JobPosting
	err := s.pool.QueryRow(ctx,
		`SELECT id, title, department, location, salary, description, status,
		        applicants, created_at, updated_at
		 FROM job_postings WHERE id = $1`, id,
	).Scan(&j.ID, &j.Title, &j.Department, &j.Location, &j.Salary,
		&j.Description, &j.Status, &j.Applicants, &j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ierr.NotFound("job posting", id)
		}
		return nil, ierr.Store("getJobPosting", err)
	}
	return &j, nil
}

func (s *Postgres) ListJobPostings(ctx context.Context) ([]model.JobPosting, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, title, department, location, salary, description, status,
		        applicants, created_at, updated_at
		 FROM job_postings ORDER BY created_at DESC`)
	if err != nil {
		return nil, ierr.Store("listJobPostings", err)
	}
	defer rows.Close()

	out := make([]model.JobPosting, 0)
	for rows.Next() {
		var j model.JobPosting
		if err := rows.Scan(&j.ID, &j.Title, &j.Department, &j.Location, &j.Salary,
			&j.Description, &j.Status, &j.Applicants, &j.CreatedAt, &j.UpdatedAt); err != nil {
			return nil, ierr.Store("listJobPostings scan", err)
		}
		out = append(out, j)
	}
	return out, nil
}

func (s *Postgres) InsertJobPosting(ctx context.Context, j *model.JobPosting) error {
	err := s.pool.QueryRow(ctx,
		`INSERT INTO job_postings (title, department, location, salary, description, status, applicants)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at, updated_at`,
		j.Title, j.Department, j.Location, j.Salary, j.Description, j.Status, j.Applicants,
	).Scan(&j.ID, &j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		return ierr.Store("insertJobPosting", err)
	}
	return nil
}

func (s *Postgres) UpdateJobPosting(ctx context.Context, j *model.JobPosting) error {
	err := s.pool.QueryRow(ctx,
		`UPDATE job_postings
		 SET title = $1, department = $2, location = $3, salary = $4,
		     description = $5, status = $6, updated_at = NOW()
		 WHERE id = $7
		 RETURNING applicants, updated_at`,
		j.Title, j.Department, j.Location, j.Salary, j.Description, j.Status, j.ID,
	).Scan(&j.Applicants, &j.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ierr.NotFound("job posting", j.ID)
		}
		return ierr.Store("updateJobPosting", err)
	}
	return nil
}

func (s *Postgres) DeleteJobPosting(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM job_postings WHERE id = $1`, id)
	if err != nil {
		return ierr.Store("deleteJobPosting", err)
	}
	if tag.RowsAffected() == 0 {
		return ierr.NotFound("job posting", id)
	}
	return nil
}

func (s *Postgres) AddApplicants(ctx context.Context, jobID string, delta int) (int, error) {
	var n int
	err := s.pool.QueryRow(ctx,
		`UPDATE job_postings
		 SET applicants = applicants + $1, updated_at = NOW()
		 WHERE id = $2
		 RETURNING applicants`,
		delta, jobID,
	).Scan(&n)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ierr.NotFound("job posting", jobID)
		}
		return 0, ierr.Store("addApplicants", err)
	}
	return n, nil
}

func (s *Postgres) SetApplicants(ctx context.Context, jobID string, n int) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE job_postings SET applicants = $1, updated_at = NOW() WHERE id = $2`,
		n, jobID)
	if err != nil {
		return ierr.Store("setApplicants", err)
	}
	if tag.RowsAffected() == 0 {
		return ierr.NotFound("job posting", jobID)
	}
	return nil
}

// ─── Application ─────────────────────────────────────────────────────────────

const applicationCols = `id, candidate_id, job_id, status, applied_date, notes, created_at, updated_at`

func scanApplication(row pgx.Row, a *model.Application) error {
	return row.Scan(&a.ID, &a.CandidateID, &a.JobID, &a.Status,
		&a.AppliedDate, &a.Notes, &a.CreatedAt, &a.UpdatedAt)
}

func (s *Postgres) GetApplication(ctx context.Context, id string) (*model.Application, error) {
	var a model.Application
	err := scanApplication(s.pool.QueryRow(ctx,
		`SELECT `+applicationCols+` FROM applications WHERE id = $1`, id), &a)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ierr.NotFound("application", id)
		}
		return nil, ierr.Store("getApplication", err)
	}
	return &a, nil
}

func (s *Postgres) listApplications(ctx context.Context, op, where string, args ...any) ([]model.Application, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+applicationCols+` FROM applications `+where+` ORDER BY created_at DESC`, args...)
	if err != nil {
		return nil, ierr.Store(op, err)
	}
	defer rows.Close()

	out := make([]model.Application, 0)
	for rows.Next() {
		var a model.Application
		if err := rows.Scan(&a.ID, &a.CandidateID, &a.JobID, &a.Status,
			&a.AppliedDate, &a.Notes, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, ierr.Store(op+" scan", err)
		}
		out = append(out, a)
	}
	return out, nil
}

func (s *Postgres) ListApplications(ctx context.Context) ([]model.Application, error) {
	return s.listApplications(ctx, "listApplications", "")
}

func (s *Postgres) ListApplicationsByJob(ctx context.Context, jobID string) ([]model.Application, error) {
	return s.listApplications(ctx, "listApplicationsByJob", "WHERE job_id = $1", jobID)
}

func (s *Postgres) ListApplicationsByCandidate(ctx context.Context, candidateID string) ([]model.Application, error) {
	return s.listApplications(ctx, "listApplicationsByCandidate", "WHERE candidate_id = $1", candidateID)
}

func (s *Postgres) InsertApplication(ctx context.Context, a *model.Application) error {
	err := s.pool.QueryRow(ctx,
		`INSERT INTO applications (candidate_id, job_id, status, applied_date, notes)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at`,
		a.CandidateID, a.JobID, a.Status, a.AppliedDate, a.Notes,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return ierr.Store("insertApplication", err)
	}
	return nil
}

func (s *Postgres) UpdateApplication(ctx context.Context, a *model.Application) error {
	err := s.pool.QueryRow(ctx,
		`UPDATE applications
		 SET candidate_id = $1, job_id = $2, status = $3, notes = $4, updated_at = NOW()
		 WHERE id = $5
		 RETURNING updated_at`,
		a.CandidateID, a.JobID, a.Status, a.Notes, a.ID,
	).Scan(&a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ierr.NotFound("application", a.ID)
		}
		return ierr.Store("updateApplication", err)
	}
	return nil
}

func (s *Postgres) DeleteApplication(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM applications WHERE id = $1`, id)
	if err != nil {
		return ierr.Store("deleteApplication", err)
	}
	if tag.RowsAffected() == 0 {
		return ierr.NotFound("application", id)
	}
	return nil
}

// ─── Pipeline ────────────────────────────────────────────────────────────────

func (s *Postgres) GetPipeline(ctx context.Context, id string) (*model.Pipeline, error) {
	var p model.Pipeline
	err := s.pool.QueryRow(ctx,
		`SELECT id, candidate_id, position, stage, created_at, updated_at
		 FROM pipelines WHERE id = $1`, id,
	).Scan(&p.ID, &p.CandidateID, &p.Position, &p.Stage, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ierr.NotFound("pipeline", id)
		}
		return nil, ierr.Store("getPipeline", err)
	}
	return &p, nil
}

func (s *Postgres) ListPipelines(ctx context.Context) ([]model.Pipeline, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, candidate_id, position, stage, created_at, updated_at
		 FROM pipelines ORDER BY created_at DESC`)
	if err != nil {
		return nil, ierr.Store("listPipelines", err)
	}
	defer rows.Close()

	out := make([]model.Pipeline, 0)
	for rows.Next() {
		var p model.Pipeline
		if err := rows.Scan(&p.ID, &p.CandidateID, &p.Position, &p.Stage, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, ierr.Store("listPipelines scan", err)
		}
		out = append(out, p)
	}
	return out, nil
}

func (s *Postgres) InsertPipeline(ctx context.Context, p *model.Pipeline) error {
	err := s.pool.QueryRow(ctx,
		`INSERT INTO pipelines (candidate_id, position, stage)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at`,
		p.CandidateID, p.Position, p.Stage,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return ierr.Store("insertPipeline", err)
	}
	return nil
}

func (s *Postgres) UpdatePipeline(ctx context.Context, p *model.Pipeline) error {
	err := s.pool.QueryRow(ctx,
		`UPDATE pipelines
		 SET candidate_id = $1, position = $2, stage = $3, updated_at = NOW()
		 WHERE id = $4
		 RETURNING updated_at`,
		p.CandidateID, p.Position, p.Stage, p.ID,
	).Scan(&p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ierr.NotFound("pipeline", p.ID)
		}
		return ierr.Store("updatePipeline", err)
	}
	return nil
}

func (s *Postgres) DeletePipeline(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM pipelines WHERE id = $1`, id)
	if err != nil {
		return ierr.Store("deletePipeline", err)
	}
	if tag.RowsAffected() == 0 {
		return ierr.NotFound("pipeline", id)
	}
	return nil
}

// ─── Interview ───────────────────────────────────────────────────────────────

const interviewCols = `id, candidate_id, position, date, time, interviewer, location, status, notes, created_at, updated_at`

func (s *Postgres) GetInterview(ctx context.Context, id string) (*model.Interview, error) {
	var i model.Interview
	err := s.pool.QueryRow(ctx,
		`SELECT `+interviewCols+` FROM interviews WHERE id = $1`, id,
	).Scan(&i.ID, &i.CandidateID, &i.Position, &i.Date, &i.Time,
		&i.Interviewer, &i.Location, &i.Status, &i.Notes, &i.CreatedAt, &i.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ierr.NotFound("interview", id)
		}
		return nil, ierr.Store("getInterview", err)
	}
	return &i, nil
}

func (s *Postgres) ListInterviews(ctx context.Context) ([]model.Interview, error) {
	// Interviews list in schedule order, unlike every other entity.
	rows, err := s.pool.Query(ctx,
		`SELECT `+interviewCols+` FROM interviews ORDER BY date ASC`)
	if err != nil {
		return nil, ierr.Store("listInterviews", err)
	}
	defer rows.Close()

	out := make([]model.Interview, 0)
	for rows.Next() {
		var i model.Interview
		if err := rows.Scan(&i.ID, &i.CandidateID, &i.Position, &i.Date, &i.Time,
			&i.Interviewer, &i.Location, &i.Status, &i.Notes, &i.CreatedAt, &i.UpdatedAt); err != nil {
			return nil, ierr.Store("listInterviews scan", err)
		}
		out = append(out, i)
	}
	return out, nil
}

func (s *Postgres) InsertInterview(ctx context.Context, i *model.Interview) error {
	err := s.pool.QueryRow(ctx,
		`INSERT INTO interviews (candidate_id, position, date, time, interviewer, location, status, notes)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, created_at, updated_at`,
		i.CandidateID, i.Position, i.Date, i.Time, i.Interviewer, i.Location, i.Status, i.Notes,
	).Scan(&i.ID, &i.CreatedAt, &i.UpdatedAt)
	if err != nil {
		return ierr.Store("insertInterview", err)
	}
	return nil
}

func (s *Postgres) UpdateInterview(ctx context.Context, i *model.Interview) error {
	err := s.pool.QueryRow(ctx,
		`UPDATE interviews
		 SET candidate_id = $1, position = $2, date = $3, time = $4,
		     interviewer = $5, location = $6, status = $7, notes = $8, updated_at = NOW()
		 WHERE id = $9
		 RETURNING updated_at`,
		i.CandidateID, i.Position, i.Date, i.Time, i.Interviewer, i.Location, i.Status, i.Notes, i.ID,
	).Scan(&i.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ierr.NotFound("interview", i.ID)
		}
		return ierr.Store("updateInterview", err)
	}
	return nil
}

func (s *Postgres) DeleteInterview(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM interviews WHERE id = $1`, id)
	if err != nil {
		return ierr.Store("deleteInterview", err)
	}
	if tag.RowsAffected() == 0 {
		return ierr.NotFound("interview", id)
	}
	return nil
}

// ─── Offer ───────────────────────────────────────────────────────────────────

const offerCols = `id, candidate_id, position, salary, start_date, status, notes, created_at, updated_at`

func (s *Postgres) GetOffer(ctx context.Context, id string) (*model.Offer, error) {
	var o model.Offer
	err := s.pool.QueryRow(ctx,
		`SELECT `+offerCols+` FROM offers WHERE id = $1`, id,
	).Scan(&o.ID, &o.CandidateID, &o.Position, &o.Salary, &o.StartDate,
		&o.Status, &o.Notes, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ierr.NotFound("offer", id)
		}
		return nil, ierr.Store("getOffer", err)
	}
	return &o, nil
}

func (s *Postgres) ListOffers(ctx context.Context) ([]model.Offer, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+offerCols+` FROM offers ORDER BY created_at DESC`)
	if err != nil {
		return nil, ierr.Store("listOffers", err)
	}
	defer rows.Close()

	out := make([]model.Offer, 0)
	for rows.Next() {
		var o model.Offer
		if err := rows.Scan(&o.ID, &o.CandidateID, &o.Position, &o.Salary, &o.StartDate,
			&o.Status, &o.Notes, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, ierr.Store("listOffers scan", err)
		}
		out = append(out, o)
	}
	return out, nil
}

func (s *Postgres) InsertOffer(ctx context.Context, o *model.Offer) error {
	err := s.pool.QueryRow(ctx,
		`INSERT INTO offers (candidate_id, position, salary, start_date, status, notes)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at, updated_at`,
		o.CandidateID, o.Position, o.Salary, o.StartDate, o.Status, o.Notes,
	).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return ierr.Store("insertOffer", err)
	}
	return nil
}

func (s *Postgres) UpdateOffer(ctx context.Context, o *model.Offer) error {
	err := s.pool.QueryRow(ctx,
		`UPDATE offers
		 SET candidate_id = $1, position = $2, salary = $3, start_date = $4,
		     status = $5, notes = $6, updated_at = NOW()
		 WHERE id = $7
		 RETURNING updated_at`,
		o.CandidateID, o.Position, o.Salary, o.StartDate, o.Status, o.Notes, o.ID,
	).Scan(&o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ierr.NotFound("offer", o.ID)
		}
		return ierr.Store("updateOffer", err)
	}
	return nil
}

func (s *Postgres) DeleteOffer(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM offers WHERE id = $1`, id)
	if err != nil {
		return ierr.Store("deleteOffer", err)
	}
	if tag.RowsAffected() == 0 {
		return ierr.NotFound("offer", id)
	}
	return nil
}
