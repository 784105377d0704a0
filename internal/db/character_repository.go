package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/battlecore/internal/model"
)

// Progress is the persisted part of a character.
type Progress struct {
	CharacterID int64
	Name        string
	Gold        int64
	Experience  int64
	JobXP       int64
	Dignity     int32
}

// ProgressOf captures the persisted counters of c.
func ProgressOf(c *model.Character) Progress {
	xp, jobXP := c.Experience()
	return Progress{
		CharacterID: c.ID(),
		Name:        c.Name(),
		Gold:        c.Gold(),
		Experience:  xp,
		JobXP:       jobXP,
		Dignity:     c.Dignity(),
	}
}

// ApplyTo overlays the persisted counters onto c.
func (p Progress) ApplyTo(c *model.Character) {
	c.SetGold(p.Gold)
	c.SetExperience(p.Experience, p.JobXP)
	c.SetDignity(p.Dignity)
}

// CharacterRepository управляет прогрессом персонажей в БД.
type CharacterRepository struct {
	db *pgxpool.Pool
}

// NewCharacterRepository создаёт новый CharacterRepository.
func NewCharacterRepository(db *pgxpool.Pool) *CharacterRepository {
	return &CharacterRepository{db: db}
}

// Load загружает прогресс персонажа по ID.
// Возвращает false если записи нет (не ошибка).
func (r *CharacterRepository) Load(ctx context.Context, characterID int64) (Progress, bool, error) {
	p := Progress{CharacterID: characterID}
	err := r.db.QueryRow(ctx, `
		SELECT name, gold, experience, job_xp, dignity
		FROM character_progress
		WHERE character_id = $1
	`, characterID).Scan(&p.Name, &p.Gold, &p.Experience, &p.JobXP, &p.Dignity)

	if errors.Is(err, pgx.ErrNoRows) {
		return Progress{}, false, nil
	}
	if err != nil {
		return Progress{}, false, fmt.Errorf("querying progress of character %d: %w", characterID, err)
	}
	return p, true, nil
}

// Save upserts the progress of one character.
func (r *CharacterRepository) Save(ctx context.Context, p Progress) error {
	if _, err := r.db.Exec(ctx, upsertProgress, p.CharacterID, p.Name, p.Gold, p.Experience, p.JobXP, p.Dignity); err != nil {
		return fmt.Errorf("saving progress of character %d: %w", p.CharacterID, err)
	}
	return nil
}

// SaveAll upserts many characters in one batch inside a transaction.
func (r *CharacterRepository) SaveAll(ctx context.Context, ps []Progress) error {
	if len(ps) == 0 {
		return nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin progress transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	batch := &pgx.Batch{}
	for _, p := range ps {
		batch.Queue(upsertProgress, p.CharacterID, p.Name, p.Gold, p.Experience, p.JobXP, p.Dignity)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("saving progress batch of %d characters: %w", len(ps), err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit progress transaction: %w", err)
	}
	return nil
}

const upsertProgress = `
	INSERT INTO character_progress (character_id, name, gold, experience, job_xp, dignity, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, NOW())
	ON CONFLICT (character_id) DO UPDATE SET
		name = EXCLUDED.name,
		gold = EXCLUDED.gold,
		experience = EXCLUDED.experience,
		job_xp = EXCLUDED.job_xp,
		dignity = EXCLUDED.dignity,
		updated_at = NOW()
`
