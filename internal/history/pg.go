package history

import (
	"context"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/jackc/pgx/v5"

	"signal_bot/internal/models"
	"signal_bot/pkg/db"
)

// Pg — история сигналов в postgres; решение хранится как JSONB.
type Pg struct {
	db *db.PgTxManager
}

func NewPg(txm *db.PgTxManager) *Pg {
	return &Pg{db: txm}
}

// EnsureSchema создаёт таблицу истории, если её ещё нет.
func (p *Pg) EnsureSchema(ctx context.Context) error {
	return p.db.RunMaster(ctx, func(ctxTx context.Context, tx pgx.Tx) error {
		_, err := tx.Exec(ctxTx, `
			CREATE TABLE IF NOT EXISTS signal_history (
				id         BIGSERIAL PRIMARY KEY,
				user_id    BIGINT      NOT NULL,
				pair       TEXT        NOT NULL,
				payload    JSONB       NOT NULL,
				created_at TIMESTAMPTZ NOT NULL DEFAULT now()
			)`)
		return err
	})
}

func (p *Pg) Append(ctx context.Context, userID int64, dec models.Decision) (err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("history.Append: %w", err)
		}
	}()

	var payload []byte
	payload, err = sonic.Marshal(dec)
	if err != nil {
		return err
	}
	return p.db.RunMaster(ctx, func(ctxTx context.Context, tx pgx.Tx) error {
		_, err := tx.Exec(ctxTx,
			`INSERT INTO signal_history (user_id, pair, payload) VALUES ($1, $2, $3)`,
			userID, dec.Pair, payload,
		)
		return err
	})
}

func (p *Pg) Recent(ctx context.Context, userID int64, limit int) (out []Entry, err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("history.Recent: %w", err)
		}
	}()

	if limit <= 0 {
		limit = 10
	}
	err = p.db.RunMaster(ctx, func(ctxTx context.Context, tx pgx.Tx) error {
		rows, err := tx.Query(ctxTx,
			`SELECT payload, created_at FROM signal_history
			 WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2`,
			userID, limit,
		)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var (
				payload   []byte
				createdAt time.Time
			)
			if err := rows.Scan(&payload, &createdAt); err != nil {
				return err
			}
			var dec models.Decision
			if err := sonic.Unmarshal(payload, &dec); err != nil {
				return err
			}
			out = append(out, Entry{UserID: userID, Decision: dec, CreatedAt: createdAt})
		}
		return rows.Err()
	})
	return out, err
}
