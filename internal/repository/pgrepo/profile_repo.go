package pgrepo

import (
	"context"
	"time"

	"github.com/fsdevblog/founderpass/internal/domain"
	"github.com/fsdevblog/founderpass/pkg/uow"
	"github.com/jackc/pgx/v5"
)

type ProfileRepository struct {
	db uow.DBTX
}

func NewProfileRepository(db uow.DBTX) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (p *ProfileRepository) FindByID(ctx context.Context, userID string) (*domain.Profile, error) {
	row := p.db.QueryRow(ctx, `
		SELECT id, created_at, updated_at, email, waitlist_status, beta_access, bought_at
		FROM profiles WHERE id = $1`,
		userID,
	)

	var profile domain.Profile
	if err := row.Scan(
		&profile.ID,
		&profile.CreatedAt,
		&profile.UpdatedAt,
		&profile.Email,
		&profile.WaitlistStatus,
		&profile.BetaAccess,
		&profile.BoughtAt,
	); err != nil {
		return nil, convertErr(err, "finding profile `%s`", userID)
	}
	return &profile, nil
}

// GrantBetaAccess выставляет флаг платного доступа. Повторный грант - ноуоп
// (перезапись true тем же true), поэтому метод идемпотентен.
func (p *ProfileRepository) GrantBetaAccess(ctx context.Context, userID string, boughtAt time.Time) error {
	tag, err := p.db.Exec(ctx, `
		UPDATE profiles
		SET beta_access = true, bought_at = $1, updated_at = now()
		WHERE id = $2`,
		boughtAt, userID,
	)
	if err != nil {
		return convertErr(err, "granting beta access to profile `%s`", userID)
	}
	if tag.RowsAffected() == 0 {
		// профиль не найден - отдаем тот же сентинел, что и при пустой выборке.
		return convertErr(pgx.ErrNoRows, "granting beta access to profile `%s`", userID)
	}
	return nil
}
