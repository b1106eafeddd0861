package userrepo

import (
	"context"

	"gorm.io/gorm/clause"
	"gorm.io/plugin/dbresolver"

	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/domain/user"
	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/infrastructure/database/dbschema"
	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/infrastructure/database/transaction"
	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/utils/platformerrors"
)

type UserGormRepository struct {
	db *transaction.Database
}

var _ user.Repository = (*UserGormRepository)(nil)

func NewUserGormRepository(db *transaction.Database) *UserGormRepository {
	return &UserGormRepository{db}
}

// GetOrCreate inserts the user when missing and tolerates concurrent inserts
// of the same username.
func (repo *UserGormRepository) GetOrCreate(ctx context.Context, username string) (*user.User, error) {
	tx := repo.db.GetTx(ctx)

	row := dbschema.User{Username: username}
	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "username"}},
		DoNothing: true,
	}).Create(&row).Error
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to create user")
	}

	var stored dbschema.User
	// Read from the primary so a row inserted just now is visible.
	if err := tx.Clauses(dbresolver.Write).Where("username = ?", username).First(&stored).Error; err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to load user")
	}
	return stored.EtoD(), nil
}
