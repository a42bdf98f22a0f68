package services

import (
	"context"
	"database/sql"

	"github.com/akinalp/firmenportal/database"
	"github.com/akinalp/firmenportal/repository"
)

// TxRepos, bir transaction'a bağlı repository setidir. fn içinde yapılan
// tüm yazımlar ya birlikte commit olur ya birlikte geri alınır.
type TxRepos struct {
	Profiles repository.ProfileRepository
	Emails   repository.EmailQueueRepository
}

// TxRunner, service katmanının transaction çalıştırma kapısıdır.
// Interface olması testlerde fake repo'larla atomiklik simüle etmeyi sağlar.
type TxRunner interface {
	InTx(ctx context.Context, fn func(repos TxRepos) error) error
}

// dbTxRunner, production implementasyonu — database.WithTx üstüne
// tx-scoped SQLite repository'leri kurar.
type dbTxRunner struct {
	db *sql.DB
}

// NewTxRunner, constructor.
func NewTxRunner(db *sql.DB) TxRunner {
	return &dbTxRunner{db: db}
}

func (r *dbTxRunner) InTx(ctx context.Context, fn func(repos TxRepos) error) error {
	return database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		return fn(TxRepos{
			Profiles: repository.NewSQLiteProfileRepo(tx),
			Emails:   repository.NewSQLiteEmailQueueRepo(tx),
		})
	})
}
