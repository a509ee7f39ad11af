package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Shopify/sarama"
	"github.com/jmoiron/sqlx"
)

type AtomicFunc func(Registry) error

// Registry hands out stores bound to the same scope. Stores obtained from the
// registry passed into an AtomicFunc share one transaction.
type Registry interface {
	Atomic(ctx context.Context, fn AtomicFunc) error
	GetGroupsStore() GroupsStore
	GetInvitationsStore() InvitationsStore
	GetApplicationsStore() ApplicationsStore
	GetMessagesStore() MessagesStore
	GetConnectionsStore() ConnectionsStore
	GetUsersStore() UsersStore
	GetUpdatesStore() UpdatesStore
}

type DefaultRegistry struct {
	db       *sqlx.DB
	tx       *sqlx.Tx
	scope    Scope
	producer sarama.SyncProducer
	cfg      *UpdatesStoreConfig
}

type Scope interface {
	sqlx.QueryerContext
	sqlx.ExecerContext
	sqlx.Execer
	sqlx.Queryer
	Get(dest interface{}, query string, args ...interface{}) error
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	Select(dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	NamedExec(query string, arg interface{}) (sql.Result, error)
	NamedExecContext(ctx context.Context, query string, arg interface{}) (sql.Result, error)
	NamedQuery(query string, arg interface{}) (*sqlx.Rows, error)
}

// NewRegistry builds a registry over db. A nil producer disables update
// publishing.
func NewRegistry(db *sqlx.DB, p sarama.SyncProducer, cfg *UpdatesStoreConfig) *DefaultRegistry {
	return &DefaultRegistry{
		db:       db,
		scope:    db,
		producer: p,
		cfg:      cfg,
	}
}

func (r *DefaultRegistry) Atomic(ctx context.Context, fn AtomicFunc) (err error) {
	// Already inside a transaction: join it.
	if r.tx != nil {
		return fn(r)
	}

	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				err = fmt.Errorf("rollback caused by error: \"%v\" failed: %v", err, rbErr)
			}
		} else {
			err = tx.Commit()
		}
	}()

	storage := DefaultRegistry{
		db:       r.db,
		tx:       tx,
		scope:    tx,
		producer: r.producer,
		cfg:      r.cfg,
	}
	err = fn(&storage)
	return err
}

func (r *DefaultRegistry) GetGroupsStore() GroupsStore {
	return NewGroupsStorage(r.scope)
}

func (r *DefaultRegistry) GetInvitationsStore() InvitationsStore {
	return NewInvitationsStorage(r.scope)
}

func (r *DefaultRegistry) GetApplicationsStore() ApplicationsStore {
	return NewApplicationsStorage(r.scope)
}

func (r *DefaultRegistry) GetMessagesStore() MessagesStore {
	return NewMessagesStorage(r.scope)
}

func (r *DefaultRegistry) GetConnectionsStore() ConnectionsStore {
	return NewConnectionsStorage(r.scope)
}

func (r *DefaultRegistry) GetUsersStore() UsersStore {
	return NewUsersStorage(r.scope)
}

func (r *DefaultRegistry) GetUpdatesStore() UpdatesStore {
	if r.producer == nil {
		return NopUpdatesStore{}
	}
	return NewUpdatesStore(r.producer, r.cfg)
}
