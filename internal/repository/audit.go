package repository

import (
	"context"
	"encoding/json"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/jikkosoft/library-service/internal/domain"
)

const auditLogTableName = `audit_log`

type AuditLogRepository interface {
	Record(ctx context.Context, entry *domain.AuditLog) (int64, error)
}

type auditLogRepo struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewAuditLogRepository(db *sqlx.DB, log *zap.Logger) AuditLogRepository {
	return &auditLogRepo{db: db, log: log.Named("audit-repo")}
}

func (r *auditLogRepo) Record(ctx context.Context, entry *domain.AuditLog) (int64, error) {
	var metadata interface{}
	if md := entry.Metadata(); len(md) > 0 {
		raw, err := json.Marshal(md)
		if err != nil {
			return 0, errors.Wrap(err, "encode audit metadata")
		}
		metadata = raw
	}
	q, args, err := qb.Insert(auditLogTableName).
		Columns("performed_by", "action", "entity_type", "entity_id", "ts",
			"success", "message", "correlation_id", "before_state", "after_state", "metadata").
		Values(entry.PerformedBy(), entry.Action(), entry.EntityType(), entry.EntityID(), entry.Timestamp(),
			entry.Success(), entry.Message(), entry.CorrelationID(), entry.Before(), entry.After(), metadata).
		Suffix("returning id").
		ToSql()
	if err != nil {
		return 0, err
	}
	var id int64
	if err := sqlx.GetContext(ctx, executor(ctx, r.db), &id, q, args...); err != nil {
		return 0, errors.Wrap(err, "record audit log")
	}
	entry.SetID(id)
	return id, nil
}
