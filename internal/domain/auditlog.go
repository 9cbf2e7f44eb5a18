package domain

import (
	"strings"
	"time"
)

// AuditAction classifies an auditable operation.
type AuditAction string

const (
	AuditActionCreate       AuditAction = "CREATE"
	AuditActionUpdate       AuditAction = "UPDATE"
	AuditActionDelete       AuditAction = "DELETE"
	AuditActionSoftDelete   AuditAction = "SOFT_DELETE"
	AuditActionRestore      AuditAction = "RESTORE"
	AuditActionStatusChange AuditAction = "STATUS_CHANGE"

	AuditActionLoanCreated          AuditAction = "LOAN_CREATED"
	AuditActionLoanReturned         AuditAction = "LOAN_RETURNED"
	AuditActionReservationPlaced    AuditAction = "RESERVATION_PLACED"
	AuditActionReservationCancelled AuditAction = "RESERVATION_CANCELLED"
	AuditActionReservationFulfilled AuditAction = "RESERVATION_FULFILLED"
)

// AuditLogConfig is the plain input record for NewAuditLog.
type AuditLogConfig struct {
	ID            int64
	PerformedBy   int64
	Action        AuditAction
	EntityType    string
	EntityID      string
	Timestamp     time.Time
	Success       bool
	Message       string
	CorrelationID string
	Before        string
	After         string
	Metadata      map[string]string
}

// AuditLog records who did what to which entity, when, and with what outcome.
// Immutable once built; snapshots are stored as opaque strings (usually JSON).
type AuditLog struct {
	id            int64
	performedBy   int64
	action        AuditAction
	entityType    string
	entityID      string
	timestamp     time.Time
	success       bool
	message       string
	correlationID string
	before        string
	after         string
	metadata      map[string]string
}

func NewAuditLog(cfg AuditLogConfig) (*AuditLog, error) {
	if cfg.PerformedBy == 0 {
		return nil, validationf("audit log must record the acting user")
	}
	if cfg.Action == "" {
		return nil, validationf("audit log action must not be blank")
	}
	entityType := strings.TrimSpace(cfg.EntityType)
	entityID := strings.TrimSpace(cfg.EntityID)
	if entityType == "" {
		return nil, validationf("audit log entity type must not be blank")
	}
	if entityID == "" {
		return nil, validationf("audit log entity id must not be blank")
	}
	ts := cfg.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}
	var metadata map[string]string
	if len(cfg.Metadata) > 0 {
		metadata = make(map[string]string, len(cfg.Metadata))
		for k, v := range cfg.Metadata {
			metadata[k] = v
		}
	}
	return &AuditLog{
		id:            cfg.ID,
		performedBy:   cfg.PerformedBy,
		action:        cfg.Action,
		entityType:    entityType,
		entityID:      entityID,
		timestamp:     ts,
		success:       cfg.Success,
		message:       cfg.Message,
		correlationID: cfg.CorrelationID,
		before:        cfg.Before,
		after:         cfg.After,
		metadata:      metadata,
	}, nil
}

func (a *AuditLog) ID() int64             { return a.id }
func (a *AuditLog) SetID(id int64)        { a.id = id }
func (a *AuditLog) PerformedBy() int64    { return a.performedBy }
func (a *AuditLog) Action() AuditAction   { return a.action }
func (a *AuditLog) EntityType() string    { return a.entityType }
func (a *AuditLog) EntityID() string      { return a.entityID }
func (a *AuditLog) Timestamp() time.Time  { return a.timestamp }
func (a *AuditLog) Success() bool         { return a.success }
func (a *AuditLog) Message() string       { return a.message }
func (a *AuditLog) CorrelationID() string { return a.correlationID }
func (a *AuditLog) Before() string        { return a.before }
func (a *AuditLog) After() string         { return a.after }

// Metadata returns a copy; the log entry itself never changes.
func (a *AuditLog) Metadata() map[string]string {
	if len(a.metadata) == 0 {
		return nil
	}
	out := make(map[string]string, len(a.metadata))
	for k, v := range a.metadata {
		out[k] = v
	}
	return out
}
