package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jikkosoft/library-service/internal/domain"
)

func TestNewAuditLog(t *testing.T) {
	t.Parallel()

	base := domain.AuditLogConfig{
		PerformedBy: 42,
		Action:      domain.AuditActionLoanCreated,
		EntityType:  "Loan",
		EntityID:    "7",
		Timestamp:   time.Date(2024, 1, 2, 12, 0, 0, 0, time.UTC),
		Success:     true,
		Message:     "loan created",
	}

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()
		cfg := base
		cfg.Metadata = map[string]string{"barcode": "BC-0001"}
		entry, err := domain.NewAuditLog(cfg)
		require.NoError(t, err)
		require.Equal(t, int64(42), entry.PerformedBy())
		require.Equal(t, domain.AuditActionLoanCreated, entry.Action())
		require.Equal(t, "Loan", entry.EntityType())
		require.Equal(t, "7", entry.EntityID())
		require.True(t, entry.Success())
		require.Equal(t, map[string]string{"barcode": "BC-0001"}, entry.Metadata())
	})

	t.Run("metadata is copied both ways", func(t *testing.T) {
		t.Parallel()
		cfg := base
		source := map[string]string{"k": "v"}
		cfg.Metadata = source
		entry, err := domain.NewAuditLog(cfg)
		require.NoError(t, err)

		source["k"] = "mutated"
		require.Equal(t, "v", entry.Metadata()["k"])

		entry.Metadata()["k"] = "mutated again"
		require.Equal(t, "v", entry.Metadata()["k"])
	})

	t.Run("defaults timestamp when zero", func(t *testing.T) {
		t.Parallel()
		cfg := base
		cfg.Timestamp = time.Time{}
		entry, err := domain.NewAuditLog(cfg)
		require.NoError(t, err)
		require.False(t, entry.Timestamp().IsZero())
	})

	t.Run("required fields", func(t *testing.T) {
		t.Parallel()
		for name, mutate := range map[string]func(*domain.AuditLogConfig){
			"missing actor":     func(c *domain.AuditLogConfig) { c.PerformedBy = 0 },
			"blank action":      func(c *domain.AuditLogConfig) { c.Action = "" },
			"blank entity type": func(c *domain.AuditLogConfig) { c.EntityType = " " },
			"blank entity id":   func(c *domain.AuditLogConfig) { c.EntityID = "" },
		} {
			cfg := base
			mutate(&cfg)
			_, err := domain.NewAuditLog(cfg)
			require.ErrorIs(t, err, domain.ErrValidation, name)
		}
	})
}

func TestLifecycle_SoftDelete(t *testing.T) {
	t.Parallel()
	member := newTestMember(t)
	require.False(t, member.IsDeleted())
	require.Nil(t, member.DeletedAt())

	member.MarkDeleted()
	require.True(t, member.IsDeleted())
	require.NotNil(t, member.DeletedAt())

	member.Restore()
	require.False(t, member.IsDeleted())
	require.Nil(t, member.DeletedAt())
	require.False(t, member.UpdatedAt().Before(member.CreatedAt()))
}
