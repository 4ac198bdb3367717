package repository

import (
	"context"
	"fmt"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"openstage/internal/database"
	"openstage/internal/domain"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var userSeq int64

// newTestDB opens a fresh file-backed SQLite database per test. A file
// (rather than :memory:) is used so every connection in the pool sees
// the same database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, role domain.UserRole) *domain.User {
	t.Helper()
	n := atomic.AddInt64(&userSeq, 1)
	u := &domain.User{
		Email:        fmt.Sprintf("user%d@openstage.test", n),
		PasswordHash: "x",
		Role:         role,
		Name:         fmt.Sprintf("User %d", n),
	}
	require.NoError(t, NewUserRepository(db).Create(context.Background(), u))
	return u
}

func seedEvent(t *testing.T, db *gorm.DB, hostID int64, showcase bool, slotCount int) (*domain.Event, []domain.Slot) {
	t.Helper()
	e := &domain.Event{
		HostID:     hostID,
		Title:      "Test Night",
		IsShowcase: showcase,
		StartsAt:   time.Now().Add(48 * time.Hour),
	}
	require.NoError(t, NewEventRepository(db).CreateWithSlots(context.Background(), e, slotCount))
	slots, err := NewSlotRepository(db).ListByEvent(context.Background(), e.ID)
	require.NoError(t, err)
	require.Len(t, slots, slotCount)
	return e, slots
}

func seedService(t *testing.T, db *gorm.DB, ownerID int64, minutes int) *domain.StudioService {
	t.Helper()
	s := &domain.StudioService{
		OwnerID:         ownerID,
		Name:            "Rehearsal Room",
		DurationMinutes: minutes,
	}
	require.NoError(t, NewServiceRepository(db).Create(context.Background(), s))
	return s
}
