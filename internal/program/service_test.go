package program

import (
	"context"
	"path/filepath"
	"testing"

	"memoras-backend/auth"
	"memoras-backend/internal/domain"
	"memoras-backend/internal/memorial"
	"memoras-backend/redis"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := db.AutoMigrate(&domain.Memorial{}, &domain.Obituary{}, &domain.Speech{}); err != nil {
		t.Fatal(err)
	}
	return db
}

func seedMemorial(t *testing.T, db *gorm.DB) *domain.Memorial {
	t.Helper()
	m := &domain.Memorial{GuestSession: "g1"}
	if err := db.Create(m).Error; err != nil {
		t.Fatal(err)
	}
	return m
}

func newSpeechService(db *gorm.DB) (*Service, auth.Identity) {
	guard := memorial.NewService(memorial.NewRepository(db), redis.NewCache())
	return NewService(db, guard), auth.Identity{GuestSession: "g1"}
}

func TestSaveSpeeches_ReplacesExistingSet(t *testing.T) {
	db := newTestDB(t)
	m := seedMemorial(t, db)
	service, ident := newSpeechService(db)

	first := []SpeechForm{
		{SpeakerName: "Rev. Smith", SpeechType: "eulogy"},
		{SpeakerName: "Mary Doe", SpeechType: "remarks"},
	}
	_, _, err := service.SaveSpeeches(context.Background(), m.ID, ident, first)
	assert.NoError(t, err)

	second := []SpeechForm{
		{SpeakerName: "John Doe", SpeechType: "closing"},
		{SpeakerName: "Ann Lee", SpeechType: "prayer"},
	}
	_, _, err = service.SaveSpeeches(context.Background(), m.ID, ident, second)
	assert.NoError(t, err)

	// a second save replaces the set wholesale, it never appends
	var count int64
	assert.NoError(t, db.Model(&domain.Speech{}).Where("memorial_id = ?", m.ID).Count(&count).Error)
	assert.Equal(t, int64(2), count)

	speeches, err := service.GetSpeeches(context.Background(), m.ID, ident)
	assert.NoError(t, err)
	assert.Equal(t, "John Doe", speeches[0].SpeakerName)
	assert.Equal(t, "Ann Lee", speeches[1].SpeakerName)
}

func TestSaveSpeeches_PreservesSubmissionOrder(t *testing.T) {
	db := newTestDB(t)
	m := seedMemorial(t, db)
	service, ident := newSpeechService(db)

	forms := []SpeechForm{
		{SpeakerName: "First", SpeechType: "introduction"},
		{SpeakerName: "Second", SpeechType: "prayer"},
		{SpeakerName: "Third", SpeechType: "eulogy"},
		{SpeakerName: "Fourth", SpeechType: "closing"},
	}
	_, _, err := service.SaveSpeeches(context.Background(), m.ID, ident, forms)
	assert.NoError(t, err)

	speeches, err := service.GetSpeeches(context.Background(), m.ID, ident)
	assert.NoError(t, err)
	assert.Equal(t, len(forms), len(speeches))
	for i, f := range forms {
		assert.Equal(t, f.SpeakerName, speeches[i].SpeakerName)
	}
}

func TestSaveSpeeches_EmptyListStillCompletesStep(t *testing.T) {
	db := newTestDB(t)
	m := seedMemorial(t, db)
	service, ident := newSpeechService(db)

	_, saved, err := service.SaveSpeeches(context.Background(), m.ID, ident, []SpeechForm{})
	assert.NoError(t, err)
	assert.True(t, saved.IsStepCompleted(domain.StepSpeeches))

	var reloaded domain.Memorial
	assert.NoError(t, db.First(&reloaded, "id = ?", m.ID).Error)
	assert.True(t, reloaded.IsStepCompleted(domain.StepSpeeches))
}

func TestDeleteSpeeches_ClearsRowsAndStep(t *testing.T) {
	db := newTestDB(t)
	m := seedMemorial(t, db)
	service, ident := newSpeechService(db)

	_, _, err := service.SaveSpeeches(context.Background(), m.ID, ident, []SpeechForm{
		{SpeakerName: "Rev. Smith", SpeechType: "eulogy"},
		{SpeakerName: "Mary Doe", SpeechType: "remarks"},
	})
	assert.NoError(t, err)

	deleted, err := service.DeleteSpeeches(context.Background(), m.ID, ident)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	var reloaded domain.Memorial
	assert.NoError(t, db.First(&reloaded, "id = ?", m.ID).Error)
	assert.False(t, reloaded.IsStepCompleted(domain.StepSpeeches))
}
