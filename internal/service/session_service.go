package service

import (
	"context"

	"github.com/noah-isme/lernplan-api/internal/calendar"
	"github.com/noah-isme/lernplan-api/internal/models"
	"github.com/noah-isme/lernplan-api/internal/repository"
)

// SessionService derives display sessions from slots and contents.
type SessionService struct {
	docs planDocuments
}

// NewSessionService constructs a SessionService.
func NewSessionService(docs planDocuments) *SessionService {
	return &SessionService{docs: docs}
}

// ForDay returns the sessions of one day ordered by start hour.
func (s *SessionService) ForDay(ctx context.Context, ks repository.Keyspace, date string) ([]models.Session, error) {
	if _, err := parseDate(date); err != nil {
		return nil, err
	}
	snap, err := loadSnapshot(ctx, s.docs, ks, snapshotParts{slots: true, contents: true})
	if err != nil {
		return nil, err
	}
	return calendar.BuildSessionsForDay(snap.slots[date], snap.contents), nil
}

// ForRange returns the sessions of every day that has any, dates ascending.
func (s *SessionService) ForRange(ctx context.Context, ks repository.Keyspace) ([]models.DaySessions, error) {
	snap, err := loadSnapshot(ctx, s.docs, ks, snapshotParts{slots: true, contents: true})
	if err != nil {
		return nil, err
	}
	return calendar.BuildSessionsForRange(snap.slots, snap.contents), nil
}
