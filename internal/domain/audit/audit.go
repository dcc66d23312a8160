package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Event is one recorded mutation: who did what to which entity, with the
// document before and after the change.
type Event struct {
	ID         string          `json:"id"`
	ActorID    string          `json:"actorId"`
	Action     string          `json:"action"`
	EntityType string          `json:"entityType"`
	EntityID   string          `json:"entityId"`
	RequestID  string          `json:"requestId"`
	IP         string          `json:"ip"`
	CreatedAt  time.Time       `json:"createdAt"`
	Before     json.RawMessage `json:"before,omitempty"`
	After      json.RawMessage `json:"after,omitempty"`
}

type Service struct {
	DB *pgxpool.Pool
}

func New(db *pgxpool.Pool) *Service {
	return &Service{DB: db}
}

func (s *Service) Record(ctx context.Context, actorID, action, entityType, entityID, requestID, ip string, before, after any) error {
	var beforeJSON, afterJSON []byte
	if before != nil {
		payload, err := json.Marshal(before)
		if err != nil {
			return err
		}
		beforeJSON = payload
	}
	if after != nil {
		payload, err := json.Marshal(after)
		if err != nil {
			return err
		}
		afterJSON = payload
	}

	_, err := s.DB.Exec(ctx, `
    INSERT INTO audit_events (actor_user_id, action, entity_type, entity_id, before_json, after_json, request_id, ip)
    VALUES (NULLIF($1,'')::uuid,$2,$3,$4,$5,$6,$7,$8)
  `, actorID, action, entityType, entityID, beforeJSON, afterJSON, requestID, ip)
	return err
}

func (s *Service) List(ctx context.Context, action, entityType string, limit, offset int) ([]Event, error) {
	query := "SELECT id, COALESCE(actor_user_id::text, ''), action, entity_type, entity_id, request_id, ip, created_at, before_json, after_json FROM audit_events"
	args := []any{}
	where := ""
	if action != "" {
		args = append(args, action)
		where = fmt.Sprintf(" WHERE action = $%d", len(args))
	}
	if entityType != "" {
		args = append(args, entityType)
		connector := " WHERE"
		if where != "" {
			connector = " AND"
		}
		where += fmt.Sprintf("%s entity_type = $%d", connector, len(args))
	}
	args = append(args, limit, offset)
	query += where + fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		var evt Event
		if err := rows.Scan(&evt.ID, &evt.ActorID, &evt.Action, &evt.EntityType, &evt.EntityID,
			&evt.RequestID, &evt.IP, &evt.CreatedAt, &evt.Before, &evt.After); err != nil {
			return nil, err
		}
		out = append(out, evt)
	}
	return out, rows.Err()
}
