/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package embedded

import (
	"context"
	"database/sql"

	"github.com/hyperledger/composer-sdk-go/pkg/errors"
)

// worldState is the SQL-backed state of an embedded runtime: deployed
// networks, their registries and resources, and issued identities.
type worldState struct {
	db *sql.DB
}

func newWorldState(db *sql.DB) (*worldState, error) {
	ws := &worldState{db: db}
	if _, err := db.Exec(ws.schema()); err != nil {
		return nil, errors.Wrap(err, "failed to initialize world state schema")
	}
	return ws, nil
}

func (ws *worldState) schema() string {
	return `
	-- Deployed business networks
	CREATE TABLE IF NOT EXISTS networks (
		id TEXT NOT NULL,
		archive TEXT NOT NULL,
		PRIMARY KEY(id)
	);
	-- Registries per network
	CREATE TABLE IF NOT EXISTS registries (
		network TEXT NOT NULL,
		rtype TEXT NOT NULL,
		id TEXT NOT NULL,
		name TEXT NOT NULL,
		PRIMARY KEY(network, rtype, id)
	);
	-- Resources per registry
	CREATE TABLE IF NOT EXISTS resources (
		network TEXT NOT NULL,
		rtype TEXT NOT NULL,
		registry TEXT NOT NULL,
		id TEXT NOT NULL,
		data TEXT NOT NULL,
		PRIMARY KEY(network, rtype, registry, id)
	);
	-- Issued identities
	CREATE TABLE IF NOT EXISTS identities (
		network TEXT NOT NULL,
		user_id TEXT NOT NULL,
		secret_hash TEXT NOT NULL,
		participant TEXT NOT NULL DEFAULT '',
		issuer INT NOT NULL DEFAULT 0,
		affiliation TEXT NOT NULL DEFAULT '',
		revoked INT NOT NULL DEFAULT 0,
		PRIMARY KEY(network, user_id)
	);`
}

func (ws *worldState) putNetwork(ctx context.Context, networkID, archive string) error {
	query := "INSERT OR REPLACE INTO networks (id, archive) VALUES ($1, $2)"
	_, err := ws.db.ExecContext(ctx, query, networkID, archive)
	return err
}

func (ws *worldState) getNetwork(ctx context.Context, networkID string) (string, error) {
	query := "SELECT archive FROM networks WHERE id = $1"
	var archive string
	err := ws.db.QueryRowContext(ctx, query, networkID).Scan(&archive)
	if err == sql.ErrNoRows {
		return "", errors.Errorf("business network %s is not deployed", networkID)
	}
	return archive, err
}

func (ws *worldState) addRegistry(ctx context.Context, networkID, rtype, id, name string) error {
	query := "INSERT INTO registries (network, rtype, id, name) VALUES ($1, $2, $3, $4)"
	_, err := ws.db.ExecContext(ctx, query, networkID, rtype, id, name)
	return err
}

func (ws *worldState) getRegistry(ctx context.Context, networkID, rtype, id string) (string, error) {
	query := "SELECT name FROM registries WHERE network = $1 AND rtype = $2 AND id = $3"
	var name string
	err := ws.db.QueryRowContext(ctx, query, networkID, rtype, id).Scan(&name)
	if err == sql.ErrNoRows {
		return "", errors.Errorf("registry %s of type %s does not exist", id, rtype)
	}
	return name, err
}

func (ws *worldState) existsRegistry(ctx context.Context, networkID, rtype, id string) (bool, error) {
	query := "SELECT COUNT(*) FROM registries WHERE network = $1 AND rtype = $2 AND id = $3"
	var count int
	if err := ws.db.QueryRowContext(ctx, query, networkID, rtype, id).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

type registryRow struct {
	Type string `json:"type"`
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (ws *worldState) getAllRegistries(ctx context.Context, networkID, rtype string) ([]registryRow, error) {
	query := "SELECT rtype, id, name FROM registries WHERE network = $1 AND rtype = $2 ORDER BY id"
	rows, err := ws.db.QueryContext(ctx, query, networkID, rtype)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	result := []registryRow{}
	for rows.Next() {
		var row registryRow
		if err := rows.Scan(&row.Type, &row.ID, &row.Name); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

func (ws *worldState) addResource(ctx context.Context, networkID, rtype, registryID, id, data string) error {
	query := "INSERT INTO resources (network, rtype, registry, id, data) VALUES ($1, $2, $3, $4, $5)"
	_, err := ws.db.ExecContext(ctx, query, networkID, rtype, registryID, id, data)
	return err
}

func (ws *worldState) updateResource(ctx context.Context, networkID, rtype, registryID, id, data string) error {
	query := "UPDATE resources SET data = $5 WHERE network = $1 AND rtype = $2 AND registry = $3 AND id = $4"
	result, err := ws.db.ExecContext(ctx, query, networkID, rtype, registryID, id, data)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return errors.Errorf("resource %s does not exist in registry %s", id, registryID)
	}
	return nil
}

func (ws *worldState) removeResource(ctx context.Context, networkID, rtype, registryID, id string) error {
	query := "DELETE FROM resources WHERE network = $1 AND rtype = $2 AND registry = $3 AND id = $4"
	result, err := ws.db.ExecContext(ctx, query, networkID, rtype, registryID, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return errors.Errorf("resource %s does not exist in registry %s", id, registryID)
	}
	return nil
}

func (ws *worldState) getResource(ctx context.Context, networkID, rtype, registryID, id string) (string, error) {
	query := "SELECT data FROM resources WHERE network = $1 AND rtype = $2 AND registry = $3 AND id = $4"
	var data string
	err := ws.db.QueryRowContext(ctx, query, networkID, rtype, registryID, id).Scan(&data)
	if err == sql.ErrNoRows {
		return "", errors.Errorf("resource %s does not exist in registry %s", id, registryID)
	}
	return data, err
}

func (ws *worldState) existsResource(ctx context.Context, networkID, rtype, registryID, id string) (bool, error) {
	query := "SELECT COUNT(*) FROM resources WHERE network = $1 AND rtype = $2 AND registry = $3 AND id = $4"
	var count int
	if err := ws.db.QueryRowContext(ctx, query, networkID, rtype, registryID, id).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (ws *worldState) getAllResources(ctx context.Context, networkID, rtype, registryID string) ([]string, error) {
	query := "SELECT data FROM resources WHERE network = $1 AND rtype = $2 AND registry = $3 ORDER BY id"
	rows, err := ws.db.QueryContext(ctx, query, networkID, rtype, registryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	result := []string{}
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		result = append(result, data)
	}
	return result, rows.Err()
}

type identityRow struct {
	UserID      string
	SecretHash  string
	Participant string
	Issuer      bool
	Affiliation string
	Revoked     bool
}

func (ws *worldState) addIdentity(ctx context.Context, networkID string, row identityRow) error {
	query := "INSERT INTO identities (network, user_id, secret_hash, participant, issuer, affiliation) VALUES ($1, $2, $3, $4, $5, $6)"
	_, err := ws.db.ExecContext(ctx, query, networkID, row.UserID, row.SecretHash, row.Participant, row.Issuer, row.Affiliation)
	return err
}

func (ws *worldState) getIdentity(ctx context.Context, networkID, userID string) (*identityRow, error) {
	query := "SELECT user_id, secret_hash, participant, issuer, affiliation, revoked FROM identities WHERE network = $1 AND user_id = $2"
	row := &identityRow{}
	err := ws.db.QueryRowContext(ctx, query, networkID, userID).Scan(
		&row.UserID, &row.SecretHash, &row.Participant, &row.Issuer, &row.Affiliation, &row.Revoked)
	if err == sql.ErrNoRows {
		return nil, errors.Errorf("identity %s does not exist", userID)
	}
	if err != nil {
		return nil, err
	}
	return row, nil
}

func (ws *worldState) bindIdentity(ctx context.Context, networkID, userID, participant string) error {
	query := "UPDATE identities SET participant = $3 WHERE network = $1 AND user_id = $2"
	result, err := ws.db.ExecContext(ctx, query, networkID, userID, participant)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return errors.Errorf("identity %s does not exist", userID)
	}
	return nil
}

func (ws *worldState) revokeIdentity(ctx context.Context, networkID, userID string) error {
	query := "UPDATE identities SET revoked = 1 WHERE network = $1 AND user_id = $2"
	result, err := ws.db.ExecContext(ctx, query, networkID, userID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return errors.Errorf("identity %s does not exist", userID)
	}
	return nil
}
