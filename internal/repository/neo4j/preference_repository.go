package neo4j

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"motoMatch/domain"
	"motoMatch/pkg/logger"
)

// PreferenceRepository stores riders, their declared preferences and the
// single IDEAL relationship per rider in the graph database.
//
//	(r:Rider {id, experience, intended_use, budget, ...})
//	(r)-[:IDEAL {score, reasons, created_at}]->(m:Moto {id})
type PreferenceRepository struct {
	driver   neo4j.DriverWithContext
	database string
}

func NewPreferenceRepository(driver neo4j.DriverWithContext, database string) *PreferenceRepository {
	return &PreferenceRepository{
		driver:   driver,
		database: database,
	}
}

// EnsureSchema creates the uniqueness constraints. Best effort: a failure
// is logged and the repository keeps working without them.
func (r *PreferenceRepository) EnsureSchema(ctx context.Context) {
	session := r.writeSession(ctx)
	defer session.Close(ctx)

	constraints := []string{
		`CREATE CONSTRAINT rider_id_unique IF NOT EXISTS FOR (r:Rider) REQUIRE r.id IS UNIQUE`,
		`CREATE CONSTRAINT moto_id_unique IF NOT EXISTS FOR (m:Moto) REQUIRE m.id IS UNIQUE`,
	}
	for _, c := range constraints {
		if res, err := session.Run(ctx, c, nil); err != nil {
			logger.Warn("neo4j schema init failed (continuing)", "error", err)
		} else {
			_, _ = res.Consume(ctx)
		}
	}
}

func (r *PreferenceRepository) GetProfile(ctx context.Context, userID string) (domain.RiderProfile, error) {
	if err := ctx.Err(); err != nil {
		return domain.RiderProfile{}, fmt.Errorf("context error: %w", err)
	}

	session := r.readSession(ctx)
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, `MATCH (r:Rider {id: $id}) RETURN r`, map[string]any{"id": userID})
		if err != nil {
			return nil, err
		}
		records, err := res.Collect(ctx)
		if err != nil {
			return nil, err
		}
		if len(records) == 0 {
			return nil, nil
		}
		node, ok := records[0].Get("r")
		if !ok {
			return nil, fmt.Errorf("rider record without node")
		}
		return node, nil
	})
	if err != nil {
		return domain.RiderProfile{}, fmt.Errorf("failed to load rider profile: %w", err)
	}
	if result == nil {
		return domain.RiderProfile{}, domain.ErrRiderNotFound
	}

	node, ok := result.(neo4j.Node)
	if !ok {
		return domain.RiderProfile{}, fmt.Errorf("unexpected rider record type %T", result)
	}

	return profileFromProps(userID, node.Props), nil
}

// SaveProfile replaces the rider node's properties wholesale, so cleared
// preferences actually disappear from the graph.
func (r *PreferenceRepository) SaveProfile(ctx context.Context, profile domain.RiderProfile) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	props, err := propsFromProfile(profile)
	if err != nil {
		return err
	}

	session := r.writeSession(ctx)
	defer session.Close(ctx)

	_, err = session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, `
MERGE (r:Rider {id: $id})
SET r = $props
`, map[string]any{"id": profile.UserID, "props": props})
		if err != nil {
			return nil, err
		}
		if _, err := res.Consume(ctx); err != nil {
			return nil, err
		}
		return nil, nil
	})
	if err != nil {
		return fmt.Errorf("failed to save rider profile: %w", err)
	}

	return nil
}

func (r *PreferenceRepository) GetAssignment(ctx context.Context, userID string) (domain.IdealAssignment, error) {
	if err := ctx.Err(); err != nil {
		return domain.IdealAssignment{}, fmt.Errorf("context error: %w", err)
	}

	session := r.readSession(ctx)
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, `
MATCH (r:Rider {id: $id})
OPTIONAL MATCH (r)-[i:IDEAL]->(m:Moto)
RETURN m.id AS moto_id, i.score AS score, i.reasons AS reasons, i.created_at AS created_at
`, map[string]any{"id": userID})
		if err != nil {
			return nil, err
		}
		return res.Collect(ctx)
	})
	if err != nil {
		return domain.IdealAssignment{}, fmt.Errorf("failed to load ideal assignment: %w", err)
	}

	records := result.([]*neo4j.Record)
	if len(records) == 0 {
		return domain.IdealAssignment{}, domain.ErrRiderNotFound
	}

	record := records[0]
	motoID, _ := record.Get("moto_id")
	if motoID == nil {
		return domain.IdealAssignment{}, domain.ErrNoAssignment
	}

	assignment := domain.IdealAssignment{MotoID: motoID.(string)}

	if v, _ := record.Get("score"); v != nil {
		if score, ok := v.(float64); ok {
			assignment.Score = score
		}
	}
	if v, _ := record.Get("reasons"); v != nil {
		if raw, ok := v.([]any); ok {
			reasons := make([]string, 0, len(raw))
			for _, item := range raw {
				if s, ok := item.(string); ok {
					reasons = append(reasons, s)
				}
			}
			assignment.Reasons = reasons
		}
	}
	if v, _ := record.Get("created_at"); v != nil {
		if s, ok := v.(string); ok {
			if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
				assignment.CreatedAt = t
			}
		}
	}

	return assignment, nil
}

// SetAssignment supersedes the rider's IDEAL relationship in one write
// transaction: the old edge is deleted and the new one written together,
// so readers never observe zero or two assignments.
func (r *PreferenceRepository) SetAssignment(ctx context.Context, userID string, assignment domain.IdealAssignment) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	reasons := make([]any, len(assignment.Reasons))
	for i, reason := range assignment.Reasons {
		reasons[i] = reason
	}

	session := r.writeSession(ctx)
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, `
MATCH (r:Rider {id: $id})
OPTIONAL MATCH (r)-[old:IDEAL]->()
DELETE old
RETURN count(*) AS n
`, map[string]any{"id": userID})
		if err != nil {
			return nil, err
		}
		records, err := res.Collect(ctx)
		if err != nil {
			return nil, err
		}
		if len(records) == 0 {
			return nil, domain.ErrRiderNotFound
		}

		res, err = tx.Run(ctx, `
MATCH (r:Rider {id: $id})
MERGE (m:Moto {id: $moto_id})
MERGE (r)-[i:IDEAL]->(m)
SET i.score = $score,
    i.reasons = $reasons,
    i.created_at = $created_at
`, map[string]any{
			"id":         userID,
			"moto_id":    assignment.MotoID,
			"score":      assignment.Score,
			"reasons":    reasons,
			"created_at": assignment.CreatedAt.UTC().Format(time.RFC3339Nano),
		})
		if err != nil {
			return nil, err
		}
		if _, err := res.Consume(ctx); err != nil {
			return nil, err
		}
		return nil, nil
	})
	if errors.Is(err, domain.ErrRiderNotFound) {
		return domain.ErrRiderNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to set ideal assignment: %w", err)
	}

	return nil
}

// ---- sessions & mapping ----

func (r *PreferenceRepository) readSession(ctx context.Context) neo4j.SessionWithContext {
	return r.driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeRead,
		DatabaseName: r.database,
	})
}

func (r *PreferenceRepository) writeSession(ctx context.Context) neo4j.SessionWithContext {
	return r.driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeWrite,
		DatabaseName: r.database,
	})
}

func propsFromProfile(profile domain.RiderProfile) (map[string]any, error) {
	props := map[string]any{"id": profile.UserID}

	if profile.Experience != "" {
		props["experience"] = string(profile.Experience)
	}
	if profile.IntendedUse != "" {
		props["intended_use"] = string(profile.IntendedUse)
	}
	setFloat(props, "budget", profile.Budget)
	setFloat(props, "power_min", profile.PowerMin)
	setFloat(props, "power_max", profile.PowerMax)
	setFloat(props, "displacement_min", profile.DisplacementMin)
	setFloat(props, "displacement_max", profile.DisplacementMax)
	setFloat(props, "weight_min", profile.WeightMin)
	setFloat(props, "weight_max", profile.WeightMax)

	if len(profile.BrandWeights) > 0 {
		raw, err := json.Marshal(profile.BrandWeights)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal brand weights: %w", err)
		}
		props["brand_weights_json"] = string(raw)
	}

	return props, nil
}

func profileFromProps(userID string, props map[string]any) domain.RiderProfile {
	profile := domain.RiderProfile{UserID: userID}

	if v, ok := props["experience"].(string); ok {
		profile.Experience = domain.ExperienceLevel(v)
	}
	if v, ok := props["intended_use"].(string); ok {
		profile.IntendedUse = domain.IntendedUse(v)
	}
	profile.Budget = getFloat(props, "budget")
	profile.PowerMin = getFloat(props, "power_min")
	profile.PowerMax = getFloat(props, "power_max")
	profile.DisplacementMin = getFloat(props, "displacement_min")
	profile.DisplacementMax = getFloat(props, "displacement_max")
	profile.WeightMin = getFloat(props, "weight_min")
	profile.WeightMax = getFloat(props, "weight_max")

	if raw, ok := props["brand_weights_json"].(string); ok && raw != "" {
		weights := map[string]float64{}
		if err := json.Unmarshal([]byte(raw), &weights); err == nil {
			profile.BrandWeights = weights
		} else {
			logger.Warn("corrupt brand weights on rider node", "user_id", userID, "error", err)
		}
	}

	return profile
}

func setFloat(props map[string]any, key string, v *float64) {
	if v != nil {
		props[key] = *v
	}
}

func getFloat(props map[string]any, key string) *float64 {
	switch v := props[key].(type) {
	case float64:
		return &v
	case int64:
		f := float64(v)
		return &f
	default:
		return nil
	}
}
