package neo4j

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"motoMatch/pkg/config"
)

func NewNeo4jDriver(config *config.Config) (neo4j.DriverWithContext, error) {
	driver, err := neo4j.NewDriverWithContext(
		config.Neo4j.URI,
		neo4j.BasicAuth(config.Neo4j.User, config.Neo4j.Password, ""),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create neo4j driver: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// test connection
	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("failed to connect to neo4j: %w", err)
	}

	return driver, nil
}

// CloseNeo4jDriver closes the driver and its connection pool.
func CloseNeo4jDriver(driver neo4j.DriverWithContext) error {
	if driver != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return driver.Close(ctx)
	}

	return nil
}
