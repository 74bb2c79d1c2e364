package storage

import (
	"github.com/bwmarrin/snowflake"
	"github.com/pkg/errors"
)

// IDGenerator hands out message ids
type IDGenerator struct {
	node *snowflake.Node
}

func NewIDGenerator(nodeID int64) (*IDGenerator, error) {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, errors.Wrapf(err, "snowflake node %d", nodeID)
	}
	return &IDGenerator{node: node}, nil
}

func (g *IDGenerator) Next() snowflake.ID {
	return g.node.Generate()
}

func (g *IDGenerator) Parse(id string) (snowflake.ID, error) {
	return snowflake.ParseString(id)
}
