package ids

import (
	"errors"
	"fmt"

	"github.com/bwmarrin/snowflake"
)

var ErrInvalidNodeID = errors.New("invalid snowflake node id")

// Generator issues time-ordered string identifiers.
type Generator struct {
	node *snowflake.Node
}

func NewGenerator(nodeID int64) (*Generator, error) {
	if nodeID < 0 || nodeID > 1023 {
		return nil, ErrInvalidNodeID
	}
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, fmt.Errorf("create snowflake node: %w", err)
	}
	return &Generator{node: node}, nil
}

func (generator *Generator) NextID() string {
	return generator.node.Generate().String()
}
