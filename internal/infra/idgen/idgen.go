package idgen

import (
	"github.com/bwmarrin/snowflake"
	"github.com/segmentio/ksuid"
)

// NewKSUID returns a sortable, globally unique string id.
func NewKSUID() string {
	return ksuid.New().String()
}

// Snowflake hands out time ordered int64 ids for one node.
type Snowflake struct {
	node *snowflake.Node
}

// NewSnowflake fails when nodeID is outside 0..1023.
func NewSnowflake(nodeID int64) (*Snowflake, error) {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, err
	}
	return &Snowflake{node: node}, nil
}

func (s *Snowflake) NextID() int64 {
	return s.node.Generate().Int64()
}
