// Package idgen 提供订单号（雪花算法）与幂等键（UUID）生成
package idgen

import (
	"fmt"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
)

// Generator ID 生成器
type Generator struct {
	node *snowflake.Node
}

// New 创建 ID 生成器；nodeID 取值范围 [0, 1023]
func New(nodeID int64) (*Generator, error) {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, fmt.Errorf("failed to create snowflake node: %w", err)
	}
	return &Generator{node: node}, nil
}

// OrderID 生成全局唯一订单号
func (g *Generator) OrderID() string {
	return "ORD" + g.node.Generate().String()
}

// RequestKey 生成客户端幂等键
func (g *Generator) RequestKey() string {
	return uuid.New().String()
}
