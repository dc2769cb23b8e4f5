package uid

import (
	"crypto/sha256"
	"fmt"
	"os"
	"strings"

	"github.com/bwmarrin/snowflake"
)

// Snowflake generates time-ordered int64 IDs.
type Snowflake struct {
	node *snowflake.Node
}

// NewSnowflake returns a Snowflake generator whose node number is derived
// from the machine identity, so replicas on different hosts diverge.
func NewSnowflake() (*Snowflake, error) {
	node, err := snowflake.NewNode(nodeNumber())
	if err != nil {
		return nil, fmt.Errorf("uid: snowflake node: %w", err)
	}

	return &Snowflake{node: node}, nil
}

// Generate returns a new snowflake ID.
func (s *Snowflake) Generate() int64 {
	return s.node.Generate().Int64()
}

func nodeNumber() int64 {
	src := ""
	if b, err := os.ReadFile("/etc/machine-id"); err == nil {
		src = strings.TrimSpace(string(b))
	}
	if src == "" {
		if h, err := os.Hostname(); err == nil {
			src = strings.TrimSpace(h)
		}
	}
	if src == "" {
		src = fmt.Sprintf("pid-%d", os.Getpid())
	}

	sum := sha256.Sum256([]byte(src))
	// snowflake nodes are 10 bits wide
	return int64(sum[0])<<2 | int64(sum[1])>>6
}
