package sequence

import (
	"github.com/SohaibKhaliq/Volunteer-System-sub001/pkg/config"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
)

var Module = fx.Module("sequence",
	fx.Provide(NewNode),
)

// NewNode provides the snowflake node used for record IDs. The node ID must be
// unique per running instance when more than one worker writes to the same
// database.
func NewNode(cfg *config.Config) (*snowflake.Node, error) {
	return snowflake.NewNode(cfg.Sequence.NodeID)
}
