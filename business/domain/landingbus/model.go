package landingbus

import (
	"encoding/json"

	"github.com/jcpaschoal/agenda/business/types/section"
)

// Sections is the bag of landing page configuration blocks. Every value is
// the raw JSON document the editor saved for that block.
type Sections map[section.Key]json.RawMessage

// InitConfig carries the startup settings for Initialize.
type InitConfig struct {
	Production bool
}

type state struct {
	DemoCleared bool `json:"demoCleared"`
}
