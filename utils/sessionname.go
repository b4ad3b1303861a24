package utils

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/Pallinder/go-randomdata"
)

// SessionNameGenerator hands out unique human-readable names for unsaved
// edit sessions, so exported layout files can be told apart.
type SessionNameGenerator map[string]struct{}

func (sng *SessionNameGenerator) SessionName() string {
	if *sng == nil {
		*sng = make(map[string]struct{})
		randomdata.CustomRand(rand.New(rand.NewSource(time.Now().UnixNano())))
	}
	for attempt := 0; ; attempt++ {
		name := randomdata.SillyName()
		if attempt >= 4 {
			// silly-name pool exhausted enough to keep colliding
			name = fmt.Sprintf("%s%d", name, len(*sng))
		}
		if _, exists := (*sng)[name]; !exists {
			(*sng)[name] = struct{}{}
			return name
		}
	}
}
