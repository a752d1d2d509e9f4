package malloc

import "github.com/bnclabs/golog"

import "github.com/bnclabs/gomem/api"

func init() {
	setts := map[string]interface{}{
		"log.level": "ignore",
		"log.file":  "",
	}
	log.SetLogger(nil, setts)
}

// compile time contract checks.
var _ api.Mallocer = (*Bump)(nil)
var _ api.Mallocer = (*Pool)(nil)
var _ api.Mallocer = (*Arena)(nil)
var _ api.Mallocer = (*Locked)(nil)
var _ api.Resetter = (*Bump)(nil)
var _ api.Resetter = (*Pool)(nil)
var _ api.Resetter = (*Arena)(nil)
var _ api.Resetter = (*Locked)(nil)
