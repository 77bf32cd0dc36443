package plugin

import "errors"

// ErrUnknownTag is returned by Registry.Build when no builder is
// registered under the requested tag.
var ErrUnknownTag = errors.New("plugin: unknown builder tag")
