package models

// LiveConfig is the trading configuration of the host bot. The relay
// treats it as opaque: it only loads, displays and forwards it.
type LiveConfig map[string]any
