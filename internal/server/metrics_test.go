package server

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/practice-sem-2/messenger-service/internal/presence"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRegisterPresence(t *testing.T) {
	reg := prometheus.NewRegistry()
	registry := presence.NewRegistry()
	RegisterPresence(reg, registry)

	user := uuid.New()
	registry.Register(user, "tab-1")
	registry.Register(user, "tab-2")
	registry.AddToChannel("group", "tab-1")

	expected := `
# HELP messenger_presence_channels Broadcast channels with at least one live connection.
# TYPE messenger_presence_channels gauge
messenger_presence_channels 1
# HELP messenger_presence_connections Live connections known to presence.
# TYPE messenger_presence_connections gauge
messenger_presence_connections 2
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"messenger_presence_connections", "messenger_presence_channels"))

	registry.Unregister("tab-1")

	expected = `
# HELP messenger_presence_channels Broadcast channels with at least one live connection.
# TYPE messenger_presence_channels gauge
messenger_presence_channels 0
# HELP messenger_presence_connections Live connections known to presence.
# TYPE messenger_presence_connections gauge
messenger_presence_connections 1
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"messenger_presence_connections", "messenger_presence_channels"))
}
