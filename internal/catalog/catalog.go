// Package catalog defines every tool the server can expose: one descriptor
// per AdGuard Home operation, grouped by functional domain. Handlers call
// the REST client and reformat the JSON payload as human-readable text;
// which descriptors actually get exposed is decided by the registration
// gate, not here.
package catalog

import (
	"github.com/michaelbrown/adguard-mcp/internal/adguard"
	"github.com/michaelbrown/adguard-mcp/internal/tools"
)

// All returns the full tool catalog bound to the given client, in a stable
// order. Descriptor names are unique; RegisterAll enforces that at startup.
func All(c *adguard.Client) []tools.Descriptor {
	var all []tools.Descriptor
	for _, group := range [][]tools.Descriptor{
		statusTools(c),
		dnsTools(c),
		queryLogTools(c),
		statsTools(c),
		filteringTools(c),
		safeBrowsingTools(c),
		parentalTools(c),
		safeSearchTools(c),
		clientTools(c),
		dhcpTools(c),
		rewriteTools(c),
		tlsTools(c),
		blockedServiceTools(c),
		accessTools(c),
		installTools(c),
		mobileConfigTools(c),
	} {
		all = append(all, group...)
	}
	return all
}
