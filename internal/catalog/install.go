package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/michaelbrown/adguard-mcp/internal/adguard"
	"github.com/michaelbrown/adguard-mcp/internal/tools"
)

func installTools(c *adguard.Client) []tools.Descriptor {
	return []tools.Descriptor{
		{
			Name:        "get_install_addresses",
			Description: "Get the addresses and ports AdGuard Home listens on for its web interface and DNS server.",
			Category:    tools.CategoryInstall,
			Tier:        tools.TierReadOnly,
			Handler: func(ctx context.Context, args map[string]any) (string, error) {
				v, err := c.Get(ctx, "install/get_addresses")
				if err != nil {
					return "", err
				}
				m := asMap(v)
				var b strings.Builder
				fmt.Fprintf(&b, "Web port: %d, DNS port: %d\n", num(m, "web_port"), num(m, "dns_port"))
				for name, iface := range asMap(m["interfaces"]) {
					im := asMap(iface)
					fmt.Fprintf(&b, "%s: %s\n", name, strings.Join(strs(im, "ip_addresses"), ", "))
				}
				return b.String(), nil
			},
		},
		{
			Name:        "check_for_updates",
			Description: "Check whether a newer AdGuard Home version is available.",
			Category:    tools.CategoryInstall,
			Tier:        tools.TierReadOnly,
			Handler: func(ctx context.Context, args map[string]any) (string, error) {
				v, err := c.Post(ctx, "version.json", map[string]any{"recheck_now": true})
				if err != nil {
					return "", err
				}
				m := asMap(v)
				newVersion := str(m, "new_version")
				if newVersion == "" || boolField(m, "disabled") {
					return "No update available.", nil
				}
				var b strings.Builder
				fmt.Fprintf(&b, "Update available: %s\n", newVersion)
				fmt.Fprintf(&b, "Auto-update supported: %v\n", boolField(m, "can_autoupdate"))
				if note := str(m, "announcement"); note != "" {
					fmt.Fprintf(&b, "%s\n", note)
				}
				return b.String(), nil
			},
		},
		{
			Name: "start_update",
			Description: "Upgrade AdGuard Home to the latest version. The server restarts during the upgrade " +
				"and is briefly unavailable.",
			Category:    tools.CategoryInstall,
			Tier:        tools.TierFull,
			Destructive: true,
			Handler: func(ctx context.Context, args map[string]any) (string, error) {
				if _, err := c.Post(ctx, "update", nil); err != nil {
					return "", err
				}
				return "Update started; the server will restart.", nil
			},
		},
	}
}
