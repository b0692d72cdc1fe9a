package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/michaelbrown/adguard-mcp/internal/adguard"
	"github.com/michaelbrown/adguard-mcp/internal/tools"
)

func tlsTools(c *adguard.Client) []tools.Descriptor {
	return []tools.Descriptor{
		{
			Name:        "get_tls_status",
			Description: "Get TLS/encryption settings: server name, ports for DNS-over-HTTPS/TLS/QUIC, and certificate validity.",
			Category:    tools.CategoryTLS,
			Tier:        tools.TierReadOnly,
			Handler: func(ctx context.Context, args map[string]any) (string, error) {
				v, err := c.Get(ctx, "tls/status")
				if err != nil {
					return "", err
				}
				m := asMap(v)
				var b strings.Builder
				fmt.Fprintf(&b, "Encryption: %s\n", onOff(boolField(m, "enabled")))
				fmt.Fprintf(&b, "Server name: %s\n", str(m, "server_name"))
				fmt.Fprintf(&b, "HTTPS port: %d, DoT port: %d, DoQ port: %d\n",
					num(m, "port_https"), num(m, "port_dns_over_tls"), num(m, "port_dns_over_quic"))
				fmt.Fprintf(&b, "Certificate valid: %v\n", boolField(m, "valid_cert"))
				if chain := str(m, "subject"); chain != "" {
					fmt.Fprintf(&b, "Subject: %s\n", chain)
				}
				if until := str(m, "not_after"); until != "" {
					fmt.Fprintf(&b, "Expires: %s\n", until)
				}
				return b.String(), nil
			},
		},
		{
			Name:        "configure_tls",
			Description: "Update TLS settings. Certificates and keys can be passed inline (PEM) or as file paths on the server.",
			Category:    tools.CategoryTLS,
			Tier:        tools.TierFull,
			Schema:      tlsSchema,
			Handler: func(ctx context.Context, args map[string]any) (string, error) {
				if len(args) == 0 {
					return "", fmt.Errorf("no TLS settings supplied")
				}
				body := map[string]any{}
				setIf(body, args, tlsKeys...)
				if _, err := c.Post(ctx, "tls/configure", body); err != nil {
					return "", err
				}
				return "TLS configuration updated.", nil
			},
		},
		{
			Name:        "validate_tls",
			Description: "Validate a TLS configuration without applying it. Reports certificate chain and key problems.",
			Category:    tools.CategoryTLS,
			Tier:        tools.TierReadOnly,
			Schema:      tlsSchema,
			Handler: func(ctx context.Context, args map[string]any) (string, error) {
				body := map[string]any{}
				setIf(body, args, tlsKeys...)
				v, err := c.Post(ctx, "tls/validate", body)
				if err != nil {
					return "", err
				}
				m := asMap(v)
				var b strings.Builder
				fmt.Fprintf(&b, "Certificate chain valid: %v\n", boolField(m, "valid_chain"))
				fmt.Fprintf(&b, "Key valid: %v\n", boolField(m, "valid_key"))
				if warn := str(m, "warning_validation"); warn != "" {
					fmt.Fprintf(&b, "Warning: %s\n", warn)
				}
				return b.String(), nil
			},
		},
	}
}

var tlsKeys = []string{
	"enabled", "server_name", "port_https", "port_dns_over_tls",
	"port_dns_over_quic", "certificate_chain", "private_key",
	"certificate_path", "private_key_path",
}

var tlsSchema = tools.Schema{
	Properties: map[string]tools.Property{
		"enabled":            boolProp("Whether encryption is on"),
		"server_name":        strProp("Server name for certificate matching"),
		"port_https":         numProp("HTTPS/DoH port"),
		"port_dns_over_tls":  numProp("DNS-over-TLS port"),
		"port_dns_over_quic": numProp("DNS-over-QUIC port"),
		"certificate_chain":  strProp("PEM certificate chain"),
		"private_key":        strProp("PEM private key"),
		"certificate_path":   strProp("Path to certificate file on the server"),
		"private_key_path":   strProp("Path to key file on the server"),
	},
}
