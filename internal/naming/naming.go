// Package naming provides centralized generation of the deterministic short
// names used for cloud resources derived from workspace identity (storage
// accounts, key vaults, DNS labels). Keeping the logic here allows future
// changes (length/algorithm) without touching call sites.
package naming

import (
	"crypto/sha1"
	"fmt"
	"strings"
)

const (
	// ShortHashLength is the number of hex chars appended to derived names.
	ShortHashLength = 8

	storageAccountMaxLength = 24
	keyVaultMaxLength       = 24
	dnsLabelMaxLength       = 63
)

// ShortHash returns the first ShortHashLength hex chars of sha1(s).
func ShortHash(s string) string {
	sum := sha1.Sum([]byte(s))
	return fmt.Sprintf("%x", sum)[:ShortHashLength]
}

// sanitize keeps only lowercase alphanumerics (and optionally dashes) from s.
func sanitize(s string, allowDash bool) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case allowDash && r == '-':
			b.WriteRune(r)
		}
	}
	return b.String()
}

// StorageAccountName derives a storage account name for a workspace scope.
// Storage account names must be 3-24 lowercase alphanumerics, globally
// unique; a hash of the full scope provides the uniqueness.
func StorageAccountName(scope, workspaceName string) string {
	base := sanitize(workspaceName, false)
	hash := ShortHash(scope + "/" + workspaceName)
	maxBase := storageAccountMaxLength - len(hash) - len("st")
	if len(base) > maxBase {
		base = base[:maxBase]
	}
	return "st" + base + hash
}

// KeyVaultName derives a key vault name for a workspace scope.
// Key vault names must be 3-24 chars, alphanumerics and dashes, start with a
// letter.
func KeyVaultName(scope, workspaceName string) string {
	base := sanitize(workspaceName, false)
	hash := ShortHash(scope + "/" + workspaceName)
	maxBase := keyVaultMaxLength - len(hash) - len("kv")
	if len(base) > maxBase {
		base = base[:maxBase]
	}
	return "kv" + base + hash
}

// DNSLabel derives an RFC 1123 DNS label from name, appending a scope hash
// for global uniqueness (used for ACI FQDNs).
func DNSLabel(scope, name string) string {
	base := sanitize(name, true)
	base = strings.Trim(base, "-")
	if base == "" {
		base = "svc"
	}
	hash := ShortHash(scope + "/" + name)
	maxBase := dnsLabelMaxLength - len(hash) - 1
	if len(base) > maxBase {
		base = base[:maxBase]
	}
	return base + "-" + hash
}
