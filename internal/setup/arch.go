package setup

// cloudflaredDebURLs maps `uname -m` output to the matching release artifact.
// The release tag is unpinned and artifacts are not checksum-verified; see
// DESIGN.md before changing that, since rejecting previously-accepted
// artifacts is an observable behavior change.
var cloudflaredDebURLs = map[string]string{
	"x86_64":  "https://github.com/cloudflare/cloudflared/releases/latest/download/cloudflared-linux-amd64.deb",
	"amd64":   "https://github.com/cloudflare/cloudflared/releases/latest/download/cloudflared-linux-amd64.deb",
	"aarch64": "https://github.com/cloudflare/cloudflared/releases/latest/download/cloudflared-linux-arm64.deb",
	"arm64":   "https://github.com/cloudflare/cloudflared/releases/latest/download/cloudflared-linux-arm64.deb",
	"armv7l":  "https://github.com/cloudflare/cloudflared/releases/latest/download/cloudflared-linux-armhf.deb",
	"armhf":   "https://github.com/cloudflare/cloudflared/releases/latest/download/cloudflared-linux-armhf.deb",
	"i386":    "https://github.com/cloudflare/cloudflared/releases/latest/download/cloudflared-linux-386.deb",
	"i686":    "https://github.com/cloudflare/cloudflared/releases/latest/download/cloudflared-linux-386.deb",
}

// CloudflaredDebURL resolves an architecture string to a .deb download URL.
// Unmapped architectures return ok=false and are a hard failure upstream.
func CloudflaredDebURL(arch string) (string, bool) {
	url, ok := cloudflaredDebURLs[arch]
	return url, ok
}
