// Package api wires the dynamic-DNS HTTP surface: the chi router, its
// middleware chain and the /update endpoint backed by the Cloudflare client.
package api
