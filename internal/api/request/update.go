package request

import (
	"net/http"
	"strings"

	"github.com/edvin/ddns/internal/ddns"
	"github.com/edvin/ddns/internal/model"
)

// AutoIP asks for the caller's observed address instead of an explicit one.
const AutoIP = "auto"

// ParseUpdate derives one record change per requested hostname, in request
// order. clientIPHeader names the trusted proxy header consulted for ip=auto.
func ParseUpdate(r *http.Request, clientIPHeader string) ([]model.RecordChange, error) {
	ip, err := parseIP(r, clientIPHeader)
	if err != nil {
		return nil, err
	}

	hostnames, err := parseHostnames(r)
	if err != nil {
		return nil, err
	}

	recordType := RecordType(ip)
	changes := make([]model.RecordChange, 0, len(hostnames))
	for _, hostname := range hostnames {
		changes = append(changes, model.RecordChange{Hostname: hostname, IP: ip, Type: recordType})
	}

	return changes, nil
}

// RecordType picks A for anything containing a dot and AAAA otherwise. The
// address itself is not parsed.
func RecordType(ip string) string {
	if strings.Contains(ip, ".") {
		return model.RecordTypeA
	}
	return model.RecordTypeAAAA
}

func parseIP(r *http.Request, clientIPHeader string) (string, error) {
	q := r.URL.Query()
	ip := q.Get("ip")
	if ip == "" {
		ip = q.Get("myip")
	}
	if ip == "" {
		return "", ddns.ValidationError("Missing 'ip' parameter. Use ip=auto to use the client IP.")
	}

	if ip == AutoIP {
		ip = r.Header.Get(clientIPHeader)
		if ip == "" {
			return "", ddns.ServerError("ip=auto specified but client IP could not be determined.")
		}
	}
	return ip, nil
}

func parseHostnames(r *http.Request) ([]string, error) {
	q := r.URL.Query()
	raw := q.Get("hostnames")
	if raw == "" {
		raw = q.Get("hostname")
	}
	if raw == "" {
		return nil, ddns.ValidationError("Missing 'hostname' parameter.")
	}

	var hostnames []string
	for _, h := range strings.Split(raw, ",") {
		if h = strings.TrimSpace(h); h != "" {
			hostnames = append(hostnames, h)
		}
	}
	if len(hostnames) == 0 {
		return nil, ddns.ValidationError("No hostnames provided.")
	}
	return hostnames, nil
}
