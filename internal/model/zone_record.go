package model

// Record types managed by the update endpoint.
const (
	RecordTypeA    = "A"
	RecordTypeAAAA = "AAAA"
)

type Zone struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ZoneRecord is the provider's view of a DNS record inside a zone.
type ZoneRecord struct {
	ID      string  `json:"id"`
	ZoneID  string  `json:"zone_id"`
	Name    string  `json:"name"`
	Type    string  `json:"type"`
	Content string  `json:"content"`
	TTL     int     `json:"ttl"`
	Proxied *bool   `json:"proxied,omitempty"`
	Comment *string `json:"comment,omitempty"`
}

// ZoneRecordUpdate carries the full set of fields written back to the provider.
type ZoneRecordUpdate struct {
	ZoneID   string  `json:"zone_id"`
	RecordID string  `json:"record_id"`
	Name     string  `json:"name"`
	Type     string  `json:"type"`
	Content  string  `json:"content"`
	TTL      int     `json:"ttl"`
	Proxied  bool    `json:"proxied"`
	Comment  *string `json:"comment,omitempty"`
}

// RecordChange is one proposed update derived from the inbound request.
type RecordChange struct {
	Hostname string `json:"hostname"`
	IP       string `json:"ip"`
	Type     string `json:"type"`
}
