package scan

// wellKnownServices maps well-known port numbers to IANA-ish service
// names. This is a coarse identification aid, not fingerprinting: the
// service actually listening may differ.
var wellKnownServices = map[int]string{
	21:    "FTP",
	22:    "SSH",
	23:    "Telnet",
	25:    "SMTP",
	53:    "DNS",
	80:    "HTTP",
	110:   "POP3",
	135:   "RPC",
	139:   "NetBIOS",
	143:   "IMAP",
	443:   "HTTPS",
	993:   "IMAPS",
	995:   "POP3S",
	1433:  "SQL Server",
	3306:  "MySQL",
	3389:  "RDP",
	5432:  "PostgreSQL",
	5900:  "VNC",
	6379:  "Redis",
	8080:  "HTTP-Alt",
	9200:  "Elasticsearch",
	27017: "MongoDB",
}

// ServiceName returns the well-known service name for a port, or
// "Unknown" for ports outside the table. Pure lookup, no state.
func ServiceName(port int) string {
	if name, ok := wellKnownServices[port]; ok {
		return name
	}
	return "Unknown"
}
