package domain

// ServiceStatus is the closed set of health states a service can occupy.
type ServiceStatus string

const (
	StatusUnknown  ServiceStatus = "unknown"
	StatusAlive    ServiceStatus = "alive"
	StatusDead     ServiceStatus = "dead"
	StatusDegraded ServiceStatus = "degraded"
	StatusChecking ServiceStatus = "checking"
)

// Method is one of the 17 protocol tags a ServiceSpec can carry.
type Method string

const (
	MethodHTTP     Method = "http"
	MethodHTTPS    Method = "https"
	MethodTCP      Method = "tcp"
	MethodUDP      Method = "udp"
	MethodICMP     Method = "icmp"
	MethodDNS      Method = "dns"
	MethodWS       Method = "ws"
	MethodWSS      Method = "wss"
	MethodGRPC     Method = "grpc"
	MethodSMTP     Method = "smtp"
	MethodFTP      Method = "ftp"
	MethodSSH      Method = "ssh"
	MethodRedis    Method = "redis"
	MethodMySQL    Method = "mysql"
	MethodPostgres Method = "postgres"
	MethodMongoDB  Method = "mongodb"
	MethodKafka    Method = "kafka"
)

// HTTPMethod enumerates the verbs a HTTP/HTTPS probe may issue.
type HTTPMethod string

const (
	HTTPGet     HTTPMethod = "GET"
	HTTPPost    HTTPMethod = "POST"
	HTTPPut     HTTPMethod = "PUT"
	HTTPDelete  HTTPMethod = "DELETE"
	HTTPHead    HTTPMethod = "HEAD"
	HTTPOptions HTTPMethod = "OPTIONS"
)

// DNSQueryType enumerates the record types the DNS probe can ask for.
type DNSQueryType string

const (
	DNSTypeA     DNSQueryType = "A"
	DNSTypeAAAA  DNSQueryType = "AAAA"
	DNSTypeCNAME DNSQueryType = "CNAME"
	DNSTypeMX    DNSQueryType = "MX"
	DNSTypeTXT   DNSQueryType = "TXT"
	DNSTypeNS    DNSQueryType = "NS"
	DNSTypeSOA   DNSQueryType = "SOA"
)
