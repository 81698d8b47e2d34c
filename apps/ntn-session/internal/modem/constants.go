package modem

// HTTPヘッダ名
const (
	HeaderTraceID     = "X-Trace-ID"
	HeaderContentType = "Content-Type"
)

// Content-Type
const (
	ContentTypeJSON = "application/json"
)

// ゲートウェイAPIパス
const (
	PathEnable                  = "/api/v1/modem/enable"
	PathEnabled                 = "/api/v1/modem/enabled"
	PathSupported               = "/api/v1/modem/supported"
	PathCapabilities            = "/api/v1/modem/capabilities"
	PathProvisioned             = "/api/v1/modem/provisioned"
	PathDatagrams               = "/api/v1/modem/datagrams"
	PathDatagramsAbort          = "/api/v1/modem/datagrams/abort"
	PathDatagramsPoll           = "/api/v1/modem/datagrams/poll"
	PathListening               = "/api/v1/modem/listening"
	PathTerrestrialScanning     = "/api/v1/modem/tn-scanning"
	PathSignalStrengthReporting = "/api/v1/modem/signal-strength-reporting"
)
